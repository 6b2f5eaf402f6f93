package fstree

// Prune returns a copy of root holding only the entries for which keep
// returns true, plus every directory that has a kept descendant. The root is
// always present, possibly empty.
func Prune(root *Directory, keep func(*File) bool) *Directory {
	out := NewRoot(root.Path())
	pruneInto(out, root, keep)
	return out
}

func pruneInto(dst, src *Directory, keep func(*File) bool) bool {
	found := false
	for _, child := range src.Children() {
		if !child.IsDirectory() {
			if keep(child) {
				dst.addFileAt(child)
				found = true
			}
			continue
		}

		sub := dst.addDirectoryAt(child.FullName(), child.Path())
		kept := pruneInto(sub, child.Directory(), keep)
		if !kept && !keep(child) {
			dst.children = dst.children[:len(dst.children)-1]
			continue
		}
		found = true
	}
	return found
}

// Compact returns a copy of root in which every chain of directories that
// contain exactly one entry, itself a directory, is merged into one node
// named "a/b/c". The merged node takes the path of the deepest directory.
func Compact(root *Directory) *Directory {
	out := NewRoot(root.Path())
	compactInto(out, root)
	return out
}

func compactInto(dst, src *Directory) {
	for _, child := range src.Children() {
		if !child.IsDirectory() {
			dst.addFileAt(child)
			continue
		}

		name := child.FullName()
		cur := child.Directory()
		for len(cur.children) == 1 && cur.children[0].IsDirectory() {
			cur = cur.children[0].Directory()
			name += "/" + cur.FullName()
		}

		sub := dst.addDirectoryAt(name, cur.Path())
		compactInto(sub, cur)
	}
}
