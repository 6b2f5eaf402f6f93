// Package fstreetest builds fstree trees for tests.
package fstreetest

import (
	"strings"

	"github.com/arthur-debert/topdrawer/pkg/fstree"
)

// Build creates a tree rooted at root from slash-separated relative paths.
// A trailing slash marks a directory; intermediate directories are created
// as needed.
func Build(root string, paths ...string) *fstree.Directory {
	dir := fstree.NewRoot(root)
	for _, p := range paths {
		isDir := strings.HasSuffix(p, "/")
		parts := strings.Split(strings.Trim(p, "/"), "/")
		cur := dir
		for i, part := range parts {
			last := i == len(parts)-1
			if last && !isDir {
				cur.AddFile(part)
				break
			}
			if existing := cur.Child(part); existing != nil && existing.IsDirectory() {
				cur = existing.Directory()
				continue
			}
			cur = cur.AddDirectory(part)
		}
	}
	return dir
}

// Find returns the entry at the slash-separated relative path, or nil.
func Find(root *fstree.Directory, rel string) *fstree.File {
	cur := root.File
	for _, part := range strings.Split(strings.Trim(rel, "/"), "/") {
		if cur.Directory() == nil {
			return nil
		}
		cur = cur.Directory().Child(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// MustFind is Find that panics when the entry is missing.
func MustFind(root *fstree.Directory, rel string) *fstree.File {
	f := Find(root, rel)
	if f == nil {
		panic("fstreetest: no entry at " + rel)
	}
	return f
}
