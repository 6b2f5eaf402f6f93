package fstree

// Hierarchy is the ancestor chain of an entry, nearest ancestor first and the
// root last. It is empty for a root.
type Hierarchy []*Directory

// HierarchyOf walks parent pointers from f up to the root.
func HierarchyOf(f *File) Hierarchy {
	var h Hierarchy
	for p := f.Parent(); p != nil; p = p.Parent() {
		h = append(h, p)
	}
	return h
}

// Depth is the number of ancestors
func (h Hierarchy) Depth() int { return len(h) }

// Parent returns the nearest ancestor, nil when the chain is empty
func (h Hierarchy) Parent() *Directory {
	if len(h) == 0 {
		return nil
	}
	return h[0]
}

// Above returns the hierarchy of the nearest ancestor, i.e. the chain without
// its first element.
func (h Hierarchy) Above() Hierarchy {
	if len(h) == 0 {
		return nil
	}
	return h[1:]
}

// Within returns the hierarchy shared by every child of d, given d's own
// hierarchy.
func Within(d *Directory, h Hierarchy) Hierarchy {
	out := make(Hierarchy, 0, len(h)+1)
	out = append(out, d)
	return append(out, h...)
}
