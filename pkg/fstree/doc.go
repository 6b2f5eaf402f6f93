// Package fstree models a scanned directory tree.
//
// A Directory owns its children; every entry keeps a non-owning pointer back
// to its parent. Trees are built once per scan (by Walker, or by hand with
// NewRoot/AddFile/AddDirectory) and are treated as immutable afterwards, so a
// single tree can be read from many goroutines without locking.
//
// Hierarchy is the ancestor chain of an entry, nearest ancestor first. It is
// derived on demand from parent pointers and never stored.
package fstree
