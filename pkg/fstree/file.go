package fstree

import (
	"path/filepath"
	"strings"
)

// File is a single entry of a scanned tree. Directories are Files too; use
// Directory to reach their children.
type File struct {
	name   string
	ext    string
	path   string
	parent *Directory
	dir    *Directory // set when this entry is a directory
}

// Name returns the base name without extension
func (f *File) Name() string { return f.name }

// Ext returns the extension without the leading dot, possibly empty
func (f *File) Ext() string { return f.ext }

// FullName returns name and extension joined by a dot
func (f *File) FullName() string {
	if f.ext == "" {
		return f.name
	}
	return f.name + "." + f.ext
}

// Path returns the absolute path of the entry
func (f *File) Path() string { return f.path }

// Parent returns the containing directory, nil for a root
func (f *File) Parent() *Directory { return f.parent }

// IsDirectory reports whether the entry has children
func (f *File) IsDirectory() bool { return f.dir != nil }

// Directory returns the directory view of the entry, nil for plain files
func (f *File) Directory() *Directory { return f.dir }

func (f *File) String() string { return f.path }

// Directory is a File that owns an ordered list of children.
type Directory struct {
	*File
	children []*File
}

// NewRoot creates a parentless directory for path.
func NewRoot(path string) *Directory {
	d := &Directory{}
	name, ext := SplitName(filepath.Base(path))
	d.File = &File{name: name, ext: ext, path: path, dir: d}
	return d
}

// Children returns the entries of the directory in insertion order. The
// returned slice must not be modified.
func (d *Directory) Children() []*File { return d.children }

// Child returns the direct child with the given full name, or nil
func (d *Directory) Child(fullName string) *File {
	for _, c := range d.children {
		if c.FullName() == fullName {
			return c
		}
	}
	return nil
}

// AddFile appends a plain file named fullName.
func (d *Directory) AddFile(fullName string) *File {
	name, ext := SplitName(fullName)
	f := &File{name: name, ext: ext, path: filepath.Join(d.path, fullName), parent: d}
	d.children = append(d.children, f)
	return f
}

// AddDirectory appends a subdirectory named fullName.
func (d *Directory) AddDirectory(fullName string) *Directory {
	return d.addDirectoryAt(fullName, filepath.Join(d.path, fullName))
}

// addDirectoryAt appends a subdirectory with an explicit path. The display
// name may contain slashes (see Compact); the extension is taken from its last
// component only.
func (d *Directory) addDirectoryAt(displayName, path string) *Directory {
	prefix := ""
	base := displayName
	if i := strings.LastIndex(displayName, "/"); i >= 0 {
		prefix, base = displayName[:i+1], displayName[i+1:]
	}
	name, ext := SplitName(base)

	sub := &Directory{}
	sub.File = &File{name: prefix + name, ext: ext, path: path, parent: d, dir: sub}
	d.children = append(d.children, sub.File)
	return sub
}

// addFileAt appends a plain file that mirrors src.
func (d *Directory) addFileAt(src *File) *File {
	f := &File{name: src.name, ext: src.ext, path: src.path, parent: d}
	d.children = append(d.children, f)
	return f
}

// SplitName splits a full name into name and extension. Leading-dot names
// (".gitignore") and trailing dots have no extension.
func SplitName(fullName string) (name, ext string) {
	i := strings.LastIndex(fullName, ".")
	if i <= 0 || i == len(fullName)-1 {
		return fullName, ""
	}
	return fullName[:i], fullName[i+1:]
}
