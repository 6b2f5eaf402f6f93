package rules

import (
	"fmt"
	"math"

	"github.com/arthur-debert/topdrawer/pkg/fstree"
)

// Kind tags the variant of a Condition
type Kind int

const (
	KindName Kind = iota + 1
	KindExt
	KindFullName
	KindParentContains
	KindParentDoesntContain
	KindHierarchyContains
)

var kindTags = map[Kind]string{
	KindName:                "Name",
	KindExt:                 "Ext",
	KindFullName:            "FullName",
	KindParentContains:      "ParentContains",
	KindParentDoesntContain: "ParentDoesntContain",
	KindHierarchyContains:   "HierarchyContains",
}

// String returns the persisted tag of the kind
func (k Kind) String() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the kind with the given persisted tag
func ParseKind(tag string) (Kind, bool) {
	for k, t := range kindTags {
		if t == tag {
			return k, true
		}
	}
	return 0, false
}

// Condition is a single predicate over a file and its hierarchy. Build one
// with Name, Ext, FullName, ParentContains, ParentDoesntContain or
// HierarchyContains; the zero value matches nothing.
type Condition struct {
	kind      Kind
	str       StringMatcher
	contents  *ContentsMatcher
	hierarchy *HierarchyMatcher
}

// Name tests the file name without extension
func Name(m StringMatcher) Condition { return Condition{kind: KindName, str: m} }

// Ext tests the file extension
func Ext(m StringMatcher) Condition { return Condition{kind: KindExt, str: m} }

// FullName tests the file name with extension
func FullName(m StringMatcher) Condition { return Condition{kind: KindFullName, str: m} }

// ParentContains holds when the parent directory has a matching child
func ParentContains(m ContentsMatcher) Condition {
	return Condition{kind: KindParentContains, contents: &m}
}

// ParentDoesntContain holds when the parent directory has no matching child
func ParentDoesntContain(m ContentsMatcher) Condition {
	return Condition{kind: KindParentDoesntContain, contents: &m}
}

// HierarchyContains holds when some ancestor matches
func HierarchyContains(m HierarchyMatcher) Condition {
	return Condition{kind: KindHierarchyContains, hierarchy: &m}
}

func (c Condition) Kind() Kind { return c.kind }

// IsValid reports whether the condition was built by one of the constructors
func (c Condition) IsValid() bool {
	switch c.kind {
	case KindName, KindExt, KindFullName:
		return true
	case KindParentContains, KindParentDoesntContain:
		return c.contents != nil
	case KindHierarchyContains:
		return c.hierarchy != nil
	default:
		return false
	}
}

// StringMatcher returns the wrapped matcher of Name, Ext and FullName
func (c Condition) StringMatcher() (StringMatcher, bool) {
	switch c.kind {
	case KindName, KindExt, KindFullName:
		return c.str, true
	default:
		return StringMatcher{}, false
	}
}

// ContentsMatcher returns the wrapped matcher of ParentContains and
// ParentDoesntContain
func (c Condition) ContentsMatcher() (ContentsMatcher, bool) {
	if c.contents == nil {
		return ContentsMatcher{}, false
	}
	return *c.contents, true
}

// HierarchyMatcher returns the wrapped matcher of HierarchyContains
func (c Condition) HierarchyMatcher() (HierarchyMatcher, bool) {
	if c.hierarchy == nil {
		return HierarchyMatcher{}, false
	}
	return *c.hierarchy, true
}

// Matches evaluates the condition against f, whose ancestors are h. It reads
// only f and h and never fails.
func (c Condition) Matches(f *fstree.File, h fstree.Hierarchy) bool {
	switch c.kind {
	case KindName:
		return c.str.Matches(f.Name())
	case KindExt:
		return c.str.Matches(f.Ext())
	case KindFullName:
		return c.str.Matches(f.FullName())
	case KindParentContains:
		parent := f.Parent()
		if parent == nil || c.contents == nil {
			return false
		}
		return c.contents.matchesIn(parent, h)
	case KindParentDoesntContain:
		parent := f.Parent()
		if parent == nil || c.contents == nil {
			return false
		}
		return !c.contents.matchesIn(parent, h)
	case KindHierarchyContains:
		if c.hierarchy == nil {
			return false
		}
		return c.hierarchy.Matches(h)
	default:
		return false
	}
}

// CostRank orders conditions for evaluation, cheapest first. It has no
// effect on matching.
func (c Condition) CostRank() int {
	switch c.kind {
	case KindFullName:
		return 0
	case KindName:
		return 1
	case KindExt:
		return 2
	case KindHierarchyContains:
		return 3
	case KindParentContains:
		return 4
	case KindParentDoesntContain:
		return 5
	default:
		return math.MaxInt
	}
}

// InputString returns the literal pattern at the core of the condition
func (c Condition) InputString() string {
	switch c.kind {
	case KindName, KindExt, KindFullName:
		return c.str.InputString()
	case KindParentContains, KindParentDoesntContain:
		if c.contents == nil {
			return ""
		}
		return c.contents.InputString()
	case KindHierarchyContains:
		if c.hierarchy == nil {
			return ""
		}
		return c.hierarchy.InputString()
	default:
		return ""
	}
}

// DecisionTreeKey identifies structurally identical conditions. Two
// conditions have the same key iff they are Equal.
func (c Condition) DecisionTreeKey() string {
	switch c.kind {
	case KindName, KindExt, KindFullName:
		return c.kind.String() + "(" + c.str.key() + ")"
	case KindParentContains, KindParentDoesntContain:
		if c.contents == nil {
			return c.kind.String() + "()"
		}
		return c.kind.String() + "(" + c.contents.key() + ")"
	case KindHierarchyContains:
		if c.hierarchy == nil {
			return c.kind.String() + "()"
		}
		return c.kind.String() + "(" + c.hierarchy.key() + ")"
	default:
		return c.kind.String()
	}
}

// Equal reports whether both conditions are the same kind with equal
// matchers.
func (c Condition) Equal(o Condition) bool {
	if c.kind != o.kind {
		return false
	}

	switch c.kind {
	case KindName, KindExt, KindFullName:
		return c.str.Equal(o.str)
	case KindParentContains, KindParentDoesntContain:
		if c.contents == nil || o.contents == nil {
			return c.contents == o.contents
		}
		return c.contents.Equal(*o.contents)
	case KindHierarchyContains:
		if c.hierarchy == nil || o.hierarchy == nil {
			return c.hierarchy == o.hierarchy
		}
		return c.hierarchy.Equal(*o.hierarchy)
	default:
		return true
	}
}

func (c Condition) String() string { return Describe(c) }
