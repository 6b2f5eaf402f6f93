package rules

import "github.com/arthur-debert/topdrawer/pkg/fstree"

// ContentsMatcher matches a directory when at least one of its direct
// children satisfies the nested condition.
type ContentsMatcher struct {
	condition Condition
}

// NewContentsMatcher wraps c
func NewContentsMatcher(c Condition) ContentsMatcher {
	return ContentsMatcher{condition: c}
}

// ContainsItem matches a directory with a child whose full name matches m
func ContainsItem(m StringMatcher) ContentsMatcher {
	return NewContentsMatcher(FullName(m))
}

// Condition returns the nested condition
func (m ContentsMatcher) Condition() Condition { return m.condition }

// Matches reports whether some child of dir satisfies the nested condition.
// An empty directory never matches.
func (m ContentsMatcher) Matches(dir *fstree.Directory) bool {
	return m.matchesIn(dir, fstree.Within(dir, fstree.HierarchyOf(dir.File)))
}

// matchesIn is Matches with the hierarchy shared by the children of dir
// already known.
func (m ContentsMatcher) matchesIn(dir *fstree.Directory, within fstree.Hierarchy) bool {
	for _, child := range dir.Children() {
		if m.condition.Matches(child, within) {
			return true
		}
	}
	return false
}

func (m ContentsMatcher) InputString() string { return m.condition.InputString() }

func (m ContentsMatcher) Equal(o ContentsMatcher) bool { return m.condition.Equal(o.condition) }

func (m ContentsMatcher) key() string { return m.condition.DecisionTreeKey() }

// HierarchyMatcher matches a hierarchy when at least one ancestor satisfies
// the nested condition.
type HierarchyMatcher struct {
	condition Condition
}

// NewHierarchyMatcher wraps c
func NewHierarchyMatcher(c Condition) HierarchyMatcher {
	return HierarchyMatcher{condition: c}
}

// HasAncestor matches a hierarchy with an ancestor whose full name matches m
func HasAncestor(m StringMatcher) HierarchyMatcher {
	return NewHierarchyMatcher(FullName(m))
}

// Condition returns the nested condition
func (m HierarchyMatcher) Condition() Condition { return m.condition }

// Matches reports whether some ancestor in h satisfies the nested condition.
// Each ancestor is evaluated with its own hierarchy, the part of h above it.
// An empty hierarchy never matches.
func (m HierarchyMatcher) Matches(h fstree.Hierarchy) bool {
	for i, dir := range h {
		if m.condition.Matches(dir.File, h[i+1:]) {
			return true
		}
	}
	return false
}

func (m HierarchyMatcher) InputString() string { return m.condition.InputString() }

func (m HierarchyMatcher) Equal(o HierarchyMatcher) bool { return m.condition.Equal(o.condition) }

func (m HierarchyMatcher) key() string { return m.condition.DecisionTreeKey() }
