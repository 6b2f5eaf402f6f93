package rules

import (
	"sort"

	"github.com/arthur-debert/topdrawer/pkg/fstree"
)

// Rule is an immutable conjunction of conditions in authored order.
type Rule struct {
	conditions []Condition
}

// NewRule creates a rule from conditions
func NewRule(conditions ...Condition) Rule {
	return Rule{conditions: append([]Condition(nil), conditions...)}
}

// Conditions returns a copy of the conditions in authored order
func (r Rule) Conditions() []Condition {
	return append([]Condition(nil), r.conditions...)
}

// Len returns the number of conditions
func (r Rule) Len() int { return len(r.conditions) }

// Includes reports whether f, with ancestors h, satisfies every condition.
// Evaluation stops at the first condition that does not match.
func (r Rule) Includes(f *fstree.File, h fstree.Hierarchy) bool {
	return r.IncludesFunc(func(c Condition) bool {
		return c.Matches(f, h)
	})
}

// IncludesFunc evaluates the conjunction with a caller supplied evaluator,
// in order, stopping at the first false result.
func (r Rule) IncludesFunc(match func(Condition) bool) bool {
	for _, c := range r.conditions {
		if !match(c) {
			return false
		}
	}
	return true
}

// SortedByCost returns a rule with the same conditions ordered by ascending
// cost rank. Ties keep their authored order.
func (r Rule) SortedByCost() Rule {
	sorted := r.Conditions()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CostRank() < sorted[j].CostRank()
	})
	return Rule{conditions: sorted}
}

// With returns a new rule with c appended
func (r Rule) With(c Condition) Rule {
	return Rule{conditions: append(r.Conditions(), c)}
}

// Without returns a new rule without the condition at index i. An index out
// of range returns the rule unchanged.
func (r Rule) Without(i int) Rule {
	if i < 0 || i >= len(r.conditions) {
		return r
	}
	out := make([]Condition, 0, len(r.conditions)-1)
	out = append(out, r.conditions[:i]...)
	out = append(out, r.conditions[i+1:]...)
	return Rule{conditions: out}
}

// Equal reports whether both rules have equal conditions in the same order
func (r Rule) Equal(o Rule) bool {
	if len(r.conditions) != len(o.conditions) {
		return false
	}
	for i := range r.conditions {
		if !r.conditions[i].Equal(o.conditions[i]) {
			return false
		}
	}
	return true
}

func (r Rule) String() string { return DescribeRule(r) }
