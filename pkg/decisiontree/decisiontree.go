// Package decisiontree evaluates many conjunctions of predicates against the
// same input while evaluating each distinct predicate at most once.
//
// Every path (a conjunction) is sorted by ascending cost rank and inserted
// into a prefix tree keyed by the elements' decision tree keys, so paths that
// start with the same predicates share nodes. Evaluation walks the tree from
// the root and prunes a whole subtree as soon as its predicate is false.
// Predicates that appear at several places in the tree are memoized for the
// duration of one evaluation.
//
// A Tree is immutable once built and may be evaluated from many goroutines
// at once. It keeps no reference to the caller's paths: when they change the
// tree must be rebuilt.
package decisiontree

import (
	"fmt"
	"sort"
	"strings"
)

// Element is a predicate that can be placed in a tree. Elements with the same
// key must be interchangeable: evaluating either gives the same result.
type Element interface {
	DecisionTreeKey() string
	CostRank() int
}

// Tree is a merged evaluation structure over a set of paths.
type Tree[E Element] struct {
	root     *node
	elements []E
	paths    int
	nodes    int
}

type node struct {
	element  int // index into Tree.elements, -1 for the root
	children []*node
	index    map[int]*node
	leaves   []int // paths that end at this node
}

func newNode(element int) *node {
	return &node{element: element, index: make(map[int]*node)}
}

// Build creates a tree from paths. The result of Evaluate refers to paths by
// their index in this slice. An empty path is satisfied by every input.
func Build[E Element](paths [][]E) *Tree[E] {
	t := &Tree[E]{root: newNode(-1), paths: len(paths)}
	ids := make(map[string]int)

	for i, path := range paths {
		sorted := append([]E(nil), path...)
		sort.SliceStable(sorted, func(a, b int) bool {
			return sorted[a].CostRank() < sorted[b].CostRank()
		})

		cur := t.root
		for _, e := range sorted {
			key := e.DecisionTreeKey()
			id, ok := ids[key]
			if !ok {
				id = len(t.elements)
				ids[key] = id
				t.elements = append(t.elements, e)
			}

			next, ok := cur.index[id]
			if !ok {
				next = newNode(id)
				cur.index[id] = next
				cur.children = append(cur.children, next)
				t.nodes++
			}
			cur = next
		}
		cur.leaves = append(cur.leaves, i)
	}
	return t
}

// Len returns the number of paths the tree was built from
func (t *Tree[E]) Len() int { return t.paths }

// Nodes returns the number of predicate nodes, excluding the root
func (t *Tree[E]) Nodes() int { return t.nodes }

// Distinct returns the number of distinct predicates
func (t *Tree[E]) Distinct() int { return len(t.elements) }

const (
	unknown int8 = iota
	satisfied
	failed
)

// Evaluate returns, in ascending order, the indices of the paths whose
// predicates all hold according to eval. eval is called at most once per
// distinct predicate, and never for predicates below a failed one.
func (t *Tree[E]) Evaluate(eval func(E) bool) []int {
	memo := make([]int8, len(t.elements))
	test := func(id int) bool {
		switch memo[id] {
		case satisfied:
			return true
		case failed:
			return false
		}
		ok := eval(t.elements[id])
		if ok {
			memo[id] = satisfied
		} else {
			memo[id] = failed
		}
		return ok
	}

	var result []int
	var visit func(n *node)
	visit = func(n *node) {
		result = append(result, n.leaves...)
		for _, child := range n.children {
			if test(child.element) {
				visit(child)
			}
		}
	}
	visit(t.root)

	sort.Ints(result)
	return result
}

// Dump renders the tree one node per line, indented by depth, with the paths
// that end at each node. label formats a predicate.
func (t *Tree[E]) Dump(label func(E) string) string {
	var b strings.Builder
	var visit func(n *node, depth int)
	visit = func(n *node, depth int) {
		for _, child := range n.children {
			fmt.Fprintf(&b, "%s%s", strings.Repeat("  ", depth), label(t.elements[child.element]))
			if len(child.leaves) > 0 {
				fmt.Fprintf(&b, " -> %v", child.leaves)
			}
			b.WriteString("\n")
			visit(child, depth+1)
		}
	}
	if len(t.root.leaves) > 0 {
		fmt.Fprintf(&b, "* -> %v\n", t.root.leaves)
	}
	visit(t.root, 0)
	return b.String()
}
