// Package rules provides the conditions and rules used to classify files of a
// scanned tree.
//
// A Condition is a closed set of predicates over one file:
//
//   - Name, Ext, FullName test one string of the file with a StringMatcher
//   - ParentContains, ParentDoesntContain test the siblings of the file
//     (the children of its parent) with a ContentsMatcher
//   - HierarchyContains tests the ancestors of the file with a
//     HierarchyMatcher
//
// Contents and hierarchy matchers wrap a nested Condition, so predicates
// compose: "the parent contains a folder whose extension is xcodeproj".
//
// A Rule is an ordered conjunction of Conditions. Evaluation stops at the
// first failing condition. An empty Rule includes every file.
//
// # Cost ranks
//
// Every condition kind has a fixed cost rank used only to order evaluation:
//
//	FullName            0
//	Name                1
//	Ext                 2
//	HierarchyContains   3
//	ParentContains      4
//	ParentDoesntContain 5
//
// # Persisted form
//
// Conditions and rules convert to and from generic keyed values
// (map[string]any) so any document format can store them:
//
//	{ "Case": "Ext", "AssociatedValue": { "Strategy": "Exact", "Pattern": "swift" } }
//	{ "Conditions": [ ... ] }
//
// Decoding never fails loudly: a malformed unit decodes as absent. When a rule
// is decoded, conditions that fail to decode are dropped and the rest of the
// rule is kept.
package rules
