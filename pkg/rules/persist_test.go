package rules_test

import (
	"testing"

	"github.com/arthur-debert/topdrawer/pkg/fstree"
	"github.com/arthur-debert/topdrawer/pkg/fstree/fstreetest"
	"github.com/arthur-debert/topdrawer/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allConditions() []rules.Condition {
	return []rules.Condition{
		rules.Name(rules.Exact("main")),
		rules.Ext(rules.Suffix("proj").WithCaseSensitive(true)),
		rules.FullName(rules.Wildcard("*.xcodeproj")),
		rules.FullName(rules.Prefix("")),
		rules.ParentContains(rules.ContainsItem(rules.Contains("Tests"))),
		rules.ParentDoesntContain(rules.NewContentsMatcher(rules.Ext(rules.Exact("xcworkspace")))),
		rules.HierarchyContains(rules.HasAncestor(rules.Exact("ios"))),
		rules.HierarchyContains(rules.NewHierarchyMatcher(
			rules.ParentContains(rules.NewContentsMatcher(
				rules.HierarchyContains(rules.HasAncestor(rules.Wildcard("*Kit"))),
			)),
		)),
	}
}

func TestStringMatcher_RoundTrip(t *testing.T) {
	for _, m := range []rules.StringMatcher{
		rules.Exact("a"),
		rules.Contains("b").WithCaseSensitive(true),
		rules.Prefix("c"),
		rules.Suffix("d"),
		rules.Wildcard("*.e"),
	} {
		restored, ok := rules.StringMatcherFromPersisted(m.ToPersisted())
		require.True(t, ok, m.Strategy().String())
		assert.True(t, m.Equal(restored), m.Strategy().String())
	}
}

func TestStringMatcherFromPersisted_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   rules.Persisted
	}{
		{"unknown_strategy", rules.Persisted{"Strategy": "Regex", "Pattern": "x"}},
		{"missing_strategy", rules.Persisted{"Pattern": "x"}},
		{"missing_pattern", rules.Persisted{"Strategy": "Exact"}},
		{"pattern_wrong_type", rules.Persisted{"Strategy": "Exact", "Pattern": 42}},
		{"case_flag_wrong_type", rules.Persisted{"Strategy": "Exact", "Pattern": "x", "CaseSensitive": "yes"}},
		{"empty", rules.Persisted{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := rules.StringMatcherFromPersisted(tt.in)
			assert.False(t, ok)
		})
	}
}

func TestStringMatcherFromPersisted_DefaultsToCaseInsensitive(t *testing.T) {
	m, ok := rules.StringMatcherFromPersisted(rules.Persisted{"Strategy": "Exact", "Pattern": "Swift"})
	require.True(t, ok)
	assert.False(t, m.IsCaseSensitive())
	assert.True(t, m.Matches("swift"))
}

func TestCondition_RoundTrip(t *testing.T) {
	for _, c := range allConditions() {
		t.Run(c.DecisionTreeKey(), func(t *testing.T) {
			restored, ok := rules.ConditionFromPersisted(c.ToPersisted())
			require.True(t, ok)
			assert.True(t, c.Equal(restored))
			assert.Equal(t, c.Kind(), restored.Kind())
			assert.Equal(t, c.DecisionTreeKey(), restored.DecisionTreeKey())
		})
	}
}

func TestCondition_PersistedShape(t *testing.T) {
	c := rules.ParentContains(rules.ContainsItem(rules.Contains("Tests")))

	assert.Equal(t, rules.Persisted{
		"Case": "ParentContains",
		"AssociatedValue": rules.Persisted{
			"Condition": rules.Persisted{
				"Case": "FullName",
				"AssociatedValue": rules.Persisted{
					"Strategy":      "Contains",
					"Pattern":       "Tests",
					"CaseSensitive": false,
				},
			},
		},
	}, c.ToPersisted())
}

func TestCondition_RestoredBehavesIdentically(t *testing.T) {
	root := fstreetest.Build("/p", "App/UnitTests/", "App/Sources/", "Lib/Sources/")
	original := rules.ParentContains(rules.ContainsItem(rules.Contains("Tests")))

	restored, ok := rules.ConditionFromPersisted(original.ToPersisted())
	require.True(t, ok)
	require.True(t, original.Equal(restored))

	for _, rel := range []string{"App/Sources", "App/UnitTests", "Lib/Sources"} {
		f := fstreetest.MustFind(root, rel)
		h := fstree.HierarchyOf(f)
		assert.Equal(t, original.Matches(f, h), restored.Matches(f, h), rel)
	}
	f := fstreetest.MustFind(root, "App/Sources")
	assert.True(t, restored.Matches(f, fstree.HierarchyOf(f)))
}

func TestConditionFromPersisted_Malformed(t *testing.T) {
	valid := rules.Exact("x").ToPersisted()

	tests := []struct {
		name string
		in   rules.Persisted
	}{
		{"unknown_case", rules.Persisted{"Case": "Size", "AssociatedValue": valid}},
		{"missing_case", rules.Persisted{"AssociatedValue": valid}},
		{"case_wrong_type", rules.Persisted{"Case": 3, "AssociatedValue": valid}},
		{"missing_value", rules.Persisted{"Case": "Name"}},
		{"value_not_a_map", rules.Persisted{"Case": "Name", "AssociatedValue": "x"}},
		{"bad_string_matcher", rules.Persisted{"Case": "Ext", "AssociatedValue": rules.Persisted{"Strategy": "Nope", "Pattern": "x"}}},
		{"contents_missing_condition", rules.Persisted{"Case": "ParentContains", "AssociatedValue": rules.Persisted{}}},
		{"contents_given_string_matcher", rules.Persisted{"Case": "ParentContains", "AssociatedValue": valid}},
		{"nested_condition_malformed", rules.Persisted{
			"Case": "HierarchyContains",
			"AssociatedValue": rules.Persisted{
				"Condition": rules.Persisted{"Case": "Bogus", "AssociatedValue": valid},
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := rules.ConditionFromPersisted(tt.in)
			assert.False(t, ok)
		})
	}
}

func TestRule_RoundTrip(t *testing.T) {
	rule := rules.NewRule(allConditions()...)

	restored, ok := rules.RuleFromPersisted(rule.ToPersisted())
	require.True(t, ok)
	assert.True(t, rule.Equal(restored))

	empty, ok := rules.RuleFromPersisted(rules.NewRule().ToPersisted())
	require.True(t, ok)
	assert.Equal(t, 0, empty.Len())
}

func TestDecodeRule_DropsMalformedConditions(t *testing.T) {
	persisted := rules.Persisted{
		"Conditions": []any{
			rules.Ext(rules.Exact("swift")).ToPersisted(),
			rules.Persisted{"Case": "Unknown", "AssociatedValue": rules.Exact("x").ToPersisted()},
			"not a condition",
			rules.Name(rules.Prefix("App")).ToPersisted(),
		},
	}

	rule, dropped, ok := rules.DecodeRule(persisted)
	require.True(t, ok)
	assert.Equal(t, 2, dropped)
	assert.True(t, rule.Equal(rules.NewRule(
		rules.Ext(rules.Exact("swift")),
		rules.Name(rules.Prefix("App")),
	)))
}

func TestDecodeRule_AcceptsTypedMapLists(t *testing.T) {
	persisted := rules.Persisted{
		"Conditions": []map[string]any{
			rules.Ext(rules.Exact("swift")).ToPersisted(),
		},
	}

	rule, dropped, ok := rules.DecodeRule(persisted)
	require.True(t, ok)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, 1, rule.Len())
}

func TestDecodeRule_Malformed(t *testing.T) {
	_, _, ok := rules.DecodeRule(rules.Persisted{})
	assert.False(t, ok, "missing conditions")

	_, _, ok = rules.DecodeRule(rules.Persisted{"Conditions": "nope"})
	assert.False(t, ok, "conditions not a list")

	_, _, ok = rules.DecodeRule(rules.Persisted{"Conditions": nil})
	assert.False(t, ok, "null conditions")

	_, _, ok = rules.DecodeRule(rules.Persisted{"Conditions": 7})
	assert.False(t, ok, "scalar conditions")

	rule, _, ok := rules.DecodeRule(rules.Persisted{"Conditions": []any{}})
	require.True(t, ok, "empty list is a valid rule")
	assert.Equal(t, 0, rule.Len())
}

func TestDecode_KeysAreCaseSensitive(t *testing.T) {
	_, ok := rules.ConditionFromPersisted(rules.Persisted{
		"case":            "Name",
		"associatedvalue": rules.Persisted{"strategy": "Exact", "pattern": "x"},
	})
	assert.False(t, ok)

	_, ok = rules.StringMatcherFromPersisted(rules.Persisted{"Strategy": "Exact", "pattern": "x"})
	assert.False(t, ok)

	_, _, ok = rules.DecodeRule(rules.Persisted{"conditions": []any{}})
	assert.False(t, ok)
}
