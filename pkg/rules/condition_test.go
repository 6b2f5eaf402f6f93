package rules_test

import (
	"testing"

	"github.com/arthur-debert/topdrawer/pkg/fstree"
	"github.com/arthur-debert/topdrawer/pkg/fstree/fstreetest"
	"github.com/arthur-debert/topdrawer/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *fstree.Directory {
	return fstreetest.Build("/projects",
		"ios/App/App.xcodeproj/",
		"ios/App/Sources/main.swift",
		"ios/App/UnitTests/AppTests.swift",
		"ios/Legacy/Legacy.xcworkspace/",
		"ios/Legacy/main.m",
		"empty/",
		"top.txt",
	)
}

func matches(c rules.Condition, f *fstree.File) bool {
	return c.Matches(f, fstree.HierarchyOf(f))
}

func TestCondition_StringKinds(t *testing.T) {
	root := sampleTree()
	proj := fstreetest.MustFind(root, "ios/App/App.xcodeproj")
	main := fstreetest.MustFind(root, "ios/App/Sources/main.swift")

	assert.True(t, matches(rules.Name(rules.Exact("App")), proj))
	assert.False(t, matches(rules.Name(rules.Exact("App.xcodeproj")), proj))
	assert.True(t, matches(rules.Ext(rules.Exact("xcodeproj")), proj))
	assert.True(t, matches(rules.FullName(rules.Wildcard("*.xcodeproj")), proj))
	assert.False(t, matches(rules.FullName(rules.Wildcard("*.xcodeproj")), main))
	assert.True(t, matches(rules.Ext(rules.Exact("swift")), main))
}

func TestCondition_ParentContains(t *testing.T) {
	root := sampleTree()
	sources := fstreetest.MustFind(root, "ios/App/Sources")
	legacyMain := fstreetest.MustFind(root, "ios/Legacy/main.m")

	hasTests := rules.ParentContains(rules.ContainsItem(rules.Contains("Tests")))
	assert.True(t, matches(hasTests, sources), "Sources sits next to UnitTests")
	assert.False(t, matches(hasTests, legacyMain))

	noTests := rules.ParentDoesntContain(rules.ContainsItem(rules.Contains("Tests")))
	assert.False(t, matches(noTests, sources))
	assert.True(t, matches(noTests, legacyMain))

	t.Run("file_counts_as_its_own_sibling", func(t *testing.T) {
		c := rules.ParentContains(rules.ContainsItem(rules.Exact("main.m")))
		assert.True(t, matches(c, legacyMain))
	})

	t.Run("root_has_no_parent", func(t *testing.T) {
		assert.False(t, matches(hasTests, root.File))
		assert.False(t, matches(noTests, root.File))
	})

	t.Run("nested_conditions_see_sibling_hierarchy", func(t *testing.T) {
		// Parent contains an item that itself sits under a folder named "ios".
		c := rules.ParentContains(rules.NewContentsMatcher(
			rules.HierarchyContains(rules.HasAncestor(rules.Exact("ios"))),
		))
		assert.True(t, matches(c, legacyMain))
		assert.False(t, matches(c, fstreetest.MustFind(root, "top.txt")))
	})
}

func TestContentsMatcher_Matches(t *testing.T) {
	root := sampleTree()
	m := rules.ContainsItem(rules.Contains("Tests"))

	assert.True(t, m.Matches(fstreetest.MustFind(root, "ios/App").Directory()))
	assert.False(t, m.Matches(fstreetest.MustFind(root, "empty").Directory()), "empty directory never matches")
	assert.False(t, rules.ContainsItem(rules.Contains("")).Matches(fstreetest.MustFind(root, "empty").Directory()))
}

func TestCondition_HierarchyContains(t *testing.T) {
	root := sampleTree()
	main := fstreetest.MustFind(root, "ios/App/Sources/main.swift")

	underIOS := rules.HierarchyContains(rules.HasAncestor(rules.Exact("ios")))
	assert.True(t, matches(underIOS, main))
	assert.False(t, matches(underIOS, fstreetest.MustFind(root, "top.txt")))
	assert.False(t, matches(underIOS, root.File))

	t.Run("ancestor_evaluated_with_its_own_hierarchy", func(t *testing.T) {
		// Some ancestor's parent contains a project file: true for Sources (in App).
		c := rules.HierarchyContains(rules.NewHierarchyMatcher(
			rules.ParentContains(rules.ContainsItem(rules.Wildcard("*.xcodeproj"))),
		))
		assert.True(t, matches(c, main))
		assert.False(t, matches(c, fstreetest.MustFind(root, "ios/Legacy/main.m")))
	})

	t.Run("empty_hierarchy_never_matches", func(t *testing.T) {
		m := rules.HasAncestor(rules.Contains(""))
		assert.False(t, m.Matches(nil))
		assert.True(t, m.Matches(fstree.HierarchyOf(main)))
	})
}

func TestCondition_CostRank(t *testing.T) {
	sm := rules.Exact("x")
	cm := rules.ContainsItem(sm)
	hm := rules.HasAncestor(sm)

	assert.Equal(t, 0, rules.FullName(sm).CostRank())
	assert.Equal(t, 1, rules.Name(sm).CostRank())
	assert.Equal(t, 2, rules.Ext(sm).CostRank())
	assert.Equal(t, 3, rules.HierarchyContains(hm).CostRank())
	assert.Equal(t, 4, rules.ParentContains(cm).CostRank())
	assert.Equal(t, 5, rules.ParentDoesntContain(cm).CostRank())
	assert.Greater(t, rules.Condition{}.CostRank(), 5)
}

func TestCondition_Equal(t *testing.T) {
	a := rules.ParentContains(rules.ContainsItem(rules.Contains("Tests")))
	b := rules.ParentContains(rules.ContainsItem(rules.Contains("Tests")))
	c := rules.ParentDoesntContain(rules.ContainsItem(rules.Contains("Tests")))
	d := rules.ParentContains(rules.NewContentsMatcher(rules.Name(rules.Contains("Tests"))))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "different kind")
	assert.False(t, a.Equal(d), "different nested kind")

	h1 := rules.HierarchyContains(rules.HasAncestor(rules.Exact("ios")))
	h2 := rules.HierarchyContains(rules.HasAncestor(rules.Exact("ios")))
	assert.True(t, h1.Equal(h2))
	assert.False(t, h1.Equal(rules.HierarchyContains(rules.HasAncestor(rules.Exact("android")))))

	assert.False(t, rules.Name(rules.Exact("x")).Equal(rules.Ext(rules.Exact("x"))))
}

func TestCondition_DecisionTreeKey(t *testing.T) {
	conditions := []rules.Condition{
		rules.Name(rules.Exact("x")),
		rules.Ext(rules.Exact("x")),
		rules.FullName(rules.Exact("x")),
		rules.FullName(rules.Contains("x")),
		rules.FullName(rules.Exact("x").WithCaseSensitive(true)),
		rules.ParentContains(rules.ContainsItem(rules.Exact("x"))),
		rules.ParentDoesntContain(rules.ContainsItem(rules.Exact("x"))),
		rules.ParentContains(rules.NewContentsMatcher(rules.Ext(rules.Exact("x")))),
		rules.HierarchyContains(rules.HasAncestor(rules.Exact("x"))),
	}

	keys := make(map[string]int)
	for i, c := range conditions {
		require.NotContains(t, keys, c.DecisionTreeKey(), "key of %d collides with %d", i, keys[c.DecisionTreeKey()])
		keys[c.DecisionTreeKey()] = i
		assert.Equal(t, "x", c.InputString())
	}

	again := rules.ParentContains(rules.ContainsItem(rules.Exact("x")))
	assert.Equal(t, conditions[5].DecisionTreeKey(), again.DecisionTreeKey())
}

func TestCondition_ZeroValue(t *testing.T) {
	var c rules.Condition
	root := sampleTree()

	assert.False(t, c.IsValid())
	assert.False(t, matches(c, fstreetest.MustFind(root, "top.txt")))
	assert.True(t, rules.Name(rules.Exact("a")).IsValid())
}
