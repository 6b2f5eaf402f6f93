package ruleset_test

import (
	"testing"

	"github.com/arthur-debert/topdrawer/pkg/errors"
	"github.com/arthur-debert/topdrawer/pkg/rules"
	"github.com/arthur-debert/topdrawer/pkg/ruleset"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *ruleset.Document {
	return ruleset.New(
		ruleset.Entry{
			Name: "Standalone projects",
			Rule: rules.NewRule(
				rules.FullName(rules.Wildcard("*.xcodeproj")),
				rules.ParentDoesntContain(rules.NewContentsMatcher(rules.Ext(rules.Exact("xcworkspace")))),
			),
		},
		ruleset.Entry{
			Rule: rules.NewRule(
				rules.Name(rules.Prefix("Read").WithCaseSensitive(true)),
				rules.HierarchyContains(rules.HasAncestor(rules.Contains("docs"))),
			),
		},
		ruleset.Entry{Name: "Everything", Rule: rules.NewRule()},
	)
}

func assertSameRules(t *testing.T, want, got *ruleset.Document) {
	t.Helper()
	require.Len(t, got.Rules, len(want.Rules))
	for i := range want.Rules {
		assert.Equal(t, want.Rules[i].Name, got.Rules[i].Name, "rule %d", i)
		assert.True(t, want.Rules[i].Rule.Equal(got.Rules[i].Rule),
			"rule %d: want %s, got %s", i, want.Rules[i].Rule, got.Rules[i].Rule)
	}
}

func TestSaveLoad(t *testing.T) {
	for _, path := range []string{"/cfg/rules.toml", "/cfg/rules.yaml", "/cfg/rules.yml"} {
		t.Run(path, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			want := sampleDocument()

			require.NoError(t, ruleset.Save(fs, path, want))
			got, err := ruleset.Load(fs, path)
			require.NoError(t, err)

			assert.Equal(t, ruleset.CurrentVersion, got.Version)
			assertSameRules(t, want, got)
		})
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, ruleset.FormatTOML, ruleset.FormatFor("rules.toml"))
	assert.Equal(t, ruleset.FormatTOML, ruleset.FormatFor("rules"))
	assert.Equal(t, ruleset.FormatYAML, ruleset.FormatFor("rules.YAML"))
	assert.Equal(t, ruleset.FormatYAML, ruleset.FormatFor("rules.yml"))
}

func TestParse_TOML(t *testing.T) {
	data := []byte(`
Version = 1

[[Rules]]
Name = "Swift"

[[Rules.Conditions]]
Case = "Ext"

[Rules.Conditions.AssociatedValue]
Strategy = "Exact"
Pattern = "swift"
`)
	doc, err := ruleset.Parse(data, ruleset.FormatTOML)
	require.NoError(t, err)
	require.Len(t, doc.Rules, 1)

	assert.Equal(t, "Swift", doc.Rules[0].Name)
	assert.True(t, doc.Rules[0].Rule.Equal(rules.NewRule(rules.Ext(rules.Exact("swift")))))
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
Rules:
  - Conditions:
      - Case: ParentContains
        AssociatedValue:
          Condition:
            Case: FullName
            AssociatedValue:
              Strategy: Suffix
              Pattern: .git
              CaseSensitive: true
`)
	doc, err := ruleset.Parse(data, ruleset.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Version, "missing version means 1")
	require.Len(t, doc.Rules, 1)
	want := rules.NewRule(rules.ParentContains(rules.NewContentsMatcher(
		rules.FullName(rules.Suffix(".git").WithCaseSensitive(true)),
	)))
	assert.True(t, doc.Rules[0].Rule.Equal(want))
}

func TestParse_NewerVersion(t *testing.T) {
	_, err := ruleset.Parse([]byte("Version = 2\nRules = []\n"), ruleset.FormatTOML)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRulesVersion))
}

func TestParse_Malformed(t *testing.T) {
	_, err := ruleset.Parse([]byte("Version = [\n"), ruleset.FormatTOML)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRulesParse))
}

func TestParse_DropsInvalidUnits(t *testing.T) {
	data := []byte(`
Rules:
  - "not a rule"
  - Name: no conditions
  - Name: partial
    Conditions:
      - Case: Teleport
        AssociatedValue: {}
      - Case: Name
        AssociatedValue:
          Strategy: Exact
          Pattern: main
      - Case: Ext
        AssociatedValue:
          Strategy: Sideways
          Pattern: swift
  - Name: null conditions
    Conditions:
  - Name: scalar conditions
    Conditions: 5
  - Conditions: []
`)
	doc, err := ruleset.Parse(data, ruleset.FormatYAML)
	require.NoError(t, err)
	require.Len(t, doc.Rules, 2)

	assert.Equal(t, "partial", doc.Rules[0].Name)
	assert.True(t, doc.Rules[0].Rule.Equal(rules.NewRule(rules.Name(rules.Exact("main")))))
	assert.Equal(t, 0, doc.Rules[1].Rule.Len())
}

func TestLoad_Missing(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := ruleset.Load(fs, "/nope/rules.toml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	doc, err := ruleset.LoadOrNew(fs, "/nope/rules.toml")
	require.NoError(t, err)
	assert.Equal(t, ruleset.CurrentVersion, doc.Version)
	assert.Empty(t, doc.Rules)
}

func TestLoad_ParseErrorCarriesPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/rules.toml", []byte("Version = 9\n"), 0644))

	_, err := ruleset.Load(fs, "/rules.toml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRulesVersion))
	assert.Equal(t, "/rules.toml", errors.GetErrorDetails(err)["path"])
}

func TestSave_ReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := ruleset.Save(fs, "/cfg/rules.toml", sampleDocument())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRulesSave))
}

func TestDocument_AddRemove(t *testing.T) {
	doc := ruleset.New()
	assert.Equal(t, 0, doc.Add("a", rules.NewRule(rules.Ext(rules.Exact("a")))))
	assert.Equal(t, 1, doc.Add("b", rules.NewRule(rules.Ext(rules.Exact("b")))))
	assert.Equal(t, 2, doc.Add("c", rules.NewRule(rules.Ext(rules.Exact("c")))))

	assert.False(t, doc.Remove(3))
	assert.False(t, doc.Remove(-1))
	assert.True(t, doc.Remove(1))

	require.Len(t, doc.RuleSet(), 2)
	assert.Equal(t, "a", doc.Rules[0].Name)
	assert.Equal(t, "c", doc.Rules[1].Name)
}
