package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/topdrawer/pkg/errors"
	"github.com/arthur-debert/topdrawer/pkg/fstree"
	"github.com/arthur-debert/topdrawer/pkg/rules"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
)

// NamedRule is a rule as listed to the user
type NamedRule struct {
	Name string
	Rule rules.Rule
}

// Renderer defines the interface for rendering various output types
type Renderer interface {
	RenderRules(rs []NamedRule) string
	// RenderMatches draws root as a tree. matches maps a path to the
	// indices of the rules it satisfies.
	RenderMatches(root *fstree.Directory, matches map[string][]int) string
	RenderSummary(entries, matched int) string
	RenderError(err error) string
	// RenderMessage formats a status message written with markup tags
	RenderMessage(format string, args ...any) string
}

// ConditionAttributes styles condition descriptions, highlighting the
// user-entered values
func ConditionAttributes() rules.Attributes {
	return rules.Attributes{Text: NormalStyle, Value: PatternStyle}
}

func formatIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func entryName(f *fstree.File) string {
	if f.IsDirectory() {
		return f.FullName() + "/"
	}
	return f.FullName()
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderCondition describes a condition with styled values
func (r *TerminalRenderer) RenderCondition(c rules.Condition) string {
	return rules.DescribeStyled(c, ConditionAttributes())
}

// RenderRule describes every condition of a rule
func (r *TerminalRenderer) RenderRule(rule rules.Rule) string {
	conditions := rule.Conditions()
	if len(conditions) == 0 {
		return MutedStyle.Render(rules.DescribeRule(rule))
	}
	parts := make([]string, len(conditions))
	for i, c := range conditions {
		parts[i] = r.RenderCondition(c)
	}
	return strings.Join(parts, MutedStyle.Render(" and "))
}

// RenderRules renders the rule list as a table
func (r *TerminalRenderer) RenderRules(rs []NamedRule) string {
	if len(rs) == 0 {
		return MutedStyle.Render("No rules defined")
	}

	rows := make([][]string, len(rs))
	for i, nr := range rs {
		rows[i] = []string{strconv.Itoa(i), nr.Name, r.RenderRule(nr.Rule)}
	}

	t := table.New().
		Headers("#", "NAME", "CONDITIONS").
		Rows(rows...).
		BorderHeader(true).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		BorderStyle(BranchStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return s.Inherit(SubtitleStyle)
			}
			return s
		})
	return t.String()
}

// RenderMatches draws the tree with matched entries highlighted
func (r *TerminalRenderer) RenderMatches(root *fstree.Directory, matches map[string][]int) string {
	t := tree.New().
		Root(DirectoryStyle.Render(root.Path())).
		EnumeratorStyle(BranchStyle)
	r.addChildren(t, root, matches)
	return t.String()
}

func (r *TerminalRenderer) addChildren(t *tree.Tree, dir *fstree.Directory, matches map[string][]int) {
	for _, child := range dir.Children() {
		label := r.label(child, matches[child.Path()])
		if child.IsDirectory() && len(child.Directory().Children()) > 0 {
			sub := tree.New().Root(label).EnumeratorStyle(BranchStyle)
			r.addChildren(sub, child.Directory(), matches)
			t.Child(sub)
			continue
		}
		t.Child(label)
	}
}

func (r *TerminalRenderer) label(f *fstree.File, matched []int) string {
	var name string
	switch {
	case len(matched) > 0:
		name = MatchStyle.Render(entryName(f))
	case f.IsDirectory():
		name = DirectoryStyle.Render(entryName(f))
	default:
		name = FileStyle.Render(entryName(f))
	}
	if len(matched) == 0 {
		return name
	}
	return name + " " + MutedStyle.Render(formatIndices(matched))
}

// RenderSummary renders the closing line of a scan
func (r *TerminalRenderer) RenderSummary(entries, matched int) string {
	if matched == 0 {
		return fmt.Sprintf("%s No matches among %d entries", WarningIndicator, entries)
	}
	return RenderTemplate("{{ok}} [bold]{{matched}}[/bold] of {{entries}} entries matched", map[string]string{
		"ok":      SuccessIndicator,
		"matched": strconv.Itoa(matched),
		"entries": strconv.Itoa(entries),
	})
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		return fmt.Sprintf("%s Error [%s]: %s", ErrorIndicator, ErrorStyle.Render(string(code)), err.Error())
	}
	return fmt.Sprintf("%s %s", ErrorIndicator, ErrorStyle.Render(err.Error()))
}

// RenderMessage formats the message and styles its markup
func (r *TerminalRenderer) RenderMessage(format string, args ...any) string {
	return Render(fmt.Sprintf(format, args...))
}

// PlainRenderer implements Renderer with plain text output
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderRules lists one rule per line
func (r *PlainRenderer) RenderRules(rs []NamedRule) string {
	if len(rs) == 0 {
		return "No rules defined"
	}
	var result strings.Builder
	for i, nr := range rs {
		if nr.Name != "" {
			fmt.Fprintf(&result, "%d. %s: %s\n", i, nr.Name, rules.DescribeRule(nr.Rule))
		} else {
			fmt.Fprintf(&result, "%d. %s\n", i, rules.DescribeRule(nr.Rule))
		}
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderMatches lists one entry per line, indented by depth
func (r *PlainRenderer) RenderMatches(root *fstree.Directory, matches map[string][]int) string {
	var result strings.Builder
	result.WriteString(root.Path() + "\n")
	var visit func(dir *fstree.Directory, depth int)
	visit = func(dir *fstree.Directory, depth int) {
		for _, child := range dir.Children() {
			result.WriteString(strings.Repeat("  ", depth) + entryName(child))
			if m := matches[child.Path()]; len(m) > 0 {
				result.WriteString(" " + formatIndices(m))
			}
			result.WriteString("\n")
			if child.IsDirectory() {
				visit(child.Directory(), depth+1)
			}
		}
	}
	visit(root, 1)
	return strings.TrimRight(result.String(), "\n")
}

// RenderSummary renders the closing line of a scan
func (r *PlainRenderer) RenderSummary(entries, matched int) string {
	return fmt.Sprintf("%d of %d entries matched", matched, entries)
}

// RenderError renders an error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}

// RenderMessage formats the message without its markup tags
func (r *PlainRenderer) RenderMessage(format string, args ...any) string {
	return Strip(fmt.Sprintf(format, args...))
}
