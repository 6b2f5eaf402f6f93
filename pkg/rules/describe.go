package rules

import (
	"strconv"
	"strings"
)

// Renderer styles a run of text. lipgloss.Style satisfies it.
type Renderer interface {
	Render(strs ...string) string
}

// Attributes style the parts of a description. Nil renderers leave text
// unstyled.
type Attributes struct {
	Text  Renderer // fixed wording
	Value Renderer // user supplied patterns
}

type segment struct {
	text  string
	value bool
}

// Describe returns a plain, deterministic, human readable description
func Describe(c Condition) string {
	var b strings.Builder
	for _, s := range describe(c, true) {
		b.WriteString(s.text)
	}
	return b.String()
}

// DescribeStyled returns the description with attrs applied
func DescribeStyled(c Condition, attrs Attributes) string {
	var b strings.Builder
	for _, s := range coalesce(describe(c, true)) {
		r := attrs.Text
		if s.value {
			r = attrs.Value
		}
		if r == nil {
			b.WriteString(s.text)
			continue
		}
		b.WriteString(r.Render(s.text))
	}
	return b.String()
}

// DescribeRule joins the descriptions of the conditions of r
func DescribeRule(r Rule) string {
	if len(r.conditions) == 0 {
		return "Any item"
	}
	parts := make([]string, 0, len(r.conditions))
	for _, c := range r.conditions {
		parts = append(parts, Describe(c))
	}
	return strings.Join(parts, " and ")
}

// coalesce merges adjacent segments of the same kind so each styled run is
// rendered once.
func coalesce(segments []segment) []segment {
	var out []segment
	for _, s := range segments {
		if n := len(out); n > 0 && out[n-1].value == s.value {
			out[n-1].text += s.text
			continue
		}
		out = append(out, s)
	}
	return out
}

func describe(c Condition, capital bool) []segment {
	subject := func(s string) segment {
		if !capital {
			s = strings.ToLower(s[:1]) + s[1:]
		}
		return segment{text: s}
	}

	switch c.kind {
	case KindName:
		return append([]segment{subject("Name ")}, describeString(c.str)...)
	case KindExt:
		return append([]segment{subject("Extension ")}, describeString(c.str)...)
	case KindFullName:
		return append([]segment{subject("Full name ")}, describeString(c.str)...)
	case KindParentContains:
		return append([]segment{subject("Parent folder contains an item whose ")}, describeNested(c.contents)...)
	case KindParentDoesntContain:
		return append([]segment{subject("Parent folder doesn't contain an item whose ")}, describeNested(c.contents)...)
	case KindHierarchyContains:
		var nested []segment
		if c.hierarchy != nil {
			nested = describe(c.hierarchy.condition, false)
		}
		return append([]segment{subject("Hierarchy contains a folder whose ")}, nested...)
	default:
		return []segment{subject("Invalid condition")}
	}
}

func describeNested(m *ContentsMatcher) []segment {
	if m == nil {
		return nil
	}
	return describe(m.condition, false)
}

func describeString(m StringMatcher) []segment {
	var verb string
	switch m.strategy {
	case StrategyExact:
		verb = "is "
	case StrategyContains:
		verb = "contains "
	case StrategyPrefix:
		verb = "begins with "
	case StrategySuffix:
		verb = "ends with "
	case StrategyWildcard:
		verb = "matches "
	default:
		verb = "? "
	}

	out := []segment{{text: verb}, {text: strconv.Quote(m.pattern), value: true}}
	if m.caseSensitive {
		out = append(out, segment{text: " (case sensitive)"})
	}
	return out
}
