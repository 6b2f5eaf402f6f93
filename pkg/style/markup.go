package style

import (
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]text[/tag] spans with the style registered for
// the tag. Text in unknown tags is left as written.
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
	tags     *regexp.Regexp
}

// NewMarkupParser creates a new markup parser with default styles
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		styles:   map[string]lipgloss.Style{},
		patterns: map[string]*regexp.Regexp{},
	}
	for tag, style := range map[string]lipgloss.Style{
		"title":     TitleStyle,
		"success":   SuccessStyle,
		"error":     ErrorStyle,
		"warning":   WarningStyle,
		"code":      CodeStyle,
		"muted":     MutedStyle,
		"bold":      lipgloss.NewStyle().Bold(true),
		"directory": DirectoryStyle,
		"file":      FileStyle,
		"match":     MatchStyle,
		"pattern":   PatternStyle,
	} {
		p.AddStyle(tag, style)
	}
	return p
}

// AddStyle registers or replaces the style of a tag
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	quoted := regexp.QuoteMeta(tag)
	p.styles[tag] = style
	p.patterns[tag] = regexp.MustCompile(`\[` + quoted + `\](.*?)\[/` + quoted + `\]`)

	names := make([]string, 0, len(p.styles))
	for name := range p.styles {
		names = append(names, regexp.QuoteMeta(name))
	}
	sort.Strings(names)
	p.tags = regexp.MustCompile(`\[/?(?:` + strings.Join(names, "|") + `)\]`)
}

// Render styles every tagged span. Nested spans are styled until no known
// tag is left.
func (p *MarkupParser) Render(text string) string {
	for {
		before := text
		for tag, pattern := range p.patterns {
			style, pattern := p.styles[tag], pattern
			text = pattern.ReplaceAllStringFunc(text, func(span string) string {
				return style.Render(pattern.FindStringSubmatch(span)[1])
			})
		}
		if text == before {
			return text
		}
	}
}

// Strip removes known tags and keeps their content
func (p *MarkupParser) Strip(text string) string {
	return p.tags.ReplaceAllString(text, "")
}

// RenderTemplate substitutes {{name}} placeholders, then renders markup
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return p.Render(result)
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip is a convenience function using the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}

// RenderTemplate is a convenience function using the default parser
func RenderTemplate(template string, vars map[string]string) string {
	return defaultParser.RenderTemplate(template, vars)
}
