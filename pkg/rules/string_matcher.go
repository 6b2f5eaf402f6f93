package rules

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Strategy selects how a StringMatcher compares its pattern
type Strategy int

const (
	StrategyExact Strategy = iota + 1
	StrategyContains
	StrategyPrefix
	StrategySuffix
	StrategyWildcard
)

var strategyNames = map[Strategy]string{
	StrategyExact:    "Exact",
	StrategyContains: "Contains",
	StrategyPrefix:   "Prefix",
	StrategySuffix:   "Suffix",
	StrategyWildcard: "Wildcard",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy returns the strategy with the given persisted name
func ParseStrategy(name string) (Strategy, bool) {
	for s, n := range strategyNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// StringMatcher is an immutable string predicate. The zero value matches
// nothing.
type StringMatcher struct {
	strategy      Strategy
	pattern       string
	caseSensitive bool

	folded string    // pattern compared against, lower-cased unless case sensitive
	glob   glob.Glob // compiled pattern for StrategyWildcard
}

// NewStringMatcher builds a matcher. Only '*' is special in wildcard
// patterns; it matches any run of characters, including none.
func NewStringMatcher(strategy Strategy, pattern string, caseSensitive bool) StringMatcher {
	m := StringMatcher{
		strategy:      strategy,
		pattern:       pattern,
		caseSensitive: caseSensitive,
		folded:        pattern,
	}
	if !caseSensitive {
		m.folded = strings.ToLower(pattern)
	}
	if strategy == StrategyWildcard {
		m.glob = compileWildcard(m.folded)
	}
	return m
}

// Exact matches strings equal to pattern, ignoring case
func Exact(pattern string) StringMatcher {
	return NewStringMatcher(StrategyExact, pattern, false)
}

// Contains matches strings containing pattern, ignoring case
func Contains(pattern string) StringMatcher {
	return NewStringMatcher(StrategyContains, pattern, false)
}

// Prefix matches strings beginning with pattern, ignoring case
func Prefix(pattern string) StringMatcher {
	return NewStringMatcher(StrategyPrefix, pattern, false)
}

// Suffix matches strings ending with pattern, ignoring case
func Suffix(pattern string) StringMatcher {
	return NewStringMatcher(StrategySuffix, pattern, false)
}

// Wildcard matches strings against a '*' glob, ignoring case
func Wildcard(pattern string) StringMatcher {
	return NewStringMatcher(StrategyWildcard, pattern, false)
}

// WithCaseSensitive returns a copy of the matcher with the given case mode
func (m StringMatcher) WithCaseSensitive(caseSensitive bool) StringMatcher {
	return NewStringMatcher(m.strategy, m.pattern, caseSensitive)
}

func (m StringMatcher) Strategy() Strategy    { return m.strategy }
func (m StringMatcher) IsCaseSensitive() bool { return m.caseSensitive }

// InputString returns the literal pattern, whatever the strategy
func (m StringMatcher) InputString() string { return m.pattern }

// Matches reports whether s satisfies the matcher. It never fails.
func (m StringMatcher) Matches(s string) bool {
	if !m.caseSensitive {
		s = strings.ToLower(s)
	}

	switch m.strategy {
	case StrategyExact:
		return s == m.folded
	case StrategyContains:
		return strings.Contains(s, m.folded)
	case StrategyPrefix:
		return strings.HasPrefix(s, m.folded)
	case StrategySuffix:
		return strings.HasSuffix(s, m.folded)
	case StrategyWildcard:
		return m.glob != nil && m.glob.Match(s)
	default:
		return false
	}
}

// Equal reports whether both matchers have the same strategy, pattern and
// case mode.
func (m StringMatcher) Equal(o StringMatcher) bool {
	return m.strategy == o.strategy &&
		m.pattern == o.pattern &&
		m.caseSensitive == o.caseSensitive
}

func (m StringMatcher) key() string {
	return fmt.Sprintf("%s/%t/%q", m.strategy, m.caseSensitive, m.pattern)
}

// compileWildcard quotes every glob metacharacter except '*'. The result
// always compiles; a nil glob would only come from a bug in the quoting.
func compileWildcard(pattern string) glob.Glob {
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = glob.QuoteMeta(p)
	}
	g, err := glob.Compile(strings.Join(parts, "*"))
	if err != nil {
		return nil
	}
	return g
}
