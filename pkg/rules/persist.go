package rules

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Persisted is the generic keyed-values form of a matcher, condition or rule.
// Values are strings, booleans, nested Persisted maps and []any lists, so
// the form can be written by any TOML, YAML or JSON encoder.
type Persisted = map[string]any

// Keys of the persisted form
const (
	KeyCase            = "Case"
	KeyAssociatedValue = "AssociatedValue"
	KeyConditions      = "Conditions"
	KeyCondition       = "Condition"
	KeyStrategy        = "Strategy"
	KeyPattern         = "Pattern"
	KeyCaseSensitive   = "CaseSensitive"
)

type persistedStringMatcher struct {
	Strategy      string  `mapstructure:"Strategy"`
	Pattern       *string `mapstructure:"Pattern"`
	CaseSensitive bool    `mapstructure:"CaseSensitive"`
}

type persistedCondition struct {
	Case            string `mapstructure:"Case"`
	AssociatedValue any    `mapstructure:"AssociatedValue"`
}

type persistedNested struct {
	Condition any `mapstructure:"Condition"`
}

type persistedRule struct {
	Conditions []any `mapstructure:"Conditions"`
}

// decode validates input against the shape of out. Type mismatches fail;
// missing keys leave zero values for the caller to check. Key names must
// match exactly.
func decode(input any, out any) bool {
	if _, ok := input.(map[string]any); !ok {
		return false
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:    out,
		TagName:   "mapstructure",
		MatchName: func(key, field string) bool { return key == field },
	})
	if err != nil {
		return false
	}
	return dec.Decode(input) == nil
}

// ToPersisted returns the persisted form of the matcher
func (m StringMatcher) ToPersisted() Persisted {
	return Persisted{
		KeyStrategy:      m.strategy.String(),
		KeyPattern:       m.pattern,
		KeyCaseSensitive: m.caseSensitive,
	}
}

// StringMatcherFromPersisted restores a matcher. It fails when the strategy is
// unknown or the pattern is missing. A missing case flag means case
// insensitive.
func StringMatcherFromPersisted(p Persisted) (StringMatcher, bool) {
	return decodeStringMatcher(p)
}

func decodeStringMatcher(v any) (StringMatcher, bool) {
	var raw persistedStringMatcher
	if !decode(v, &raw) {
		return StringMatcher{}, false
	}
	strategy, ok := ParseStrategy(raw.Strategy)
	if !ok || raw.Pattern == nil {
		return StringMatcher{}, false
	}
	return NewStringMatcher(strategy, *raw.Pattern, raw.CaseSensitive), true
}

// ToPersisted returns the persisted form of the matcher
func (m ContentsMatcher) ToPersisted() Persisted {
	return Persisted{KeyCondition: m.condition.ToPersisted()}
}

// ContentsMatcherFromPersisted restores a matcher and its nested condition
func ContentsMatcherFromPersisted(p Persisted) (ContentsMatcher, bool) {
	c, ok := decodeNested(p)
	if !ok {
		return ContentsMatcher{}, false
	}
	return NewContentsMatcher(c), true
}

// ToPersisted returns the persisted form of the matcher
func (m HierarchyMatcher) ToPersisted() Persisted {
	return Persisted{KeyCondition: m.condition.ToPersisted()}
}

// HierarchyMatcherFromPersisted restores a matcher and its nested condition
func HierarchyMatcherFromPersisted(p Persisted) (HierarchyMatcher, bool) {
	c, ok := decodeNested(p)
	if !ok {
		return HierarchyMatcher{}, false
	}
	return NewHierarchyMatcher(c), true
}

func decodeNested(v any) (Condition, bool) {
	var raw persistedNested
	if !decode(v, &raw) || raw.Condition == nil {
		return Condition{}, false
	}
	return decodeCondition(raw.Condition)
}

// ToPersisted returns the persisted form of the condition
func (c Condition) ToPersisted() Persisted {
	p := Persisted{KeyCase: c.kind.String()}

	switch c.kind {
	case KindName, KindExt, KindFullName:
		p[KeyAssociatedValue] = c.str.ToPersisted()
	case KindParentContains, KindParentDoesntContain:
		if c.contents != nil {
			p[KeyAssociatedValue] = c.contents.ToPersisted()
		}
	case KindHierarchyContains:
		if c.hierarchy != nil {
			p[KeyAssociatedValue] = c.hierarchy.ToPersisted()
		}
	}
	return p
}

// ConditionFromPersisted restores a condition. It fails for an unknown case
// or an associated value that does not decode.
func ConditionFromPersisted(p Persisted) (Condition, bool) {
	return decodeCondition(p)
}

func decodeCondition(v any) (Condition, bool) {
	var raw persistedCondition
	if !decode(v, &raw) {
		return Condition{}, false
	}
	kind, ok := ParseKind(raw.Case)
	if !ok || raw.AssociatedValue == nil {
		return Condition{}, false
	}

	switch kind {
	case KindName, KindExt, KindFullName:
		m, ok := decodeStringMatcher(raw.AssociatedValue)
		if !ok {
			return Condition{}, false
		}
		return Condition{kind: kind, str: m}, true
	case KindParentContains, KindParentDoesntContain:
		nested, ok := decodeNested(raw.AssociatedValue)
		if !ok {
			return Condition{}, false
		}
		m := NewContentsMatcher(nested)
		return Condition{kind: kind, contents: &m}, true
	case KindHierarchyContains:
		nested, ok := decodeNested(raw.AssociatedValue)
		if !ok {
			return Condition{}, false
		}
		return HierarchyContains(NewHierarchyMatcher(nested)), true
	default:
		return Condition{}, false
	}
}

// ToPersisted returns the persisted form of the rule, conditions in authored
// order
func (r Rule) ToPersisted() Persisted {
	conditions := make([]any, 0, len(r.conditions))
	for _, c := range r.conditions {
		conditions = append(conditions, c.ToPersisted())
	}
	return Persisted{KeyConditions: conditions}
}

// RuleFromPersisted restores a rule. See DecodeRule.
func RuleFromPersisted(p Persisted) (Rule, bool) {
	r, _, ok := DecodeRule(p)
	return r, ok
}

// DecodeRule restores a rule and reports how many conditions were dropped.
// The rule fails only when the conditions list is missing, null or not a list;
// conditions that fail to decode are skipped, so the restored rule may have
// fewer conditions than the persisted one.
func DecodeRule(p Persisted) (rule Rule, dropped int, ok bool) {
	// null or scalar conditions would otherwise decode to an empty rule
	if v, present := p[KeyConditions]; !present || reflect.ValueOf(v).Kind() != reflect.Slice {
		return Rule{}, 0, false
	}
	var raw persistedRule
	if !decode(p, &raw) {
		return Rule{}, 0, false
	}

	conditions := make([]Condition, 0, len(raw.Conditions))
	for _, v := range raw.Conditions {
		c, ok := decodeCondition(v)
		if !ok {
			dropped++
			continue
		}
		conditions = append(conditions, c)
	}
	return Rule{conditions: conditions}, dropped, true
}
