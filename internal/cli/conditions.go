package cli

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/topdrawer/pkg/errors"
	"github.com/arthur-debert/topdrawer/pkg/rules"
)

var stringKinds = map[string]func(rules.StringMatcher) rules.Condition{
	"name":     rules.Name,
	"ext":      rules.Ext,
	"fullname": rules.FullName,
}

var nestedKinds = map[string]func(rules.Condition) rules.Condition{
	"parent-contains": func(c rules.Condition) rules.Condition {
		return rules.ParentContains(rules.NewContentsMatcher(c))
	},
	"parent-lacks": func(c rules.Condition) rules.Condition {
		return rules.ParentDoesntContain(rules.NewContentsMatcher(c))
	},
	"hierarchy": func(c rules.Condition) rules.Condition {
		return rules.HierarchyContains(rules.NewHierarchyMatcher(c))
	},
}

// parseCondition reads a condition written KIND:STRATEGY:PATTERN, where a
// nested KIND is followed by another condition
func parseCondition(arg string) (rules.Condition, error) {
	c, err := parseConditionText(arg)
	if err != nil {
		return rules.Condition{}, errors.Newf(errors.ErrInvalidInput, MsgErrCondition, arg, err.Error()).
			WithDetail("condition", arg)
	}
	return c, nil
}

func parseConditionText(text string) (rules.Condition, error) {
	kind, rest, ok := strings.Cut(text, ":")
	if !ok {
		return rules.Condition{}, fmt.Errorf("expected KIND:STRATEGY:PATTERN")
	}
	kind = strings.ToLower(kind)

	if wrap, ok := nestedKinds[kind]; ok {
		inner, err := parseConditionText(rest)
		if err != nil {
			return rules.Condition{}, err
		}
		return wrap(inner), nil
	}

	build, ok := stringKinds[kind]
	if !ok {
		return rules.Condition{}, fmt.Errorf("unknown kind %q", kind)
	}
	m, err := parseStringMatcher(rest)
	if err != nil {
		return rules.Condition{}, err
	}
	return build(m), nil
}

func parseStringMatcher(text string) (rules.StringMatcher, error) {
	name, pattern, ok := strings.Cut(text, ":")
	if !ok {
		return rules.StringMatcher{}, fmt.Errorf("expected STRATEGY:PATTERN")
	}
	caseSensitive := strings.HasSuffix(name, "!")
	name = strings.TrimSuffix(name, "!")

	for _, s := range []rules.Strategy{
		rules.StrategyExact,
		rules.StrategyContains,
		rules.StrategyPrefix,
		rules.StrategySuffix,
		rules.StrategyWildcard,
	} {
		if strings.EqualFold(s.String(), name) {
			return rules.NewStringMatcher(s, pattern, caseSensitive), nil
		}
	}
	return rules.StringMatcher{}, fmt.Errorf("unknown strategy %q", name)
}
