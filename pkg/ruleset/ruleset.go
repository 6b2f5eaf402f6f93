package ruleset

import (
	"github.com/arthur-debert/topdrawer/pkg/rules"
)

// CurrentVersion is the newest document version this package reads and the
// one it writes
const CurrentVersion = 1

// Keys of the document
const (
	KeyVersion = "Version"
	KeyRules   = "Rules"
	KeyName    = "Name"
)

// Entry is a rule with its display name
type Entry struct {
	Name string
	Rule rules.Rule
}

// Document is an ordered list of rules. Rule indices reported by a
// classifier refer to positions in Rules.
type Document struct {
	Version int
	Rules   []Entry
}

// New returns an empty document at the current version
func New(entries ...Entry) *Document {
	return &Document{Version: CurrentVersion, Rules: entries}
}

// RuleSet returns the rules in document order
func (d *Document) RuleSet() []rules.Rule {
	out := make([]rules.Rule, len(d.Rules))
	for i, e := range d.Rules {
		out[i] = e.Rule
	}
	return out
}

// Add appends a rule and returns its index
func (d *Document) Add(name string, r rules.Rule) int {
	d.Rules = append(d.Rules, Entry{Name: name, Rule: r})
	return len(d.Rules) - 1
}

// Remove deletes the rule at index i. It reports false when i is out of
// range.
func (d *Document) Remove(i int) bool {
	if i < 0 || i >= len(d.Rules) {
		return false
	}
	d.Rules = append(d.Rules[:i:i], d.Rules[i+1:]...)
	return true
}

// ToPersisted returns the generic keyed-values form of the document
func (d *Document) ToPersisted() rules.Persisted {
	entries := make([]any, 0, len(d.Rules))
	for _, e := range d.Rules {
		p := e.Rule.ToPersisted()
		if e.Name != "" {
			p[KeyName] = e.Name
		}
		entries = append(entries, p)
	}
	return rules.Persisted{
		KeyVersion: CurrentVersion,
		KeyRules:   entries,
	}
}
