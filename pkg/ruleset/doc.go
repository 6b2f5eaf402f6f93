// Package ruleset persists the user's rules as a versioned document.
//
// The document is stored as TOML or YAML, chosen by file extension:
//
//	Version = 1
//
//	[[Rules]]
//	Name = "Xcode projects"
//
//	[[Rules.Conditions]]
//	Case = "FullName"
//
//	[Rules.Conditions.AssociatedValue]
//	Strategy = "Wildcard"
//	Pattern = "*.xcodeproj"
//	CaseSensitive = false
//
// Each rule is the persisted form from package rules plus an optional Name.
// Loading is lenient: rules and conditions that fail to decode are dropped
// and logged, and the remainder loads. Only an unreadable file, a document
// that does not parse, or a Version newer than CurrentVersion fail.
package ruleset
