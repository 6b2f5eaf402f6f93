package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort     = "Find the files that matter in a directory tree"
	MsgRootLong      = "topdrawer scans a directory and shows the entries matching your rules.\nA rule is a list of conditions on an entry's name, its siblings and its\nenclosing folders; an entry is shown when every condition of some rule holds."
	MsgVersionShort  = "Print version information"
	MsgVersionLong   = "Print detailed version information including commit hash and build date"
	MsgScanShort     = "Scan a directory and show matching entries"
	MsgRulesShort    = "Manage classification rules"
	MsgRulesList     = "List the rules in order"
	MsgRulesAdd      = "Append a rule built from one or more conditions"
	MsgRulesRemove   = "Remove the rule at an index"
	MsgRulesCheck    = "Scan a directory and report how many entries each rule matches"
	MsgRulesTree     = "Show the decision tree compiled from the rules"
	MsgSettingsShort = "Show or change settings"
	MsgSettingsList  = "List all settings"
	MsgSettingsGet   = "Print a setting"
	MsgSettingsSet   = "Change a setting"
	MsgCompletion    = "Generate shell completion script"

	MsgRulesAddLong = `Each condition is written KIND:STRATEGY:PATTERN.

KIND is one of name, ext, fullname, or a nested kind followed by an inner
condition: parent-contains:KIND:STRATEGY:PATTERN,
parent-lacks:KIND:STRATEGY:PATTERN or hierarchy:KIND:STRATEGY:PATTERN.

STRATEGY is one of exact, contains, prefix, suffix, wildcard. Append ! to
compare case sensitively. In wildcard patterns only * is special.`
	MsgRulesAddExample = `  topdrawer rules add --name "Swift sources" ext:exact:swift
  topdrawer rules add fullname:wildcard:*.xcodeproj parent-lacks:ext:exact:xcworkspace
  topdrawer rules add name:prefix!:README hierarchy:fullname:exact:docs`

	// Status messages
	MsgRuleAdded       = "[success]Added[/success] rule [match]%d[/match]: %s\n"
	MsgRuleRemoved     = "[warning]Removed[/warning] rule [match]%d[/match]: %s\n"
	MsgRuleCount       = "[match]%d[/match]: %d matches\n"
	MsgNoRules         = "[muted]No rules defined.[/muted] Add one with '[code]topdrawer rules add[/code]'."
	MsgSettingChanged  = "[pattern]%s[/pattern] = %s\n"
	MsgSettingLine     = "[pattern]%s[/pattern] = %s%s\n"
	MsgSettingDefault  = " [muted](default)[/muted]"
	MsgVersionFormat   = "topdrawer version %s\n  commit: %s\n  built:  %s\n"
	MsgEmptyTreeFormat = "[directory]%s[/directory] [muted](empty)[/muted]\n"

	// Error messages
	MsgErrNoCommand      = "no command specified"
	MsgErrLoadConfig     = "failed to load configuration: %w"
	MsgErrUnknownSetting = "unknown setting %q"
	MsgErrRuleIndex      = "rule index %q is not between 0 and %d"
	MsgErrCondition      = "invalid condition %q: %s"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default is $XDG_CONFIG_HOME/topdrawer/config.toml)"
	MsgFlagRules    = "Rules file, overriding rules.file"
	MsgFlagPlain    = "Plain output without colors or tree drawing"
	MsgFlagAll      = "Show every entry, not only matches and their folders"
	MsgFlagFull     = "Do not merge chains of single-folder directories"
	MsgFlagWorkers  = "Goroutines used to classify (0 means one per CPU)"
	MsgFlagMaxDepth = "Deepest level to descend into (0 means unlimited)"
	MsgFlagHidden   = "Include entries whose name starts with a dot"
	MsgFlagName     = "Display name of the rule"
)
