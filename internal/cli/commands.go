package cli

import (
	"fmt"
	"io"

	"github.com/arthur-debert/topdrawer/internal/version"
	"github.com/arthur-debert/topdrawer/pkg/config"
	"github.com/arthur-debert/topdrawer/pkg/logging"
	"github.com/arthur-debert/topdrawer/pkg/ruleset"
	"github.com/arthur-debert/topdrawer/pkg/settings"
	"github.com/arthur-debert/topdrawer/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app carries what the commands share: the filesystem, global flags and the
// lazily loaded configuration
type app struct {
	fs afero.Fs

	configFile string
	rulesFile  string
	plain      bool

	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs}
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "topdrawer",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&a.rulesFile, "rules", "", MsgFlagRules)
	rootCmd.PersistentFlags().BoolVar(&a.plain, "plain", false, MsgFlagPlain)

	// Add all commands
	rootCmd.AddCommand(newScanCmd(a))
	rootCmd.AddCommand(newRulesCmd(a))
	rootCmd.AddCommand(newSettingsCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// config loads the configuration once. overrides are dotted keys taken
// from command flags.
func (a *app) config(overrides map[string]interface{}) (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	if overrides == nil {
		overrides = map[string]interface{}{}
	}
	if a.rulesFile != "" {
		overrides["rules.file"] = a.rulesFile
	}
	cfg, err := config.Load(config.Options{File: a.configFile, Overrides: overrides})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	a.cfg = cfg
	return cfg, nil
}

// renderer picks the output style for w. --plain forces plain text;
// otherwise it follows the terminal behind w.
func (a *app) renderer(w io.Writer) style.Renderer {
	format := style.FormatText
	if !a.plain {
		format = style.DetectFormat(w)
	}
	log.Debug().Str("format", format.String()).Msg("Selected output format")
	return style.NewRenderer(format)
}

func (a *app) loadRules() (*ruleset.Document, string, error) {
	cfg, err := a.config(nil)
	if err != nil {
		return nil, "", err
	}
	doc, err := ruleset.LoadOrNew(a.fs, cfg.Rules.File)
	return doc, cfg.Rules.File, err
}

func (a *app) settings() (*settings.App, *settings.FileStore, error) {
	cfg, err := a.config(nil)
	if err != nil {
		return nil, nil, err
	}
	store, err := settings.OpenFileStore(a.fs, cfg.Settings.File)
	if err != nil {
		return nil, nil, err
	}
	return settings.NewApp(store), store, nil
}

func namedRules(doc *ruleset.Document) []style.NamedRule {
	out := make([]style.NamedRule, len(doc.Rules))
	for i, e := range doc.Rules {
		out[i] = style.NamedRule{Name: e.Name, Rule: e.Rule}
	}
	return out
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletion,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}
