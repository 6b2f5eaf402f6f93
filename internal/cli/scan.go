package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/arthur-debert/topdrawer/pkg/classify"
	"github.com/arthur-debert/topdrawer/pkg/config"
	"github.com/arthur-debert/topdrawer/pkg/fstree"
	"github.com/arthur-debert/topdrawer/pkg/logging"
	"github.com/arthur-debert/topdrawer/pkg/rules"
	"github.com/arthur-debert/topdrawer/pkg/settings"
	"github.com/spf13/cobra"
)

type scanFlags struct {
	all      bool
	full     bool
	hidden   bool
	workers  int
	maxDepth int
}

// overrides turns the scan flags the user set into config keys
func (f *scanFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	o := map[string]interface{}{}
	if cmd.Flags().Changed("workers") {
		o["scan.workers"] = f.workers
	}
	if cmd.Flags().Changed("max-depth") {
		o["scan.max_depth"] = f.maxDepth
	}
	if cmd.Flags().Changed("hidden") {
		o["scan.skip_hidden"] = !f.hidden
	}
	return o
}

// scanResult is a classified tree
type scanResult struct {
	root    *fstree.Directory
	matches []classify.Match
	entries int
}

func (r *scanResult) byPath() map[string][]int {
	out := make(map[string][]int, len(r.matches))
	for _, m := range r.matches {
		out[m.File.Path()] = m.Rules
	}
	return out
}

func countEntries(dir *fstree.Directory) int {
	n := 0
	for _, child := range dir.Children() {
		n++
		if child.IsDirectory() {
			n += countEntries(child.Directory())
		}
	}
	return n
}

// scan walks path and classifies it against rs
func (a *app) scan(ctx context.Context, cfg *config.Config, path string, rs []rules.Rule) (*scanResult, error) {
	walker := fstree.NewWalker(a.fs,
		fstree.WithSkipHidden(cfg.Scan.SkipHidden),
		fstree.WithIgnore(cfg.Scan.Ignore...),
		fstree.WithMaxDepth(cfg.Scan.MaxDepth),
	)
	root, err := walker.Walk(ctx, path)
	if err != nil {
		return nil, err
	}

	classifier := classify.New(rs, classify.WithWorkers(cfg.Scan.Workers))
	matches, err := classifier.Classify(ctx, root)
	if err != nil {
		return nil, err
	}
	return &scanResult{root: root, matches: matches, entries: countEntries(root)}, nil
}

// scanRoot picks the directory to scan: the argument, then the root_path
// setting, then the working directory
func scanRoot(args []string, prefs *settings.App) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if p := prefs.RootPath.Value(); p != "" {
		return p, nil
	}
	return os.Getwd()
}

func newScanCmd(a *app) *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: MsgScanShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.scan")

			cfg, err := a.config(flags.overrides(cmd))
			if err != nil {
				return err
			}
			prefs, _, err := a.settings()
			if err != nil {
				return err
			}
			doc, _, err := a.loadRules()
			if err != nil {
				return err
			}
			path, err := scanRoot(args, prefs)
			if err != nil {
				return err
			}

			logger.Info().
				Str("path", path).
				Int("rules", len(doc.Rules)).
				Msg("Starting scan")

			result, err := a.scan(cmd.Context(), cfg, path, doc.RuleSet())
			if err != nil {
				return err
			}

			matched := result.byPath()
			tree := result.root
			if !flags.all && prefs.OnlyShowMatching.Value() {
				tree = fstree.Prune(tree, func(f *fstree.File) bool {
					return len(matched[f.Path()]) > 0
				})
			}
			if !flags.full && prefs.ShortenPaths.Value() {
				tree = fstree.Compact(tree)
			}

			out := cmd.OutOrStdout()
			r := a.renderer(out)
			if len(tree.Children()) == 0 {
				fmt.Fprint(out, r.RenderMessage(MsgEmptyTreeFormat, tree.Path()))
			} else {
				fmt.Fprintln(out, r.RenderMatches(tree, matched))
			}
			fmt.Fprintln(out, r.RenderSummary(result.entries, len(result.matches)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flags.all, "all", "a", false, MsgFlagAll)
	cmd.Flags().BoolVar(&flags.full, "full", false, MsgFlagFull)
	cmd.Flags().BoolVar(&flags.hidden, "hidden", false, MsgFlagHidden)
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, MsgFlagWorkers)
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, MsgFlagMaxDepth)

	return cmd
}
