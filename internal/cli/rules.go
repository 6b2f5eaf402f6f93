package cli

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/topdrawer/pkg/classify"
	"github.com/arthur-debert/topdrawer/pkg/errors"
	"github.com/arthur-debert/topdrawer/pkg/rules"
	"github.com/arthur-debert/topdrawer/pkg/ruleset"
	"github.com/spf13/cobra"
)

func newRulesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: MsgRulesShort,
	}
	cmd.AddCommand(newRulesListCmd(a))
	cmd.AddCommand(newRulesAddCmd(a))
	cmd.AddCommand(newRulesRemoveCmd(a))
	cmd.AddCommand(newRulesCheckCmd(a))
	cmd.AddCommand(newRulesTreeCmd(a))
	return cmd
}

func newRulesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgRulesList,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.loadRules()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.renderer(cmd.OutOrStdout()).RenderRules(namedRules(doc)))
			return nil
		},
	}
}

func newRulesAddCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "add CONDITION...",
		Short:   MsgRulesAdd,
		Long:    MsgRulesAddLong,
		Example: MsgRulesAddExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conditions := make([]rules.Condition, 0, len(args))
			for _, arg := range args {
				c, err := parseCondition(arg)
				if err != nil {
					return err
				}
				conditions = append(conditions, c)
			}

			doc, path, err := a.loadRules()
			if err != nil {
				return err
			}
			rule := rules.NewRule(conditions...)
			idx := doc.Add(name, rule)
			if err := ruleset.Save(a.fs, path, doc); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, a.renderer(out).RenderMessage(MsgRuleAdded, idx, rules.DescribeRule(rule)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", MsgFlagName)
	return cmd
}

func newRulesRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove INDEX",
		Aliases: []string{"rm"},
		Short:   MsgRulesRemove,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, path, err := a.loadRules()
			if err != nil {
				return err
			}
			idx, err := strconv.Atoi(args[0])
			if err != nil || idx < 0 || idx >= len(doc.Rules) {
				return errors.Newf(errors.ErrInvalidInput, MsgErrRuleIndex, args[0], len(doc.Rules)-1)
			}
			removed := doc.Rules[idx].Rule
			doc.Remove(idx)
			if err := ruleset.Save(a.fs, path, doc); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, a.renderer(out).RenderMessage(MsgRuleRemoved, idx, rules.DescribeRule(removed)))
			return nil
		},
	}
}

func newRulesCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]",
		Short: MsgRulesCheck,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config(nil)
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
			out := cmd.OutOrStdout()
			r := a.renderer(out)
			if len(doc.Rules) == 0 {
				fmt.Fprintln(out, r.RenderMessage(MsgNoRules))
				return nil
			}
			path, err := scanRoot(args, prefs)
			if err != nil {
				return err
			}

			result, err := a.scan(cmd.Context(), cfg, path, doc.RuleSet())
			if err != nil {
				return err
			}
			counts := make([]int, len(doc.Rules))
			for _, m := range result.matches {
				for _, idx := range m.Rules {
					counts[idx]++
				}
			}
			for i, n := range counts {
				fmt.Fprint(out, r.RenderMessage(MsgRuleCount, i, n))
			}
			fmt.Fprintln(out, r.RenderSummary(result.entries, len(result.matches)))
			return nil
		},
	}
}

func newRulesTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: MsgRulesTree,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.loadRules()
			if err != nil {
				return err
			}
			c := classify.New(doc.RuleSet())
			fmt.Fprint(cmd.OutOrStdout(), c.Tree().Dump(rules.Describe))
			return nil
		},
	}
}
