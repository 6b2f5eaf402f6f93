package cli

import (
	"fmt"

	"github.com/arthur-debert/topdrawer/pkg/errors"
	"github.com/arthur-debert/topdrawer/pkg/settings"
	"github.com/spf13/cobra"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: MsgSettingsShort,
	}
	cmd.AddCommand(newSettingsListCmd(a))
	cmd.AddCommand(newSettingsGetCmd(a))
	cmd.AddCommand(newSettingsSetCmd(a))
	return cmd
}

func lookupSetting(prefs *settings.App, key string) (settings.Accessor, error) {
	s, ok := prefs.Lookup(key)
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput, MsgErrUnknownSetting, key).WithDetail("key", key)
	}
	return s, nil
}

func settingKeys(prefs *settings.App) []string {
	var keys []string
	for _, s := range prefs.All() {
		keys = append(keys, s.Key())
	}
	return keys
}

func newSettingsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgSettingsList,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, _, err := a.settings()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			r := a.renderer(out)
			for _, s := range prefs.All() {
				suffix := ""
				if !s.IsSet() {
					suffix = MsgSettingDefault
				}
				fmt.Fprint(out, r.RenderMessage(MsgSettingLine, s.Key(), s.String(), suffix))
			}
			return nil
		},
	}
}

func newSettingsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: MsgSettingsGet,
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return settingKeys(settings.NewApp(settings.NewMemoryStore())), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, _, err := a.settings()
			if err != nil {
				return err
			}
			s, err := lookupSetting(prefs, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.String())
			return nil
		},
	}
}

func newSettingsSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: MsgSettingsSet,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, _, err := a.settings()
			if err != nil {
				return err
			}
			s, err := lookupSetting(prefs, args[0])
			if err != nil {
				return err
			}
			if err := s.SetString(args[1]); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, a.renderer(out).RenderMessage(MsgSettingChanged, s.Key(), s.String()))
			return nil
		},
	}
}
