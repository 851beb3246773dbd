package settings

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/forgetful/internal/config"
	"github.com/Paintersrp/forgetful/internal/state"
	"github.com/Paintersrp/forgetful/internal/tui/settings"
)

func NewCmdSettings(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"s", "config"},
		Short:   "Settings menu",
		Long: heredoc.Doc(`
			Opens the settings panel. Use the get and set subcommands to script
			changes instead. Every change is saved immediately.
		`),
		Example: "forgetful settings set misspelling_probability 0.2",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return settings.Run(s)
		},
	}

	cmd.AddCommand(newCmdGet(s), newCmdSet(s))
	return cmd
}

func newCmdGet(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print one setting, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current := s.CurrentSettings()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				value, err := current.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, value)
				return nil
			}

			for _, f := range config.Fields {
				fmt.Fprintf(out, "%-24s %s\n", f.Key, f.Value(current))
			}
			return nil
		},
	}
}

func newCmdSet(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			next := s.CurrentSettings()
			if err := next.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := s.UpdateSettings(next); err != nil {
				return err
			}

			value, _ := next.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Settings saved! %s = %s\n", args[0], value)
			return nil
		},
	}
}
