package notes

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/forgetful/internal/state"
	"github.com/Paintersrp/forgetful/internal/tui/notes"
)

func NewCmdNotes(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"n", "tui"},
		Short:   "Open the interactive notes list",
		Long: heredoc.Doc(`
			Opens Manager-chan's notes list. Press h or ? inside for the key bindings.
			Changes are saved as you make them and again on quit.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return notes.Run(s)
		},
	}

	return cmd
}
