package unarchive

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/forgetful/internal/note"
	"github.com/Paintersrp/forgetful/internal/state"
	"github.com/Paintersrp/forgetful/pkg/cmd/archive"
)

// Not very useful on it's own, but quite handy for scripting
func NewCmdUnarchive(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unarchive [id or title]",
		Short: "Unarchive a note.",
		Long: heredoc.Doc(`
			This command moves an archived note back to Todo.

			Example:
			  forgetful unarchive 1a2b3c4d
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := archive.SetStatus(s, args[0], note.Todo)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unarchived %s (%s)\n", n.Title, n.ShortID())
			return nil
		},
	}

	return cmd
}
