package archive

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/forgetful/internal/note"
	"github.com/Paintersrp/forgetful/internal/state"
	cmdpkg "github.com/Paintersrp/forgetful/pkg/cmd"
)

func NewCmdArchive(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive [id or title]",
		Short: "Archive a note.",
		Long: heredoc.Doc(`
			This command archives a note by setting its status to Archived.
			Archived notes are hidden from the list until shown with F or --all.

			Example:
			  forgetful archive 1a2b3c4d
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := SetStatus(s, args[0], note.Archived)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %s (%s)\n", n.Title, n.ShortID())
			return nil
		},
	}

	return cmd
}

// SetStatus resolves arg to a note, sets its status and saves.
func SetStatus(s *state.State, arg string, status note.Status) (note.Note, error) {
	n, err := cmdpkg.ResolveNote(s, arg)
	if err != nil {
		return note.Note{}, err
	}
	n.Status = status
	updated, err := s.Store.Update(n)
	if err != nil {
		return note.Note{}, err
	}
	if err := s.Store.Save(); err != nil {
		return note.Note{}, err
	}
	return updated, nil
}
