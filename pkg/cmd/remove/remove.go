package remove

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/forgetful/internal/state"
	cmdpkg "github.com/Paintersrp/forgetful/pkg/cmd"
)

func NewCmdRemove(s *state.State) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "remove [id or title]",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete a note for good.",
		Long: heredoc.Doc(`
			Deletes a note from the notes file. This can't be undone (probably),
			so --force is required. Use archive to hide a note instead.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := cmdpkg.ResolveNote(s, args[0])
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("refusing to delete %q without --force", n.Title)
			}
			if err := s.Store.Delete(n.ID); err != nil {
				return err
			}
			if err := s.Store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note deleted! %s (%s)\n", n.Title, n.ShortID())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without asking")
	return cmd
}
