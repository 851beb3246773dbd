package add

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/forgetful/internal/note"
	"github.com/Paintersrp/forgetful/internal/state"
)

type options struct {
	tags     string
	priority string
	status   string
	due      string
	content  string
}

func NewCmdAdd(s *state.State) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "add [title]",
		Aliases: []string{"a", "new"},
		Short:   "Add a note without opening the list",
		Long: heredoc.Doc(`
			Adds a note to the notes file. Every argument is joined into the title.
			Due dates accept YYYY-MM-DD and most other common date formats.
		`),
		Example: heredoc.Doc(`
			forgetful add Buy milk --tags errands,home --due 2024-05-01
			forgetful add "Write report" --priority A --content "- [ ] outline"
		`),
		Args: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(strings.Join(args, " ")) == "" {
				return fmt.Errorf("error: No title given. Try again with forgetful add [title]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := run(s, strings.Join(args, " "), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New note added! %s (%s)\n", n.Title, n.ShortID())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.tags, "tags", "t", "", "comma separated tags")
	cmd.Flags().StringVarP(&opts.priority, "priority", "p", "", "priority: A, B, C or none")
	cmd.Flags().StringVar(&opts.status, "status", "", "initial status (default Todo)")
	cmd.Flags().StringVarP(&opts.due, "due", "d", "", "due date")
	cmd.Flags().StringVarP(&opts.content, "content", "c", "", "note body in markdown")

	return cmd
}

func run(s *state.State, title string, opts options) (note.Note, error) {
	now := s.Now()
	n := note.New(strings.TrimSpace(title), opts.content, now)
	n.Tags = note.ParseTags(opts.tags)

	priority, ok := note.ParsePriority(opts.priority)
	if !ok {
		return note.Note{}, fmt.Errorf("invalid priority %q: expected A, B, C or none", opts.priority)
	}
	n.Priority = priority

	if opts.status != "" {
		status, ok := note.ParseStatus(opts.status)
		if !ok {
			return note.Note{}, fmt.Errorf("invalid status %q", opts.status)
		}
		n.Status = status
	}

	due, err := note.ParseDueDate(opts.due, now)
	if err != nil {
		return note.Note{}, err
	}
	n.DueDate = due

	stored, err := s.Store.Add(n)
	if err != nil {
		return note.Note{}, err
	}
	if err := s.Store.Save(); err != nil {
		return note.Note{}, err
	}
	s.Logger.Info("note added", "id", stored.ID)
	return stored, nil
}
