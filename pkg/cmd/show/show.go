package show

import (
	"errors"
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/forgetful/internal/fzf"
	"github.com/Paintersrp/forgetful/internal/state"
	"github.com/Paintersrp/forgetful/internal/views"
	"github.com/Paintersrp/forgetful/utils"
)

type options struct {
	all bool
	raw bool
}

func NewCmdShow(s *state.State) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "show [query]",
		Aliases: []string{"open", "o"},
		Short:   "Show one note",
		Long: heredoc.Doc(`
			Prints a note with its details. The query may be an id, an id prefix
			or a title. Without a unique match a fuzzy finder opens with the query
			filled in.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) > 0 {
				query = args[0]
			}
			return run(cmd.OutOrStdout(), s, query, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "include forgotten and archived notes")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print markdown without rendering")

	return cmd
}

func run(out io.Writer, s *state.State, query string, opts options) error {
	q := views.DefaultQuery(s.CurrentSettings().DefaultSort)
	q.Filter.IncludeArchived = opts.all
	q.Filter.IncludeForgotten = opts.all

	v, err := s.Refresh(q)
	if err != nil {
		return err
	}

	now := s.Now()
	finder := fzf.NewFuzzyFinder(v.Entries, now, "Which note? (esc to cancel)")
	e, err := finder.Find(query)
	if err != nil {
		if errors.Is(err, fzf.ErrNoSelection) {
			fmt.Fprintln(out, "No note selected")
			return nil
		}
		return err
	}

	doc := fzf.Document(e, now)
	if opts.raw {
		_, err := fmt.Fprint(out, doc)
		return err
	}

	rendered, err := utils.RenderMarkdown(doc, utils.DefaultWrap)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
