package list

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/forgetful/internal/note"
	"github.com/Paintersrp/forgetful/internal/state"
	"github.com/Paintersrp/forgetful/internal/views"
	"github.com/Paintersrp/forgetful/utils"
)

type options struct {
	all    bool
	sort   string
	status string
	tag    string
	format string
}

// record is one note as printed by list.
type record struct {
	ID         string   `json:"id"                 yaml:"id"`
	Title      string   `json:"title"              yaml:"title"`
	Status     string   `json:"status"             yaml:"status"`
	Priority   string   `json:"priority,omitempty" yaml:"priority,omitempty"`
	Tags       []string `json:"tags"               yaml:"tags"`
	Due        string   `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Forgotten  bool     `json:"forgotten"          yaml:"forgotten"`
	Misspelled bool     `json:"misspelled"         yaml:"misspelled"`
}

func NewCmdList(s *state.State) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "Print the notes Manager-chan still remembers",
		Long: heredoc.Doc(`
			Prints the current list, exactly as the notes view would show it,
			forgetting and misspelling included. Use --all to show forgotten and
			archived notes too.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), s, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "include forgotten and archived notes")
	cmd.Flags().StringVarP(&opts.sort, "sort", "s", "", "sort key: "+strings.Join(sortNames(), ", "))
	cmd.Flags().StringVar(&opts.status, "status", "", "only notes with this status")
	cmd.Flags().StringVar(&opts.tag, "tag", "", "only notes with this tag")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, json or yaml")

	return cmd
}

func sortNames() []string {
	out := make([]string, len(views.SortKeys))
	for i, k := range views.SortKeys {
		out[i] = string(k)
	}
	return out
}

func buildQuery(s *state.State, opts options) (views.Query, error) {
	q := views.DefaultQuery(s.CurrentSettings().DefaultSort)
	if opts.sort != "" {
		key, ok := views.ParseSortKey(opts.sort)
		if !ok {
			return q, fmt.Errorf("invalid sort key %q: expected one of %s", opts.sort, strings.Join(sortNames(), ", "))
		}
		q.Sort = key
	}
	if opts.status != "" {
		status, ok := note.ParseStatus(opts.status)
		if !ok {
			return q, fmt.Errorf("invalid status %q", opts.status)
		}
		q.Filter.Status = &status
		if status == note.Archived {
			q.Filter.IncludeArchived = true
		}
	}
	q.Filter.Tag = opts.tag
	if opts.all {
		q.Filter.IncludeArchived = true
		q.Filter.IncludeForgotten = true
	}
	return q, nil
}

func run(out, errOut io.Writer, s *state.State, opts options) error {
	q, err := buildQuery(s, opts)
	if err != nil {
		return err
	}

	v, err := s.Refresh(q)
	if err != nil {
		return err
	}

	records := make([]record, len(v.Entries))
	for i, e := range v.Entries {
		records[i] = toRecord(e)
	}

	switch strings.ToLower(opts.format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode notes: %w", err)
		}
	case "yaml", "yml":
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("failed to encode notes: %w", err)
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	case "text", "":
		printText(out, v.Entries, s)
	default:
		return fmt.Errorf("invalid format %q: expected text, json or yaml", opts.format)
	}

	if v.ForgottenCount > 0 && !opts.all {
		fmt.Fprintf(errOut, "(%d notes seemed to vanish... try --all)\n", v.ForgottenCount)
	}
	return nil
}

func toRecord(e views.Entry) record {
	tags := e.Note.Tags
	if tags == nil {
		tags = []string{}
	}
	return record{
		ID:         e.Note.ID,
		Title:      e.Decision.Title,
		Status:     e.Note.Status.String(),
		Priority:   e.Note.Priority.String(),
		Tags:       tags,
		Due:        note.FormatDueDate(e.Note.DueDate),
		Forgotten:  e.Decision.Forgotten,
		Misspelled: e.Decision.Misspelled,
	}
}

func printText(out io.Writer, entries []views.Entry, s *state.State) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "List is empty! Or I forgot everything...")
		return
	}

	now := s.Now()
	for _, e := range entries {
		n := e.Note
		var b strings.Builder
		fmt.Fprintf(&b, "%s [%s] ", n.ShortID(), n.Status.Short())
		if n.Priority != note.PriorityNone {
			fmt.Fprintf(&b, "(%s) ", n.Priority)
		}
		b.WriteString(utils.TruncateLine(e.Decision.Title, 60))
		if len(n.Tags) > 0 {
			fmt.Fprintf(&b, " {%s}", strings.Join(n.Tags, ", "))
		}
		if n.DueDate != nil {
			fmt.Fprintf(&b, " due %s", note.FormatDueDate(n.DueDate))
		}
		if e.Decision.Forgotten {
			b.WriteString(" (forgotten)")
		}
		fmt.Fprintf(&b, " - %s", utils.FormatAge(now.Sub(n.LastTouched())))
		fmt.Fprintln(out, b.String())
	}
}
