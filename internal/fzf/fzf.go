// Package fzf picks a note with a fuzzy finder.
package fzf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/forgetful/internal/note"
	"github.com/Paintersrp/forgetful/internal/views"
	"github.com/Paintersrp/forgetful/utils"
)

// ErrNoSelection is returned when the finder is closed without a pick.
var ErrNoSelection = errors.New("no note selected")

// FuzzyFinder selects one entry from a built view.
type FuzzyFinder struct {
	Header  string
	entries []views.Entry
	now     time.Time
}

func NewFuzzyFinder(entries []views.Entry, now time.Time, header string) *FuzzyFinder {
	return &FuzzyFinder{entries: entries, now: now, Header: header}
}

// Find opens the finder. A query that matches exactly one note by id prefix
// or title returns it without prompting.
func (f *FuzzyFinder) Find(query string) (views.Entry, error) {
	if len(f.entries) == 0 {
		return views.Entry{}, fmt.Errorf("no notes to choose from")
	}

	if e, ok := f.match(query); ok {
		return e, nil
	}

	idx, err := f.fuzzySelectNote(query)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return views.Entry{}, ErrNoSelection
		}
		return views.Entry{}, fmt.Errorf("error selecting note: %w", err)
	}
	if idx == -1 {
		return views.Entry{}, ErrNoSelection
	}
	return f.entries[idx], nil
}

func (f *FuzzyFinder) match(query string) (views.Entry, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return views.Entry{}, false
	}

	var found []views.Entry
	for _, e := range f.entries {
		if strings.HasPrefix(strings.ToLower(e.Note.ID), query) ||
			strings.ToLower(e.Note.Title) == query {
			found = append(found, e)
		}
	}
	if len(found) != 1 {
		return views.Entry{}, false
	}
	return found[0], true
}

func (f *FuzzyFinder) fuzzySelectNote(query string) (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	return fuzzyfinder.Find(f.entries, func(i int) string {
		e := f.entries[i]
		if len(e.Note.Tags) == 0 {
			return fmt.Sprintf("%s [No tags]", e.Decision.Title)
		}
		return fmt.Sprintf("%s [Tags: %s]", e.Decision.Title, strings.Join(e.Note.Tags, ", "))
	}, options...)
}

func (f *FuzzyFinder) renderMarkdownPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}
	return utils.RenderMarkdownPreview(Document(f.entries[i], f.now), w)
}

// Document renders an entry as markdown, using the text as displayed.
func Document(e views.Entry, now time.Time) string {
	n := e.Note
	d := e.Decision

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Title)
	fmt.Fprintf(&b, "- **ID:** %s\n", n.ID)
	fmt.Fprintf(&b, "- **Status:** %s\n", n.Status)
	fmt.Fprintf(&b, "- **Priority:** %s\n", n.Priority.Label())
	if len(n.Tags) > 0 {
		fmt.Fprintf(&b, "- **Tags:** %s\n", strings.Join(n.Tags, ", "))
	}
	if n.DueDate != nil {
		fmt.Fprintf(&b, "- **Due:** %s\n", note.FormatDueDate(n.DueDate))
	}
	fmt.Fprintf(&b, "- **Modified:** %s\n", utils.FormatAge(now.Sub(n.LastTouched())))
	if done, total := note.Subtasks(n.Content); total > 0 {
		fmt.Fprintf(&b, "- **Subtasks:** %d/%d\n", done, total)
	}
	fmt.Fprintf(&b, "- **Forget chance:** %.0f%%\n", d.Probability*100)

	if strings.TrimSpace(d.Content) != "" {
		fmt.Fprintf(&b, "\n%s\n", d.Content)
	}
	return b.String()
}
