package notes

import (
	"fmt"
	"strings"
	"time"

	"github.com/Paintersrp/forgetful/internal/note"
	"github.com/Paintersrp/forgetful/internal/views"
)

// ListItem is one visible note in the list pane.
type ListItem struct {
	entry views.Entry
	now   time.Time
}

func newListItems(entries []views.Entry, now time.Time) []ListItem {
	items := make([]ListItem, len(entries))
	for i, e := range entries {
		items[i] = ListItem{entry: e, now: now}
	}
	return items
}

// Note is the stored note behind the row.
func (i ListItem) Note() note.Note {
	return i.entry.Note
}

func (i ListItem) Title() string {
	n := i.entry.Note
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", statusStyleFor(n.Status).Render(n.Status.Short()))
	if n.Priority != note.PriorityNone {
		fmt.Fprintf(&b, "(%s) ", priorityStyleFor(n.Priority).Render(n.Priority.String()))
	}
	b.WriteString(i.entry.Decision.Title)
	if i.entry.Decision.Misspelled {
		b.WriteString(misspelledStyle.Render(" ?"))
	}
	if i.entry.Decision.Forgotten {
		b.WriteString(forgottenStyle.Render(" (forgotten)"))
	}
	return b.String()
}

func (i ListItem) Description() string {
	n := i.entry.Note
	var parts []string
	if len(n.Tags) > 0 {
		parts = append(parts, tagStyle.Render("{"+strings.Join(n.Tags, ", ")+"}"))
	}
	if due := dueLabel(n.DueDate, i.now); due != "" {
		parts = append(parts, due)
	}
	if len(parts) == 0 {
		return "No tags"
	}
	return strings.Join(parts, " ")
}

func (i ListItem) FilterValue() string {
	n := i.entry.Note
	return n.Title + " " + strings.Join(n.Tags, " ")
}

// dueLabel renders the due date relative to today.
func dueLabel(due *time.Time, now time.Time) string {
	if due == nil {
		return ""
	}
	today := truncateToDay(now)
	day := truncateToDay(*due)
	date := note.FormatDueDate(due)

	switch {
	case day.Before(today):
		return overdueStyle.Render("OVERDUE " + date)
	case day.Equal(today):
		return dueTodayStyle.Render("due today")
	default:
		return dueFutureStyle.Render("due " + date)
	}
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
