// Package views turns the stored notes into the list shown on screen.
package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/forgetful/internal/constants"
	"github.com/Paintersrp/forgetful/internal/memory"
	"github.com/Paintersrp/forgetful/internal/note"
)

// SortKey names an ordering of the list.
type SortKey string

const (
	SortPriority   SortKey = "priority"
	SortDueDate    SortKey = "due_date"
	SortCreatedAt  SortKey = "created_at"
	SortModifiedAt SortKey = "modified_at"
	SortStatus     SortKey = "status"
	SortTitle      SortKey = "title"
)

// SortKeys lists every ordering in menu order.
var SortKeys = []SortKey{
	SortPriority,
	SortDueDate,
	SortCreatedAt,
	SortModifiedAt,
	SortStatus,
	SortTitle,
}

// ParseSortKey accepts any of SortKeys, ignoring case. Unknown keys fall
// back to created_at.
func ParseSortKey(s string) (SortKey, bool) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range SortKeys {
		if k == key {
			return k, true
		}
	}
	return SortCreatedAt, false
}

// Filter narrows the list. Zero values match everything except archived and
// forgotten notes.
type Filter struct {
	Status           *note.Status
	Priority         *note.Priority
	Tag              string
	IncludeArchived  bool
	IncludeForgotten bool
}

// Active reports whether the filter differs from the default.
func (f Filter) Active() bool {
	return f.Status != nil || f.Priority != nil || strings.TrimSpace(f.Tag) != "" || f.IncludeArchived || f.IncludeForgotten
}

// Summary describes the active filters for status messages.
func (f Filter) Summary() string {
	var parts []string
	if f.Status != nil {
		parts = append(parts, "status="+f.Status.String())
	}
	if f.Priority != nil {
		parts = append(parts, "priority="+f.Priority.Label())
	}
	if tag := strings.TrimSpace(f.Tag); tag != "" {
		parts = append(parts, "tag="+strings.ToLower(tag))
	}
	if f.IncludeArchived {
		parts = append(parts, "archived")
	}
	if f.IncludeForgotten {
		parts = append(parts, "forgotten")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// Query is a complete request for a list view.
type Query struct {
	Sort   SortKey
	Filter Filter
	Search string
}

// Entry is one visible row.
type Entry struct {
	Note     note.Note
	Decision memory.Decision
}

// View is the result of a refresh.
type View struct {
	Entries []Entry
	// ForgottenCount is every note the forgetting engine hid this refresh,
	// whether or not it is being shown anyway.
	ForgottenCount int
	// Persist holds notes whose misspelling should be written back.
	Persist []Entry
}

// Build draws a forget outcome for every note, filters and searches, then
// misspells and sorts the survivors. Persist only ever holds shown entries.
func Build(notes []note.Note, q Query, now time.Time, decider memory.Decider) View {
	var v View
	search := strings.ToLower(strings.TrimSpace(q.Search))
	tag := strings.ToLower(strings.TrimSpace(q.Filter.Tag))

	for _, n := range notes {
		d := decider.Forget(n, now)
		if d.Forgotten {
			v.ForgottenCount++
		}
		if !visible(n, d, q, tag, search) {
			continue
		}

		d = decider.Misspell(n, d)
		e := Entry{Note: n, Decision: d}
		if d.Persist {
			v.Persist = append(v.Persist, e)
		}
		v.Entries = append(v.Entries, e)
	}

	Sort(v.Entries, q.Sort)
	return v
}

func visible(n note.Note, d memory.Decision, q Query, tag, search string) bool {
	switch {
	case n.Status == note.Archived && !q.Filter.IncludeArchived:
		return false
	case d.Forgotten && !q.Filter.IncludeForgotten:
		return false
	case q.Filter.Status != nil && n.Status != *q.Filter.Status:
		return false
	case q.Filter.Priority != nil && n.Priority != *q.Filter.Priority:
		return false
	case tag != "" && !n.HasTag(tag):
		return false
	case search != "" && !matches(n, search):
		return false
	}
	return true
}

func matches(n note.Note, needle string) bool {
	if strings.Contains(strings.ToLower(n.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), needle) {
		return true
	}
	for _, t := range n.Tags {
		if strings.Contains(t, needle) {
			return true
		}
	}
	return false
}

func priorityRank(p note.Priority) int {
	switch p {
	case note.PriorityA:
		return 0
	case note.PriorityB:
		return 1
	case note.PriorityC:
		return 2
	default:
		return 99
	}
}

// Sort orders entries in place by key. Ties keep their input order.
func Sort(entries []Entry, key SortKey) {
	key, _ = ParseSortKey(string(key))

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Note, entries[j].Note
		switch key {
		case SortPriority:
			return priorityRank(a.Priority) < priorityRank(b.Priority)
		case SortDueDate:
			switch {
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			default:
				return a.DueDate.Before(*b.DueDate)
			}
		case SortModifiedAt:
			return a.LastTouched().After(b.LastTouched())
		case SortStatus:
			return a.Status < b.Status
		case SortTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true)
	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0AF")).
			Padding(0, 1)
	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Padding(0, 1)
	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			SetString("│")
)

// Title renders the sort and filter header above the list.
func Title(q Query) string {
	current, _ := ParseSortKey(string(q.Sort))

	var sortStatus []string
	for _, k := range SortKeys {
		if k == current {
			sortStatus = append(sortStatus, activeStyle.Render(string(k)))
		} else {
			sortStatus = append(sortStatus, inactiveStyle.Render(string(k)))
		}
	}

	sortLine := fmt.Sprintf("%s %s",
		titleStyle.Render("Sort:"),
		strings.Join(sortStatus, dividerStyle.String()),
	)

	filterLine := fmt.Sprintf("%s %s",
		titleStyle.Render("Filter:"),
		activeStyle.Render(q.Filter.Summary()),
	)
	if s := strings.TrimSpace(q.Search); s != "" {
		filterLine += fmt.Sprintf(" %s %s", titleStyle.Render("Search:"), activeStyle.Render(s))
	}

	return fmt.Sprintf("%s\n%s", sortLine, filterLine)
}

// DefaultQuery builds the starting query for a sort setting.
func DefaultQuery(sortSetting string) Query {
	key, ok := ParseSortKey(sortSetting)
	if !ok {
		key, _ = ParseSortKey(constants.DefaultSort)
	}
	return Query{Sort: key}
}
