// Package note provides the note/task record and its metadata cycles.
package note

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
)

// DateLayout is the persisted and accepted format for due dates.
const DateLayout = "2006-01-02"

// Note represents a single note or task with its metadata.
type Note struct {
	ID         string
	Title      string
	Content    string
	Status     Status
	Priority   Priority
	Tags       []string
	DueDate    *time.Time
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// New creates a note with a fresh id, stamped at now.
func New(title, content string, now time.Time) Note {
	ts := Timestamp(now)
	return Note{
		ID:         uuid.NewString(),
		Title:      title,
		Content:    content,
		Status:     Todo,
		Priority:   PriorityNone,
		CreatedAt:  ts,
		ModifiedAt: ts,
	}
}

// Timestamp normalises a time for storage: UTC, whole seconds, no monotonic
// reading.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// Touch records a modification at now. ModifiedAt never falls behind
// CreatedAt.
func (n *Note) Touch(now time.Time) {
	ts := Timestamp(now)
	if ts.Before(n.CreatedAt) {
		ts = n.CreatedAt
	}
	n.ModifiedAt = ts
}

// LastTouched is the reference time for forgetting: the last modification,
// or creation when a record carries no modification time.
func (n Note) LastTouched() time.Time {
	if n.ModifiedAt.IsZero() {
		return n.CreatedAt
	}
	return n.ModifiedAt
}

// Clone returns a deep copy so callers cannot alias store-owned slices.
func (n Note) Clone() Note {
	c := n
	c.Tags = append([]string(nil), n.Tags...)
	if n.DueDate != nil {
		d := *n.DueDate
		c.DueDate = &d
	}
	return c
}

// HasTag reports whether the note carries tag, ignoring case.
func (n Note) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ShortID is the leading segment of the id, used in dialog titles.
func (n Note) ShortID() string {
	if len(n.ID) > 8 {
		return n.ID[:8]
	}
	return n.ID
}

// ParseTags splits comma separated input into clean tags: trimmed, lower
// case, unique and sorted.
func ParseTags(input string) []string {
	return NormalizeTags(strings.Split(input, ","))
}

func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	sort.Strings(tags)
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// ParseDueDate parses user input into a date. Empty input clears the date.
// YYYY-MM-DD is tried first; anything else goes through dateparse in the
// location of now.
func ParseDueDate(input string, now time.Time) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	t, err := time.Parse(DateLayout, input)
	if err != nil {
		t, err = dateparse.ParseIn(input, now.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid due date %q: %w", input, err)
		}
	}

	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d, nil
}

// FormatDueDate renders a due date for display and persistence.
func FormatDueDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}

// timestampLayouts are tried in order for times without a zone, which the
// first release wrote as naive local ISO 8601.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseTimestamp reads a stored created/modified time. RFC 3339 is tried
// first, then the naive layouts in local time, then dateparse.
func ParseTimestamp(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339Nano, input); err == nil {
		return t, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return t, nil
		}
	}
	t, err := dateparse.ParseLocal(input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", input, err)
	}
	return t, nil
}

// stamp is a timestamp on the wire. Missing or unreadable values decode to
// the zero time so the record survives; the store stamps them on load.
type stamp time.Time

func (s stamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(s).Format(time.RFC3339Nano))
}

func (s *stamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = stamp{}
		return nil
	}
	t, err := ParseTimestamp(raw)
	if err != nil {
		*s = stamp{}
		return nil
	}
	*s = stamp(t)
	return nil
}

type wireNote struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Status     Status   `json:"status"`
	Priority   Priority `json:"priority"`
	Tags       []string `json:"tags"`
	DueDate    *string  `json:"due_date"`
	CreatedAt  stamp    `json:"created_at"`
	ModifiedAt stamp    `json:"modified_at"`

	// Field names used by the first release of the notes file.
	LegacyText  string `json:"text,omitempty"`
	LegacyNotes string `json:"notes,omitempty"`
}

func (n Note) MarshalJSON() ([]byte, error) {
	w := wireNote{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		Status:     n.Status,
		Priority:   n.Priority,
		Tags:       n.Tags,
		CreatedAt:  stamp(n.CreatedAt),
		ModifiedAt: stamp(n.ModifiedAt),
	}
	if w.Tags == nil {
		w.Tags = []string{}
	}
	if n.DueDate != nil {
		s := FormatDueDate(n.DueDate)
		w.DueDate = &s
	}
	return json.Marshal(w)
}

func (n *Note) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return fmt.Errorf("note record is null")
	}

	var w wireNote
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*n = Note{
		ID:         w.ID,
		Title:      w.Title,
		Content:    w.Content,
		Status:     w.Status,
		Priority:   w.Priority,
		Tags:       NormalizeTags(w.Tags),
		CreatedAt:  time.Time(w.CreatedAt),
		ModifiedAt: time.Time(w.ModifiedAt),
	}
	if n.Title == "" {
		n.Title = w.LegacyText
	}
	if n.Content == "" {
		n.Content = w.LegacyNotes
	}
	if w.DueDate != nil && *w.DueDate != "" {
		d, err := time.Parse(DateLayout, *w.DueDate)
		if err != nil {
			// Keep the record; a bad date is dropped rather than losing the note.
			n.DueDate = nil
		} else {
			n.DueDate = &d
		}
	}
	if n.ModifiedAt.Before(n.CreatedAt) {
		n.ModifiedAt = n.CreatedAt
	}
	return nil
}
