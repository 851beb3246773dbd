package note

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestStatusCyclesInLifecycleOrder(t *testing.T) {
	s := Todo
	want := []Status{InProgress, Done, Archived, Todo}
	for i, expected := range want {
		s = s.Next()
		if s != expected {
			t.Fatalf("step %d: expected %v, got %v", i, expected, s)
		}
	}
}

func TestPriorityCyclesThroughNone(t *testing.T) {
	p := PriorityNone
	want := []Priority{PriorityA, PriorityB, PriorityC, PriorityNone}
	for i, expected := range want {
		p = p.Next()
		if p != expected {
			t.Fatalf("step %d: expected %q, got %q", i, expected.Label(), p.Label())
		}
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags(" Work, home ,work,, Errands")
	want := []string{"errands", "home", "work"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseTags() = %v, want %v", got, want)
	}

	if tags := ParseTags(" , "); tags != nil {
		t.Fatalf("expected nil tags for blank input, got %v", tags)
	}
}

func TestParseDueDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "iso", input: "2024-05-01", want: "2024-05-01"},
		{name: "slashes", input: "05/02/2024", want: "2024-05-02"},
		{name: "empty clears", input: "   ", want: ""},
		{name: "garbage", input: "next blue moon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDueDate(tt.input, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if FormatDueDate(got) != tt.want {
				t.Fatalf("ParseDueDate(%q) = %q, want %q", tt.input, FormatDueDate(got), tt.want)
			}
		})
	}
}

func TestTouchNeverPrecedesCreation(t *testing.T) {
	created := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	n := New("title", "", created)

	n.Touch(created.Add(-time.Hour))
	if n.ModifiedAt.Before(n.CreatedAt) {
		t.Fatalf("modified_at %v precedes created_at %v", n.ModifiedAt, n.CreatedAt)
	}

	later := created.Add(36 * time.Hour)
	n.Touch(later)
	if !n.ModifiedAt.Equal(later) {
		t.Fatalf("expected modified_at %v, got %v", later, n.ModifiedAt)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	due, _ := ParseDueDate("2024-02-01", now)

	n := New("Buy milk", "- [ ] whole\n- [x] oat", now)
	n.Status = InProgress
	n.Priority = PriorityB
	n.Tags = []string{"errands", "home"}
	n.DueDate = due
	n.Touch(now.Add(time.Hour))

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Note
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(n, back) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", back, n)
	}
}

func TestJSONEncodesLabels(t *testing.T) {
	n := New("x", "", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	n.Status = InProgress

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out := string(data)
	for _, want := range []string{`"status":"In Progress"`, `"priority":null`, `"due_date":null`, `"tags":[]`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestUnmarshalToleratesLegacyAndUnknownValues(t *testing.T) {
	raw := `{
		"id": "abc",
		"text": "Old title",
		"notes": "old body",
		"status": "Someday",
		"priority": "Z",
		"tags": ["B", "a"],
		"due_date": "not-a-date",
		"created_at": "2024-01-05T00:00:00Z",
		"modified_at": "2024-01-01T00:00:00Z"
	}`

	var n Note
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if n.Title != "Old title" || n.Content != "old body" {
		t.Fatalf("legacy fields not mapped: %+v", n)
	}
	if n.Status != Todo || n.Priority != PriorityNone {
		t.Fatalf("expected fallbacks, got status %v priority %q", n.Status, n.Priority.Label())
	}
	if !reflect.DeepEqual(n.Tags, []string{"a", "b"}) {
		t.Fatalf("tags not normalised: %v", n.Tags)
	}
	if n.DueDate != nil {
		t.Fatalf("expected bad due date to be dropped")
	}
	if n.ModifiedAt.Before(n.CreatedAt) {
		t.Fatalf("modified_at must be clamped to created_at")
	}
}

func TestSubtasks(t *testing.T) {
	content := "# Plan\n\n- [ ] draft\n- [x] outline\n- plain item\n"

	done, total := Subtasks(content)
	if done != 1 || total != 2 {
		t.Fatalf("Subtasks() = %d/%d, want 1/2", done, total)
	}

	if done, total := Subtasks(""); done != 0 || total != 0 {
		t.Fatalf("expected no subtasks in empty content")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{in: "2024-05-01T10:00:00Z", want: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), ok: true},
		{in: "2024-05-01T10:00:00+02:00", want: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), ok: true},
		{in: "2024-05-01T10:00:00", want: time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local), ok: true},
		{in: "2024-05-01T10:00:00.5", want: time.Date(2024, 5, 1, 10, 0, 0, 500000000, time.Local), ok: true},
		{in: "2024-05-01 10:00:00", want: time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local), ok: true},
		{in: "", ok: false},
		{in: "garbage", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.ok != (err == nil) {
				t.Fatalf("ParseTimestamp(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			}
			if tt.ok && !got.Equal(tt.want) {
				t.Fatalf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnmarshalKeepsRecordWithUnreadableTimes(t *testing.T) {
	var n Note
	if err := json.Unmarshal([]byte(`{"id": "x", "title": "t", "created_at": 12, "modified_at": "soon"}`), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !n.CreatedAt.IsZero() || !n.ModifiedAt.IsZero() {
		t.Fatalf("expected zero times for the store to stamp, got %v / %v", n.CreatedAt, n.ModifiedAt)
	}
}
