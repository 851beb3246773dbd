package submodels

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/forgetful/internal/note"
)

func typeInto(m FormModel, s string) FormModel {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestFormRejectsEmptyTitle(t *testing.T) {
	m := NewFormModel()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Fatalf("expected no submit command for an empty title")
	}
	if m.err == "" {
		t.Fatalf("expected an error message")
	}
}

func TestFormSubmitsValues(t *testing.T) {
	m := NewFormModel()
	m = typeInto(m, "Buy milk")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeInto(m, "errands, Home")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeInto(m, "2024-05-01")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatalf("expected a submit command")
	}
	msg, ok := cmd().(FormSubmittedMsg)
	if !ok {
		t.Fatalf("expected FormSubmittedMsg")
	}

	want := FormValues{Title: "Buy milk", Tags: "errands, Home", Due: "2024-05-01"}
	if msg.Values != want {
		t.Fatalf("got %+v, want %+v", msg.Values, want)
	}
}

func TestFormLoadAndReset(t *testing.T) {
	n := note.New("Existing", "body", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	n.Tags = []string{"a", "b"}

	m := NewFormModel()
	m.Load(n)
	if !m.Editing() {
		t.Fatalf("expected edit mode after Load")
	}
	v := m.Values()
	if v.ID != n.ID || v.Title != "Existing" || v.Tags != "a, b" || v.Content != "body" {
		t.Fatalf("unexpected values after Load: %+v", v)
	}

	m.Reset()
	if m.Editing() || m.Values().Title != "" {
		t.Fatalf("expected a blank form after Reset")
	}
}

func TestFormEscCancels(t *testing.T) {
	m := NewFormModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected a cancel command")
	}
	if _, ok := cmd().(FormCancelledMsg); !ok {
		t.Fatalf("expected FormCancelledMsg")
	}
}
