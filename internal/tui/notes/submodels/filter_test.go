package submodels

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/forgetful/internal/note"
)

func TestFilterSelectsOnePerGroup(t *testing.T) {
	m := NewFilterModel()
	m.SetTags([]string{"work", "home"})

	// cursor starts on the first status entry
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeySpace})

	applied := m.Applied()
	if applied.Status == nil || *applied.Status != note.InProgress {
		t.Fatalf("expected In Progress to replace Todo, got %+v", applied.Status)
	}
	if applied.Priority != nil || applied.Tag != "" {
		t.Fatalf("expected other groups untouched, got %+v", applied)
	}

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if m.Applied().Status != nil {
		t.Fatalf("expected second toggle to clear the status")
	}
}

func TestFilterSetSelectionAndClear(t *testing.T) {
	m := NewFilterModel()
	m.SetTags([]string{"work"})

	p := note.PriorityB
	m.SetSelection(nil, &p, "Work")

	applied := m.Applied()
	if applied.Priority == nil || *applied.Priority != note.PriorityB || applied.Tag != "work" {
		t.Fatalf("unexpected selection %+v", applied)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	cleared := m.Applied()
	if cleared.Priority != nil || cleared.Tag != "" {
		t.Fatalf("expected ctrl+l to clear, got %+v", cleared)
	}
}

func TestFilterEnterAndEsc(t *testing.T) {
	m := NewFilterModel()

	cmd, handled := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !handled || cmd == nil {
		t.Fatalf("expected enter to be handled")
	}
	if _, ok := cmd().(FilterAppliedMsg); !ok {
		t.Fatalf("expected FilterAppliedMsg")
	}

	cmd, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(FilterClosedMsg); !ok {
		t.Fatalf("expected FilterClosedMsg")
	}
}

func TestFilterDropsVanishedTag(t *testing.T) {
	m := NewFilterModel()
	m.SetTags([]string{"gone"})
	m.SetSelection(nil, nil, "gone")
	m.SetTags(nil)

	if m.Applied().Tag != "" {
		t.Fatalf("expected selection of a vanished tag to be dropped")
	}
}
