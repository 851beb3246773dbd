package notes

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/forgetful/internal/note"
	"github.com/Paintersrp/forgetful/internal/state"
	"github.com/Paintersrp/forgetful/internal/tui/notes/submodels"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func openState(t *testing.T) *state.State {
	t.Helper()
	s, err := state.NewState(state.Options{
		DataDir:    t.TempDir(),
		DontForget: true,
		Seed:       7,
		LogOutput:  io.Discard,
		Now:        func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func addNote(t *testing.T, s *state.State, title string, tags ...string) note.Note {
	t.Helper()
	n := note.New(title, "", fixedNow.Add(-time.Hour))
	n.Tags = tags
	stored, err := s.Store.Add(n)
	require.NoError(t, err)
	return stored
}

func newModel(t *testing.T, s *state.State) *NoteListModel {
	t.Helper()
	m := NewNoteListModel(s)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func visibleTitles(m *NoteListModel) []string {
	var out []string
	for _, e := range m.view.Entries {
		out = append(out, e.Note.Title)
	}
	return out
}

func TestFormSubmitAddsAndSavesNote(t *testing.T) {
	s := openState(t)
	m := newModel(t, s)

	m.Update(runes("a"))
	require.Equal(t, modeForm, m.mode)

	m.Update(submodels.FormSubmittedMsg{Values: submodels.FormValues{
		Title: "Buy milk",
		Tags:  "Errands, home",
		Due:   "2024-06-03",
	}})

	assert.Equal(t, modeList, m.mode)
	require.Equal(t, 1, s.Store.Len())
	n := s.Store.All()[0]
	assert.Equal(t, []string{"errands", "home"}, n.Tags)
	assert.Equal(t, "2024-06-03", note.FormatDueDate(n.DueDate))

	data, err := os.ReadFile(s.Store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "Buy milk")
}

func TestFormSubmitIgnoresBadDueDate(t *testing.T) {
	s := openState(t)
	existing := addNote(t, s, "Taxes")
	due := fixedNow.Add(48 * time.Hour)
	existing.DueDate = &due
	_, err := s.Store.Update(existing)
	require.NoError(t, err)

	m := newModel(t, s)
	m.Update(submodels.FormSubmittedMsg{Values: submodels.FormValues{
		ID:    existing.ID,
		Title: "Taxes (federal)",
		Due:   "someday maybe",
	}})

	stored, err := s.Store.Get(existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Taxes (federal)", stored.Title)
	require.NotNil(t, stored.DueDate)
	assert.Equal(t, note.FormatDueDate(&due), note.FormatDueDate(stored.DueDate))
	assert.Equal(t, moodSad, m.mood)
}

func TestSpaceCyclesStatus(t *testing.T) {
	s := openState(t)
	n := addNote(t, s, "Call mom")
	m := newModel(t, s)

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	stored, err := s.Store.Get(n.ID)
	require.NoError(t, err)
	assert.Equal(t, note.InProgress, stored.Status)
	assert.True(t, stored.ModifiedAt.Equal(fixedNow))
}

func TestPriorityCycles(t *testing.T) {
	s := openState(t)
	n := addNote(t, s, "Pay rent")
	m := newModel(t, s)

	m.Update(runes("p"))

	stored, err := s.Store.Get(n.ID)
	require.NoError(t, err)
	assert.Equal(t, note.PriorityA, stored.Priority)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	s := openState(t)
	addNote(t, s, "Old idea")
	m := newModel(t, s)

	m.Update(runes("d"))
	require.Equal(t, modeConfirmDelete, m.mode)
	m.Update(runes("n"))

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, 1, s.Store.Len())

	m.Update(runes("d"))
	m.Update(runes("y"))

	assert.Equal(t, 0, s.Store.Len())
	assert.Empty(t, m.view.Entries)
}

func TestSearchNarrowsAndClears(t *testing.T) {
	s := openState(t)
	addNote(t, s, "Groceries")
	addNote(t, s, "Dentist")
	m := newModel(t, s)

	m.Update(runes("/"))
	require.Equal(t, modeSearch, m.mode)
	m.search.Input.SetValue("dent")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, []string{"Dentist"}, visibleTitles(m))

	m.Update(runes("/"))
	assert.Equal(t, modeList, m.mode)
	assert.Empty(t, m.query.Search)
	assert.Len(t, m.view.Entries, 2)
}

func TestEmptySearchIsCancelled(t *testing.T) {
	s := openState(t)
	addNote(t, s, "Groceries")
	m := newModel(t, s)

	m.Update(runes("/"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeList, m.mode)
	assert.Empty(t, m.query.Search)
}

func TestFilterAppliesAndClears(t *testing.T) {
	s := openState(t)
	addNote(t, s, "Report", "work")
	addNote(t, s, "Laundry", "home")
	m := newModel(t, s)

	m.Update(runes("f"))
	require.Equal(t, modeFilter, m.mode)
	m.Update(submodels.FilterAppliedMsg{Tag: "work"})

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, []string{"Report"}, visibleTitles(m))

	m.Update(runes("f"))
	assert.Equal(t, modeList, m.mode)
	assert.Empty(t, m.query.Filter.Tag)
	assert.Len(t, m.view.Entries, 2)
}

func TestToggleForgottenShowsArchived(t *testing.T) {
	s := openState(t)
	n := addNote(t, s, "Shelved")
	n.Status = note.Archived
	_, err := s.Store.Update(n)
	require.NoError(t, err)

	m := newModel(t, s)
	assert.Empty(t, m.view.Entries)
	assert.NotEmpty(t, m.emptyHint())

	m.Update(runes("F"))
	assert.Equal(t, []string{"Shelved"}, visibleTitles(m))

	m.Update(runes("F"))
	assert.Empty(t, m.view.Entries)
}

func TestCopyUsesClipboard(t *testing.T) {
	s := openState(t)
	n := addNote(t, s, "Recipe")
	n.Content = "two eggs"
	_, err := s.Store.Update(n)
	require.NoError(t, err)

	var copied string
	clipboardWrite = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWrite = clipboardWriteDefault })

	m := newModel(t, s)
	m.Update(runes("y"))
	assert.Equal(t, "Recipe\n\ntwo eggs", copied)

	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	m.Update(runes("y"))
	assert.Equal(t, moodSad, m.mood)
}

func TestSortMenuOpensAndCloses(t *testing.T) {
	s := openState(t)
	addNote(t, s, "One")
	m := newModel(t, s)

	m.Update(runes("s"))
	require.Equal(t, modeSort, m.mode)
	require.NotNil(t, m.sortSelect)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeList, m.mode)
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	s := openState(t)
	m := newModel(t, s)

	m.Update(runes("?"))
	require.Equal(t, modeHelp, m.mode)
	assert.Contains(t, m.View(), "Manager-chan's Forgetful Notes Help")

	m.Update(runes("x"))
	assert.Equal(t, modeList, m.mode)
}

func TestStartupMessageForDontForget(t *testing.T) {
	s := openState(t)
	addNote(t, s, "Anything")
	require.NoError(t, s.Store.Save())
	s.LoadReport = s.Store.Reload()

	m := newModel(t, s)
	assert.True(t, strings.Contains(m.startupMessage(), "Nothing will be forgotten"))
}

func TestQuitSavesNotes(t *testing.T) {
	s := openState(t)
	addNote(t, s, "Unsaved")
	m := newModel(t, s)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	data, err := os.ReadFile(s.Store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "Unsaved")
}

func TestDueLabel(t *testing.T) {
	past := fixedNow.Add(-48 * time.Hour)
	today := fixedNow.Add(time.Hour)
	future := fixedNow.Add(72 * time.Hour)

	assert.Empty(t, dueLabel(nil, fixedNow))
	assert.Contains(t, dueLabel(&past, fixedNow), "OVERDUE")
	assert.Contains(t, dueLabel(&today, fixedNow), "due today")
	assert.Contains(t, dueLabel(&future, fixedNow), "2024-06-04")
}
