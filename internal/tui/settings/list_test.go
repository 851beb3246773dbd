package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/forgetful/internal/config"
)

type memoryStore struct {
	settings config.Settings
	saves    int
	failWith error
}

func (s *memoryStore) CurrentSettings() config.Settings { return s.settings }

func (s *memoryStore) UpdateSettings(next config.Settings) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.settings = next
	s.saves++
	return nil
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func selectKey(t *testing.T, m ListModel, key string) ListModel {
	t.Helper()
	for i, f := range config.Fields {
		if f.Key == key {
			m.list.Select(i)
			return m
		}
	}
	t.Fatalf("no field %q", key)
	return m
}

func newTestModel(store *memoryStore) ListModel {
	m := NewListModel(store)
	m.SetSize(120, 40)
	return m
}

func TestEnterTogglesBoolSetting(t *testing.T) {
	store := &memoryStore{settings: config.Defaults()}
	m := selectKey(t, newTestModel(store), "forgetting_enabled")

	m, _ = m.Update(keyMsg("enter"))

	assert.False(t, store.settings.ForgettingEnabled)
	assert.Equal(t, 1, store.saves)
	assert.NoError(t, m.Err())

	item, ok := m.list.SelectedItem().(ListItem)
	require.True(t, ok)
	assert.Equal(t, "false", item.value)
}

func TestNumericInputIsValidated(t *testing.T) {
	store := &memoryStore{settings: config.Defaults()}
	m := selectKey(t, newTestModel(store), "misspelling_probability")

	m, _ = m.Update(keyMsg("enter"))
	require.True(t, m.inputActive)

	m.input.SetValue("1.5")
	m, _ = m.Update(keyMsg("enter"))

	assert.False(t, m.inputActive)
	assert.Equal(t, 0, store.saves)
	var valueErr *config.ValueError
	assert.True(t, errors.As(m.Err(), &valueErr))
	assert.Equal(t, config.Defaults().MisspellingProbability, store.settings.MisspellingProbability)

	m, _ = m.Update(keyMsg("enter"))
	m.input.SetValue("0.5")
	m, _ = m.Update(keyMsg("enter"))

	assert.NoError(t, m.Err())
	assert.Equal(t, 0.5, store.settings.MisspellingProbability)
}

func TestEscapeCancelsInputWithoutSaving(t *testing.T) {
	store := &memoryStore{settings: config.Defaults()}
	m := selectKey(t, newTestModel(store), "forget_delay_days")

	m, _ = m.Update(keyMsg("enter"))
	m.input.SetValue("3")
	m, _ = m.Update(keyMsg("esc"))

	assert.False(t, m.inputActive)
	assert.Equal(t, 0, store.saves)
	assert.Equal(t, config.Defaults().ForgetDelayDays, store.settings.ForgetDelayDays)
}

func TestSaveFailureKeepsPreviousSettings(t *testing.T) {
	store := &memoryStore{settings: config.Defaults(), failWith: errors.New("disk full")}
	m := selectKey(t, newTestModel(store), "show_ascii_art")

	m, _ = m.Update(keyMsg("enter"))

	assert.EqualError(t, m.Err(), "disk full")
	assert.True(t, store.settings.ShowASCIIArt)
}

func TestEscapeClosesPanel(t *testing.T) {
	store := &memoryStore{settings: config.Defaults()}
	m := selectKey(t, newTestModel(store), "misspelling_persist")
	m, _ = m.Update(keyMsg("enter"))

	_, cmd := m.Update(keyMsg("esc"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(ClosedMsg)
	require.True(t, ok)
	assert.True(t, msg.Changed)
}
