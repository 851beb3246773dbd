package submodels

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFF"))

	cursorStyle = focusedStyle.Copy()
)

// InputModel is a single line prompt used for search.
type InputModel struct {
	Title      string
	Input      textinput.Model
	cursorMode cursor.Mode
}

func NewInputModel(title, placeholder string) InputModel {
	t := textinput.New()
	t.Cursor.Style = cursorStyle
	t.PromptStyle = focusedStyle
	t.TextStyle = focusedStyle
	t.Placeholder = placeholder
	t.CharLimit = 120

	return InputModel{
		Title: title,
		Input: t,
	}
}

func (m InputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m InputModel) Update(msg tea.Msg) (InputModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+r" {
		m.cursorMode++
		if m.cursorMode > cursor.CursorHide {
			m.cursorMode = cursor.CursorBlink
		}
		return m, m.Input.Cursor.SetMode(m.cursorMode)
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// Value returns the trimmed input.
func (m InputModel) Value() string {
	return strings.TrimSpace(m.Input.Value())
}

func (m InputModel) View() string {
	var b strings.Builder
	if m.Title != "" {
		b.WriteString(m.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(m.Input.View())
	return b.String()
}
