package submodels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/forgetful/internal/note"
)

const (
	title = iota
	tags
	due
	content
)

const (
	hotPink  = lipgloss.Color("#0AF")
	darkGray = lipgloss.Color("#767676")
)

var (
	formInputStyle = lipgloss.NewStyle().Foreground(hotPink)
	formTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Background(lipgloss.Color("transparent")).
			Padding(1, 0)
	formErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))

	continueStyle = lipgloss.NewStyle().Foreground(darkGray)
)

// FormValues are the raw strings entered in the note form.
type FormValues struct {
	ID      string
	Title   string
	Tags    string
	Due     string
	Content string
}

// FormSubmittedMsg carries the form values when the user saves.
type FormSubmittedMsg struct {
	Values FormValues
}

// FormCancelledMsg is sent when the form is dismissed without saving.
type FormCancelledMsg struct{}

type FormModel struct {
	Inputs    []textinput.Model
	Content   textarea.Model
	Focused   int
	editingID string
	err       string
}

func NewFormModel() FormModel {
	inputs := make([]textinput.Model, 3)
	inputs[title] = textinput.New()
	inputs[title].Placeholder = "What do I need to remember?"
	inputs[title].CharLimit = 200
	inputs[title].Width = 50
	inputs[title].Prompt = ""

	inputs[tags] = textinput.New()
	inputs[tags].Placeholder = "work, home"
	inputs[tags].CharLimit = 256
	inputs[tags].Width = 50
	inputs[tags].Prompt = ""

	inputs[due] = textinput.New()
	inputs[due].Placeholder = note.DateLayout
	inputs[due].CharLimit = 40
	inputs[due].Width = 50
	inputs[due].Prompt = ""

	ta := textarea.New()
	ta.Placeholder = "Details, checklists (- [ ] like this)..."
	ta.SetWidth(60)
	ta.SetHeight(8)
	ta.ShowLineNumbers = false

	m := FormModel{Inputs: inputs, Content: ta}
	m.focus(title)
	return m
}

// Load fills the form from an existing note for editing.
func (m *FormModel) Load(n note.Note) {
	m.editingID = n.ID
	m.Inputs[title].SetValue(n.Title)
	m.Inputs[tags].SetValue(strings.Join(n.Tags, ", "))
	m.Inputs[due].SetValue(note.FormatDueDate(n.DueDate))
	m.Content.SetValue(n.Content)
	m.err = ""
	m.focus(title)
}

// Reset clears the form for a new note.
func (m *FormModel) Reset() {
	m.editingID = ""
	for i := range m.Inputs {
		m.Inputs[i].Reset()
	}
	m.Content.Reset()
	m.err = ""
	m.focus(title)
}

// Editing reports whether the form holds an existing note.
func (m FormModel) Editing() bool {
	return m.editingID != ""
}

func (m FormModel) Values() FormValues {
	return FormValues{
		ID:      m.editingID,
		Title:   strings.TrimSpace(m.Inputs[title].Value()),
		Tags:    m.Inputs[tags].Value(),
		Due:     strings.TrimSpace(m.Inputs[due].Value()),
		Content: m.Content.Value(),
	}
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return FormCancelledMsg{} }
		case tea.KeyCtrlS:
			return m.submit()
		case tea.KeyShiftTab:
			m.focus((m.Focused + content) % (content + 1))
			return m, nil
		case tea.KeyTab:
			m.focus((m.Focused + 1) % (content + 1))
			return m, nil
		case tea.KeyEnter:
			if m.Focused != content {
				m.focus(m.Focused + 1)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.Focused == content {
		m.Content, cmd = m.Content.Update(msg)
		return m, cmd
	}
	m.Inputs[m.Focused], cmd = m.Inputs[m.Focused].Update(msg)
	return m, cmd
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	values := m.Values()
	if values.Title == "" {
		m.err = "Note text cannot be empty!"
		m.focus(title)
		return m, nil
	}
	m.err = ""
	return m, func() tea.Msg { return FormSubmittedMsg{Values: values} }
}

func (m *FormModel) focus(idx int) {
	m.Focused = idx
	for i := range m.Inputs {
		if i == idx {
			m.Inputs[i].Focus()
		} else {
			m.Inputs[i].Blur()
		}
	}
	if idx == content {
		m.Content.Focus()
	} else {
		m.Content.Blur()
	}
}

func (m FormModel) View() string {
	heading := "New note"
	if m.Editing() {
		heading = "Edit note"
	}

	var b strings.Builder
	b.WriteString(formTitleStyle.Render(heading))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n%s\n\n", formInputStyle.Width(30).Render("Title"), m.Inputs[title].View())
	fmt.Fprintf(&b, "%s\n%s\n\n", formInputStyle.Width(30).Render("Tags (comma separated)"), m.Inputs[tags].View())
	fmt.Fprintf(&b, "%s\n%s\n\n", formInputStyle.Width(30).Render("Due date"), m.Inputs[due].View())
	fmt.Fprintf(&b, "%s\n%s\n\n", formInputStyle.Width(30).Render("Content"), m.Content.View())
	if m.err != "" {
		b.WriteString(formErrorStyle.Render(m.err))
		b.WriteString("\n\n")
	}
	b.WriteString(continueStyle.Render("tab next • shift+tab prev • ctrl+s save • esc cancel"))
	return b.String()
}
