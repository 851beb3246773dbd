package settings

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/erikgeiser/promptkit/selection"

	"github.com/Paintersrp/forgetful/internal/config"
	"github.com/Paintersrp/forgetful/internal/constants"
)

// Store is where the panel reads and writes settings.
type Store interface {
	CurrentSettings() config.Settings
	UpdateSettings(next config.Settings) error
}

// ClosedMsg is sent when the panel is dismissed. Changed reports whether
// any setting was saved while it was open.
type ClosedMsg struct {
	Changed bool
}

type ListItem struct {
	field config.Field
	value string
}

func (i ListItem) Title() string       { return i.field.Label }
func (i ListItem) Description() string { return fmt.Sprintf("%s (%s)", i.value, i.field.Key) }
func (i ListItem) FilterValue() string { return i.field.Label }

type listKeyMap struct {
	toggleEditItem key.Binding
	exitInputMode  key.Binding
	close          key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		toggleEditItem: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit item"),
		),
		exitInputMode: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "exit input mode"),
		),
		close: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "close settings"),
		),
	}
}

type ListModel struct {
	list         list.Model
	keys         *listKeyMap
	store        Store
	input        textinput.Model
	inputActive  bool
	choice       *selection.Model[string]
	choiceActive bool
	editing      config.Field
	changed      bool
	lastErr      error
}

func NewListModel(s Store) ListModel {
	listKeys := newListKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedItemStyle
	delegate.Styles.SelectedDesc = selectedItemStyle

	configList := list.New(itemsFor(s.CurrentSettings()), delegate, 0, 0)
	configList.Title = "Manager-chan's Settings"
	configList.Styles.Title = titleStyle
	configList.SetFilteringEnabled(false)
	configList.KeyMap.Quit.SetEnabled(false)
	configList.KeyMap.ForceQuit.SetEnabled(false)
	configList.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{listKeys.toggleEditItem, listKeys.close}
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 32
	ti.Width = 20

	return ListModel{
		list:  configList,
		keys:  listKeys,
		store: s,
		input: ti,
	}
}

func itemsFor(s config.Settings) []list.Item {
	items := make([]list.Item, len(config.Fields))
	for i, f := range config.Fields {
		items[i] = ListItem{field: f, value: f.Value(s)}
	}
	return items
}

// SetSize fits the panel into the given terminal size.
func (m *ListModel) SetSize(width, height int) {
	h, v := appStyle.GetFrameSize()
	m.list.SetSize(width-h, height-v)
}

// Err is the most recent save or validation failure, if any.
func (m ListModel) Err() error {
	return m.lastErr
}

func (m ListModel) Init() tea.Cmd {
	return nil
}

func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.choiceActive:
			return m.handleChoiceUpdate(msg)
		case m.inputActive:
			return m.handleInputUpdate(msg)
		}

		switch {
		case key.Matches(msg, m.keys.toggleEditItem):
			return m.beginEdit()
		case key.Matches(msg, m.keys.close):
			changed := m.changed
			return m, func() tea.Msg { return ClosedMsg{Changed: changed} }
		}
	}

	newListModel, cmd := m.list.Update(msg)
	m.list = newListModel
	return m, cmd
}

func (m ListModel) beginEdit() (ListModel, tea.Cmd) {
	item, ok := m.list.SelectedItem().(ListItem)
	if !ok {
		return m, nil
	}
	m.editing = item.field

	switch item.field.Kind {
	case config.KindBool:
		next := "true"
		if item.value == "true" {
			next = "false"
		}
		cmd := m.apply(next)
		return m, cmd

	case config.KindChoice:
		sel := selection.New(
			"Please select a "+item.field.Label+".",
			item.field.Choices,
		)
		sel.Filter = nil
		m.choice = selection.NewModel(sel)
		m.choiceActive = true
		return m, m.choice.Init()

	default:
		m.input.SetValue(item.value)
		m.input.CursorEnd()
		m.inputActive = true
		cmd := m.input.Focus()
		return m, cmd
	}
}

func (m ListModel) handleChoiceUpdate(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.exitInputMode):
		m.choiceActive = false
		return m, nil

	case key.Matches(msg, m.keys.toggleEditItem):
		// Read the choice here; the selection model ends its own program on
		// submit, which must not reach ours.
		c, err := m.choice.Value()
		if err != nil {
			return m, nil
		}
		m.choiceActive = false
		cmd := m.apply(c)
		return m, cmd
	}

	_, cmd := m.choice.Update(msg)
	return m, cmd
}

func (m ListModel) handleInputUpdate(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.exitInputMode):
		m.input.Blur()
		m.inputActive = false
		return m, nil

	case key.Matches(msg, m.keys.toggleEditItem):
		value := m.input.Value()
		m.input.Blur()
		m.input.Reset()
		m.inputActive = false
		cmd := m.apply(value)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply validates value for the field being edited and saves it.
func (m *ListModel) apply(value string) tea.Cmd {
	next := m.store.CurrentSettings()
	if err := next.Set(m.editing.Key, value); err != nil {
		m.lastErr = err
		return m.list.NewStatusMessage(errorMessageStyle(fmt.Sprintf(constants.Messages["settings_error"], err)))
	}
	if err := m.store.UpdateSettings(next); err != nil {
		m.lastErr = err
		return m.list.NewStatusMessage(errorMessageStyle(fmt.Sprintf(constants.Messages["settings_error"], err)))
	}

	m.lastErr = nil
	m.changed = true
	index := m.list.Index()
	setCmd := m.list.SetItems(itemsFor(m.store.CurrentSettings()))
	m.list.Select(index)
	return tea.Batch(
		setCmd,
		m.list.NewStatusMessage(statusMessageStyle(constants.Messages["settings_saved"]+" "+m.editing.Label)),
	)
}

func (m ListModel) View() string {
	if m.inputActive {
		return appStyle.Render(inputStyle.Render(
			fmt.Sprintf("%s\n\n%s\n\n%s",
				titleStyle.Render(m.editing.Label),
				m.input.View(),
				hintStyle.Render("enter to save, esc to cancel"),
			),
		))
	}
	if m.choiceActive {
		return appStyle.Render(m.choice.View())
	}
	return appStyle.Render(m.list.View())
}

// program runs the panel on its own and quits when it closes.
type program struct {
	panel ListModel
}

func (p program) Init() tea.Cmd {
	return p.panel.Init()
}

func (p program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ClosedMsg:
		return p, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.panel, cmd = p.panel.Update(msg)
	return p, cmd
}

func (p program) View() string {
	return p.panel.View()
}

// Run opens the settings panel as its own program.
func Run(s Store) error {
	if _, err := tea.NewProgram(program{panel: NewListModel(s)}, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running settings: %w", err)
	}
	return nil
}
