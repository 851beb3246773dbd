// Package notes is Manager-chan's interactive note list.
package notes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/erikgeiser/promptkit/selection"

	"github.com/Paintersrp/forgetful/internal/constants"
	"github.com/Paintersrp/forgetful/internal/note"
	"github.com/Paintersrp/forgetful/internal/state"
	"github.com/Paintersrp/forgetful/internal/tui/notes/submodels"
	"github.com/Paintersrp/forgetful/internal/tui/settings"
	"github.com/Paintersrp/forgetful/internal/views"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeSearch
	modeFilter
	modeSort
	modeConfirmDelete
	modeHelp
	modeSettings
)

var (
	clipboardWriteDefault = clipboard.WriteAll
	// clipboardWrite is swapped out in tests.
	clipboardWrite = clipboardWriteDefault
)

type NoteListModel struct {
	list          list.Model
	keys          *listKeyMap
	state         *state.State
	query         views.Query
	view          views.View
	previews      *previewCache
	form          submodels.FormModel
	search        submodels.InputModel
	filter        *submodels.FilterModel
	sortSelect    *selection.Model[string]
	settings      settings.ListModel
	mode          mode
	mood          mood
	showDetails   bool
	showArt       bool
	pendingDelete note.Note
	width         int
	height        int
	initCmd       tea.Cmd
}

func NewNoteListModel(s *state.State) *NoteListModel {
	lkeys := newListKeyMap()
	current := s.CurrentSettings()

	l := list.New(nil, newItemDelegate(), 0, 0)
	l.Styles.Title = titleStyle
	l.SetStatusBarItemName("note", "notes")
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.AdditionalShortHelpKeys = lkeys.shortHelp
	l.AdditionalFullHelpKeys = lkeys.fullHelp

	m := &NoteListModel{
		list:     l,
		keys:     lkeys,
		state:    s,
		query:    views.DefaultQuery(current.DefaultSort),
		previews: newPreviewCache(),
		form:     submodels.NewFormModel(),
		search:   submodels.NewInputModel("Search notes", "title, content or tag"),
		filter:   submodels.NewFilterModel(),
		settings: settings.NewListModel(s),
		showArt:  current.ShowASCIIArt,
	}

	refreshCmd := m.refresh()
	m.initCmd = tea.Batch(refreshCmd, m.status(m.startupMessage()))
	return m
}

func (m *NoteListModel) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.watch())
}

func (m *NoteListModel) watch() tea.Cmd {
	if m.state.Watcher == nil {
		return nil
	}
	return m.state.Watcher.Start()
}

func (m *NoteListModel) startupMessage() string {
	r := m.state.LoadReport
	switch {
	case r.Misplaced != "":
		m.mood = moodSad
		return fmt.Sprintf(constants.Messages["forgot_file"], r.Misplaced)
	case r.Err != nil:
		m.mood = moodSad
		return fmt.Sprintf(constants.Messages["corrupt"], r.Path, r.Err)
	case r.Fresh:
		return fmt.Sprintf(constants.Messages["fresh"], r.Path)
	case m.state.Session.Overridden():
		m.mood = moodHappy
		return constants.Messages["dont_forget_active"]
	case m.view.ForgottenCount > 0:
		m.mood = moodSad
		return fmt.Sprintf(constants.Messages["forgot_items"], r.Loaded, m.view.ForgottenCount)
	case r.Loaded > 0:
		return fmt.Sprintf(constants.Messages["loaded"], r.Loaded)
	default:
		return constants.Messages["welcome"]
	}
}

func (m *NoteListModel) status(msg string) tea.Cmd {
	return m.list.NewStatusMessage(statusStyle(msg))
}

func (m *NoteListModel) fail(err error) tea.Cmd {
	m.mood = moodSad
	m.state.Logger.Error("action failed", "err", err)
	return m.status(fmt.Sprintf(constants.Messages["error"], err))
}

// refresh rebuilds the list from the store, drawing fresh forget and
// misspell decisions for every note.
func (m *NoteListModel) refresh() tea.Cmd {
	now := m.state.Now()
	v, err := m.state.Refresh(m.query)
	m.view = v
	m.list.Title = views.Title(m.query)

	cmds := []tea.Cmd{m.list.SetItems(castToListItems(newListItems(v.Entries, now)))}
	if err != nil {
		cmds = append(cmds, m.fail(err))
	}
	return tea.Batch(cmds...)
}

func (m *NoteListModel) selected() (ListItem, bool) {
	item, ok := m.list.SelectedItem().(ListItem)
	return item, ok
}

func (m *NoteListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.settings.SetSize(msg.Width, msg.Height)
		return m, nil

	case state.NotesFileChangedMsg:
		return m, m.handleExternalChange()

	case state.NotesWatcherErrMsg:
		m.state.Logger.Warn("notes watcher error", "err", msg.Err)
		return m, m.watch()

	case submodels.FormSubmittedMsg:
		return m, m.handleFormSubmit(msg.Values)

	case submodels.FormCancelledMsg:
		m.mode = modeList
		m.mood = moodIdle
		return m, m.status(constants.Messages["edit_cancelled"])

	case submodels.FilterAppliedMsg:
		return m, m.applyFilter(msg)

	case submodels.FilterClosedMsg:
		m.mode = modeList
		m.mood = moodIdle
		return m, nil

	case settings.ClosedMsg:
		m.mode = modeList
		m.mood = moodIdle
		if !msg.Changed {
			return m, nil
		}
		return m, tea.Batch(m.applySettings(), m.status(constants.Messages["settings_saved"]))

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, m.quit()
		}

		switch m.mode {
		case modeForm:
			return m.handleFormUpdate(msg)
		case modeSearch:
			return m.handleSearchUpdate(msg)
		case modeFilter:
			return m.handleFilterUpdate(msg)
		case modeSort:
			return m.handleSortUpdate(msg)
		case modeConfirmDelete:
			return m.handleConfirmUpdate(msg)
		case modeHelp:
			m.mode = modeList
			return m, nil
		case modeSettings:
			var cmd tea.Cmd
			m.settings, cmd = m.settings.Update(msg)
			return m, cmd
		default:
			if cmd, handled := m.handleDefaultUpdate(msg); handled {
				return m, cmd
			}
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	// Cursor blinks and similar ticks go to whichever submodel is open.
	switch m.mode {
	case modeForm:
		m.form, cmd = m.form.Update(msg)
		cmds = append(cmds, cmd)
	case modeSearch:
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	case modeSettings:
		m.settings, cmd = m.settings.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleDefaultUpdate runs list mode shortcuts. Unhandled keys fall through
// to the list for navigation.
func (m *NoteListModel) handleDefaultUpdate(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.add):
		m.form.Reset()
		m.mode = modeForm
		m.mood = moodThinking
		return m.form.Init(), true

	case key.Matches(msg, m.keys.edit):
		item, ok := m.selected()
		if !ok {
			return nil, true
		}
		stored, err := m.state.Store.Get(item.Note().ID)
		if err != nil {
			return m.fail(err), true
		}
		m.form.Load(stored)
		m.mode = modeForm
		m.mood = moodThinking
		return m.form.Init(), true

	case key.Matches(msg, m.keys.remove):
		item, ok := m.selected()
		if !ok {
			return nil, true
		}
		m.pendingDelete = item.Note()
		m.mode = modeConfirmDelete
		m.mood = moodThinking
		return nil, true

	case key.Matches(msg, m.keys.cycleStatus):
		return m.cycle(func(n *note.Note) string {
			n.Status = n.Status.Next()
			return fmt.Sprintf(constants.Messages["status_update"], n.Status)
		}), true

	case key.Matches(msg, m.keys.cyclePriority):
		return m.cycle(func(n *note.Note) string {
			n.Priority = n.Priority.Next()
			return fmt.Sprintf(constants.Messages["priority_update"], n.Priority.Label())
		}), true

	case key.Matches(msg, m.keys.sort):
		sel := selection.New("Sort notes by...", sortChoices())
		sel.Filter = nil
		m.sortSelect = selection.NewModel(sel)
		m.mode = modeSort
		return m.sortSelect.Init(), true

	case key.Matches(msg, m.keys.filter):
		if m.hasNarrowing() {
			m.query.Filter.Status = nil
			m.query.Filter.Priority = nil
			m.query.Filter.Tag = ""
			m.query.Search = ""
			return tea.Batch(m.refresh(), m.status(constants.Messages["filters_cleared"])), true
		}
		m.filter.SetTags(m.allTags())
		m.filter.SetSelection(m.query.Filter.Status, m.query.Filter.Priority, m.query.Filter.Tag)
		m.mode = modeFilter
		return nil, true

	case key.Matches(msg, m.keys.search):
		if m.query.Search != "" {
			m.query.Search = ""
			return tea.Batch(m.refresh(), m.status(constants.Messages["search_cleared"])), true
		}
		m.search.Input.Reset()
		m.mode = modeSearch
		m.mood = moodThinking
		return tea.Batch(m.search.Input.Focus(), m.search.Init()), true

	case key.Matches(msg, m.keys.toggleForgotten):
		show := !m.query.Filter.IncludeForgotten
		m.query.Filter.IncludeForgotten = show
		m.query.Filter.IncludeArchived = show
		text := constants.Messages["hiding_forgotten"]
		if show {
			text = constants.Messages["showing_forgotten"]
		}
		return tea.Batch(m.refresh(), m.status(text)), true

	case key.Matches(msg, m.keys.copy):
		return m.copySelected(), true

	case key.Matches(msg, m.keys.toggleDetails):
		m.showDetails = !m.showDetails
		m.resize()
		return nil, true

	case key.Matches(msg, m.keys.help):
		m.mode = modeHelp
		return nil, true

	case key.Matches(msg, m.keys.settings):
		m.settings = settings.NewListModel(m.state)
		m.settings.SetSize(m.width, m.height)
		m.mode = modeSettings
		return m.settings.Init(), true
	}

	return nil, false
}

func (m *NoteListModel) hasNarrowing() bool {
	f := m.query.Filter
	return f.Status != nil || f.Priority != nil || strings.TrimSpace(f.Tag) != "" || m.query.Search != ""
}

func (m *NoteListModel) allTags() []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, n := range m.state.Store.All() {
		for _, t := range n.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}

// cycle applies change to the stored copy of the selected note and saves.
func (m *NoteListModel) cycle(change func(*note.Note) string) tea.Cmd {
	item, ok := m.selected()
	if !ok {
		return nil
	}
	stored, err := m.state.Store.Get(item.Note().ID)
	if err != nil {
		return m.fail(err)
	}

	text := change(&stored)
	if _, err := m.state.Store.Update(stored); err != nil {
		return m.fail(err)
	}
	if err := m.state.Store.Save(); err != nil {
		return m.fail(err)
	}
	m.mood = moodHappy
	return tea.Batch(m.refresh(), m.status(text))
}

func (m *NoteListModel) copySelected() tea.Cmd {
	item, ok := m.selected()
	if !ok {
		return nil
	}
	d := item.entry.Decision
	text := d.Title
	if strings.TrimSpace(d.Content) != "" {
		text += "\n\n" + d.Content
	}
	if err := clipboardWrite(text); err != nil {
		return m.fail(err)
	}
	m.mood = moodHappy
	return m.status(constants.Messages["copied"])
}

func (m *NoteListModel) handleFormUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m *NoteListModel) handleFormSubmit(values submodels.FormValues) tea.Cmd {
	now := m.state.Now()
	m.mode = modeList

	var messages []string
	due, dueErr := note.ParseDueDate(values.Due, now)
	if dueErr != nil {
		messages = append(messages, constants.Messages["due_date_error"])
	}

	if values.ID == "" {
		n := note.New(values.Title, values.Content, now)
		n.Tags = note.ParseTags(values.Tags)
		if dueErr == nil {
			n.DueDate = due
		}
		if _, err := m.state.Store.Add(n); err != nil {
			return m.fail(err)
		}
		messages = append([]string{constants.Messages["note_added"]}, messages...)
	} else {
		stored, err := m.state.Store.Get(values.ID)
		if err != nil {
			return m.fail(err)
		}
		stored.Title = values.Title
		stored.Content = values.Content
		stored.Tags = note.ParseTags(values.Tags)
		if dueErr == nil {
			stored.DueDate = due
		}
		if _, err := m.state.Store.Update(stored); err != nil {
			return m.fail(err)
		}
		messages = append([]string{constants.Messages["note_updated"]}, messages...)
	}

	if err := m.state.Store.Save(); err != nil {
		return m.fail(err)
	}

	m.mood = moodHappy
	if dueErr != nil {
		m.mood = moodSad
	}
	return tea.Batch(m.refresh(), m.status(strings.Join(messages, " ")))
}

func (m *NoteListModel) handleSearchUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Input.Blur()
		m.mode = modeList
		m.mood = moodIdle
		return m, nil

	case tea.KeyEnter:
		m.search.Input.Blur()
		m.mode = modeList
		value := m.search.Value()
		if value == "" {
			m.mood = moodIdle
			return m, m.status(constants.Messages["search_cancelled"])
		}

		m.query.Search = value
		refreshCmd := m.refresh()
		text := fmt.Sprintf(constants.Messages["search_applied"], value)
		m.mood = moodHappy
		if len(m.view.Entries) == 0 {
			text = fmt.Sprintf(constants.Messages["no_results"], value)
			m.mood = moodSad
		}
		return m, tea.Batch(refreshCmd, m.status(text))
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *NoteListModel) handleFilterUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, _ := m.filter.Update(msg)
	return m, cmd
}

func (m *NoteListModel) applyFilter(msg submodels.FilterAppliedMsg) tea.Cmd {
	m.mode = modeList
	m.query.Filter.Status = msg.Status
	m.query.Filter.Priority = msg.Priority
	m.query.Filter.Tag = msg.Tag

	refreshCmd := m.refresh()
	text := fmt.Sprintf(constants.Messages["filters_applied"], m.query.Filter.Summary())
	m.mood = moodHappy
	if len(m.view.Entries) == 0 {
		text = constants.Messages["no_matches"]
		m.mood = moodSad
	}
	return tea.Batch(refreshCmd, m.status(text))
}

func sortChoices() []string {
	out := make([]string, len(views.SortKeys))
	for i, k := range views.SortKeys {
		out[i] = string(k)
	}
	return out
}

func (m *NoteListModel) handleSortUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		return m, nil

	case tea.KeyEnter:
		// The selection model quits its program on submit, so enter is
		// never forwarded to it.
		choice, err := m.sortSelect.Value()
		m.mode = modeList
		if err != nil {
			return m, nil
		}
		sortKey, _ := views.ParseSortKey(choice)
		m.query.Sort = sortKey
		refreshCmd := m.refresh()
		return m, tea.Batch(refreshCmd, m.status(fmt.Sprintf(constants.Messages["sort_applied"], sortKey)))
	}

	_, cmd := m.sortSelect.Update(msg)
	return m, cmd
}

func (m *NoteListModel) handleConfirmUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList
	target := m.pendingDelete
	m.pendingDelete = note.Note{}

	if !key.Matches(msg, m.keys.confirm) {
		m.mood = moodIdle
		return m, m.status(constants.Messages["edit_cancelled"])
	}

	if err := m.state.Store.Delete(target.ID); err != nil {
		m.mood = moodSad
		return m, m.status(constants.Messages["delete_failed"])
	}
	if err := m.state.Store.Save(); err != nil {
		return m, m.fail(err)
	}
	m.mood = moodHappy
	return m, tea.Batch(m.refresh(), m.status(constants.Messages["note_deleted"]))
}

func (m *NoteListModel) applySettings() tea.Cmd {
	current := m.state.CurrentSettings()
	m.showArt = current.ShowASCIIArt
	m.resize()
	return m.refresh()
}

func (m *NoteListModel) handleExternalChange() tea.Cmd {
	report := m.state.Store.Reload()
	m.state.LoadReport = report
	cmds := []tea.Cmd{m.refresh(), m.watch()}
	if report.Err != nil {
		cmds = append(cmds, m.fail(report.Err))
	} else {
		cmds = append(cmds, m.status(fmt.Sprintf(constants.Messages["reloaded"], report.Loaded)))
	}
	return tea.Batch(cmds...)
}

func (m *NoteListModel) quit() tea.Cmd {
	if err := m.state.Save(); err != nil {
		m.state.Logger.Error("failed to save on quit", "err", err)
	}
	m.state.Logger.Info(constants.Messages["quit"])
	return tea.Quit
}

func (m *NoteListModel) headerHeight() int {
	if !m.showArt {
		return 0
	}
	return lipgloss.Height(m.header())
}

func (m *NoteListModel) resize() {
	h, v := appStyle.GetFrameSize()
	width := m.width - h
	height := m.height - v - m.headerHeight()
	if m.showDetails {
		width /= 2
	}
	m.list.SetSize(width, height)
}

func (m *NoteListModel) header() string {
	return artStyle.Render(m.mood.art())
}

func (m *NoteListModel) emptyHint() string {
	if len(m.view.Entries) > 0 {
		return ""
	}
	switch {
	case m.query.Search != "":
		return fmt.Sprintf(constants.Messages["no_results"], m.query.Search)
	case m.query.Filter.Active():
		return constants.Messages["no_matches"]
	default:
		return constants.Messages["empty"]
	}
}

func (m *NoteListModel) View() string {
	switch m.mode {
	case modeForm:
		return appStyle.Render(m.form.View())
	case modeSearch:
		return appStyle.Render(inputStyle.Render(m.search.View()))
	case modeFilter:
		return appStyle.Render(dialogStyle.Render(m.filter.View()))
	case modeSort:
		return appStyle.Render(m.sortSelect.View())
	case modeHelp:
		return appStyle.Render(renderHelpWithinWidth(m.width, constants.HelpText))
	case modeSettings:
		return m.settings.View()
	}

	var sections []string
	if m.showArt {
		sections = append(sections, m.header())
	}

	body := listStyle.Render(m.list.View())
	if m.showDetails {
		if item, ok := m.selected(); ok {
			width := m.width/2 - 4
			details := renderDetails(item, width, m.state.Now(), m.previews)
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, detailsStyle.Render(details))
		}
	}
	sections = append(sections, body)

	if m.mode == modeConfirmDelete {
		sections = append(sections, dialogStyle.Render(
			fmt.Sprintf(constants.Messages["confirm_delete"], m.pendingDelete.Title),
		))
	} else if hint := m.emptyHint(); hint != "" {
		sections = append(sections, statusStyle(hint))
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// Run starts the note list and blocks until the user quits.
func Run(s *state.State) error {
	if _, err := s.Watch(); err != nil {
		s.Logger.Warn("notes watcher unavailable", "err", err)
	}

	m := NewNoteListModel(s)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running notes: %w", err)
	}
	return nil
}
