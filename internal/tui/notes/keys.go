package notes

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	add             key.Binding
	edit            key.Binding
	remove          key.Binding
	cycleStatus     key.Binding
	cyclePriority   key.Binding
	sort            key.Binding
	filter          key.Binding
	search          key.Binding
	toggleForgotten key.Binding
	copy            key.Binding
	toggleDetails   key.Binding
	help            key.Binding
	settings        key.Binding
	quit            key.Binding
	confirm         key.Binding
	exitAltView     key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		cycleStatus: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "status"),
		),
		cyclePriority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "priority"),
		),
		sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		toggleForgotten: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "show forgotten"),
		),
		copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		toggleDetails: key.NewBinding(
			key.WithKeys("enter", "tab"),
			key.WithHelp("↵/tab", "details"),
		),
		help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "help"),
		),
		settings: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "settings"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", "save & quit"),
		),
		confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		exitAltView: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

func (m listKeyMap) shortHelp() []key.Binding {
	return []key.Binding{
		m.add,
		m.edit,
		m.cycleStatus,
		m.search,
		m.help,
	}
}

func (m listKeyMap) fullHelp() []key.Binding {
	return []key.Binding{
		m.add,
		m.edit,
		m.remove,
		m.cycleStatus,
		m.cyclePriority,
		m.sort,
		m.filter,
		m.search,
		m.toggleForgotten,
		m.copy,
		m.toggleDetails,
		m.settings,
		m.quit,
	}
}
