package submodels

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/forgetful/internal/note"
)

// FilterAppliedMsg carries the chosen filter when the menu is confirmed.
// Nil fields and an empty tag match everything.
type FilterAppliedMsg struct {
	Status   *note.Status
	Priority *note.Priority
	Tag      string
}

type FilterClosedMsg struct{}

type filterOptionKind int

const (
	filterOptionHeader filterOptionKind = iota
	filterOptionEntry
	filterOptionEmpty
)

type filterGroup int

const (
	groupStatus filterGroup = iota
	groupPriority
	groupTag
)

type filterOption struct {
	kind       filterOptionKind
	label      string
	group      filterGroup
	value      string
	selectable bool
}

// FilterModel is a menu with one choice each for status, priority and tag.
type FilterModel struct {
	cursor   int
	options  []filterOption
	tags     []string
	selected map[filterGroup]string
}

var (
	filterTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0AF"))
	filterHeaderStyle   = lipgloss.NewStyle().Bold(true)
	filterCursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).Background(lipgloss.Color("#0AF"))
	filterInactiveStyle = lipgloss.NewStyle()
	filterHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94e2d5"))
	filterEmptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
)

func NewFilterModel() *FilterModel {
	m := &FilterModel{selected: make(map[filterGroup]string)}
	m.rebuildOptions()
	return m
}

// SetTags replaces the tag choices.
func (m *FilterModel) SetTags(tags []string) {
	m.tags = append([]string(nil), tags...)
	sort.Strings(m.tags)
	if t, ok := m.selected[groupTag]; ok && !contains(m.tags, t) {
		delete(m.selected, groupTag)
	}
	m.rebuildOptions()
}

// SetSelection marks the currently applied filter.
func (m *FilterModel) SetSelection(status *note.Status, priority *note.Priority, tag string) {
	m.selected = make(map[filterGroup]string)
	if status != nil {
		m.selected[groupStatus] = status.String()
	}
	if priority != nil {
		m.selected[groupPriority] = priority.Label()
	}
	if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
		m.selected[groupTag] = tag
	}
	m.ensureCursor()
}

func (m *FilterModel) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type { //nolint:exhaustive // handled via default
		case tea.KeyUp, tea.KeyCtrlP:
			m.moveCursor(-1)
			return nil, true
		case tea.KeyDown, tea.KeyCtrlN:
			m.moveCursor(1)
			return nil, true
		case tea.KeySpace:
			m.toggleCurrent()
			return nil, true
		case tea.KeyCtrlL:
			m.selected = make(map[filterGroup]string)
			return nil, true
		case tea.KeyEnter:
			applied := m.Applied()
			return func() tea.Msg { return applied }, true
		case tea.KeyEsc:
			return func() tea.Msg { return FilterClosedMsg{} }, true
		}

		switch msg.String() {
		case "j":
			m.moveCursor(1)
			return nil, true
		case "k":
			m.moveCursor(-1)
			return nil, true
		}
	}

	return nil, false
}

// Applied converts the current selection into a filter message.
func (m *FilterModel) Applied() FilterAppliedMsg {
	var out FilterAppliedMsg
	if v, ok := m.selected[groupStatus]; ok {
		if s, ok := note.ParseStatus(v); ok {
			out.Status = &s
		}
	}
	if v, ok := m.selected[groupPriority]; ok {
		if p, ok := note.ParsePriority(v); ok {
			out.Priority = &p
		}
	}
	out.Tag = m.selected[groupTag]
	return out
}

func (m *FilterModel) View() string {
	var lines []string
	lines = append(lines, filterTitleStyle.Render("Filter notes"))

	for idx, opt := range m.options {
		switch opt.kind {
		case filterOptionHeader:
			lines = append(lines, "", filterHeaderStyle.Render(opt.label))
		case filterOptionEmpty:
			lines = append(lines, filterEmptyStyle.Render(opt.label))
		case filterOptionEntry:
			indicator := "( )"
			if m.isSelected(opt) {
				indicator = "(x)"
			}
			label := fmt.Sprintf("%s %s", indicator, opt.label)
			if idx == m.cursor && opt.selectable {
				lines = append(lines, filterCursorStyle.Render(label))
			} else {
				lines = append(lines, filterInactiveStyle.Render(label))
			}
		}
	}

	help := "space toggle • ctrl+l clear • enter apply • esc cancel"
	lines = append(lines, "", filterHelpStyle.Render(help))
	return strings.Join(lines, "\n")
}

func (m *FilterModel) moveCursor(delta int) {
	if len(m.options) == 0 {
		return
	}

	next := m.cursor
	for {
		next += delta
		if next < 0 {
			next = len(m.options) - 1
		}
		if next >= len(m.options) {
			next = 0
		}

		if m.options[next].selectable {
			m.cursor = next
			return
		}

		if next == m.cursor {
			return
		}
	}
}

func (m *FilterModel) toggleCurrent() {
	if m.cursor < 0 || m.cursor >= len(m.options) {
		return
	}

	opt := m.options[m.cursor]
	if !opt.selectable {
		return
	}
	if m.selected[opt.group] == opt.value {
		delete(m.selected, opt.group)
		return
	}
	m.selected[opt.group] = opt.value
}

func (m *FilterModel) rebuildOptions() {
	m.options = m.options[:0]

	m.options = append(m.options, filterOption{kind: filterOptionHeader, label: "Status"})
	for _, s := range note.Statuses {
		m.options = append(m.options, filterOption{
			kind:       filterOptionEntry,
			label:      s.String(),
			group:      groupStatus,
			value:      s.String(),
			selectable: true,
		})
	}

	m.options = append(m.options, filterOption{kind: filterOptionHeader, label: "Priority"})
	for _, p := range note.Priorities {
		m.options = append(m.options, filterOption{
			kind:       filterOptionEntry,
			label:      p.Label(),
			group:      groupPriority,
			value:      p.Label(),
			selectable: true,
		})
	}

	m.options = append(m.options, filterOption{kind: filterOptionHeader, label: "Tags"})
	if len(m.tags) == 0 {
		m.options = append(m.options, filterOption{kind: filterOptionEmpty, label: "No tags yet"})
	}
	for _, tag := range m.tags {
		m.options = append(m.options, filterOption{
			kind:       filterOptionEntry,
			label:      "#" + tag,
			group:      groupTag,
			value:      tag,
			selectable: true,
		})
	}

	m.ensureCursor()
}

func (m *FilterModel) ensureCursor() {
	if len(m.options) == 0 {
		m.cursor = 0
		return
	}

	if m.cursor >= len(m.options) {
		m.cursor = len(m.options) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	if !m.options[m.cursor].selectable {
		m.moveCursor(1)
	}
}

func (m *FilterModel) isSelected(opt filterOption) bool {
	if !opt.selectable {
		return false
	}
	v, ok := m.selected[opt.group]
	return ok && v == opt.value
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
