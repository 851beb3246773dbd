package notes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/forgetful/internal/note"
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Background(lipgloss.Color("transparent")).
			Bold(true).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			Padding(0, 1).Width(100)

	statusBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"})

	statusStyle = statusBannerStyle.Render

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0AF")).
				Background(lipgloss.Color("#224")).
				Padding(0, 0)

	listStyle = lipgloss.NewStyle().
			MarginRight(1).
			Border(lipgloss.NormalBorder(), false, false, false, false).
			BorderForeground(lipgloss.Color("#334455"))

	detailsStyle = lipgloss.NewStyle().
			MarginLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#334455"))

	dialogStyle = lipgloss.NewStyle().
			MarginLeft(1).
			Padding(0, 2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#334455"))

	artStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))

	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CCC"))

	tagStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#94e2d5"))
	misspelledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	forgottenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676")).Italic(true)
	overdueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true)
	dueTodayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")).Bold(true)
	dueFutureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6ADC8"))
)

var statusStyles = map[note.Status]lipgloss.Style{
	note.Todo:       lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
	note.InProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")),
	note.Done:       lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
	note.Archived:   lipgloss.NewStyle().Foreground(lipgloss.Color("#767676")),
}

var priorityStyles = map[note.Priority]lipgloss.Style{
	note.PriorityA: lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true),
	note.PriorityB: lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")),
	note.PriorityC: lipgloss.NewStyle().Foreground(lipgloss.Color("#89DCEB")),
}

func statusStyleFor(s note.Status) lipgloss.Style {
	if st, ok := statusStyles[s]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

func priorityStyleFor(p note.Priority) lipgloss.Style {
	if st, ok := priorityStyles[p]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

func renderHelpWithinWidth(width int, content string) string {
	if width <= 0 {
		return helpStyle.Render(content)
	}

	return helpStyle.Copy().
		Width(width).
		MaxWidth(width).
		Render(content)
}
