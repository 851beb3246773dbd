package settings

import "github.com/charmbracelet/lipgloss"

const (
	accent    = lipgloss.Color("#F5A9E1")
	accentBg  = lipgloss.Color("#3B2140")
	mutedText = lipgloss.Color("#A6ADC8")
)

var (
	appStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(accent).
			Background(accentBg).
			Bold(true).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Width(72)

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#A6E3A1"}).
				Render

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#F38BA8"}).
				Render

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(accent).
				Bold(true).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(accent).
				Padding(0, 0, 0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(mutedText).
			Italic(true)
)
