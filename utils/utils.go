package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

// DefaultWrap is the markdown wrap width when the terminal width is unknown.
const DefaultWrap = 100

// RenderMarkdown renders markdown content for the terminal.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWrap
	}

	// Initiate glamour renderer to add colors to our markdown preview
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// RenderMarkdownPreview renders content, falling back to the raw text when
// rendering fails so the pane is never empty.
func RenderMarkdownPreview(content string, width int) string {
	out, err := RenderMarkdown(content, width)
	if err != nil {
		return content
	}
	return out
}

// TruncateLine shortens s to width cells, marking the cut with an ellipsis.
func TruncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	s = strings.ReplaceAll(s, "\n", " ")
	return truncate.StringWithTail(s, uint(width), "…")
}

// FormatAge renders a duration as a short human age.
func FormatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
