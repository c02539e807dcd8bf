package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/seasfin/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar. left carries key hints,
// right the workspace state; message, when set, replaces the hints.
func RenderStatusBar(width int, left, right, message string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	if message != "" {
		left = lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface).Render(message)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
