package components

import (
	"pawtally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. right is an optional
// context string shown flush to the right edge.
func RenderStatusBar(width int, right string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [r]eload  [q]uit"

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right + " "

	return style.Render(bar)
}
