package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizo/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for content sections
// so boxes visually align.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 80)
}

// Card wraps content in a rounded-border card at the given width.
func Card(content string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 2).
		Padding(0, 2).
		Render(content)
}

// StatCard renders a small labeled value box.
func StatCard(label, value string, fg color.Color, width int) string {
	v := lipgloss.NewStyle().Foreground(fg).Bold(true).Render(value)
	l := lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width).
		Align(lipgloss.Center).
		Render(v + "\n" + l)
}
