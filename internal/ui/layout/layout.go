// Package layout draws the fixed chrome around every screen: a header bar
// with the page title and status, and a footer with key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizo/internal/ui/theme"
)

// Smallest terminal the quiz view fits in.
const (
	MinWidth  = 60
	MinHeight = 20
)

const appName = "Quizo"

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// DefaultHints are shown when the active screen has none of its own.
var DefaultHints = []KeyHint{{Key: "Ctrl+C", Description: "Quit"}}

// Frame is the chrome for one render.
type Frame struct {
	Title  string
	Status string
	Hints  []KeyHint
}

// Render draws the frame at width x height and fills the space between
// header and footer with body, which receives the inner size.
func (f Frame) Render(width, height int, body func(width, height int) string) string {
	if TooSmall(width, height) {
		return tooSmall(width, height)
	}

	hints := f.Hints
	if len(hints) == 0 {
		hints = DefaultHints
	}
	header := f.header(width)
	footer := footer(hints, width)

	inner := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().Width(width).Height(inner).MaxHeight(inner).Render(body(width, inner))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// TooSmall reports whether the terminal is below MinWidth x MinHeight.
func TooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func tooSmall(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(fmt.Sprintf(
			"Terminal too small\n\nNeed %d x %d, have %d x %d",
			MinWidth, MinHeight, width, height,
		)))
}

// header puts the app name left, the title centered and the status right.
func (f Frame) header(width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" " + appName)
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)
	status := lipgloss.NewStyle().Foreground(theme.Accent).Render(f.Status + " ")

	inner := max(width-2, 0)
	used := lipgloss.Width(name) + lipgloss.Width(title) + lipgloss.Width(status)
	free := max(inner-used, 2)
	left := max(inner/2-lipgloss.Width(name)-lipgloss.Width(title)/2, 1)
	left = min(left, free-1)

	line := name + strings.Repeat(" ", left) + title + strings.Repeat(" ", free-left) + status
	return bar(line, width)
}

func footer(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return bar(" "+strings.Join(parts, "   "), width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}
