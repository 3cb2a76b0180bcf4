// Package theme holds the palette and shared lipgloss styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#6366F1") // indigo
	Secondary = lipgloss.Color("#14B8A6") // teal, categories and the timer bar
	Accent    = lipgloss.Color("#F59E0B") // amber, starred questions
	Success   = lipgloss.Color("#22C55E")
	Warning   = lipgloss.Color("#EAB308")
	Error     = lipgloss.Color("#EF4444")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
)

// Answer outcomes and marks.
var (
	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Starred   = lipgloss.NewStyle().Foreground(Accent).Bold(true)
)

// Navigator cells, one per question status.
var (
	cell = lipgloss.NewStyle().Width(4).Align(lipgloss.Center)

	CellAnswered = cell.Background(Success).Foreground(BgDark)
	CellStarred  = cell.Background(Accent).Foreground(BgDark)
	CellOpen     = cell.Background(Border).Foreground(Text)
)

var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// Hex returns a foreground style for a "#RRGGBB" color computed at
// runtime, such as a grade or difficulty color.
func Hex(s string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s))
}
