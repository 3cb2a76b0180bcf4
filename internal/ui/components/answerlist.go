package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizo/internal/ui/theme"
)

// AnswerChosenMsg is emitted when the user picks an answer. Question is
// the index of the question the list was showing.
type AnswerChosenMsg struct {
	Question int
	Answer   string
}

// AnswerList renders a question's answer options and lets the user pick
// one with the arrow keys, a number or a letter.
type AnswerList struct {
	// Question is the index of the question the options belong to.
	Question int
	Options  []string
	// Cursor is the highlighted option.
	Cursor int
	// Chosen is the recorded answer, shown with a marker. Empty if none.
	Chosen string
}

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// NewAnswerList creates a list over options with the cursor on chosen,
// or on the first option when chosen is empty.
func NewAnswerList(question int, options []string, chosen string) AnswerList {
	a := AnswerList{Question: question, Options: options, Chosen: chosen}
	for i, opt := range options {
		if opt == chosen {
			a.Cursor = i
		}
	}
	return a
}

// Update handles key presses.
func (a AnswerList) Update(msg tea.Msg) (AnswerList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(a.Options) == 0 {
		return a, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if a.Cursor > 0 {
			a.Cursor--
		}
	case "down", "j":
		if a.Cursor < len(a.Options)-1 {
			a.Cursor++
		}
	case "enter", "space":
		return a.choose(a.Cursor)
	default:
		if i, ok := optionIndex(key); ok && i < len(a.Options) {
			return a.choose(i)
		}
	}
	return a, nil
}

func (a AnswerList) choose(i int) (AnswerList, tea.Cmd) {
	a.Cursor = i
	a.Chosen = a.Options[i]
	msg := AnswerChosenMsg{Question: a.Question, Answer: a.Chosen}
	return a, func() tea.Msg { return msg }
}

// optionIndex maps "1".."6" and "a".."f" to an option index.
func optionIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= '1' && c <= '6':
		return int(c - '1'), true
	case c >= 'a' && c <= 'f':
		return int(c - 'a'), true
	}
	return 0, false
}

// View renders the options.
func (a AnswerList) View(width int) string {
	var b strings.Builder
	for i, opt := range a.Options {
		label := fmt.Sprintf("%d", i+1)
		if i < len(optionLabels) {
			label = optionLabels[i]
		}

		prefix := "  "
		if i == a.Cursor {
			prefix = "▸ "
		}
		marker := "○"
		if opt == a.Chosen {
			marker = "●"
		}
		line := fmt.Sprintf("%s%s  %s)  %s", prefix, marker, label, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
		switch {
		case opt == a.Chosen:
			style = style.Foreground(theme.Secondary).Bold(true)
		case i == a.Cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
