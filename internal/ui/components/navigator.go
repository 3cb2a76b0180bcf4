package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/ui/theme"
)

// Navigator is the grid of question numbers colored by status.
type Navigator struct {
	Statuses []quiz.Status
	Current  int
	Columns  int
}

// NewNavigator creates a navigator with five columns.
func NewNavigator(statuses []quiz.Status, current int) Navigator {
	return Navigator{Statuses: statuses, Current: current, Columns: 5}
}

// View renders the grid followed by the answered and starred counters.
func (n Navigator) View() string {
	cols := n.Columns
	if cols <= 0 {
		cols = 5
	}

	var rows []string
	var row []string
	answered, starred := 0, 0
	for i, st := range n.Statuses {
		switch st {
		case quiz.StatusAnswered:
			answered++
		case quiz.StatusStarred:
			starred++
		}
		row = append(row, n.cell(i, st))
		if len(row) == cols {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}

	counters := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Answered %d / %d   Starred %d", answered, len(n.Statuses), starred),
	)
	legend := theme.Correct.Render("■") + " answered  " +
		theme.Starred.Render("■") + " starred  " +
		theme.Hint.Render("■ open")

	return strings.Join(rows, "\n") + "\n\n" + counters + "\n" + legend
}

func (n Navigator) cell(i int, st quiz.Status) string {
	var style lipgloss.Style
	switch st {
	case quiz.StatusAnswered:
		style = theme.CellAnswered
	case quiz.StatusStarred:
		style = theme.CellStarred
	default:
		style = theme.CellOpen
	}
	label := fmt.Sprintf("%d", i+1)
	if i == n.Current {
		style = style.Bold(true).Underline(true)
		label = "[" + label + "]"
	}
	return style.Render(label)
}
