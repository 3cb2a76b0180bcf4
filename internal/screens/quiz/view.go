package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/scoring"
	"github.com/abhisek/quizo/internal/trivia"
	"github.com/abhisek/quizo/internal/ui/components"
	"github.com/abhisek/quizo/internal/ui/theme"
)

// sideWidth is the width of the navigator column.
const sideWidth = 30

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.session == nil || s.fetching || s.session.Phase() == quiz.PhaseLoading:
		return s.renderLoading(width, height)
	case s.session.Phase() == quiz.PhaseFailed:
		return s.renderError(width, height)
	case s.confirming:
		return s.renderSubmitConfirm(width, height)
	}
	return s.renderQuestion(width, height)
}

func (s *QuizScreen) renderLoading(width, height int) string {
	msg := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Fetching questions...")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

func (s *QuizScreen) renderError(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Could not load questions"))
	b.WriteString("\n\n")
	if err := s.session.Err(); err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(min(60, width-4)).Render(err.Error()))
		b.WriteString("\n\n")
		if trivia.Retryable(err) {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render("The question service is busy. Wait a few seconds first."))
			b.WriteString("\n\n")
		}
	}
	b.WriteString(theme.Hint.Render("Press R to retry or Esc to go back"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *QuizScreen) renderSubmitConfirm(width, height int) string {
	open := s.session.Total() - s.session.AnsweredCount()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Submit your answers?"))
	b.WriteString("\n\n")
	if open > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(
			fmt.Sprintf("You still have %d unattempted question(s).", open)))
		b.WriteString("\n\n")
	}
	b.WriteString(s.confirm.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(b.String(), 50))
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	mainWidth := width - sideWidth - 4
	compact := mainWidth < 40
	if compact {
		mainWidth = width - 4
	}

	main := s.renderMain(mainWidth)
	if compact {
		return lipgloss.NewStyle().Padding(1, 2).Render(main)
	}
	side := s.renderSide()
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(mainWidth).Render(main), "  ", side),
	)
}

func (s *QuizScreen) renderMain(width int) string {
	q := s.session.Current()
	idx := s.session.CurrentIndex()

	var b strings.Builder

	timer := components.NewTimerBar(
		s.session.TimeRemaining(), s.session.Allotted(), min(width, 60),
		scoring.FormatClock(s.session.TimeRemaining()),
	)
	b.WriteString(timer.View())
	b.WriteString("\n\n")

	meta := fmt.Sprintf("Question %d of %d", idx+1, s.session.Total())
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(meta))
	if s.session.IsStarred(idx) {
		b.WriteString("  " + theme.Starred.Render("★ starred"))
	}
	b.WriteString("\n")
	b.WriteString(theme.Hex(scoring.DifficultyColor(q.Difficulty)).Render(string(q.Difficulty)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  ·  " + q.Category))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 1))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Render(q.Text))
	b.WriteString("\n\n")
	b.WriteString(s.answers.View(width))

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(s.notice))
	}
	return b.String()
}

func (s *QuizScreen) renderSide() string {
	n := s.session.Total()
	statuses := make([]quiz.Status, n)
	for i := range statuses {
		statuses[i] = s.session.QuestionStatus(i)
	}
	nav := components.NewNavigator(statuses, s.session.CurrentIndex())
	return lipgloss.NewStyle().
		Width(sideWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(theme.Subtitle.Render("Questions") + "\n\n" + nav.View())
}
