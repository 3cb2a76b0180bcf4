// Package report is the page showing the score of a submitted quiz.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/screen"
	"github.com/abhisek/quizo/internal/scoring"
	"github.com/abhisek/quizo/internal/ui/components"
	"github.com/abhisek/quizo/internal/ui/layout"
	"github.com/abhisek/quizo/internal/ui/theme"
)

type reportLoadedMsg struct {
	State quiz.State
	Err   error
}

type printedMsg struct {
	Path string
	Err  error
}

type clearedMsg struct {
	Err error
}

// ReportScreen shows the summary, grade and per-question analysis.
type ReportScreen struct {
	repo   quiz.Repository
	dir    string
	logger *slog.Logger

	state   *quiz.State
	summary scoring.Summary
	grade   scoring.Grade
	results []scoring.QuestionResult

	menu   components.Menu
	offset int
	notice string
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)
var _ screen.StatusProvider = (*ReportScreen)(nil)

// New creates a ReportScreen. Printed reports are written into dir.
func New(repo quiz.Repository, dir string, logger *slog.Logger) *ReportScreen {
	if logger == nil {
		logger = slog.Default()
	}
	if dir == "" {
		dir = "."
	}
	s := &ReportScreen{repo: repo, dir: dir, logger: logger}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Take another quiz", Hotkey: "n", Action: s.again},
		{Label: "Print report", Hotkey: "p", Action: s.print},
		{Label: "Quit", Hotkey: "q", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

func (s *ReportScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		st, err := quiz.CheckReportEntry(context.Background(), repo)
		return reportLoadedMsg{State: st, Err: err}
	}
}

func (s *ReportScreen) Title() string {
	return "Report"
}

func (s *ReportScreen) Status() string {
	if s.state == nil {
		return ""
	}
	return s.state.Email
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Menu"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "N", Description: "New quiz"},
		{Key: "P", Description: "Print"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *ReportScreen) again() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		return clearedMsg{Err: repo.Clear(context.Background())}
	}
}

func (s *ReportScreen) print() tea.Cmd {
	if s.state == nil {
		return nil
	}
	st := *s.state
	path := filepath.Join(s.dir, Filename(st))
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return printedMsg{Err: err}
		}
		if err := WriteText(f, st); err != nil {
			f.Close()
			return printedMsg{Err: err}
		}
		return printedMsg{Path: path, Err: f.Close()}
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		if r, ok := quiz.IsRedirect(msg.Err); ok {
			s.logger.Info("report redirect", "to", r.To.String(), "reason", r.Reason)
			return s, screen.Goto(r.To, r.Reason)
		}
		if msg.Err != nil {
			s.logger.Error("load report failed", "error", msg.Err)
			return s, screen.Goto(quiz.PageEntry, msg.Err)
		}
		s.load(msg.State)
		return s, nil

	case printedMsg:
		if msg.Err != nil {
			s.logger.Warn("print report failed", "error", msg.Err)
			s.notice = "Could not write report: " + msg.Err.Error()
		} else {
			s.notice = "Report written to " + msg.Path
		}
		return s, nil

	case clearedMsg:
		if msg.Err != nil {
			s.logger.Warn("clear session failed", "error", msg.Err)
		}
		return s, screen.Goto(quiz.PageEntry, nil)

	case tea.KeyPressMsg:
		if s.state == nil {
			return s, nil
		}
		switch msg.String() {
		case "pgdown", "J":
			s.offset = min(s.offset+1, max(len(s.results)-1, 0))
			return s, nil
		case "pgup", "K":
			s.offset = max(s.offset-1, 0)
			return s, nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ReportScreen) load(st quiz.State) {
	s.state = &st
	s.summary = scoring.FromState(st)
	s.grade = scoring.GradeFor(s.summary.Score)
	s.results = scoring.Analyze(st.Questions, st.Answers)
	s.offset = 0
}

func (s *ReportScreen) View(width, height int) string {
	if s.state == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loading report..."))
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.renderHeadline(cw))
	b.WriteString("\n\n")
	b.WriteString(s.renderStats(cw))
	b.WriteString("\n\n")

	top := lipgloss.Height(b.String())
	menu := s.menu.View()
	footer := "\n" + menu
	if s.notice != "" {
		footer += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.notice)
	}
	room := height - top - lipgloss.Height(footer) - 2
	b.WriteString(s.renderAnalysis(cw, room))
	b.WriteString(footer)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *ReportScreen) renderHeadline(width int) string {
	g := s.grade
	letter := lipgloss.NewStyle().
		Foreground(lipgloss.Color(g.Color)).
		Bold(true).
		Render(g.Letter)
	score := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("  %d%%", s.summary.Score))
	msg := lipgloss.NewStyle().Foreground(theme.TextDim).Render(g.Message)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(letter + score + "\n" + msg)
}

func (s *ReportScreen) renderStats(width int) string {
	cardWidth := max((width-6)/4, 14)
	cards := []string{
		components.StatCard("Correct", fmt.Sprintf("%d", s.summary.Correct), theme.Success, cardWidth),
		components.StatCard("Incorrect", fmt.Sprintf("%d", s.summary.Incorrect), theme.Error, cardWidth),
		components.StatCard("Unattempted", fmt.Sprintf("%d", s.summary.Unattempted), theme.TextDim, cardWidth),
		components.StatCard("Time spent", scoring.FormatTime(s.summary.TimeSpent), theme.Accent, cardWidth),
	}
	if width < 4*cardWidth+6 {
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cards[0], " ", cards[1]),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[2], " ", cards[3]),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards[0], " ", cards[1], " ", cards[2], " ", cards[3])
}

// renderAnalysis renders the per-question rows starting at the scroll
// offset, as many as fit in room lines.
func (s *ReportScreen) renderAnalysis(width, room int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Question breakdown"))
	b.WriteString("\n")
	used := 1
	shown := 0
	for _, r := range s.results[s.offset:] {
		row := renderResult(r, width)
		h := lipgloss.Height(row)
		if shown > 0 && used+h > room {
			break
		}
		b.WriteString(row)
		b.WriteString("\n")
		used += h
		shown++
	}
	if s.offset+shown < len(s.results) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("… %d more", len(s.results)-s.offset-shown)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderResult(r scoring.QuestionResult, width int) string {
	var mark, answer string
	switch r.Outcome {
	case scoring.OutcomeCorrect:
		mark = theme.Correct.Render("✓")
		answer = theme.Correct.Render(r.UserAnswer)
	case scoring.OutcomeIncorrect:
		mark = theme.Incorrect.Render("✗")
		answer = theme.Incorrect.Render(r.UserAnswer) + theme.Hint.Render("  correct: ") + theme.Correct.Render(r.CorrectAnswer)
	default:
		mark = theme.Hint.Render("–")
		answer = theme.Hint.Render("not answered  correct: ") + theme.Correct.Render(r.CorrectAnswer)
	}

	text := lipgloss.NewStyle().Foreground(theme.Text).Width(max(width-6, 10)).
		Render(fmt.Sprintf("%d. %s", r.Index+1, r.Text))
	meta := theme.Hex(scoring.DifficultyColor(r.Difficulty)).Render(string(r.Difficulty)) +
		theme.Hint.Render("  ·  "+r.Category)

	return lipgloss.JoinHorizontal(lipgloss.Top, " "+mark+" ",
		lipgloss.JoinVertical(lipgloss.Left, text, meta, answer))
}
