// Package entry is the page that collects the user's email before a quiz.
package entry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/screen"
	"github.com/abhisek/quizo/internal/ui/components"
	"github.com/abhisek/quizo/internal/ui/layout"
	"github.com/abhisek/quizo/internal/ui/theme"
)

// identityLoadedMsg carries the stored email, used to prefill the input.
type identityLoadedMsg struct {
	Email string
	Err   error
}

// EntryScreen collects and validates the user's email.
type EntryScreen struct {
	repo      quiz.Repository
	logger    *slog.Logger
	input     components.TextInput
	questions int
	minutes   int
	errMsg    string
	done      bool
}

var _ screen.Screen = (*EntryScreen)(nil)
var _ screen.KeyHintProvider = (*EntryScreen)(nil)

// New creates an EntryScreen. questions and minutes describe the quiz in
// the instructions.
func New(repo quiz.Repository, questions, minutes int, logger *slog.Logger) *EntryScreen {
	if logger == nil {
		logger = slog.Default()
	}
	return &EntryScreen{
		repo:      repo,
		logger:    logger,
		input:     components.NewTextInput("you@example.com", 254, 40),
		questions: questions,
		minutes:   minutes,
	}
}

func (e *EntryScreen) Init() tea.Cmd {
	return tea.Batch(e.loadIdentity(), e.input.Init())
}

func (e *EntryScreen) Title() string {
	return "Start"
}

func (e *EntryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start quiz"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (e *EntryScreen) loadIdentity() tea.Cmd {
	return func() tea.Msg {
		email, err := e.repo.Identity(context.Background())
		return identityLoadedMsg{Email: email, Err: err}
	}
}

func (e *EntryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case identityLoadedMsg:
		if msg.Err != nil {
			e.logger.Warn("load identity failed", "error", msg.Err)
			return e, nil
		}
		if msg.Email != "" && e.input.Value() == "" {
			e.input.Model.SetValue(msg.Email)
			e.input.Model.CursorEnd()
		}
		return e, nil

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return e.submit()
		}
		e.errMsg = ""
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return e, cmd
}

func (e *EntryScreen) submit() (screen.Screen, tea.Cmd) {
	if e.done {
		return e, nil
	}
	email, err := quiz.ValidateEmail(e.input.Value())
	if err != nil {
		e.input.SetError("Please enter a valid email address")
		return e, nil
	}
	if err := e.repo.SetIdentity(context.Background(), email); err != nil {
		e.logger.Error("store identity failed", "error", err)
		e.errMsg = fmt.Sprintf("Could not save your email: %v", err)
		return e, nil
	}
	e.done = true
	return e, screen.Goto(quiz.PageQuiz, nil)
}

func (e *EntryScreen) View(width, height int) string {
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}

	var sections []string
	sections = append(sections, center(RenderBanner(width)), "")
	sections = append(sections, center(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Test your general knowledge")))
	sections = append(sections, center(theme.Hint.Render(fmt.Sprintf(
		"%d questions · %d minutes · unanswered questions score zero",
		e.questions, e.minutes,
	))), "")

	prompt := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Email address")
	card := components.Card(prompt+"\n"+e.input.View(), 50)
	sections = append(sections, center(card))

	if e.errMsg != "" {
		sections = append(sections, "", center(lipgloss.NewStyle().Foreground(theme.Error).Render(e.errMsg)))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
