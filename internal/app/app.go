package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizo/internal/config"
	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/router"
	"github.com/abhisek/quizo/internal/screen"
	"github.com/abhisek/quizo/internal/screens/entry"
	quizscreen "github.com/abhisek/quizo/internal/screens/quiz"
	"github.com/abhisek/quizo/internal/screens/report"
	"github.com/abhisek/quizo/internal/store"
	"github.com/abhisek/quizo/internal/trivia"
	"github.com/abhisek/quizo/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Repo    quiz.Repository
	Source  trivia.Source
	Results store.ResultRepo
	Config  config.Config
	Logger  *slog.Logger

	// ReportDir is where printed reports are written.
	ReportDir string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel showing the given page.
func newAppModel(opts Options, start quiz.Page) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	m := AppModel{opts: opts}
	m.router = router.New(m.screenFor, start, opts.Logger)
	return m
}

// screenFor builds the screen of a logical page.
func (m AppModel) screenFor(page quiz.Page) screen.Screen {
	cfg := m.opts.Config
	switch page {
	case quiz.PageQuiz:
		return quizscreen.New(quizscreen.Deps{
			Repo:         m.opts.Repo,
			Source:       m.opts.Source,
			Results:      m.opts.Results,
			Logger:       m.opts.Logger,
			Questions:    cfg.Questions,
			Allotted:     cfg.AllottedSeconds(),
			FetchTimeout: cfg.FetchTimeout,
		})
	case quiz.PageReport:
		return report.New(m.opts.Repo, m.opts.ReportDir, m.opts.Logger)
	default:
		return entry.New(m.opts.Repo, cfg.Questions, int(cfg.TimeLimit.Minutes()), m.opts.Logger)
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	active := m.router.Active()
	frame := layout.Frame{Title: active.Title()}
	if sp, ok := active.(screen.StatusProvider); ok {
		frame.Status = sp.Status()
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		frame.Hints = kp.KeyHints()
	}
	v.SetContent(frame.Render(m.width, m.height, m.router.View))
	return v
}

// StartPage picks the page to open on launch: an active session for the
// stored identity resumes, a submitted one shows its report, and
// everything else starts at entry. The page guards still apply.
func StartPage(ctx context.Context, repo quiz.Repository) quiz.Page {
	email, err := repo.Identity(ctx)
	if err != nil || email == "" {
		return quiz.PageEntry
	}
	st, err := repo.Load(ctx)
	if err != nil || st.Email != email {
		return quiz.PageEntry
	}
	switch st.Phase {
	case quiz.PhaseActive:
		return quiz.PageQuiz
	case quiz.PhaseSubmitted:
		return quiz.PageReport
	}
	return quiz.PageEntry
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	if opts.Repo == nil || opts.Source == nil {
		return errors.New("app: repository and question source are required")
	}
	p := tea.NewProgram(newAppModel(opts, StartPage(ctx, opts.Repo)))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
