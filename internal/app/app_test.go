package app

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizo/internal/config"
	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/screen"
	"github.com/abhisek/quizo/internal/screens/entry"
	quizscreen "github.com/abhisek/quizo/internal/screens/quiz"
	"github.com/abhisek/quizo/internal/screens/report"
	"github.com/abhisek/quizo/internal/store"
	"github.com/abhisek/quizo/internal/trivia"
)

type staticSource struct{}

func (staticSource) Name() string { return "static" }

func (staticSource) Fetch(context.Context, int) ([]trivia.Question, error) {
	return []trivia.Question{{Text: "q", CorrectAnswer: "a", IncorrectAnswers: []string{"b"}}}, nil
}

func newRepo(t *testing.T) *store.SessionRepo {
	t.Helper()
	return store.NewSessionRepo(store.NewMemoryKV())
}

func testOptions(repo quiz.Repository) Options {
	return Options{Repo: repo, Source: staticSource{}, Config: config.Default(), ReportDir: "."}
}

func TestStartPage(t *testing.T) {
	ctx := context.Background()

	repo := newRepo(t)
	if got := StartPage(ctx, repo); got != quiz.PageEntry {
		t.Errorf("no identity: got %s, want entry", got)
	}

	if err := repo.SetIdentity(ctx, "ada@example.com"); err != nil {
		t.Fatal(err)
	}
	if got := StartPage(ctx, repo); got != quiz.PageEntry {
		t.Errorf("no session: got %s, want entry", got)
	}

	sess := quiz.New("ada@example.com", repo)
	if err := sess.Start(ctx, []trivia.Question{{Text: "q", CorrectAnswer: "a"}}); err != nil {
		t.Fatal(err)
	}
	if got := StartPage(ctx, repo); got != quiz.PageQuiz {
		t.Errorf("active session: got %s, want quiz", got)
	}

	if _, err := sess.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	if got := StartPage(ctx, repo); got != quiz.PageReport {
		t.Errorf("submitted session: got %s, want report", got)
	}

	if err := repo.SetIdentity(ctx, "bob@example.com"); err != nil {
		t.Fatal(err)
	}
	if got := StartPage(ctx, repo); got != quiz.PageEntry {
		t.Errorf("other identity: got %s, want entry", got)
	}
}

func TestGotoSwapsPageScreen(t *testing.T) {
	m := newAppModel(testOptions(newRepo(t)), quiz.PageEntry)
	if _, ok := m.router.Active().(*entry.EntryScreen); !ok {
		t.Fatalf("expected entry screen, got %T", m.router.Active())
	}

	updated, cmd := m.Update(screen.GotoMsg{Page: quiz.PageQuiz})
	m = updated.(AppModel)
	if _, ok := m.router.Active().(*quizscreen.QuizScreen); !ok {
		t.Fatalf("expected quiz screen, got %T", m.router.Active())
	}
	if cmd == nil {
		t.Error("expected the quiz screen Init command")
	}
	if m.router.Page() != quiz.PageQuiz {
		t.Errorf("page = %s, want quiz", m.router.Page())
	}

	updated, _ = m.Update(screen.GotoMsg{Page: quiz.PageReport})
	m = updated.(AppModel)
	if _, ok := m.router.Active().(*report.ReportScreen); !ok {
		t.Fatalf("expected report screen, got %T", m.router.Active())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions(newRepo(t)), quiz.PageEntry)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestViewRendersAfterResize(t *testing.T) {
	cfg := config.Default()
	cfg.TimeLimit = 30 * time.Minute
	opts := testOptions(newRepo(t))
	opts.Config = cfg
	m := newAppModel(opts, quiz.PageEntry)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(AppModel)
	_ = m.View()
	if m.width != 100 || m.height != 40 {
		t.Errorf("size = %dx%d, want 100x40", m.width, m.height)
	}
}

func TestRunRequiresDependencies(t *testing.T) {
	if err := Run(context.Background(), Options{}); err == nil {
		t.Error("expected error without repository and source")
	}
}
