package router

import (
	"errors"
	"log/slog"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/screen"
)

type stubScreen struct {
	page    quiz.Page
	inits   int
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.page.String() }
func (s *stubScreen) Title() string                           { return s.page.String() }

type factory struct{ built []*stubScreen }

func (f *factory) build(p quiz.Page) screen.Screen {
	s := &stubScreen{page: p}
	f.built = append(f.built, s)
	return s
}

func newRouter(start quiz.Page) (*Router, *factory) {
	f := &factory{}
	return New(f.build, start, slog.New(slog.DiscardHandler)), f
}

func TestNew_BuildsStartPage(t *testing.T) {
	r, f := newRouter(quiz.PageReport)
	if r.Page() != quiz.PageReport || len(f.built) != 1 {
		t.Fatalf("page = %v, built = %d", r.Page(), len(f.built))
	}
	if f.built[0].inits != 0 {
		t.Error("Init ran before the program started")
	}
	r.Init()
	if f.built[0].inits != 1 {
		t.Error("Init did not reach the start screen")
	}
}

func TestGotoMsg_BuildsFreshScreen(t *testing.T) {
	r, f := newRouter(quiz.PageEntry)

	r.Update(screen.GotoMsg{Page: quiz.PageQuiz})
	if r.Page() != quiz.PageQuiz || r.View(10, 10) != quiz.PageQuiz.String() {
		t.Fatalf("page = %v", r.Page())
	}
	if f.built[1].inits != 1 {
		t.Error("new screen not initialized")
	}

	r.Update(screen.GotoMsg{Page: quiz.PageEntry, Reason: errors.New("no identity")})
	if r.Active() == f.built[0] {
		t.Error("revisiting a page reused the old screen")
	}
	if r.Visits() != 3 {
		t.Errorf("visits = %d, want 3", r.Visits())
	}
}

func TestUpdate_ForwardsToActive(t *testing.T) {
	r, f := newRouter(quiz.PageEntry)
	r.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	r.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if f.built[0].updates != 2 {
		t.Errorf("updates = %d, want 2", f.built[0].updates)
	}
}
