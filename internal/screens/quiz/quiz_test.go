package quiz

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/screen"
	"github.com/abhisek/quizo/internal/store"
	"github.com/abhisek/quizo/internal/trivia"
	"github.com/abhisek/quizo/internal/ui/components"
)

type fakeSource struct {
	questions []trivia.Question
	errs      []error
	calls     int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Fetch(_ context.Context, amount int) ([]trivia.Question, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.questions[:min(amount, len(f.questions))], nil
}

type fakeResults struct {
	appended []store.Result
}

func (f *fakeResults) Append(_ context.Context, r store.Result) error {
	f.appended = append(f.appended, r)
	return nil
}

func (f *fakeResults) Recent(context.Context, int) ([]store.Result, error) {
	return f.appended, nil
}

func sampleQuestions(n int) []trivia.Question {
	qs := make([]trivia.Question, n)
	for i := range qs {
		qs[i] = trivia.Question{
			Index:            i,
			Text:             "Question text",
			CorrectAnswer:    "right",
			IncorrectAnswers: []string{"wrong1", "wrong2", "wrong3"},
			Difficulty:       trivia.DifficultyEasy,
			Category:         "General",
			Kind:             trivia.KindMultiple,
		}
	}
	return qs
}

type fixture struct {
	repo    *store.SessionRepo
	source  *fakeSource
	results *fakeResults
	screen  *QuizScreen
}

func newFixture(t *testing.T, email string, allotted int) *fixture {
	t.Helper()
	repo := store.NewSessionRepo(store.NewMemoryKV())
	if email != "" {
		if err := repo.SetIdentity(context.Background(), email); err != nil {
			t.Fatal(err)
		}
	}
	f := &fixture{
		repo:    repo,
		source:  &fakeSource{questions: sampleQuestions(5)},
		results: &fakeResults{},
	}
	f.screen = New(Deps{
		Repo:           repo,
		Source:         f.source,
		Results:        f.results,
		Questions:      5,
		Allotted:       allotted,
		SessionOptions: []quiz.Option{quiz.WithRand(rand.New(rand.NewPCG(1, 2)))},
	})
	return f
}

// start runs the entry check and the fetch and returns the tick command.
func (f *fixture) start(t *testing.T) tea.Cmd {
	t.Helper()
	_, cmd := f.screen.Update(f.screen.Init()())
	if cmd == nil {
		t.Fatal("expected fetch command")
	}
	_, tick := f.screen.Update(cmd())
	return tick
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// press sends a key and feeds back any AnswerChosenMsg it produces.
func (f *fixture) press(msg tea.KeyPressMsg) tea.Cmd {
	_, cmd := f.screen.Update(msg)
	if cmd == nil {
		return nil
	}
	if next := cmd(); next != nil {
		if _, ok := next.(components.AnswerChosenMsg); ok {
			_, cmd = f.screen.Update(next)
			return cmd
		}
		return func() tea.Msg { return next }
	}
	return cmd
}

func gotoPage(t *testing.T, cmd tea.Cmd) quiz.Page {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	msg, ok := cmd().(screen.GotoMsg)
	if !ok {
		t.Fatalf("expected GotoMsg, got %T", msg)
	}
	return msg.Page
}

func TestRedirectWithoutIdentity(t *testing.T) {
	f := newFixture(t, "", 0)
	_, cmd := f.screen.Update(f.screen.Init()())
	if got := gotoPage(t, cmd); got != quiz.PageEntry {
		t.Errorf("expected redirect to entry, got %s", got)
	}
	if f.source.calls != 0 {
		t.Errorf("expected no fetch, got %d", f.source.calls)
	}
}

func TestFetchStartsSession(t *testing.T) {
	f := newFixture(t, "ada@example.com", 0)
	if !strings.Contains(f.screen.View(100, 30), "Fetching questions") {
		t.Error("expected loading view before the entry check")
	}

	tick := f.start(t)
	if tick == nil {
		t.Fatal("expected timer to start")
	}
	if f.screen.session.Phase() != quiz.PhaseActive {
		t.Fatalf("phase = %s, want active", f.screen.session.Phase())
	}
	if f.screen.Status() != "⏱ 30:00" {
		t.Errorf("status = %q", f.screen.Status())
	}
	if f.screen.Title() != "Question 1 of 5" {
		t.Errorf("title = %q", f.screen.Title())
	}

	st, err := f.repo.Load(context.Background())
	if err != nil {
		t.Fatalf("expected persisted session: %v", err)
	}
	if st.Email != "ada@example.com" || len(st.Questions) != 5 {
		t.Errorf("unexpected stored state: %+v", st)
	}
}

func TestFetchFailureAndRetry(t *testing.T) {
	f := newFixture(t, "ada@example.com", 0)
	f.source.errs = []error{&trivia.FetchError{Source: "fake", Err: errors.New("offline")}}

	if tick := f.start(t); tick != nil {
		t.Error("timer must not start after a failed fetch")
	}
	if f.screen.session.Phase() != quiz.PhaseFailed {
		t.Fatalf("phase = %s, want failed", f.screen.session.Phase())
	}
	if !strings.Contains(f.screen.View(100, 30), "offline") {
		t.Error("expected error in view")
	}

	_, cmd := f.screen.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected retry fetch")
	}
	f.screen.Update(cmd())
	if f.screen.session.Phase() != quiz.PhaseActive {
		t.Errorf("phase after retry = %s, want active", f.screen.session.Phase())
	}
	if f.source.calls != 2 {
		t.Errorf("fetch calls = %d, want 2", f.source.calls)
	}
}

func TestAnswerDeliveredAfterNavigationIsDropped(t *testing.T) {
	f := newFixture(t, "ada@example.com", 0)
	f.start(t)
	sess := f.screen.session

	_, pick := f.screen.Update(keyPress('a'))
	if pick == nil {
		t.Fatal("expected answer command")
	}
	f.press(specialKey(tea.KeyRight))
	f.screen.Update(pick())

	if got, ok := sess.AnswerFor(1); ok {
		t.Errorf("question 1 got answer %q chosen on question 0", got)
	}
	if _, ok := sess.AnswerFor(0); ok {
		t.Error("stale answer recorded on question 0")
	}
	if sess.AnsweredCount() != 0 {
		t.Errorf("answered = %d, want 0", sess.AnsweredCount())
	}

	// The question on screen still takes answers normally.
	want := sess.CurrentChoices()[0]
	f.press(keyPress('a'))
	if got, ok := sess.AnswerFor(1); !ok || got != want {
		t.Errorf("answer = %q, want %q", got, want)
	}
}

func TestAnswerNavigateAndStar(t *testing.T) {
	f := newFixture(t, "ada@example.com", 0)
	f.start(t)
	sess := f.screen.session

	want := sess.CurrentChoices()[1]
	f.press(keyPress('b'))
	if got, ok := sess.AnswerFor(0); !ok || got != want {
		t.Errorf("answer = %q, want %q", got, want)
	}

	f.press(specialKey(tea.KeyRight))
	if sess.CurrentIndex() != 1 {
		t.Fatalf("index = %d, want 1", sess.CurrentIndex())
	}
	f.press(keyPress('s'))
	if sess.QuestionStatus(1) != quiz.StatusStarred {
		t.Errorf("status = %s, want starred", sess.QuestionStatus(1))
	}

	f.press(specialKey(tea.KeyLeft))
	f.press(specialKey(tea.KeyLeft))
	if sess.CurrentIndex() != 0 {
		t.Errorf("index = %d, want 0 after moving past the start", sess.CurrentIndex())
	}

	st, err := f.repo.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Answers) != 1 || len(st.Starred) != 1 {
		t.Errorf("stored answers=%d starred=%d, want 1 and 1", len(st.Answers), len(st.Starred))
	}
}

func TestTabJumpsToNextOpen(t *testing.T) {
	f := newFixture(t, "ada@example.com", 0)
	f.start(t)
	sess := f.screen.session

	f.press(keyPress('a'))
	f.press(specialKey(tea.KeyRight))
	f.press(keyPress('a'))
	f.press(specialKey(tea.KeyLeft))

	f.press(specialKey(tea.KeyTab))
	if sess.CurrentIndex() != 2 {
		t.Errorf("index = %d, want 2", sess.CurrentIndex())
	}
}

func TestSubmitWithConfirmation(t *testing.T) {
	f := newFixture(t, "ada@example.com", 0)
	f.start(t)
	f.press(keyPress('a'))

	f.press(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if !f.screen.confirming {
		t.Fatal("expected confirmation")
	}
	if !strings.Contains(f.screen.View(100, 30), "4 unattempted") {
		t.Error("expected unattempted count in confirmation")
	}

	f.press(keyPress('n'))
	if f.screen.confirming || f.screen.session.Phase() != quiz.PhaseActive {
		t.Fatal("declining must keep the quiz going")
	}

	f.press(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	cmd := f.press(keyPress('y'))
	if got := gotoPage(t, cmd); got != quiz.PageReport {
		t.Errorf("expected report, got %s", got)
	}
	if f.screen.session.Phase() != quiz.PhaseSubmitted {
		t.Errorf("phase = %s, want submitted", f.screen.session.Phase())
	}
	if len(f.results.appended) != 1 {
		t.Fatalf("results = %d, want 1", len(f.results.appended))
	}
	r := f.results.appended[0]
	if r.Total != 5 || r.Unattempted != 4 || r.Source != "fake" {
		t.Errorf("unexpected result: %+v", r)
	}

	if _, err := quiz.CheckReportEntry(context.Background(), f.repo); err != nil {
		t.Errorf("report should be reachable: %v", err)
	}
}

func TestTimeoutSubmitsOnce(t *testing.T) {
	f := newFixture(t, "ada@example.com", 2)
	f.start(t)
	id := f.screen.session.ID()

	_, cmd := f.screen.Update(timerTickMsg{SessionID: id})
	if cmd == nil {
		t.Fatal("expected the next tick")
	}
	_, cmd = f.screen.Update(timerTickMsg{SessionID: id})
	if got := gotoPage(t, cmd); got != quiz.PageReport {
		t.Errorf("expected report, got %s", got)
	}

	_, cmd = f.screen.Update(timerTickMsg{SessionID: id})
	if cmd != nil {
		t.Error("ticks after submission must not be rescheduled")
	}
	if len(f.results.appended) != 1 {
		t.Errorf("results = %d, want 1", len(f.results.appended))
	}
}

func TestStaleTickIgnored(t *testing.T) {
	f := newFixture(t, "ada@example.com", 0)
	f.start(t)
	before := f.screen.session.TimeRemaining()

	_, cmd := f.screen.Update(timerTickMsg{SessionID: "other"})
	if cmd != nil {
		t.Error("stale tick must not be rescheduled")
	}
	if f.screen.session.TimeRemaining() != before {
		t.Error("stale tick must not advance the timer")
	}
}

func TestResumeSkipsFetch(t *testing.T) {
	f := newFixture(t, "ada@example.com", 0)
	sess := quiz.New("ada@example.com", f.repo)
	if err := sess.Start(context.Background(), sampleQuestions(5)); err != nil {
		t.Fatal(err)
	}
	if err := sess.Navigate(3); err != nil {
		t.Fatal(err)
	}
	if err := sess.RecordAnswer(context.Background(), "right"); err != nil {
		t.Fatal(err)
	}

	_, cmd := f.screen.Update(f.screen.Init()())
	if cmd == nil {
		t.Fatal("expected timer to resume")
	}
	if f.source.calls != 0 {
		t.Errorf("fetch calls = %d, want 0", f.source.calls)
	}
	if f.screen.session.ID() != sess.ID() {
		t.Error("expected the stored session to be resumed")
	}
	if f.screen.session.CurrentIndex() != 3 {
		t.Errorf("index = %d, want 3", f.screen.session.CurrentIndex())
	}
	if f.screen.answers.Chosen != "right" {
		t.Errorf("chosen = %q, want the stored answer", f.screen.answers.Chosen)
	}
}
