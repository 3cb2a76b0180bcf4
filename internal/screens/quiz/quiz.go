// Package quiz is the page where the timed quiz is taken.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/screen"
	"github.com/abhisek/quizo/internal/scoring"
	"github.com/abhisek/quizo/internal/store"
	"github.com/abhisek/quizo/internal/trivia"
	"github.com/abhisek/quizo/internal/ui/components"
	"github.com/abhisek/quizo/internal/ui/layout"
)

// Deps are the collaborators of the quiz page.
type Deps struct {
	Repo    quiz.Repository
	Source  trivia.Source
	Results store.ResultRepo
	Logger  *slog.Logger

	Questions    int
	Allotted     int
	FetchTimeout time.Duration

	// SessionOptions are passed to every new or resumed session.
	SessionOptions []quiz.Option
}

// QuizScreen drives one session from fetch to submission.
type QuizScreen struct {
	deps    Deps
	session *quiz.Session
	answers components.AnswerList

	fetching   bool
	confirming bool
	confirm    components.ButtonRow
	finished   bool
	notice     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen.
func New(deps Deps) *QuizScreen {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Questions <= 0 {
		deps.Questions = 15
	}
	if deps.Allotted <= 0 {
		deps.Allotted = quiz.DefaultAllotted
	}
	if deps.FetchTimeout <= 0 {
		deps.FetchTimeout = 20 * time.Second
	}
	return &QuizScreen{deps: deps}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.checkEntry()
}

func (s *QuizScreen) Title() string {
	if s.session == nil || s.session.Phase() != quiz.PhaseActive {
		return "Quiz"
	}
	return fmt.Sprintf("Question %d of %d", s.session.CurrentIndex()+1, s.session.Total())
}

func (s *QuizScreen) Status() string {
	if s.session == nil || s.session.Phase() == quiz.PhaseLoading || s.session.Phase() == quiz.PhaseFailed {
		return ""
	}
	return "⏱ " + scoring.FormatClock(s.session.TimeRemaining())
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.session == nil || s.fetching:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	case s.session.Phase() == quiz.PhaseFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case s.confirming:
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "Tab", Description: "Next open"},
		{Key: "S", Description: "Star"},
		{Key: "Ctrl+S", Description: "Submit"},
	}
}

func (s *QuizScreen) checkEntry() tea.Cmd {
	repo := s.deps.Repo
	return func() tea.Msg {
		entry, err := quiz.CheckQuizEntry(context.Background(), repo)
		return entryCheckedMsg{Entry: entry, Err: err}
	}
}

func (s *QuizScreen) fetchQuestions() tea.Cmd {
	s.fetching = true
	id := s.session.ID()
	src, amount, timeout := s.deps.Source, s.deps.Questions, s.deps.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		qs, err := src.Fetch(ctx, amount)
		return questionsFetchedMsg{SessionID: id, Questions: qs, Err: err}
	}
}

func (s *QuizScreen) tickCmd() tea.Cmd {
	id := s.session.ID()
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{SessionID: id}
	})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case entryCheckedMsg:
		return s.handleEntryChecked(msg)

	case questionsFetchedMsg:
		return s.handleFetched(msg)

	case timerTickMsg:
		return s.handleTick(msg)

	case components.AnswerChosenMsg:
		return s.handleAnswer(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleEntryChecked(msg entryCheckedMsg) (screen.Screen, tea.Cmd) {
	if r, ok := quiz.IsRedirect(msg.Err); ok {
		return s, screen.Goto(r.To, r.Reason)
	}
	if msg.Err != nil {
		s.deps.Logger.Error("quiz entry check failed", "error", msg.Err)
		return s, screen.Goto(quiz.PageEntry, msg.Err)
	}

	if st := msg.Entry.Resume; st != nil {
		sess, err := quiz.Resume(*st, s.deps.Repo, s.sessionOptions()...)
		if err == nil {
			s.session = sess
			s.loadAnswerList()
			s.deps.Logger.Info("session resumed",
				"session_id", sess.ID(),
				"answered", sess.AnsweredCount(),
				"time_remaining", sess.TimeRemaining(),
			)
			return s, s.tickCmd()
		}
		s.deps.Logger.Warn("resume failed, starting a new session", "error", err)
	}

	s.session = quiz.New(msg.Entry.Email, s.deps.Repo, s.sessionOptions()...)
	return s, s.fetchQuestions()
}

func (s *QuizScreen) sessionOptions() []quiz.Option {
	opts := []quiz.Option{quiz.WithAllotted(s.deps.Allotted), quiz.WithLogger(s.deps.Logger)}
	return append(opts, s.deps.SessionOptions...)
}

func (s *QuizScreen) handleFetched(msg questionsFetchedMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil || msg.SessionID != s.session.ID() {
		return s, nil
	}
	s.fetching = false

	if msg.Err != nil {
		s.session.Fail(msg.Err)
		return s, nil
	}
	if err := s.session.Start(context.Background(), msg.Questions); err != nil {
		if s.session.Phase() != quiz.PhaseActive {
			return s, nil
		}
		// Active but not persisted: keep going, progress may not survive a restart.
		s.notice = "Progress could not be saved"
	}
	s.deps.Logger.Info("quiz ready",
		"session_id", s.session.ID(),
		"questions", s.session.Total(),
		"source", s.deps.Source.Name(),
	)
	s.loadAnswerList()
	return s, s.tickCmd()
}

func (s *QuizScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil || msg.SessionID != s.session.ID() || s.session.Phase() != quiz.PhaseActive {
		return s, nil
	}
	expired, err := s.session.Tick(context.Background())
	if expired {
		return s.finish(err)
	}
	return s, s.tickCmd()
}

func (s *QuizScreen) handleAnswer(msg components.AnswerChosenMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil || s.session.Phase() != quiz.PhaseActive {
		return s, nil
	}
	// Chosen on a question the user has since left.
	if msg.Question != s.session.CurrentIndex() {
		return s, nil
	}
	if err := s.session.RecordAnswer(context.Background(), msg.Answer); err != nil && !errors.Is(err, quiz.ErrNotActive) {
		s.notice = "Answer kept, but could not be saved"
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil || s.fetching {
		return s, nil
	}
	key := msg.String()

	if s.session.Phase() == quiz.PhaseFailed {
		switch key {
		case "r", "R":
			return s, s.fetchQuestions()
		case "esc":
			return s, screen.Goto(quiz.PageEntry, nil)
		}
		return s, nil
	}

	if s.session.Phase() != quiz.PhaseActive {
		return s, nil
	}

	if s.confirming {
		return s.handleConfirmKey(msg)
	}

	switch key {
	case "left", "h":
		return s.move(s.session.Prev())
	case "right", "l":
		return s.move(s.session.Next())
	case "tab":
		return s.move(s.session.Navigate(s.nextOpen()))
	case "s":
		if err := s.session.ToggleStar(context.Background(), s.session.CurrentIndex()); err != nil {
			s.notice = "Star kept, but could not be saved"
		}
		return s, nil
	case "S", "shift+s", "ctrl+s":
		s.openConfirm()
		return s, nil
	}

	var cmd tea.Cmd
	s.answers, cmd = s.answers.Update(msg)
	return s, cmd
}

func (s *QuizScreen) move(err error) (screen.Screen, tea.Cmd) {
	if err == nil {
		s.loadAnswerList()
	}
	return s, nil
}

// nextOpen returns the first unanswered question after the current one,
// wrapping around, or the current index when every question is answered.
func (s *QuizScreen) nextOpen() int {
	n := s.session.Total()
	cur := s.session.CurrentIndex()
	for step := 1; step < n; step++ {
		i := (cur + step) % n
		if s.session.QuestionStatus(i) != quiz.StatusAnswered {
			return i
		}
	}
	return cur
}

func (s *QuizScreen) openConfirm() {
	s.confirming = true
	s.confirm = components.NewButtonRow(
		components.NewButton("Submit", true, func() tea.Cmd {
			return func() tea.Msg { return tea.KeyPressMsg{Code: 'y', Text: "y"} }
		}),
		components.NewButton("Keep going", false, func() tea.Cmd {
			return func() tea.Msg { return tea.KeyPressMsg{Code: 'n', Text: "n"} }
		}),
	)
}

func (s *QuizScreen) handleConfirmKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		s.confirming = false
		ok, err := s.session.Submit(context.Background())
		if !ok {
			return s, nil
		}
		return s.finish(err)
	case "n", "N", "esc":
		s.confirming = false
		return s, nil
	}
	var cmd tea.Cmd
	s.confirm, cmd = s.confirm.Update(msg)
	return s, cmd
}

// finish records the result of a submitted session and moves to the report.
func (s *QuizScreen) finish(submitErr error) (screen.Screen, tea.Cmd) {
	if s.finished {
		return s, nil
	}
	s.finished = true

	st := s.session.Snapshot()
	sum := scoring.FromState(st)
	grade := scoring.GradeFor(sum.Score)
	log := s.deps.Logger.With("session_id", st.ID)

	if submitErr != nil {
		log.Error("persist submitted session failed", "error", submitErr)
	}
	log.Info("quiz finished",
		"score", sum.Score,
		"grade", grade.Letter,
		"time_spent", scoring.FormatTime(sum.TimeSpent),
	)

	if s.deps.Results != nil {
		err := s.deps.Results.Append(context.Background(), store.Result{
			SessionID:   st.ID,
			Email:       st.Email,
			Total:       sum.Total,
			Correct:     sum.Correct,
			Incorrect:   sum.Incorrect,
			Unattempted: sum.Unattempted,
			Score:       sum.Score,
			Grade:       grade.Letter,
			TimeSpent:   sum.TimeSpent,
			Source:      s.deps.Source.Name(),
		})
		if err != nil {
			log.Warn("append result failed", "error", err)
		}
	}

	return s, screen.Goto(quiz.PageReport, nil)
}

func (s *QuizScreen) loadAnswerList() {
	chosen, _ := s.session.AnswerFor(s.session.CurrentIndex())
	s.answers = components.NewAnswerList(s.session.CurrentIndex(), s.session.CurrentChoices(), chosen)
}
