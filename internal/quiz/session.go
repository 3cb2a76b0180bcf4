// Package quiz implements the timed quiz session: question navigation,
// answer bookkeeping, starring, countdown and submission.
package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"github.com/abhisek/quizo/internal/trivia"
)

// Status is the navigator status of a question.
type Status int

const (
	StatusUnattempted Status = iota
	StatusStarred
	StatusAnswered
)

func (s Status) String() string {
	switch s {
	case StatusAnswered:
		return "answered"
	case StatusStarred:
		return "starred"
	default:
		return "unattempted"
	}
}

// checkpointEvery is how often, in seconds, the countdown is persisted
// while active so a resumed session loses little time.
const checkpointEvery = 10

// Option configures a Session.
type Option func(*Session)

// WithRand sets the randomness used to shuffle answers.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithAllotted sets the time limit in seconds.
func WithAllotted(seconds int) Option {
	return func(s *Session) {
		if seconds > 0 {
			s.state.Allotted = seconds
		}
	}
}

// Session is one user's attempt at a question set. It is not safe for
// concurrent use; all calls are expected from the UI event loop.
type Session struct {
	state   State
	starred map[int]bool
	err     error

	repo   Repository
	rng    *rand.Rand
	logger *slog.Logger
}

// New creates a session in the loading phase for the given user.
func New(email string, repo Repository, opts ...Option) *Session {
	s := &Session{
		state: State{
			ID:       uuid.NewString(),
			Email:    email,
			Phase:    PhaseLoading,
			Allotted: DefaultAllotted,
		},
		starred: make(map[int]bool),
		repo:    repo,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.TimeRemaining = s.state.Allotted
	return s
}

// Resume rebuilds a session from stored state.
func Resume(st State, repo Repository, opts ...Option) (*Session, error) {
	if len(st.Questions) == 0 {
		return nil, ErrMissingSessionState
	}
	if len(st.Shuffled) != len(st.Questions) {
		return nil, fmt.Errorf("resume session %s: %d shuffled sets for %d questions", st.ID, len(st.Shuffled), len(st.Questions))
	}
	s := &Session{
		state:   st.Clone(),
		starred: make(map[int]bool, len(st.Starred)),
		repo:    repo,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	// The limit a session started with outlives config changes.
	if st.Allotted > 0 {
		s.state.Allotted = st.Allotted
	}
	if s.state.Allotted <= 0 {
		s.state.Allotted = DefaultAllotted
	}
	for _, i := range st.Starred {
		s.starred[i] = true
	}
	if s.state.CurrentIndex < 0 || s.state.CurrentIndex >= len(s.state.Questions) {
		s.state.CurrentIndex = 0
	}
	return s, nil
}

// Start moves a loading (or failed) session to active with the fetched
// questions. Answer order is shuffled here once and never again.
func (s *Session) Start(ctx context.Context, questions []trivia.Question) error {
	if s.state.Phase != PhaseLoading && s.state.Phase != PhaseFailed {
		return ErrAlreadyStarted
	}
	if len(questions) == 0 {
		s.Fail(&trivia.FetchError{Source: "session", Err: trivia.ErrNoQuestions})
		return s.err
	}

	s.state.Questions = slices.Clone(questions)
	s.state.Shuffled = make([][]string, len(questions))
	for i, q := range questions {
		s.state.Shuffled[i] = Shuffle(q.CorrectAnswer, q.IncorrectAnswers, s.rng)
	}
	s.state.Answers = nil
	s.state.CurrentIndex = 0
	s.state.TimeRemaining = s.state.Allotted
	s.state.Phase = PhaseActive
	s.err = nil

	s.logger.Info("session started",
		"session_id", s.state.ID,
		"questions", len(questions),
	)
	return s.persist(ctx)
}

// Fail records a fetch failure. The session can be started again.
func (s *Session) Fail(err error) {
	s.state.Phase = PhaseFailed
	s.err = err
	s.logger.Warn("question fetch failed", "session_id", s.state.ID, "error", err)
}

// Err returns the failure recorded by Fail.
func (s *Session) Err() error { return s.err }

// RecordAnswer sets the answer for the current question, replacing any
// earlier one, and writes it through to the repository. A write failure
// is returned but the in-memory answer is kept.
func (s *Session) RecordAnswer(ctx context.Context, answer string) error {
	if s.state.Phase != PhaseActive {
		return ErrNotActive
	}
	idx := s.state.CurrentIndex
	if i := s.answerPos(idx); i >= 0 {
		s.state.Answers[i].Answer = answer
	} else {
		s.state.Answers = append(s.state.Answers, AnswerRecord{QuestionIndex: idx, Answer: answer})
	}
	s.logger.Debug("answer recorded", "session_id", s.state.ID, "question", idx)
	return s.persist(ctx)
}

// Navigate moves to question index. Out-of-range targets leave the
// current index unchanged and return ErrInvalidNavigation.
func (s *Session) Navigate(index int) error {
	if s.state.Phase != PhaseActive {
		return ErrNotActive
	}
	if index < 0 || index >= len(s.state.Questions) {
		return ErrInvalidNavigation
	}
	s.state.CurrentIndex = index
	return nil
}

// Next moves to the following question.
func (s *Session) Next() error { return s.Navigate(s.state.CurrentIndex + 1) }

// Prev moves to the preceding question.
func (s *Session) Prev() error { return s.Navigate(s.state.CurrentIndex - 1) }

// HasNext reports whether Next would succeed.
func (s *Session) HasNext() bool { return s.state.CurrentIndex < len(s.state.Questions)-1 }

// HasPrev reports whether Prev would succeed.
func (s *Session) HasPrev() bool { return s.state.CurrentIndex > 0 }

// ToggleStar flips the starred flag of question index.
func (s *Session) ToggleStar(ctx context.Context, index int) error {
	if s.state.Phase != PhaseActive {
		return ErrNotActive
	}
	if index < 0 || index >= len(s.state.Questions) {
		return ErrInvalidNavigation
	}
	if s.starred[index] {
		delete(s.starred, index)
	} else {
		s.starred[index] = true
	}
	return s.persist(ctx)
}

// QuestionStatus reports answered, else starred, else unattempted.
func (s *Session) QuestionStatus(index int) Status {
	if s.answerPos(index) >= 0 {
		return StatusAnswered
	}
	if s.starred[index] {
		return StatusStarred
	}
	return StatusUnattempted
}

// Tick advances the countdown by one second. When the countdown reaches
// zero the session is submitted and expired is true. Ticks outside the
// active phase do nothing.
func (s *Session) Tick(ctx context.Context) (expired bool, err error) {
	if s.state.Phase != PhaseActive {
		return false, nil
	}
	if s.state.TimeRemaining > 0 {
		s.state.TimeRemaining--
	}
	if s.state.TimeRemaining > 0 {
		if s.state.TimeRemaining%checkpointEvery == 0 {
			return false, s.persist(ctx)
		}
		return false, nil
	}
	s.logger.Info("time expired, submitting", "session_id", s.state.ID)
	_, err = s.Submit(ctx)
	return true, err
}

// Submit finalizes the session and persists it. Only the first call has
// any effect; later calls return submitted=false.
func (s *Session) Submit(ctx context.Context) (submitted bool, err error) {
	if s.state.Phase != PhaseActive {
		return false, nil
	}
	s.state.Phase = PhaseSubmitted
	s.logger.Info("session submitted",
		"session_id", s.state.ID,
		"answered", len(s.state.Answers),
		"time_remaining", s.state.TimeRemaining,
	)
	return true, s.persist(ctx)
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() State {
	st := s.state.Clone()
	st.Starred = s.starredList()
	return st
}

func (s *Session) ID() string { return s.state.ID }
func (s *Session) Email() string { return s.state.Email }
func (s *Session) Phase() Phase { return s.state.Phase }
func (s *Session) Total() int { return len(s.state.Questions) }
func (s *Session) CurrentIndex() int { return s.state.CurrentIndex }
func (s *Session) TimeRemaining() int { return s.state.TimeRemaining }
func (s *Session) Allotted() int { return s.state.Allotted }
func (s *Session) Questions() []trivia.Question { return s.state.Questions }
func (s *Session) AnsweredCount() int { return len(s.state.Answers) }
func (s *Session) StarredCount() int { return len(s.starred) }
func (s *Session) IsStarred(index int) bool { return s.starred[index] }
func (s *Session) Answers() []AnswerRecord { return slices.Clone(s.state.Answers) }
func (s *Session) Current() trivia.Question { return s.state.Questions[s.state.CurrentIndex] }
func (s *Session) CurrentChoices() []string { return s.state.Shuffled[s.state.CurrentIndex] }
func (s *Session) Choices(index int) []string { return s.state.Shuffled[index] }

// AnswerFor returns the recorded answer for question index.
func (s *Session) AnswerFor(index int) (string, bool) {
	if i := s.answerPos(index); i >= 0 {
		return s.state.Answers[i].Answer, true
	}
	return "", false
}

func (s *Session) answerPos(index int) int {
	return slices.IndexFunc(s.state.Answers, func(a AnswerRecord) bool {
		return a.QuestionIndex == index
	})
}

func (s *Session) starredList() []int {
	out := make([]int, 0, len(s.starred))
	for i := range s.starred {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

func (s *Session) persist(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Save(ctx, s.Snapshot()); err != nil {
		s.logger.Warn("persist session failed", "session_id", s.state.ID, "error", err)
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
