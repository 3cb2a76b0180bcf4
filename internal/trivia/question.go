// Package trivia holds the question model and the sources that supply
// question batches for a quiz session.
package trivia

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/quizo/internal/llm"
)

// Difficulty is the difficulty label attached to a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Kind distinguishes multiple-choice from true/false questions.
type Kind string

const (
	KindMultiple Kind = "multiple"
	KindBoolean  Kind = "boolean"
)

// Question is one fetched trivia question. It is immutable once fetched.
type Question struct {
	// Index is the position of the question in the fetched set.
	Index            int        `json:"index"`
	Text             string     `json:"question"`
	CorrectAnswer    string     `json:"correct_answer"`
	IncorrectAnswers []string   `json:"incorrect_answers"`
	Difficulty       Difficulty `json:"difficulty"`
	Category         string     `json:"category"`
	Kind             Kind       `json:"type,omitempty"`
}

// Choices returns the incorrect answers followed by the correct one, in
// source order. Display order comes from the session's shuffle.
func (q Question) Choices() []string {
	out := make([]string, 0, len(q.IncorrectAnswers)+1)
	out = append(out, q.IncorrectAnswers...)
	return append(out, q.CorrectAnswer)
}

// Source supplies batches of questions.
type Source interface {
	// Fetch returns up to amount questions, indexed from zero. Any failure
	// is reported as a *FetchError.
	Fetch(ctx context.Context, amount int) ([]Question, error)

	// Name identifies the source in logs.
	Name() string
}

// ErrNoQuestions is wrapped by a FetchError when a source returns an empty batch.
var ErrNoQuestions = errors.New("no questions returned")

// ErrRateLimited is wrapped by a FetchError when the source asks the client
// to slow down.
var ErrRateLimited = errors.New("rate limited")

// ErrUnavailable is wrapped when the source answers with a server error.
var ErrUnavailable = errors.New("service unavailable")

// FetchError reports a failure to retrieve questions.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch questions from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsFetchError reports whether err is or wraps a *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// Retryable reports whether a fetch failure is likely to clear on its own:
// rate limits, timeouts and unavailable backends.
func Retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		llm.IsTransient(err)
}

// reindex assigns Index by position and drops anything past limit.
func reindex(qs []Question, limit int) []Question {
	if limit > 0 && len(qs) > limit {
		qs = qs[:limit]
	}
	for i := range qs {
		qs[i].Index = i
	}
	return qs
}
