package quiz

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Page is one of the three logical pages.
type Page int

const (
	PageEntry Page = iota
	PageQuiz
	PageReport
)

func (p Page) String() string {
	switch p {
	case PageQuiz:
		return "quiz"
	case PageReport:
		return "report"
	default:
		return "entry"
	}
}

// Redirect tells the caller to leave the current page.
type Redirect struct {
	To     Page
	Reason error
}

func (r *Redirect) Error() string {
	return fmt.Sprintf("redirect to %s: %v", r.To, r.Reason)
}

func (r *Redirect) Unwrap() error { return r.Reason }

// QuizEntry is what the quiz page needs to begin.
type QuizEntry struct {
	Email string
	// Resume holds an active stored session for the same user, if any.
	Resume *State
}

// CheckQuizEntry verifies an identified user exists. The returned error is
// a *Redirect when the user must go back to the entry page; other errors
// come from the repository.
func CheckQuizEntry(ctx context.Context, repo Repository) (QuizEntry, error) {
	email, err := repo.Identity(ctx)
	if err != nil {
		return QuizEntry{}, fmt.Errorf("load identity: %w", err)
	}
	if email == "" {
		return QuizEntry{}, &Redirect{To: PageEntry, Reason: ErrMissingIdentity}
	}

	entry := QuizEntry{Email: email}
	st, err := repo.Load(ctx)
	switch {
	case errors.Is(err, ErrNoState):
	case err != nil:
		return QuizEntry{}, fmt.Errorf("load session: %w", err)
	case st.Phase == PhaseActive && st.Email == email && len(st.Questions) > 0 && st.TimeRemaining > 0:
		entry.Resume = &st
	}
	return entry, nil
}

// CheckReportEntry returns the submitted state to report on, or a
// *Redirect to the entry page when there is nothing to report.
func CheckReportEntry(ctx context.Context, repo Repository) (State, error) {
	email, err := repo.Identity(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load identity: %w", err)
	}
	if email == "" {
		return State{}, &Redirect{To: PageEntry, Reason: ErrMissingIdentity}
	}

	st, err := repo.Load(ctx)
	if errors.Is(err, ErrNoState) {
		return State{}, &Redirect{To: PageEntry, Reason: ErrMissingSessionState}
	}
	if err != nil {
		return State{}, fmt.Errorf("load session: %w", err)
	}
	if st.Phase != PhaseSubmitted || len(st.Questions) == 0 {
		return State{}, &Redirect{To: PageEntry, Reason: ErrMissingSessionState}
	}
	return st, nil
}

// IsRedirect reports whether err carries a redirect and returns it.
func IsRedirect(err error) (*Redirect, bool) {
	var r *Redirect
	ok := errors.As(err, &r)
	return r, ok
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail trims s and checks it looks like an email address.
func ValidateEmail(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !emailPattern.MatchString(s) {
		return "", ErrInvalidEmail
	}
	return s, nil
}
