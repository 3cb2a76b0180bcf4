package quiz

import "errors"

var (
	// ErrInvalidNavigation is returned when a move targets an index outside
	// the question set. The current index is left unchanged.
	ErrInvalidNavigation = errors.New("quiz: navigation out of range")

	// ErrNotActive is returned when an answer, star or move is attempted
	// while the session is not active.
	ErrNotActive = errors.New("quiz: session is not active")

	// ErrAlreadyStarted is returned by Start on a session past loading.
	ErrAlreadyStarted = errors.New("quiz: session already started")

	// ErrNoState is returned by Repository.Load when nothing is stored.
	ErrNoState = errors.New("quiz: no stored session")

	// ErrMissingIdentity means the quiz was entered without an identified user.
	ErrMissingIdentity = errors.New("quiz: no identified user")

	// ErrMissingSessionState means the report was entered without a
	// submitted quiz to report on.
	ErrMissingSessionState = errors.New("quiz: no completed quiz to report")

	// ErrInvalidEmail is returned by ValidateEmail.
	ErrInvalidEmail = errors.New("quiz: invalid email address")
)
