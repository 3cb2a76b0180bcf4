package quiz

import "context"

// Repository persists the identified user and the current session.
type Repository interface {
	// Identity returns the stored email, or "" when none is set.
	Identity(ctx context.Context) (string, error)

	// SetIdentity stores the email. An empty email removes it.
	SetIdentity(ctx context.Context, email string) error

	// Load returns the stored session or ErrNoState.
	Load(ctx context.Context) (State, error)

	// Save replaces the stored session.
	Save(ctx context.Context, st State) error

	// Clear removes the stored session. The identity is kept.
	Clear(ctx context.Context) error
}
