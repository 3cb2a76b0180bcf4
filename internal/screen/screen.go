package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a status
// on the right of the header, such as the countdown.
type StatusProvider interface {
	Status() string
}

// GotoMsg asks the app to show one of the logical pages. The app builds
// the target screen and resets the router to it.
type GotoMsg struct {
	Page quiz.Page
	// Reason is set when the move is a redirect, for logging.
	Reason error
}

// Goto returns a command emitting GotoMsg.
func Goto(page quiz.Page, reason error) tea.Cmd {
	return func() tea.Msg { return GotoMsg{Page: page, Reason: reason} }
}
