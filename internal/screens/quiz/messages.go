package quiz

import (
	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/trivia"
)

// entryCheckedMsg is sent once the entry guard has run.
type entryCheckedMsg struct {
	Entry quiz.QuizEntry
	Err   error
}

// questionsFetchedMsg is sent when a fetch attempt finishes.
type questionsFetchedMsg struct {
	SessionID string
	Questions []trivia.Question
	Err       error
}

// timerTickMsg is sent every second while the session is active. It is
// tagged with the session it belongs to so stray ticks are dropped.
type timerTickMsg struct {
	SessionID string
}
