package quiz

import (
	"slices"

	"github.com/abhisek/quizo/internal/trivia"
)

// Phase is a session lifecycle state.
type Phase string

const (
	PhaseLoading   Phase = "loading"
	PhaseActive    Phase = "active"
	PhaseSubmitted Phase = "submitted"
	PhaseFailed    Phase = "failed"
)

// DefaultAllotted is the default time limit in seconds.
const DefaultAllotted = 1800

// AnswerRecord is the answer chosen for one question.
type AnswerRecord struct {
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
}

// State is the serializable form of a session.
type State struct {
	ID            string            `json:"id"`
	Email         string            `json:"email"`
	Phase         Phase             `json:"phase"`
	Questions     []trivia.Question `json:"questions"`
	Shuffled      [][]string        `json:"shuffled"`
	Answers       []AnswerRecord    `json:"answers"`
	Starred       []int             `json:"starred"`
	CurrentIndex  int               `json:"currentIndex"`
	TimeRemaining int               `json:"timeRemaining"`
	Allotted      int               `json:"allotted"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Questions = slices.Clone(s.Questions)
	for i := range out.Questions {
		out.Questions[i].IncorrectAnswers = slices.Clone(s.Questions[i].IncorrectAnswers)
	}
	if s.Shuffled != nil {
		out.Shuffled = make([][]string, len(s.Shuffled))
		for i, set := range s.Shuffled {
			out.Shuffled[i] = slices.Clone(set)
		}
	}
	out.Answers = slices.Clone(s.Answers)
	out.Starred = slices.Clone(s.Starred)
	return out
}
