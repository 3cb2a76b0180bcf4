package scoring

import (
	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/trivia"
)

// Outcome is the result of a single question.
type Outcome string

const (
	OutcomeCorrect     Outcome = "correct"
	OutcomeIncorrect   Outcome = "incorrect"
	OutcomeUnattempted Outcome = "unattempted"
)

// QuestionResult is one row of the per-question breakdown.
type QuestionResult struct {
	Index         int
	Text          string
	Category      string
	Difficulty    trivia.Difficulty
	UserAnswer    string
	CorrectAnswer string
	Outcome       Outcome
}

// Analyze returns a result for every question, in question order.
func Analyze(questions []trivia.Question, answers []quiz.AnswerRecord) []QuestionResult {
	byIndex := latest(answers)

	out := make([]QuestionResult, len(questions))
	for i, q := range questions {
		r := QuestionResult{
			Index:         i,
			Text:          q.Text,
			Category:      q.Category,
			Difficulty:    q.Difficulty,
			CorrectAnswer: q.CorrectAnswer,
			Outcome:       OutcomeUnattempted,
		}
		if ans, ok := byIndex[i]; ok {
			r.UserAnswer = ans
			if ans == q.CorrectAnswer {
				r.Outcome = OutcomeCorrect
			} else {
				r.Outcome = OutcomeIncorrect
			}
		}
		out[i] = r
	}
	return out
}

// DifficultyColor is the display color for a difficulty label.
func DifficultyColor(d trivia.Difficulty) string {
	switch d {
	case trivia.DifficultyEasy:
		return "#22C55E"
	case trivia.DifficultyMedium:
		return "#EAB308"
	case trivia.DifficultyHard:
		return "#EF4444"
	default:
		return "#9CA3AF"
	}
}
