// Package scoring turns a finished quiz into a summary, a letter grade
// and a per-question breakdown.
package scoring

import (
	"fmt"
	"math"

	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/trivia"
)

// Summary is the aggregate result of a quiz.
type Summary struct {
	Total       int `json:"total"`
	Correct     int `json:"correct"`
	Incorrect   int `json:"incorrect"`
	Unattempted int `json:"unattempted"`
	// Score is the rounded percentage of correct answers, 0-100.
	Score     int `json:"score"`
	TimeSpent int `json:"timeSpent"`
}

// Score computes the summary. allotted <= 0 means quiz.DefaultAllotted.
// Answers that point outside questions are ignored, and a question
// answered more than once counts its last record.
func Score(questions []trivia.Question, answers []quiz.AnswerRecord, remaining, allotted int) Summary {
	if allotted <= 0 {
		allotted = quiz.DefaultAllotted
	}
	sum := Summary{
		Total:     len(questions),
		TimeSpent: max(allotted-remaining, 0),
	}

	chosen := latest(answers)
	for i, q := range questions {
		ans, ok := chosen[i]
		switch {
		case !ok:
			sum.Unattempted++
		case ans == q.CorrectAnswer:
			sum.Correct++
		default:
			sum.Incorrect++
		}
	}

	if len(questions) > 0 {
		sum.Score = int(math.Round(100 * float64(sum.Correct) / float64(len(questions))))
	}
	return sum
}

// latest maps each question index to its answer. A repeated index keeps
// the last record.
func latest(answers []quiz.AnswerRecord) map[int]string {
	m := make(map[int]string, len(answers))
	for _, a := range answers {
		m[a.QuestionIndex] = a.Answer
	}
	return m
}

// FromState scores a stored session.
func FromState(st quiz.State) Summary {
	return Score(st.Questions, st.Answers, st.TimeRemaining, st.Allotted)
}

// FormatTime renders seconds as "Xm Ys".
func FormatTime(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// FormatClock renders seconds as "MM:SS" for the countdown display.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
