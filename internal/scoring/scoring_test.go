package scoring

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/trivia"
)

func questions(n int) []trivia.Question {
	qs := make([]trivia.Question, n)
	for i := range qs {
		qs[i] = trivia.Question{
			Index:            i,
			Text:             fmt.Sprintf("Q%d", i),
			CorrectAnswer:    fmt.Sprintf("right-%d", i),
			IncorrectAnswers: []string{fmt.Sprintf("wrong-%d", i)},
			Difficulty:       trivia.DifficultyMedium,
			Category:         "General",
		}
	}
	return qs
}

// fiveFiveFive answers 0-4 correctly, 5-9 incorrectly and leaves 10-14.
func fiveFiveFive() ([]trivia.Question, []quiz.AnswerRecord) {
	qs := questions(15)
	var answers []quiz.AnswerRecord
	for i := 0; i < 5; i++ {
		answers = append(answers, quiz.AnswerRecord{QuestionIndex: i, Answer: qs[i].CorrectAnswer})
	}
	for i := 5; i < 10; i++ {
		answers = append(answers, quiz.AnswerRecord{QuestionIndex: i, Answer: qs[i].IncorrectAnswers[0]})
	}
	return qs, answers
}

func TestScore_EndToEnd(t *testing.T) {
	qs, answers := fiveFiveFive()
	got := Score(qs, answers, 900, 1800)
	want := Summary{Total: 15, Correct: 5, Incorrect: 5, Unattempted: 5, Score: 33, TimeSpent: 900}
	if got != want {
		t.Fatalf("Score = %+v, want %+v", got, want)
	}
	if g := GradeFor(got.Score); g.Letter != "F" {
		t.Errorf("grade = %s, want F", g.Letter)
	}
}

func TestScore_OrderIndependent(t *testing.T) {
	qs, answers := fiveFiveFive()
	want := Score(qs, answers, 100, 1800)

	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 20; i++ {
		perm := make([]quiz.AnswerRecord, len(answers))
		copy(perm, answers)
		r.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		if got := Score(qs, perm, 100, 1800); got != want {
			t.Fatalf("permuted Score = %+v, want %+v", got, want)
		}
	}
}

func TestScore_CountsSumToTotal(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for trial := 0; trial < 50; trial++ {
		n := r.IntN(20)
		qs := questions(n)
		var answers []quiz.AnswerRecord
		for i := 0; i < n; i++ {
			switch r.IntN(3) {
			case 0:
				answers = append(answers, quiz.AnswerRecord{QuestionIndex: i, Answer: qs[i].CorrectAnswer})
			case 1:
				answers = append(answers, quiz.AnswerRecord{QuestionIndex: i, Answer: "nope"})
			}
		}
		s := Score(qs, answers, r.IntN(1800), 1800)
		if s.Correct+s.Incorrect+s.Unattempted != n {
			t.Fatalf("counts %+v do not sum to %d", s, n)
		}
		if s.Correct+s.Incorrect != len(answers) {
			t.Fatalf("correct+incorrect = %d, want %d", s.Correct+s.Incorrect, len(answers))
		}
		if s.Score < 0 || s.Score > 100 {
			t.Fatalf("score %d out of range", s.Score)
		}
	}
}

func TestScore_EdgeCases(t *testing.T) {
	if got := Score(nil, nil, 0, 1800); got.Score != 0 || got.TimeSpent != 1800 {
		t.Errorf("empty set = %+v", got)
	}
	if got := Score(questions(3), nil, 2000, 1800); got.TimeSpent != 0 {
		t.Errorf("time spent = %d, want floor at 0", got.TimeSpent)
	}
	if got := Score(questions(3), nil, 1000, 0); got.TimeSpent != 800 {
		t.Errorf("default allotted: time spent = %d, want 800", got.TimeSpent)
	}

	qs := questions(3)
	exact := []quiz.AnswerRecord{
		{QuestionIndex: 0, Answer: qs[0].CorrectAnswer + " "},
		{QuestionIndex: 1, Answer: "RIGHT-1"},
		{QuestionIndex: 2, Answer: qs[2].CorrectAnswer},
	}
	got := Score(qs, exact, 0, 1800)
	if got.Correct != 1 || got.Incorrect != 2 {
		t.Errorf("matching must be exact: %+v", got)
	}
	if got.Score != 33 {
		t.Errorf("score = %d, want 33", got.Score)
	}
}

func TestScore_DuplicateRecordsLastWins(t *testing.T) {
	qs := questions(3)
	answers := []quiz.AnswerRecord{
		{QuestionIndex: 0, Answer: "wrong"},
		{QuestionIndex: 0, Answer: qs[0].CorrectAnswer},
		{QuestionIndex: 0, Answer: qs[0].CorrectAnswer},
		{QuestionIndex: 1, Answer: qs[1].CorrectAnswer},
		{QuestionIndex: 1, Answer: "wrong"},
	}
	got := Score(qs, answers, 0, 1800)
	if got.Correct != 1 || got.Incorrect != 1 || got.Unattempted != 1 {
		t.Errorf("summary = %+v, want 1/1/1", got)
	}
	if got.Correct+got.Incorrect+got.Unattempted != got.Total {
		t.Errorf("counts do not sum to total: %+v", got)
	}

	rows := Analyze(qs, answers)
	if rows[0].Outcome != OutcomeCorrect || rows[1].Outcome != OutcomeIncorrect || rows[2].Outcome != OutcomeUnattempted {
		t.Errorf("analysis disagrees with score: %+v", rows)
	}
}

func TestScore_Rounding(t *testing.T) {
	qs := questions(3)
	answers := []quiz.AnswerRecord{
		{QuestionIndex: 0, Answer: qs[0].CorrectAnswer},
		{QuestionIndex: 1, Answer: qs[1].CorrectAnswer},
	}
	if got := Score(qs, answers, 0, 1800).Score; got != 67 {
		t.Errorf("2/3 = %d, want 67", got)
	}
}

func TestFromState(t *testing.T) {
	qs, answers := fiveFiveFive()
	st := quiz.State{Questions: qs, Answers: answers, TimeRemaining: 900, Allotted: 1800}
	if got := FromState(st); got.Score != 33 || got.TimeSpent != 900 {
		t.Errorf("FromState = %+v", got)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m 0s"},
		{65, "1m 5s"},
		{90, "1m 30s"},
		{3599, "59m 59s"},
		{1800, "30m 0s"},
		{-5, "0m 0s"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.in); got != tt.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(65); got != "01:05" {
		t.Errorf("FormatClock(65) = %q", got)
	}
	if got := FormatClock(1800); got != "30:00" {
		t.Errorf("FormatClock(1800) = %q", got)
	}
}
