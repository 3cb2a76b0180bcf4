package scoring

import (
	"testing"

	"github.com/abhisek/quizo/internal/trivia"
)

func TestAnalyze(t *testing.T) {
	qs, answers := fiveFiveFive()
	results := Analyze(qs, answers)
	if len(results) != 15 {
		t.Fatalf("len = %d, want 15", len(results))
	}

	counts := map[Outcome]int{}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
		counts[r.Outcome]++
	}
	if counts[OutcomeCorrect] != 5 || counts[OutcomeIncorrect] != 5 || counts[OutcomeUnattempted] != 5 {
		t.Errorf("counts = %v", counts)
	}

	if results[7].UserAnswer != "wrong-7" || results[7].CorrectAnswer != "right-7" {
		t.Errorf("result 7 = %+v", results[7])
	}
	if results[12].UserAnswer != "" {
		t.Errorf("unattempted answer = %q", results[12].UserAnswer)
	}
}

func TestDifficultyColor(t *testing.T) {
	if DifficultyColor(trivia.DifficultyEasy) == DifficultyColor(trivia.DifficultyHard) {
		t.Error("easy and hard share a color")
	}
	if DifficultyColor("unknown") == "" {
		t.Error("unknown difficulty needs a fallback color")
	}
}
