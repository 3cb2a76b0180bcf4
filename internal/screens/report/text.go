package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/scoring"
)

// Filename is the name the printed report is written under.
func Filename(st quiz.State) string {
	id := st.ID
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		id = "latest"
	}
	return "quizo-report-" + id + ".txt"
}

// WriteText writes the plain-text report of a submitted session.
func WriteText(w io.Writer, st quiz.State) error {
	sum := scoring.FromState(st)
	grade := scoring.GradeFor(sum.Score)

	var b strings.Builder
	b.WriteString("Quizo report\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
	fmt.Fprintf(&b, "Email:       %s\n", st.Email)
	fmt.Fprintf(&b, "Score:       %d%% (%s) %s\n", sum.Score, grade.Letter, grade.Message)
	fmt.Fprintf(&b, "Correct:     %d\n", sum.Correct)
	fmt.Fprintf(&b, "Incorrect:   %d\n", sum.Incorrect)
	fmt.Fprintf(&b, "Unattempted: %d\n", sum.Unattempted)
	fmt.Fprintf(&b, "Questions:   %d\n", sum.Total)
	fmt.Fprintf(&b, "Time spent:  %s\n\n", scoring.FormatTime(sum.TimeSpent))

	for _, r := range scoring.Analyze(st.Questions, st.Answers) {
		fmt.Fprintf(&b, "%2d. [%s] %s\n", r.Index+1, r.Outcome, r.Text)
		fmt.Fprintf(&b, "    %s · %s\n", r.Category, r.Difficulty)
		if r.Outcome != scoring.OutcomeUnattempted {
			fmt.Fprintf(&b, "    Your answer:    %s\n", r.UserAnswer)
		}
		fmt.Fprintf(&b, "    Correct answer: %s\n\n", r.CorrectAnswer)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
