package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizo/internal/config"
	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/scoring"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Fetch questions from the configured source and answer them (no database)",
	Long: `Fetch a batch of questions and answer them at the prompt.

This is a stateless developer tool: no database, no timer, no history.
Useful for checking a question source before a real quiz.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("count", 5, "Number of questions to fetch")
}

func runPreview(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	envFile, _ := cmd.Flags().GetString("env")

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("source"); v != "" {
		cfg.Source = v
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	source, err := newSource(context.Background(), cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Source: %s\n", source.Name())
	fmt.Printf("Fetching %d questions...\n\n", count)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()
	questions, err := source.Fetch(ctx, count)
	if err != nil {
		return fmt.Errorf("fetch questions: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	var answers []quiz.AnswerRecord

	for i, q := range questions {
		choices := quiz.Shuffle(q.CorrectAnswer, q.IncorrectAnswers, nil)

		fmt.Printf("── Question %d/%d ── %s · %s\n", i+1, len(questions), q.Category, q.Difficulty)
		fmt.Println(q.Text)
		for j, c := range choices {
			fmt.Printf("  %d) %s\n", j+1, c)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		input := strings.TrimSpace(scanner.Text())
		var n int
		if _, err := fmt.Sscanf(input, "%d", &n); err != nil || n < 1 || n > len(choices) {
			fmt.Println("(skipped)")
			fmt.Println()
			continue
		}

		answer := choices[n-1]
		answers = append(answers, quiz.AnswerRecord{QuestionIndex: i, Answer: answer})
		if answer == q.CorrectAnswer {
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectAnswer)
		}
		fmt.Println()
	}

	sum := scoring.Score(questions, answers, 0, 0)
	grade := scoring.GradeFor(sum.Score)
	fmt.Printf("── Summary: %d/%d correct, %d%% (%s) ──\n", sum.Correct, sum.Total, sum.Score, grade.Letter)
	return nil
}
