package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizo/internal/scoring"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List submitted quizzes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		results, err := e.store.ResultRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}
		if len(results) == 0 {
			fmt.Println("No quizzes submitted yet.")
			return nil
		}

		fmt.Printf("%-19s  %-28s  %-6s  %-5s  %-11s  %-10s  %s\n",
			"Submitted", "Email", "Score", "Grade", "C/I/U", "Time", "Source")
		fmt.Println(strings.Repeat("─", 100))

		for _, r := range results {
			email := r.Email
			if len(email) > 28 {
				email = email[:28]
			}
			fmt.Printf("%-19s  %-28s  %-6s  %-5s  %-11s  %-10s  %s\n",
				r.SubmittedAt.Local().Format("2006-01-02 15:04:05"),
				email,
				fmt.Sprintf("%d%%", r.Score),
				r.Grade,
				fmt.Sprintf("%d/%d/%d", r.Correct, r.Incorrect, r.Unattempted),
				scoring.FormatTime(r.TimeSpent),
				r.Source,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of results (0 for all)")
}
