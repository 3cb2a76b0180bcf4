package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/screens/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the report of the last submitted quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := quiz.CheckReportEntry(cmd.Context(), e.repo)
		if _, ok := quiz.IsRedirect(err); ok {
			fmt.Println("No submitted quiz found. Run quizo to take one.")
			return nil
		}
		if err != nil {
			return err
		}
		return report.WriteText(os.Stdout, st)
	},
}
