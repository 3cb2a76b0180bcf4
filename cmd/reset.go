package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the stored email and quiz session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		if err := e.repo.Clear(ctx); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		if err := e.repo.SetIdentity(ctx, ""); err != nil {
			return fmt.Errorf("clear identity: %w", err)
		}
		e.logger.Info("state reset")
		fmt.Println("Stored email and quiz session removed. History is kept.")
		return nil
	},
}
