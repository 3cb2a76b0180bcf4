package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizo/internal/config"
	"github.com/abhisek/quizo/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizo",
	Short: "Timed trivia quiz in the terminal",
	Long:  "Quizo is a timed trivia quiz: fifteen questions, thirty minutes and a graded report at the end.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZO_DB env var)")
	rootCmd.PersistentFlags().String("env", ".env", "Optional .env file to load")
	rootCmd.PersistentFlags().String("store", "", "Session store: sqlite or redis (overrides QUIZO_STORE)")
	rootCmd.PersistentFlags().String("source", "", "Question source: opentdb or llm (overrides QUIZO_SOURCE)")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies the persistent flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env")
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store = v
	}
	if v, _ := cmd.Flags().GetString("source"); v != "" {
		cfg.Source = v
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the configured database path (--db flag, then
// QUIZO_DB), falling back to the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
