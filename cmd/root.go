package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eduai/eduai/internal/config"
	"github.com/eduai/eduai/internal/store"
)

// settings is loaded once before any command runs.
var settings config.Settings

var rootCmd = &cobra.Command{
	Use:   "eduai",
	Short: "AI teaching assistant",
	Long:  "eduai generates explanations, quizzes and teaching notes for a topic using a hosted language model.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}

		s, err := config.Load()
		if err != nil {
			return err
		}
		if err := config.InitLogger(s.LogLevel, s.LogFormat); err != nil {
			return err
		}
		settings = s
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EDUAI_DB env var)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Dotenv file loaded before reading the environment")
	rootCmd.Flags().String("addr", "", "Listen address (overrides EDUAI_ADDR)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EDUAI_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event database named by the flags and environment.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
