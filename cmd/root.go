package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mkravets/glossa/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "glossa",
	Short:        "Spaced-repetition language tutor",
	Long:         "Glossa is a language-learning CLI with SM-2 style review scheduling, adaptive practice sessions, and LLM-generated exercises.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GLOSSA_DB env var)")
	rootCmd.PersistentFlags().String("user", "default", "Learner profile name")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then GLOSSA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by flags and environment.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}

func ownerID(cmd *cobra.Command) string {
	owner, _ := cmd.Flags().GetString("user")
	return owner
}
