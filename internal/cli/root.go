// Package cli implements the paisa command tree. Commands are thin: they
// parse flags, call repository operations, and print; all state lives in
// the repository.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "paisa",
	Short: "Track income, expenses, savings goals, and bills",
	Long: `paisa is a personal finance tracker: log income and expense
transactions, set savings goals, track recurring bills with upcoming and
overdue views, and ask the built-in assistant for advice.

State persists locally (sqlite by default); see PAISA_BACKEND to choose
another store.`,
	SilenceUsage: true,
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the command tree under the given context so signals
// cancel in-flight work.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
