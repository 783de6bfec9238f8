// Package cli implements the mindarch command line interface. Running the
// binary with no arguments opens the TUI instead; these commands cover
// scripting and quick checks.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mindarch/mindarch/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "mindarch",
	Short:   "AI-generated study plans in your terminal",
	Long:    `Mindarch turns a subject, a goal and a date range into a day-by-day study plan, then tracks which tasks you have completed.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(
		generateCmd,
		statusCmd,
		toggleCmd,
		deleteCmd,
		serveCmd,
		signupCmd,
		loginCmd,
		logoutCmd,
		whoamiCmd,
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
