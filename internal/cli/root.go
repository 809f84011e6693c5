// Package cli provides the command-line interface for chatlinks.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chatlinks/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chatlinks",
		Short: "Extract and enrich links from chat transcripts",
		Long: `chatlinks extracts hyperlinks from exported chat transcripts, fetches
page metadata (title, description) for each link, and writes a tabular report.

It understands the common export line shape:

  01/02/23, 9:05 am - Alice: check this https://example.com out

Lines that don't match (multi-line continuations, system messages) are
skipped. Duplicate links are fetched once per run; fetch failures become
typed report rows, never aborted runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewExtractCommand())
	rootCmd.AddCommand(commands.NewScanCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
