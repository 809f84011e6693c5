package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"chatlinks/pkg/parser"
)

// ScanOptions holds command-line options for the scan command.
type ScanOptions struct {
	Verbose bool
}

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	opts := &ScanOptions{}

	cmd := &cobra.Command{
		Use:   "scan <chat-file>...",
		Short: "Parse transcripts and report extractable links without fetching",
		Long: `Scan chat transcript files and report what extract would work on: how many
lines match the chat grammar, how many links each sender posted, and which
lines failed to parse. No network requests are made.

Useful for checking a transcript's format before a full extract run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "List every extracted link")

	return cmd
}

func runScan(cmd *cobra.Command, args []string, opts *ScanOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding transcript paths: %w", err)
	}

	scan, err := parser.NewScanner().Scan(ctx, files)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Lines read:       %d\n", scan.Stats.LinesRead)
	fmt.Fprintf(out, "Messages matched: %d\n", scan.Stats.MessagesMatched)
	fmt.Fprintf(out, "Links found:      %d\n", scan.Stats.URLsFound)
	fmt.Fprintf(out, "Parse failures:   %d\n", len(scan.Failures))

	if len(scan.Tasks) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Links per sender:")
		for _, sc := range senderCounts(scan.Tasks) {
			fmt.Fprintf(out, "  %-20s %d\n", sc.sender, sc.count)
		}
	}

	if opts.Verbose {
		fmt.Fprintln(out)
		for _, task := range scan.Tasks {
			fmt.Fprintf(out, "line %d  %s  %s\n", task.LineNum, task.Sender, task.URL)
		}
	}

	if len(scan.Failures) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Parse failures:")
		for _, pf := range scan.Failures {
			fmt.Fprintf(out, "  line %d: %s (%s)\n", pf.LineNum, pf.Line, pf.Reason)
		}
	}

	return nil
}

type senderCount struct {
	sender string
	count  int
}

// senderCounts tallies links per sender, most links first.
func senderCounts(tasks []parser.URLTask) []senderCount {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.Sender]++
	}

	result := make([]senderCount, 0, len(counts))
	for sender, count := range counts {
		result = append(result, senderCount{sender, count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].count != result[j].count {
			return result[i].count > result[j].count
		}
		return result[i].sender < result[j].sender
	})

	return result
}
