package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"chatlinks/internal/logger"
	"chatlinks/pkg/config"
	"chatlinks/pkg/enrich"
	"chatlinks/pkg/fetcher"
	"chatlinks/pkg/parser"
	"chatlinks/pkg/report"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// defaultXLSXPath is where xlsx reports land when --out is not given.
const defaultXLSXPath = "extracted_links.xlsx"

// ExtractOptions holds command-line options for the extract command.
type ExtractOptions struct {
	ConfigPath string
	Output     string
	OutPath    string

	Concurrency int
	Timeout     time.Duration
	UserAgent   string
	SheetName   string

	FailuresPath string
	NoProgress   bool
	Verbose      bool
	Quiet        bool
}

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <chat-file>...",
		Short: "Extract links from transcripts and fetch their metadata",
		Long: `Extract every http(s) link from the given chat transcript files (globs
allowed), fetch page title and description for each link concurrently, and
write a report sorted by message time.

Duplicate links are fetched at most once per run. Fetch failures (timeouts,
connection errors, non-2xx responses) become report rows with a failure
title; they never abort the run. A run that finds zero links is a normal,
empty report.

Exit codes:
  0 - Report written (including an empty one)
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Path to YAML config file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json|csv|xlsx)")
	cmd.Flags().StringVar(&opts.OutPath, "out", "", "Write report to file instead of stdout")
	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "c", 0, "Max concurrent metadata fetches")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Per-request fetch timeout")
	cmd.Flags().StringVar(&opts.UserAgent, "user-agent", "", "User-Agent header for metadata requests")
	cmd.Flags().StringVar(&opts.SheetName, "sheet", "", "Worksheet name for xlsx output")
	cmd.Flags().StringVar(&opts.FailuresPath, "failures", "", "Write parse failures to a JSON Lines sidecar file")
	cmd.Flags().BoolVar(&opts.NoProgress, "no-progress", false, "Disable the fetch progress bar")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include parse failures and run details in the report")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, opts *ExtractOptions) error {
	start := time.Now()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	log := logger.New(opts.Verbose)
	defer func() { _ = log.Sync() }()

	// Scan transcripts
	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding transcript paths: %w", err)
	}

	scan, err := parser.NewScanner().Scan(ctx, files)
	if err != nil {
		return err
	}

	log.Debugf("scanned %d lines, matched %d messages, found %d urls",
		scan.Stats.LinesRead, scan.Stats.MessagesMatched, scan.Stats.URLsFound)

	// Fetch metadata
	f := fetcher.New(
		fetcher.WithTimeout(cfg.FetchTimeout),
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithLogger(log),
	)
	coordinator := enrich.NewCoordinator(f,
		enrich.WithConcurrency(cfg.Concurrency),
		enrich.WithLogger(log),
	)

	records := coordinator.Enrich(ctx, scan.Tasks, newProgressObserver(opts, len(scan.Tasks)))

	// Assemble and write the report
	rep := report.New(records, scan, report.Metadata{
		Sources:     files,
		GeneratedAt: time.Now(),
		Duration:    time.Since(start),
		Concurrency: cfg.Concurrency,
	})

	if err := writeFailures(opts.FailuresPath, scan.Failures); err != nil {
		return err
	}

	if err := writeReport(ctx, rep, cfg, opts); err != nil {
		return err
	}

	if !opts.Quiet && len(scan.Failures) > 0 {
		fmt.Fprintf(os.Stderr, "%d line(s) with links could not be parsed (see --failures)\n", len(scan.Failures))
	}

	return nil
}

// resolveConfig layers defaults, the optional config file, environment
// overrides, and finally command-line flags.
func resolveConfig(cmd *cobra.Command, opts *ExtractOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.FromEnvironment()
	}

	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = opts.Concurrency
	}
	if cmd.Flags().Changed("timeout") {
		cfg.FetchTimeout = opts.Timeout
	}
	if opts.UserAgent != "" {
		cfg.UserAgent = opts.UserAgent
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if opts.SheetName != "" {
		cfg.SheetName = opts.SheetName
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newProgressObserver returns an observer driving a stderr progress bar, or
// nil when progress display is off.
func newProgressObserver(opts *ExtractOptions, total int) enrich.Observer {
	if opts.NoProgress || opts.Quiet || total == 0 {
		return nil
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("fetching metadata"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	return func(done, _ int, _ string) {
		_ = bar.Add(1)
		if done == total {
			_ = bar.Finish()
		}
	}
}

func writeReport(ctx context.Context, rep *report.Report, cfg *config.Config, opts *ExtractOptions) error {
	formatter, err := report.NewFormatter(cfg.Output, report.FormatOptions{
		Verbose:   opts.Verbose,
		Quiet:     opts.Quiet,
		SheetName: cfg.SheetName,
	})
	if err != nil {
		return err
	}

	outPath := opts.OutPath
	if outPath == "" && formatter.Name() == "xlsx" {
		// Workbooks are binary; never write them to a terminal.
		outPath = defaultXLSXPath
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath) // #nosec G304 -- user-provided output path is expected
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := formatter.Format(ctx, rep, w); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if outPath != "" && !opts.Quiet {
		fmt.Fprintf(os.Stderr, "Wrote %d link(s) to %s\n", len(rep.Rows), outPath)
	}

	return nil
}

// writeFailures appends parse failures to the diagnostics sidecar as JSON
// Lines, one failure per line.
func writeFailures(path string, failures []parser.ParseFailure) error {
	if path == "" || len(failures) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) // #nosec G304
	if err != nil {
		return fmt.Errorf("opening failures file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, pf := range failures {
		if err := enc.Encode(pf); err != nil {
			return fmt.Errorf("writing failures file: %w", err)
		}
	}

	return nil
}
