package report

import (
	"context"
	"fmt"
	"io"
)

// TextFormatter renders reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatSummary(report, w)
	}

	fmt.Fprintln(w, "=== Chat Link Report ===")
	fmt.Fprintln(w)

	for _, row := range report.Rows {
		fmt.Fprintf(w, "%s %s  %s\n", row.Date, row.Time, row.Sender)
		fmt.Fprintf(w, "  %s\n", row.URL)
		fmt.Fprintf(w, "  Title: %s\n", row.Title)
		if row.Description != "" {
			fmt.Fprintf(w, "  Description: %s\n", row.Description)
		}
		if f.opts.Verbose {
			fmt.Fprintf(w, "  Line %d: %s\n", row.LineNumber, row.OriginalLine)
		}
		fmt.Fprintln(w)
	}

	if f.opts.Verbose && len(report.Failures) > 0 {
		fmt.Fprintln(w, "Parse failures:")
		for _, pf := range report.Failures {
			fmt.Fprintf(w, "  line %d: %s (%s)\n", pf.LineNum, pf.Line, pf.Reason)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	if err := f.formatSummary(report, w); err != nil {
		return err
	}

	if f.opts.Verbose {
		fmt.Fprintf(w, "Lines read: %d\n", report.Summary.LinesRead)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

func (f *TextFormatter) formatSummary(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "Summary: %d links from %d messages, %d fetched, %d failed, %d parse failures\n",
		report.Summary.URLsFound,
		report.Summary.MessagesMatched,
		report.Summary.Fetched,
		report.Summary.Failed,
		report.Summary.ParseFailures)
	return err
}
