package report

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders a report in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json, csv, xlsx).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose includes parse failures and per-run metadata in the output.
	Verbose bool

	// Quiet reduces output to the summary line.
	Quiet bool

	// SheetName names the worksheet for the xlsx writer.
	SheetName string
}

// NewFormatter returns the formatter for a format name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	case "csv":
		return NewCSVFormatter(opts), nil
	case "xlsx":
		return NewXLSXFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json, csv, or xlsx)", name)
	}
}
