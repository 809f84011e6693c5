// Package report shapes enriched records into export-ready reports and
// renders them in several formats.
package report

import (
	"time"

	"chatlinks/pkg/enrich"
	"chatlinks/pkg/parser"
)

// Report is the complete extraction output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Records are the enriched links, sorted by timestamp ascending.
	Records []enrich.EnrichedRecord `json:"-"`

	// Rows is the tabular view of Records, in the same order.
	Rows []Row `json:"links"`

	// Failures are lines that carried a URL but could not be parsed.
	Failures []parser.ParseFailure `json:"parse_failures,omitempty"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Row is one export-ready report line.
type Row struct {
	Sender       string `json:"sender"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	LineNumber   int    `json:"line_number"`
	OriginalLine string `json:"original_line"`
}

// Columns is the header row shared by the tabular writers.
var Columns = []string{
	"Sender", "Date", "Time", "URL", "Title",
	"Description", "Line_Number", "Original_Line",
}

// Summary provides aggregate statistics for a run.
type Summary struct {
	// LinesRead is the number of transcript lines scanned.
	LinesRead int `json:"lines_read"`

	// MessagesMatched is the number of lines matching the chat grammar.
	MessagesMatched int `json:"messages_matched"`

	// URLsFound is the number of URL occurrences extracted.
	URLsFound int `json:"urls_found"`

	// Fetched is the number of URLs whose metadata fetch succeeded.
	Fetched int `json:"fetched"`

	// Failed is the number of URLs whose metadata fetch failed.
	Failed int `json:"failed"`

	// ParseFailures is the number of URL-bearing lines that failed parsing.
	ParseFailures int `json:"parse_failures"`
}

// Metadata provides context about the run.
type Metadata struct {
	// Sources lists the transcript files that were scanned.
	Sources []string `json:"sources"`

	// GeneratedAt is when the report was assembled.
	GeneratedAt time.Time `json:"generated_at"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`

	// Concurrency is the fetch concurrency bound that was used.
	Concurrency int `json:"concurrency"`
}
