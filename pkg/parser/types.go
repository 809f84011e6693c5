// Package parser provides chat transcript reading, line parsing, and URL extraction.
package parser

import "time"

// ParsedMessage is a single transcript line that matched the chat grammar.
type ParsedMessage struct {
	// Timestamp is the normalized date+time of the message.
	Timestamp time.Time

	// Sender is the message author, whitespace-trimmed.
	Sender string

	// URLs are the extracted links, in order of appearance.
	URLs []string
}

// ParseFailure records a line that contained a URL but could not be parsed.
// Collected for diagnostics; never fatal to the run.
type ParseFailure struct {
	// LineNum is the 1-based line number in the source file.
	LineNum int `json:"line_number"`

	// Line is the raw line text, truncated for display.
	Line string `json:"line"`

	// Reason describes why the line could not be parsed.
	Reason string `json:"reason"`
}

// URLTask is one URL occurrence awaiting metadata enrichment.
// A message with N URLs yields N tasks sharing sender and timestamp.
type URLTask struct {
	// URL is the exact substring captured from the message body.
	URL string

	// Sender is the author of the originating message.
	Sender string

	// Timestamp is the message's normalized instant.
	Timestamp time.Time

	// LineNum is the 1-based line number the URL came from.
	LineNum int

	// OriginalLine is the raw line, truncated for display.
	OriginalLine string
}

// ScanStats summarizes a transcript scan.
type ScanStats struct {
	// LinesRead is the total number of lines read across all sources.
	LinesRead int

	// MessagesMatched is the number of lines matching the chat grammar.
	MessagesMatched int

	// URLsFound is the total number of URL occurrences extracted.
	URLsFound int
}

// ScanResult is everything produced by scanning transcript sources.
type ScanResult struct {
	Tasks    []URLTask
	Failures []ParseFailure
	Stats    ScanStats
	Sources  []string
}
