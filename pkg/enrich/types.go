// Package enrich fans URL tasks out to the metadata fetcher under bounded
// concurrency and joins results back onto their originating messages.
package enrich

import (
	"chatlinks/pkg/fetcher"
	"chatlinks/pkg/parser"
)

// EnrichedRecord is one URL occurrence joined with its fetched metadata.
// This is the unit the report assembler consumes.
type EnrichedRecord struct {
	Task   parser.URLTask
	Result fetcher.Result
}

// Observer is notified as tasks complete. done counts completed tasks so
// far, total is the batch size. Implementations must be fast; they run on
// the collector goroutine.
type Observer func(done, total int, url string)
