// chatlinks - Chat Transcript Link Extractor
//
// chatlinks parses exported chat transcripts, extracts every http(s) link,
// enriches each with page metadata fetched concurrently, and writes a
// tabular report (text, JSON, CSV, or Excel).
package main

import (
	"os"

	"chatlinks/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
