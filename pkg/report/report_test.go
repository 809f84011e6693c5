package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatlinks/pkg/enrich"
	"chatlinks/pkg/fetcher"
	"chatlinks/pkg/parser"
)

func record(url, sender string, ts time.Time, line int, res fetcher.Result) enrich.EnrichedRecord {
	return enrich.EnrichedRecord{
		Task: parser.URLTask{
			URL:          url,
			Sender:       sender,
			Timestamp:    ts,
			LineNum:      line,
			OriginalLine: sender + ": " + url,
		},
		Result: res,
	}
}

func okResult(title string) fetcher.Result {
	return fetcher.Result{Title: title, Description: "desc", Kind: fetcher.FailNone}
}

func emptyScan() *parser.ScanResult {
	return &parser.ScanResult{}
}

func TestNew_SortsByTimestampAscending(t *testing.T) {
	base := time.Date(2023, 2, 1, 9, 0, 0, 0, time.UTC)
	records := []enrich.EnrichedRecord{
		record("https://c.com", "Carol", base.Add(2*time.Hour), 9, okResult("C")),
		record("https://a.com", "Alice", base, 1, okResult("A")),
		record("https://b.com", "Bob", base.Add(time.Hour), 5, okResult("B")),
	}

	rep := New(records, emptyScan(), Metadata{})

	require.Len(t, rep.Rows, 3)
	assert.Equal(t, "https://a.com", rep.Rows[0].URL)
	assert.Equal(t, "https://b.com", rep.Rows[1].URL)
	assert.Equal(t, "https://c.com", rep.Rows[2].URL)
}

func TestNew_SameInstantKeepsTranscriptOrder(t *testing.T) {
	ts := time.Date(2023, 2, 1, 9, 5, 0, 0, time.UTC)
	records := []enrich.EnrichedRecord{
		record("https://second.com", "Bob", ts, 8, okResult("B")),
		record("https://first.com", "Alice", ts, 3, okResult("A")),
	}

	rep := New(records, emptyScan(), Metadata{})

	assert.Equal(t, "https://first.com", rep.Rows[0].URL)
	assert.Equal(t, "https://second.com", rep.Rows[1].URL)
}

func TestNew_RowFields(t *testing.T) {
	ts := time.Date(2023, 2, 1, 21, 30, 0, 0, time.UTC)
	records := []enrich.EnrichedRecord{
		record("https://a.com", "Alice", ts, 7, okResult("Title A")),
	}

	rep := New(records, emptyScan(), Metadata{})

	require.Len(t, rep.Rows, 1)
	row := rep.Rows[0]
	assert.Equal(t, "Alice", row.Sender)
	assert.Equal(t, "2023-02-01", row.Date)
	assert.Equal(t, "21:30", row.Time)
	assert.Equal(t, "Title A", row.Title)
	assert.Equal(t, "desc", row.Description)
	assert.Equal(t, 7, row.LineNumber)
	assert.Equal(t, "Alice: https://a.com", row.OriginalLine)
}

func TestNew_SummaryCounts(t *testing.T) {
	ts := time.Date(2023, 2, 1, 9, 5, 0, 0, time.UTC)
	records := []enrich.EnrichedRecord{
		record("https://ok.com", "Alice", ts, 1, okResult("OK")),
		record("https://missing.com", "Bob", ts, 2, fetcher.Result{
			Title: "HTTP Error 404", Description: fetcher.NotAvailable, Kind: fetcher.FailHTTP, StatusCode: 404,
		}),
	}
	scan := &parser.ScanResult{
		Stats:    parser.ScanStats{LinesRead: 10, MessagesMatched: 4, URLsFound: 2},
		Failures: []parser.ParseFailure{{LineNum: 9, Line: "bad", Reason: "unparsable timestamp"}},
	}

	rep := New(records, scan, Metadata{})

	assert.Equal(t, 10, rep.Summary.LinesRead)
	assert.Equal(t, 4, rep.Summary.MessagesMatched)
	assert.Equal(t, 2, rep.Summary.URLsFound)
	assert.Equal(t, 1, rep.Summary.Fetched)
	assert.Equal(t, 1, rep.Summary.Failed)
	assert.Equal(t, 1, rep.Summary.ParseFailures)
	assert.True(t, rep.HasFailures())
}

func TestNew_EmptyRun(t *testing.T) {
	rep := New(nil, emptyScan(), Metadata{})
	assert.Empty(t, rep.Rows)
	assert.False(t, rep.HasFailures())
}
