package report

import (
	"sort"
	"strconv"

	"chatlinks/pkg/enrich"
	"chatlinks/pkg/parser"
)

// Date and time layouts used in report rows.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// New assembles a report from enriched records. Records are sorted by
// timestamp ascending, with line number as the tiebreaker so same-minute
// messages keep transcript order.
func New(records []enrich.EnrichedRecord, scan *parser.ScanResult, meta Metadata) *Report {
	sorted := make([]enrich.EnrichedRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Task, sorted[j].Task
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.LineNum < b.LineNum
	})

	r := &Report{
		Records:  sorted,
		Rows:     make([]Row, 0, len(sorted)),
		Failures: scan.Failures,
		Metadata: meta,
		Summary: Summary{
			LinesRead:       scan.Stats.LinesRead,
			MessagesMatched: scan.Stats.MessagesMatched,
			URLsFound:       scan.Stats.URLsFound,
			ParseFailures:   len(scan.Failures),
		},
	}

	for _, rec := range sorted {
		if rec.Result.OK() {
			r.Summary.Fetched++
		} else {
			r.Summary.Failed++
		}
		r.Rows = append(r.Rows, Row{
			Sender:       rec.Task.Sender,
			Date:         rec.Task.Timestamp.Format(dateLayout),
			Time:         rec.Task.Timestamp.Format(timeLayout),
			URL:          rec.Task.URL,
			Title:        rec.Result.Title,
			Description:  rec.Result.Description,
			LineNumber:   rec.Task.LineNum,
			OriginalLine: rec.Task.OriginalLine,
		})
	}

	return r
}

// HasFailures reports whether any fetch or parse failures occurred.
func (r *Report) HasFailures() bool {
	return r.Summary.Failed > 0 || r.Summary.ParseFailures > 0
}

// cells returns the row as a string slice in Columns order.
func (row Row) cells() []string {
	return []string{
		row.Sender,
		row.Date,
		row.Time,
		row.URL,
		row.Title,
		row.Description,
		strconv.Itoa(row.LineNumber),
		row.OriginalLine,
	}
}
