package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatlinks/pkg/enrich"
)

func sampleReport() *Report {
	ts := time.Date(2023, 2, 1, 9, 5, 0, 0, time.UTC)
	records := []enrich.EnrichedRecord{
		record("https://a.com", "Alice", ts, 1, okResult("Title A")),
		record("https://b.com", "Bob", ts.Add(time.Minute), 2, okResult("Title B")),
	}
	return New(records, emptyScan(), Metadata{Concurrency: 10})
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"text", "json", "csv", "xlsx"} {
		f, err := NewFormatter(name, FormatOptions{})
		require.NoError(t, err)
		assert.Equal(t, name, f.Name())
	}

	_, err := NewFormatter("yaml", FormatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestTextFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{})

	require.NoError(t, f.Format(context.Background(), sampleReport(), &buf))

	out := buf.String()
	assert.Contains(t, out, "https://a.com")
	assert.Contains(t, out, "Title: Title B")
	assert.Contains(t, out, "Summary: 0 links from 0 messages, 2 fetched, 0 failed, 0 parse failures")
}

func TestTextFormatter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{Quiet: true})

	require.NoError(t, f.Format(context.Background(), sampleReport(), &buf))

	out := buf.String()
	assert.NotContains(t, out, "https://a.com")
	assert.Contains(t, out, "Summary:")
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(FormatOptions{})

	require.NoError(t, f.Format(context.Background(), sampleReport(), &buf))

	var decoded struct {
		Links []Row `json:"links"`
		Summary struct {
			Fetched int `json:"fetched"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Links, 2)
	assert.Equal(t, "https://a.com", decoded.Links[0].URL)
	assert.Equal(t, 2, decoded.Summary.Fetched)
}

func TestCSVFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	f := NewCSVFormatter(FormatOptions{})

	require.NoError(t, f.Format(context.Background(), sampleReport(), &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "Alice", rows[1][0])
	assert.Equal(t, "2023-02-01", rows[1][1])
	assert.Equal(t, "09:05", rows[1][2])
	assert.Equal(t, "https://a.com", rows[1][3])
	assert.Equal(t, "Title A", rows[1][4])
	assert.Equal(t, "1", rows[1][6])
}
