package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanner_Scan(t *testing.T) {
	content := `01/02/23, 9:05 am - Alice: check this https://example.com out
01/02/23, 9:06 am - Bob: no links in this one
this line continues Bob's message with https://hidden.example.com
01/02/23, 9:07 am - Carol: two here https://a.com and https://b.com

01/02/23, 9:08 am - Dave: plain text
`
	path := writeTranscript(t, "chat.txt", content)

	scan, err := NewScanner().Scan(context.Background(), []string{path})
	require.NoError(t, err)

	assert.Equal(t, 6, scan.Stats.LinesRead)
	assert.Equal(t, 4, scan.Stats.MessagesMatched)
	assert.Equal(t, 3, scan.Stats.URLsFound)
	assert.Empty(t, scan.Failures)

	require.Len(t, scan.Tasks, 3)
	assert.Equal(t, "Alice", scan.Tasks[0].Sender)
	assert.Equal(t, "https://example.com", scan.Tasks[0].URL)
	assert.Equal(t, 1, scan.Tasks[0].LineNum)
	assert.Equal(t, time.Date(2023, 2, 1, 9, 5, 0, 0, time.UTC), scan.Tasks[0].Timestamp)

	assert.Equal(t, "Carol", scan.Tasks[1].Sender)
	assert.Equal(t, 4, scan.Tasks[1].LineNum)
	assert.Equal(t, "https://a.com", scan.Tasks[1].URL)
	assert.Equal(t, "https://b.com", scan.Tasks[2].URL)
}

func TestScanner_CollectsParseFailures(t *testing.T) {
	content := `01/02/23, 9:05 am - Alice: https://good.example.com
32/13/99, 9:05 am - Mallory: https://bad-timestamp.example.com
`
	path := writeTranscript(t, "chat.txt", content)

	scan, err := NewScanner().Scan(context.Background(), []string{path})
	require.NoError(t, err)

	require.Len(t, scan.Tasks, 1)
	require.Len(t, scan.Failures, 1)
	assert.Equal(t, 2, scan.Failures[0].LineNum)
	assert.Contains(t, scan.Failures[0].Reason, "unparsable timestamp")
}

func TestScanner_MultipleFiles(t *testing.T) {
	a := writeTranscript(t, "a.txt", "01/02/23, 9:05 am - Alice: https://a.example.com\n")
	b := writeTranscript(t, "b.txt", "01/02/23, 9:06 am - Bob: https://b.example.com\n")

	scan, err := NewScanner().Scan(context.Background(), []string{a, b})
	require.NoError(t, err)

	require.Len(t, scan.Tasks, 2)
	// Line numbers restart per file.
	assert.Equal(t, 1, scan.Tasks[0].LineNum)
	assert.Equal(t, 1, scan.Tasks[1].LineNum)
	assert.Equal(t, []string{a, b}, scan.Sources)
}

func TestScanner_MissingFile(t *testing.T) {
	_, err := NewScanner().Scan(context.Background(), []string{"/nonexistent/chat.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening transcript")
}

func TestScanner_CancelledContext(t *testing.T) {
	path := writeTranscript(t, "chat.txt", "01/02/23, 9:05 am - Alice: https://a.com\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner().Scan(ctx, []string{path})
	require.ErrorIs(t, err, context.Canceled)
}

func TestScanner_EmptyTranscript(t *testing.T) {
	path := writeTranscript(t, "empty.txt", "")

	scan, err := NewScanner().Scan(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Empty(t, scan.Tasks)
	assert.Empty(t, scan.Failures)
	assert.Equal(t, 0, scan.Stats.LinesRead)
}
