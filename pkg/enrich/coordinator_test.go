package enrich

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatlinks/pkg/fetcher"
	"chatlinks/pkg/parser"
)

// gaugeFetcher tracks how many fetches are in flight at once.
type gaugeFetcher struct {
	inFlight int64
	peak     int64
	delay    time.Duration
}

func (g *gaugeFetcher) Fetch(ctx context.Context, url string) fetcher.Result {
	n := atomic.AddInt64(&g.inFlight, 1)
	for {
		peak := atomic.LoadInt64(&g.peak)
		if n <= peak || atomic.CompareAndSwapInt64(&g.peak, peak, n) {
			break
		}
	}
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	atomic.AddInt64(&g.inFlight, -1)
	return fetcher.Result{Title: "T:" + url, Description: "D", Kind: fetcher.FailNone}
}

func makeTasks(n int) []parser.URLTask {
	ts := time.Date(2023, 2, 1, 9, 5, 0, 0, time.UTC)
	tasks := make([]parser.URLTask, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, parser.URLTask{
			URL:       fmt.Sprintf("https://example.com/%d", i),
			Sender:    "Alice",
			Timestamp: ts,
			LineNum:   i + 1,
		})
	}
	return tasks
}

func TestCoordinator_BoundsConcurrency(t *testing.T) {
	const limit = 3
	g := &gaugeFetcher{delay: 10 * time.Millisecond}
	c := NewCoordinator(g, WithConcurrency(limit))

	records := c.Enrich(context.Background(), makeTasks(20), nil)

	require.Len(t, records, 20)
	assert.LessOrEqual(t, atomic.LoadInt64(&g.peak), int64(limit),
		"in-flight fetches must never exceed the concurrency bound")
}

func TestCoordinator_NoTaskDropped(t *testing.T) {
	g := &gaugeFetcher{}
	c := NewCoordinator(g, WithConcurrency(4))

	tasks := makeTasks(50)
	records := c.Enrich(context.Background(), tasks, nil)

	require.Len(t, records, len(tasks))

	seen := make(map[string]bool)
	for _, rec := range records {
		seen[rec.Task.URL] = true
	}
	for _, task := range tasks {
		assert.True(t, seen[task.URL], "missing record for %s", task.URL)
	}
}

func TestCoordinator_ZipsTaskMetadata(t *testing.T) {
	g := &gaugeFetcher{}
	c := NewCoordinator(g)

	tasks := makeTasks(5)
	records := c.Enrich(context.Background(), tasks, nil)

	for _, rec := range records {
		assert.Equal(t, "Alice", rec.Task.Sender)
		assert.Equal(t, "T:"+rec.Task.URL, rec.Result.Title)
		assert.False(t, rec.Task.Timestamp.IsZero())
	}
}

func TestCoordinator_ObserverSeesEveryCompletion(t *testing.T) {
	g := &gaugeFetcher{}
	c := NewCoordinator(g, WithConcurrency(2))

	total := 12
	var calls int
	var lastDone int
	observe := func(done, n int, url string) {
		calls++
		lastDone = done
		assert.Equal(t, total, n)
		assert.NotEmpty(t, url)
	}

	c.Enrich(context.Background(), makeTasks(total), observe)

	assert.Equal(t, total, calls)
	assert.Equal(t, total, lastDone)
}

func TestCoordinator_EmptyBatch(t *testing.T) {
	c := NewCoordinator(&gaugeFetcher{})
	records := c.Enrich(context.Background(), nil, nil)
	assert.Empty(t, records)
}

func TestCoordinator_CancelledContextKeepsAllTasks(t *testing.T) {
	g := &gaugeFetcher{}
	c := NewCoordinator(g, WithConcurrency(2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := makeTasks(10)
	records := c.Enrich(ctx, tasks, nil)

	// Every task still yields a record; ones that never ran carry a
	// typed failure instead of being dropped.
	require.Len(t, records, len(tasks))
	for _, rec := range records {
		assert.NotEmpty(t, rec.Result.Title)
	}
}
