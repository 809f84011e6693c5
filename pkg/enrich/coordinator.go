package enrich

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"chatlinks/pkg/fetcher"
	"chatlinks/pkg/parser"
)

// DefaultConcurrency is the default number of in-flight fetches.
const DefaultConcurrency = 10

// MetadataFetcher is the fetch dependency; satisfied by *fetcher.Fetcher and
// by test doubles.
type MetadataFetcher interface {
	Fetch(ctx context.Context, url string) fetcher.Result
}

// Coordinator runs metadata fetches for a batch of URL tasks with bounded
// concurrency. Fetch order across tasks is not guaranteed; every task yields
// exactly one record.
type Coordinator struct {
	fetcher     MetadataFetcher
	concurrency int64
	log         *zap.SugaredLogger
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithConcurrency bounds the number of simultaneous fetches.
func WithConcurrency(n int) CoordinatorOption {
	return func(c *Coordinator) {
		if n > 0 {
			c.concurrency = int64(n)
		}
	}
}

// WithLogger attaches a logger for completion diagnostics.
func WithLogger(log *zap.SugaredLogger) CoordinatorOption {
	return func(c *Coordinator) {
		if log != nil {
			c.log = log
		}
	}
}

// NewCoordinator creates a coordinator around the given fetcher.
func NewCoordinator(f MetadataFetcher, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		fetcher:     f,
		concurrency: DefaultConcurrency,
		log:         zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enrich fetches metadata for every task and returns one record per task,
// in completion order. At most the configured concurrency of fetches are in
// flight at once; a slot is released as soon as its fetch finishes, before
// the result is consumed, so a slow observer cannot starve the pool.
//
// A cancelled context stops admitting new fetches; tasks that never ran
// still produce records, carrying a typed failure, so no task is dropped.
func (c *Coordinator) Enrich(ctx context.Context, tasks []parser.URLTask, observe Observer) []EnrichedRecord {
	if len(tasks) == 0 {
		return nil
	}

	sem := semaphore.NewWeighted(c.concurrency)
	results := make(chan EnrichedRecord, len(tasks))

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(task parser.URLTask) {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				// Run interrupted before this task got a slot.
				results <- EnrichedRecord{Task: task, Result: canceledResult(err)}
				return
			}
			res := c.fetcher.Fetch(ctx, task.URL)
			sem.Release(1)

			results <- EnrichedRecord{Task: task, Result: res}
		}(task)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	records := make([]EnrichedRecord, 0, len(tasks))
	for rec := range results {
		records = append(records, rec)
		if !rec.Result.OK() {
			c.log.Debugw("fetch failed",
				"url", rec.Task.URL,
				"outcome", rec.Result.Kind.String(),
				"line", rec.Task.LineNum,
			)
		}
		if observe != nil {
			observe(len(records), len(tasks), rec.Task.URL)
		}
	}

	return records
}

func canceledResult(err error) fetcher.Result {
	return fetcher.Result{
		Title:       "Error: " + err.Error(),
		Description: fetcher.NotAvailable,
		Kind:        fetcher.FailFetch,
	}
}
