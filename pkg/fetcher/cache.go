package fetcher

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes fetch results by cleaned URL for the duration of a run.
// Entries are immutable once written: the first result for a URL wins,
// including failures. A failed fetch is terminal for that URL.
//
// The singleflight group collapses concurrent fetches of the same key, so
// duplicate links in flight at the same time cost one network request.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Result
	group   singleflight.Group
}

// NewCache creates an empty metadata cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Result)}
}

// Get returns the cached result for a cleaned URL.
func (c *Cache) Get(url string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[url]
	return r, ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetOrFetch returns the cached result for url, or runs fn exactly once per
// key to produce and store it. Concurrent callers for the same key share a
// single execution of fn.
func (c *Cache) GetOrFetch(url string, fn func() Result) Result {
	if r, ok := c.Get(url); ok {
		return r
	}

	v, _, _ := c.group.Do(url, func() (interface{}, error) {
		// Re-check under the group: another caller may have stored the
		// entry between our miss and this execution.
		if r, ok := c.Get(url); ok {
			return r, nil
		}
		r := fn()
		c.put(url, r)
		return r, nil
	})

	return v.(Result)
}

func (c *Cache) put(url string, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[url]; !exists {
		c.entries[url] = r
	}
}
