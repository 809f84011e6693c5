package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// DefaultTimeout is the per-request fetch budget.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is a descriptive browser-like agent; many sites answer
// bare Go clients with 403s.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 chatlinks/1.0"

// maxBodySize caps how much of a response we read for metadata. Titles and
// meta tags live in the head, so 2MB is generous.
const maxBodySize = 2 * 1024 * 1024

// trailingPunctuation is chat-text punctuation that commonly trails a pasted
// link without being part of it.
const trailingPunctuation = ".,;!?"

// Fetcher retrieves page metadata over HTTP with a shared, memoizing cache.
// It is safe for concurrent use.
type Fetcher struct {
	client    *http.Client
	cache     *Cache
	timeout   time.Duration
	userAgent string
	log       *zap.SugaredLogger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent on each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client (used by tests to
// install a mock transport).
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithLogger attaches a logger for per-fetch diagnostics.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(f *Fetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// New creates a Fetcher with a fresh cache.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{},
		cache:     NewCache(),
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Cache exposes the fetcher's metadata cache.
func (f *Fetcher) Cache() *Cache {
	return f.cache
}

// CleanURL strips trailing punctuation from a URL captured in chat text.
// Cleaning is idempotent; the cleaned form is the cache key.
func CleanURL(raw string) string {
	return strings.TrimRight(raw, trailingPunctuation)
}

// Fetch returns best-effort metadata for rawURL. It never returns an error:
// every failure mode is a typed Result. Results (failures included) are
// cached by cleaned URL, so duplicate links fetch at most once per run.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) Result {
	cleaned := CleanURL(rawURL)

	parsed, err := url.Parse(cleaned)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return invalidURLResult()
	}

	return f.cache.GetOrFetch(cleaned, func() Result {
		start := time.Now()
		r := f.fetch(ctx, cleaned)
		f.log.Debugw("fetched url",
			"url", cleaned,
			"outcome", r.Kind.String(),
			"status", r.StatusCode,
			"duration", time.Since(start),
		)
		return r
	})
}

func (f *Fetcher) fetch(ctx context.Context, cleaned string) (result Result) {
	// The batch must survive anything a hostile page can throw at the
	// HTML parser.
	defer func() {
		if r := recover(); r != nil {
			result = fetchErrorResult(fmt.Errorf("panic: %v", r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cleaned, nil)
	if err != nil {
		return fetchErrorResult(err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpErrorResult(resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, maxBodySize)
	decoded, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return fetchErrorResult(err)
	}

	title, description, err := extractMetadata(decoded)
	if err != nil {
		return fetchErrorResult(err)
	}

	return successResult(title, description)
}

// classifyTransportError maps a client error to a typed result: timeouts are
// distinguished from other connection-level failures so the report can tell
// a slow host from an unreachable one.
func classifyTransportError(err error) Result {
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutResult()
	}
	if errors.Is(err, context.Canceled) {
		return fetchErrorResult(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return timeoutResult()
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return connectionResult()
	}
	return fetchErrorResult(err)
}
