// Package fetcher retrieves page metadata (title, description) for URLs
// extracted from chat transcripts. All failure modes are typed results;
// fetching never aborts the batch.
package fetcher

import "fmt"

// NotAvailable is the sentinel for a page with no usable title or description.
const NotAvailable = "N/A"

// FailureKind classifies a fetch outcome.
type FailureKind int

const (
	// FailNone marks a successful fetch.
	FailNone FailureKind = iota

	// FailInvalidURL means the cleaned URL lacked a scheme or host; no
	// network call was attempted.
	FailInvalidURL

	// FailTimeout means the fetch exceeded its timeout budget.
	FailTimeout

	// FailConnection means a transport-level failure to reach the host.
	FailConnection

	// FailHTTP means the server answered with a non-2xx status.
	FailHTTP

	// FailFetch is the catch-all for unexpected fetch or parse failures.
	FailFetch
)

// String returns the failure kind name for logs.
func (k FailureKind) String() string {
	switch k {
	case FailNone:
		return "ok"
	case FailInvalidURL:
		return "invalid_url"
	case FailTimeout:
		return "timeout"
	case FailConnection:
		return "connection_error"
	case FailHTTP:
		return "http_error"
	case FailFetch:
		return "fetch_error"
	default:
		return "unknown"
	}
}

// Result is the outcome of fetching one URL. Title and Description are
// always populated: with page metadata on success, with a short failure
// description otherwise, so results drop straight into report rows.
type Result struct {
	// Title is the resolved page title, or a failure description.
	Title string `json:"title"`

	// Description is the resolved meta description, or "N/A".
	Description string `json:"description"`

	// Kind classifies the outcome.
	Kind FailureKind `json:"kind"`

	// StatusCode is set for FailHTTP results.
	StatusCode int `json:"status_code,omitempty"`
}

// OK reports whether the fetch succeeded.
func (r Result) OK() bool {
	return r.Kind == FailNone
}

func successResult(title, description string) Result {
	return Result{Title: title, Description: description, Kind: FailNone}
}

func invalidURLResult() Result {
	return Result{Title: "Invalid URL", Description: NotAvailable, Kind: FailInvalidURL}
}

func timeoutResult() Result {
	return Result{Title: "Timeout", Description: NotAvailable, Kind: FailTimeout}
}

func connectionResult() Result {
	return Result{Title: "Connection Error", Description: NotAvailable, Kind: FailConnection}
}

func httpErrorResult(status int) Result {
	return Result{
		Title:       fmt.Sprintf("HTTP Error %d", status),
		Description: NotAvailable,
		Kind:        FailHTTP,
		StatusCode:  status,
	}
}

func fetchErrorResult(err error) Result {
	return Result{
		Title:       "Error: " + truncateMessage(err.Error()),
		Description: NotAvailable,
		Kind:        FailFetch,
	}
}

// maxErrorLen bounds failure messages so one pathological error cannot blow
// up report cells or logs.
const maxErrorLen = 120

func truncateMessage(msg string) string {
	runes := []rune(msg)
	if len(runes) <= maxErrorLen {
		return msg
	}
	return string(runes[:maxErrorLen]) + "..."
}
