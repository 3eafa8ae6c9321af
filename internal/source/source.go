package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/fini-net/gh-hookwatch/internal/events"
)

// ErrFetchFailed is wrapped by every error a Source returns
var ErrFetchFailed = errors.New("fetch failed")

// NoRateLimit marks a result from a source that does not report rate limits
const NoRateLimit = -1

// Source produces the current list of events
type Source interface {
	Fetch(ctx context.Context) (*Result, error)
}

// Result is the outcome of one successful fetch
type Result struct {
	Events             []events.Event
	RateLimitRemaining int
	RequestID          string
}

// FetchError carries the cause of a failed fetch along with the request it belongs to
type FetchError struct {
	RequestID string
	Err       error
}

func (e *FetchError) Error() string {
	if e.RequestID == "" {
		return fmt.Sprintf("%v: %v", ErrFetchFailed, e.Err)
	}
	return fmt.Sprintf("%v (request %s): %v", ErrFetchFailed, e.RequestID, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetchFailed, e.Err}
}

func fetchFailed(requestID string, err error) error {
	return &FetchError{RequestID: requestID, Err: err}
}

// Failed wraps err so that it matches ErrFetchFailed
func Failed(err error) error {
	return fetchFailed("", err)
}
