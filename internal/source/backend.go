package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fini-net/gh-hookwatch/internal/events"
	"github.com/google/uuid"
)

const (
	// EventsPath is the backend route serving the latest events
	EventsPath = "/latest-events"

	// maxBodyBytes caps how much of a response we are willing to decode
	maxBodyBytes = 4 << 20
)

// HTTPClient interface for HTTP operations (allows mocking in tests)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Backend fetches events from the webhook tracker's REST API
type Backend struct {
	BaseURL    string
	HTTPClient HTTPClient
	Timeout    time.Duration
}

// NewBackend creates a backend source. A zero timeout leaves requests bounded
// only by the caller's context.
func NewBackend(baseURL string, timeout time.Duration) *Backend {
	return &Backend{
		BaseURL:    baseURL,
		HTTPClient: http.DefaultClient,
		Timeout:    timeout,
	}
}

// EventsURL joins the base URL and the events route
func EventsURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + EventsPath
}

// Fetch issues one GET for the latest events
func (b *Backend) Fetch(ctx context.Context) (*Result, error) {
	requestID := uuid.NewString()

	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, EventsURL(b.BaseURL), nil)
	if err != nil {
		return nil, fetchFailed(requestID, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return nil, fetchFailed(requestID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fetchFailed(requestID, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var list []events.Event
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&list); err != nil {
		return nil, fetchFailed(requestID, fmt.Errorf("failed to decode events: %w", err))
	}
	if list == nil {
		list = []events.Event{}
	}

	return &Result{
		Events:             list,
		RateLimitRemaining: NoRateLimit,
		RequestID:          requestID,
	}, nil
}
