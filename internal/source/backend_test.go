package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fini-net/gh-hookwatch/internal/events"
)

func TestEventsURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://localhost:5000", "http://localhost:5000/latest-events"},
		{"http://localhost:5000/", "http://localhost:5000/latest-events"},
		{"https://tracker.example.com/api", "https://tracker.example.com/api/latest-events"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			if got := EventsURL(tt.base); got != tt.want {
				t.Errorf("EventsURL(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestBackendFetch(t *testing.T) {
	var gotPath, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id": "2", "action": "merge", "author": "bob", "from_branch": "feature", "to_branch": "main", "timestamp": "2024-06-03T11:00:00Z"},
			{"_id": "1", "action": "push", "author": "alice", "to_branch": "main", "timestamp": "2024-06-03T10:00:00Z"}
		]`))
	}))
	defer srv.Close()

	result, err := NewBackend(srv.URL, time.Second).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}

	if gotPath != EventsPath {
		t.Errorf("request path = %q, want %q", gotPath, EventsPath)
	}
	if gotRequestID == "" || gotRequestID != result.RequestID {
		t.Errorf("X-Request-ID = %q, result.RequestID = %q", gotRequestID, result.RequestID)
	}
	if result.RateLimitRemaining != NoRateLimit {
		t.Errorf("RateLimitRemaining = %d, want %d", result.RateLimitRemaining, NoRateLimit)
	}
	if len(result.Events) != 2 {
		t.Fatalf("len(Events) = %d, want 2", len(result.Events))
	}
	// order from the backend is preserved
	if result.Events[0].ID != "2" || result.Events[1].Action != events.ActionPush {
		t.Errorf("Events = %+v", result.Events)
	}
}

func TestBackendFetchEmptyAndNull(t *testing.T) {
	for _, body := range []string{`[]`, `null`} {
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			result, err := NewBackend(srv.URL, 0).Fetch(context.Background())
			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}
			if result.Events == nil || len(result.Events) != 0 {
				t.Errorf("Events = %#v, want empty non-nil slice", result.Events)
			}
		})
	}
}

func TestBackendFetchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`[]`))
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status": "ok"`))
			},
		},
		{
			name: "object instead of array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status": "ok"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			result, err := NewBackend(srv.URL, time.Second).Fetch(context.Background())
			if err == nil {
				t.Fatalf("Fetch() expected error, got %+v", result)
			}
			if !errors.Is(err, ErrFetchFailed) {
				t.Errorf("error %v does not wrap ErrFetchFailed", err)
			}
			var fe *FetchError
			if !errors.As(err, &fe) || fe.RequestID == "" {
				t.Errorf("error %v is not a FetchError with a request id", err)
			}
		})
	}
}

func TestBackendFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewBackend(url, time.Second).Fetch(context.Background())
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("Fetch() error = %v, want ErrFetchFailed", err)
	}
}

func TestBackendFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewBackend(srv.URL, 50*time.Millisecond).Fetch(context.Background())
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("Fetch() error = %v, want ErrFetchFailed", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Fetch() error = %v, want deadline exceeded", err)
	}
}

func TestFailed(t *testing.T) {
	cause := errors.New("boom")
	err := Failed(cause)

	if !errors.Is(err, ErrFetchFailed) || !errors.Is(err, cause) {
		t.Errorf("Failed() = %v, want both ErrFetchFailed and cause", err)
	}
	if got, want := err.Error(), "fetch failed: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
