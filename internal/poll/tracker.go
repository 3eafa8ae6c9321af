// Package poll holds the connectivity state machine behind the dashboard.
//
// Every fetch is stamped with a sequence number when it is issued. Outcomes
// are applied in issue order only: a response that arrives after a newer one
// has already been applied is dropped, so a slow timer-driven request can never
// overwrite the result of a later manual refresh.
package poll

import (
	"time"

	"github.com/fini-net/gh-hookwatch/internal/events"
	"github.com/fini-net/gh-hookwatch/internal/source"
)

// FetchErrorMessage is the banner shown whenever a poll fails
const FetchErrorMessage = "Could not fetch events. Backend may be offline."

// Status is the backend connectivity indicator
type Status int

const (
	StatusChecking Status = iota
	StatusLive
	StatusOffline
)

func (s Status) String() string {
	switch s {
	case StatusLive:
		return "live"
	case StatusOffline:
		return "offline"
	default:
		return "checking"
	}
}

// Snapshot is the complete UI-facing poll state. It is never mutated in
// place; each applied outcome produces a new one.
type Snapshot struct {
	Events      []events.Event
	Status      Status
	LastUpdated time.Time
	Loading     bool
	ErrMessage  string
	Err         error

	RateLimitRemaining int
}

// Outcome is what a single fetch produced
type Outcome struct {
	Seq    uint64
	Result *source.Result
	Err    error
	At     time.Time
}

// Tracker sequences fetches and folds their outcomes into snapshots
type Tracker struct {
	snap    Snapshot
	issued  uint64
	applied uint64
}

// NewTracker returns a tracker in the checking state
func NewTracker() Tracker {
	return Tracker{
		snap: Snapshot{
			Events:             []events.Event{},
			Status:             StatusChecking,
			RateLimitRemaining: source.NoRateLimit,
		},
	}
}

// Snapshot returns the current state
func (t *Tracker) Snapshot() Snapshot {
	return t.snap
}

// Begin reserves the next sequence number for a fetch. Automatic fetches
// raise the loading flag; manual ones leave it as it is.
func (t *Tracker) Begin(manual bool) uint64 {
	t.issued++

	next := t.snap
	if !manual {
		next.Loading = true
	}
	next.ErrMessage = ""
	next.Err = nil
	t.snap = next

	return t.issued
}

// InFlight reports whether any issued fetch has not yet been superseded or applied
func (t *Tracker) InFlight() bool {
	return t.applied < t.issued
}

// Apply folds an outcome into the state. It returns false when the outcome
// is stale and was discarded.
func (t *Tracker) Apply(o Outcome) bool {
	if o.Seq <= t.applied || o.Seq > t.issued {
		return false
	}
	t.applied = o.Seq

	next := t.snap
	if o.Err != nil || o.Result == nil {
		next.Status = StatusOffline
		next.ErrMessage = FetchErrorMessage
		next.Err = o.Err
	} else {
		next.Events = o.Result.Events
		if next.Events == nil {
			next.Events = []events.Event{}
		}
		next.Status = StatusLive
		next.LastUpdated = o.At
		next.ErrMessage = ""
		next.Err = nil
		next.RateLimitRemaining = o.Result.RateLimitRemaining
	}
	// loading ends only when the newest request has landed
	if t.applied == t.issued {
		next.Loading = false
	}
	t.snap = next

	return true
}
