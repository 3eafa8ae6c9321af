package poll

import (
	"errors"
	"testing"
	"time"

	"github.com/fini-net/gh-hookwatch/internal/events"
	"github.com/fini-net/gh-hookwatch/internal/source"
)

var (
	t0 = time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)

	pushEvent  = events.Event{ID: "1", Action: events.ActionPush, Author: "alice", ToBranch: "main"}
	mergeEvent = events.Event{ID: "2", Action: events.ActionMerge, Author: "bob", FromBranch: "feature", ToBranch: "main"}
)

func success(seq uint64, at time.Time, evs ...events.Event) Outcome {
	return Outcome{
		Seq:    seq,
		Result: &source.Result{Events: evs, RateLimitRemaining: source.NoRateLimit},
		At:     at,
	}
}

func failure(seq uint64) Outcome {
	return Outcome{Seq: seq, Err: source.Failed(errors.New("connection refused")), At: t0}
}

func TestNewTracker(t *testing.T) {
	tr := NewTracker()
	snap := tr.Snapshot()

	if snap.Status != StatusChecking {
		t.Errorf("Status = %v, want checking", snap.Status)
	}
	if snap.Events == nil || len(snap.Events) != 0 {
		t.Errorf("Events = %#v, want empty", snap.Events)
	}
	if !snap.LastUpdated.IsZero() {
		t.Errorf("LastUpdated = %v, want zero", snap.LastUpdated)
	}
	if tr.InFlight() {
		t.Error("InFlight() = true before any fetch")
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusChecking, "checking"},
		{StatusLive, "live"},
		{StatusOffline, "offline"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestBeginLoading(t *testing.T) {
	tests := []struct {
		name        string
		manual      bool
		wantLoading bool
	}{
		{"automatic fetch shows loading", false, true},
		{"manual fetch does not", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			seq := tr.Begin(tt.manual)
			if seq != 1 {
				t.Errorf("Begin() = %d, want 1", seq)
			}
			if got := tr.Snapshot().Loading; got != tt.wantLoading {
				t.Errorf("Loading = %v, want %v", got, tt.wantLoading)
			}
			if !tr.InFlight() {
				t.Error("InFlight() = false after Begin")
			}
		})
	}
}

func TestApplySuccess(t *testing.T) {
	tr := NewTracker()
	seq := tr.Begin(false)

	if !tr.Apply(success(seq, t0, pushEvent, mergeEvent)) {
		t.Fatal("Apply() = false for current outcome")
	}

	snap := tr.Snapshot()
	if snap.Status != StatusLive {
		t.Errorf("Status = %v, want live", snap.Status)
	}
	if len(snap.Events) != 2 || snap.Events[0] != pushEvent {
		t.Errorf("Events = %+v", snap.Events)
	}
	if !snap.LastUpdated.Equal(t0) {
		t.Errorf("LastUpdated = %v, want %v", snap.LastUpdated, t0)
	}
	if snap.Loading || snap.ErrMessage != "" || snap.Err != nil {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestApplyFailureKeepsEvents(t *testing.T) {
	tr := NewTracker()
	tr.Apply(success(tr.Begin(false), t0, pushEvent))

	seq := tr.Begin(false)
	if !tr.Apply(failure(seq)) {
		t.Fatal("Apply() = false for current outcome")
	}

	snap := tr.Snapshot()
	if snap.Status != StatusOffline {
		t.Errorf("Status = %v, want offline", snap.Status)
	}
	if snap.ErrMessage != FetchErrorMessage {
		t.Errorf("ErrMessage = %q, want %q", snap.ErrMessage, FetchErrorMessage)
	}
	if !errors.Is(snap.Err, source.ErrFetchFailed) {
		t.Errorf("Err = %v, want ErrFetchFailed", snap.Err)
	}
	if len(snap.Events) != 1 || snap.Events[0] != pushEvent {
		t.Errorf("Events = %+v, want previous list retained", snap.Events)
	}
	if !snap.LastUpdated.Equal(t0) {
		t.Errorf("LastUpdated = %v, want unchanged %v", snap.LastUpdated, t0)
	}
	if snap.Loading {
		t.Error("Loading = true after failure")
	}
}

func TestRecoveryAfterFailure(t *testing.T) {
	tr := NewTracker()
	tr.Apply(failure(tr.Begin(false)))

	later := t0.Add(15 * time.Second)
	tr.Apply(success(tr.Begin(false), later, mergeEvent))

	snap := tr.Snapshot()
	if snap.Status != StatusLive {
		t.Errorf("Status = %v, want live", snap.Status)
	}
	if snap.ErrMessage != "" || snap.Err != nil {
		t.Errorf("error not cleared: %q %v", snap.ErrMessage, snap.Err)
	}
	if !snap.LastUpdated.Equal(later) {
		t.Errorf("LastUpdated = %v, want %v", snap.LastUpdated, later)
	}
}

func TestBeginClearsBanner(t *testing.T) {
	tr := NewTracker()
	tr.Apply(failure(tr.Begin(false)))
	tr.Begin(true)

	snap := tr.Snapshot()
	if snap.ErrMessage != "" {
		t.Errorf("ErrMessage = %q, want cleared while refetching", snap.ErrMessage)
	}
	if snap.Status != StatusOffline {
		t.Errorf("Status = %v, want offline until the refetch lands", snap.Status)
	}
}

func TestStaleOutcomeDiscarded(t *testing.T) {
	tr := NewTracker()

	slow := tr.Begin(false)  // timer fetch
	manual := tr.Begin(true) // refresh issued while it is outstanding

	if !tr.Apply(success(manual, t0.Add(time.Second), mergeEvent)) {
		t.Fatal("newer outcome rejected")
	}
	if tr.Apply(failure(slow)) {
		t.Fatal("stale outcome applied")
	}

	snap := tr.Snapshot()
	if snap.Status != StatusLive {
		t.Errorf("Status = %v, want live", snap.Status)
	}
	if len(snap.Events) != 1 || snap.Events[0] != mergeEvent {
		t.Errorf("Events = %+v, want manual refresh result", snap.Events)
	}
	if snap.Loading {
		t.Error("Loading = true with nothing newer outstanding")
	}
}

func TestOlderOutcomeAppliedWhileNewerPending(t *testing.T) {
	tr := NewTracker()

	first := tr.Begin(false)
	tr.Begin(false)

	if !tr.Apply(success(first, t0, pushEvent)) {
		t.Fatal("in-order outcome rejected")
	}

	snap := tr.Snapshot()
	if !snap.Loading {
		t.Error("Loading = false while the newest fetch is outstanding")
	}
	if !tr.InFlight() {
		t.Error("InFlight() = false while the newest fetch is outstanding")
	}
}

func TestApplyRejectsUnissuedAndDuplicate(t *testing.T) {
	tr := NewTracker()
	seq := tr.Begin(false)

	if tr.Apply(success(seq+1, t0)) {
		t.Error("Apply() accepted a sequence number never issued")
	}
	if !tr.Apply(success(seq, t0)) {
		t.Fatal("Apply() rejected the issued outcome")
	}
	if tr.Apply(success(seq, t0)) {
		t.Error("Apply() accepted the same outcome twice")
	}
}

func TestApplyNilEvents(t *testing.T) {
	tr := NewTracker()
	tr.Apply(success(tr.Begin(false), t0))

	if evs := tr.Snapshot().Events; evs == nil {
		t.Error("Events = nil, want empty slice")
	}
}

func TestApplyRateLimit(t *testing.T) {
	tr := NewTracker()
	seq := tr.Begin(false)
	tr.Apply(Outcome{Seq: seq, Result: &source.Result{RateLimitRemaining: 7}, At: t0})

	if got := tr.Snapshot().RateLimitRemaining; got != 7 {
		t.Errorf("RateLimitRemaining = %d, want 7", got)
	}
}
