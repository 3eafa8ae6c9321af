package tui

import (
	"time"

	"github.com/fini-net/gh-hookwatch/internal/source"
)

// TickMsg is sent on each poll interval
type TickMsg time.Time

// EventsMsg carries the outcome of one fetch back into the update loop
type EventsMsg struct {
	Seq    uint64
	Manual bool
	Result *source.Result
	Err    error
	At     time.Time
}
