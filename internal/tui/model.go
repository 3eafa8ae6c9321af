package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/fini-net/gh-hookwatch/internal/poll"
	"github.com/fini-net/gh-hookwatch/internal/source"
	"golang.org/x/time/rate"
)

const (
	// Manual refreshes refill one token every manualRefreshEvery, up to manualRefreshBurst
	manualRefreshEvery = 2 * time.Second
	manualRefreshBurst = 3

	// Below this many remaining API calls the poll interval is tripled
	rateLimitFloor = 10
)

// Model holds the application state
type Model struct {
	ctx    context.Context
	source source.Source
	label  string
	logger *slog.Logger

	// Poll state, see poll.Tracker
	tracker    poll.Tracker
	initialSeq uint64
	limiter    *rate.Limiter

	// UI state
	spinner         spinner.Model
	help            help.Model
	keys            keyMap
	refreshInterval time.Duration
	styles          Styles
	width           int
	notice          string
	now             func() time.Time

	quitting bool
}

// NewModel creates a new TUI model. label names the source in the header.
func NewModel(ctx context.Context, src source.Source, label string, refreshInterval time.Duration, styles Styles, logger *slog.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tracker := poll.NewTracker()
	// the startup fetch is issued from Init, which cannot modify the model
	initialSeq := tracker.Begin(false)

	return Model{
		ctx:             ctx,
		source:          src,
		label:           label,
		logger:          logger,
		tracker:         tracker,
		initialSeq:      initialSeq,
		limiter:         rate.NewLimiter(rate.Every(manualRefreshEvery), manualRefreshBurst),
		spinner:         s,
		help:            help.New(),
		keys:            defaultKeyMap(),
		refreshInterval: refreshInterval,
		styles:          styles,
		now:             time.Now,
	}
}

// Snapshot returns the current poll state
func (m Model) Snapshot() poll.Snapshot {
	return m.tracker.Snapshot()
}

// ExitCode returns 1 when the backend was offline at exit
func (m Model) ExitCode() int {
	if m.tracker.Snapshot().Status == poll.StatusOffline {
		return 1
	}
	return 0
}
