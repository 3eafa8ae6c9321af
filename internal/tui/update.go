package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fini-net/gh-hookwatch/internal/poll"
	"github.com/fini-net/gh-hookwatch/internal/source"
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		fetchEvents(m.ctx, m.source, m.initialSeq, false),
		tick(m.refreshInterval),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m.refresh()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		seq := m.tracker.Begin(false)
		return m, tea.Batch(
			fetchEvents(m.ctx, m.source, seq, false),
			tick(m.nextInterval()),
		)

	case EventsMsg:
		applied := m.tracker.Apply(poll.Outcome{
			Seq:    msg.Seq,
			Result: msg.Result,
			Err:    msg.Err,
			At:     msg.At,
		})
		m.logOutcome(msg, applied)
		if applied {
			m.notice = ""
		}
		return m, nil
	}

	return m, nil
}

// refresh handles a manual refresh request
func (m Model) refresh() (tea.Model, tea.Cmd) {
	// an automatic fetch is already on its way
	if m.tracker.Snapshot().Loading {
		return m, nil
	}
	if !m.limiter.Allow() {
		m.notice = "Refreshing too often, wait a moment"
		return m, nil
	}

	m.notice = ""
	seq := m.tracker.Begin(true)
	return m, fetchEvents(m.ctx, m.source, seq, true)
}

// nextInterval slows polling down when the source is close to its rate limit
func (m Model) nextInterval() time.Duration {
	remaining := m.tracker.Snapshot().RateLimitRemaining
	if remaining != source.NoRateLimit && remaining < rateLimitFloor {
		return m.refreshInterval * 3
	}
	return m.refreshInterval
}

func (m Model) logOutcome(msg EventsMsg, applied bool) {
	requestID := ""
	if msg.Result != nil {
		requestID = msg.Result.RequestID
	}
	var fe *source.FetchError
	if errors.As(msg.Err, &fe) {
		requestID = fe.RequestID
	}

	attrs := []any{"seq", msg.Seq, "manual", msg.Manual}
	if requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}

	switch {
	case !applied:
		m.logger.Debug("discarded stale poll result", attrs...)
	case msg.Err != nil || msg.Result == nil:
		m.logger.Warn("poll failed", append(attrs, "error", msg.Err)...)
	default:
		attrs = append(attrs, "events", len(msg.Result.Events))
		if msg.Result.RateLimitRemaining != source.NoRateLimit {
			attrs = append(attrs, "rate_limit_remaining", msg.Result.RateLimitRemaining)
		}
		m.logger.Info("poll succeeded", attrs...)
	}
}

// tick creates a command that sends a TickMsg after duration d
func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// fetchEvents runs one fetch against the source
func fetchEvents(ctx context.Context, src source.Source, seq uint64, manual bool) tea.Cmd {
	return func() tea.Msg {
		result, err := src.Fetch(ctx)
		return EventsMsg{
			Seq:    seq,
			Manual: manual,
			Result: result,
			Err:    err,
			At:     time.Now(),
		}
	}
}
