package tui

import (
	"fmt"
	"time"

	"github.com/fini-net/gh-hookwatch/internal/poll"
	"github.com/fini-net/gh-hookwatch/internal/timing"
)

const (
	Title = "GitHub Webhook Live Tracker"

	EmptyText   = "No events found."
	LoadingText = "Loading..."

	maxCardWidth = 80
)

// StatusLabel returns the badge text for a connectivity status
func StatusLabel(status poll.Status) string {
	switch status {
	case poll.StatusLive:
		return "● Live"
	case poll.StatusOffline:
		return "● Offline"
	default:
		return "● Checking..."
	}
}

// LastUpdatedText describes when the last successful poll landed
func LastUpdatedText(lastUpdated, now time.Time) string {
	if lastUpdated.IsZero() {
		return ""
	}
	return fmt.Sprintf("Last updated: %s (%s ago)",
		timing.FormatTimestamp(lastUpdated),
		timing.FormatDuration(timing.Age(lastUpdated, now)))
}

// showEmpty reports whether the "no events" placeholder replaces the card list
func showEmpty(snap poll.Snapshot) bool {
	return len(snap.Events) == 0 && !snap.Loading && snap.ErrMessage == ""
}

// cardWidth fits cards to the terminal, capped for readability
func cardWidth(termWidth int) int {
	if termWidth <= 0 || termWidth > maxCardWidth {
		return maxCardWidth
	}
	return termWidth
}
