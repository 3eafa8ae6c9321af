package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fini-net/gh-hookwatch/internal/events"
	"github.com/fini-net/gh-hookwatch/internal/poll"
	"github.com/fini-net/gh-hookwatch/internal/render"
)

// View renders the current state
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.tracker.Snapshot()

	var b strings.Builder

	// Header
	b.WriteString(m.styles.Title.Render(Title))
	b.WriteString("  ")
	b.WriteString(m.renderBadge(snap.Status))
	b.WriteString("\n")
	if m.label != "" {
		b.WriteString(m.styles.Info.Render(m.label))
		b.WriteString("\n")
	}

	// Sub-header
	sub := m.styles.Info.Render(LastUpdatedText(snap.LastUpdated, m.now()))
	if snap.Loading {
		sub = strings.TrimSpace(sub + "  " + m.spinner.View() + " " + LoadingText)
	}
	b.WriteString(sub)
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n\n")
	}

	if snap.ErrMessage != "" {
		b.WriteString(m.styles.ErrorBox.Render(snap.ErrMessage))
		b.WriteString("\n\n")
	}

	if showEmpty(snap) {
		b.WriteString(m.styles.Empty.Render(EmptyText))
		b.WriteString("\n\n")
	} else {
		b.WriteString(m.renderCards(snap.Events))
	}

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderBadge(status poll.Status) string {
	label := StatusLabel(status)
	switch status {
	case poll.StatusLive:
		return m.styles.Live.Render(label)
	case poll.StatusOffline:
		return m.styles.Offline.Render(label)
	default:
		return m.styles.Checking.Render(label)
	}
}

// renderCards lays out one card per event, in the order received
func (m Model) renderCards(list []events.Event) string {
	if len(list) == 0 {
		return ""
	}

	card := m.styles.Card.Width(cardWidth(m.width) - 2)

	cards := make([]string, 0, len(list))
	for _, e := range list {
		cards = append(cards, card.Render(render.FormatEvent(e).Render(m.styles.Segment)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards...) + "\n"
}
