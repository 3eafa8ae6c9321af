package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fini-net/gh-hookwatch/internal/config"
	"github.com/fini-net/gh-hookwatch/internal/render"
)

// Styles holds all lipgloss styles for rendering
type Styles struct {
	Title     lipgloss.Style
	Live      lipgloss.Style
	Offline   lipgloss.Style
	Checking  lipgloss.Style
	Info      lipgloss.Style
	Notice    lipgloss.Style
	ErrorBox  lipgloss.Style
	Empty     lipgloss.Style
	Card      lipgloss.Style
	Spinner   lipgloss.Style
	Author    lipgloss.Style
	Action    lipgloss.Style
	Branch    lipgloss.Style
	Timestamp lipgloss.Style
}

func color(c int) lipgloss.Color {
	return lipgloss.Color(fmt.Sprint(c))
}

// NewStyles creates styled renderers based on config colors
func NewStyles(colors config.ColorConfig) Styles {
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("15"))

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(color(colors.Author)),
		Live:     badge.Background(color(colors.Live)),
		Offline:  badge.Background(color(colors.Offline)),
		Checking: badge.Background(color(colors.Checking)).Foreground(lipgloss.Color("0")),
		Info:     lipgloss.NewStyle().Foreground(color(colors.Timestamp)),
		Notice:   lipgloss.NewStyle().Foreground(color(colors.Checking)),
		ErrorBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(color(colors.Offline)).
			PaddingLeft(1).
			Foreground(color(colors.Offline)).
			Bold(true),
		Empty: lipgloss.NewStyle().Foreground(color(colors.Timestamp)).Italic(true),
		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(color(colors.Author)).
			PaddingLeft(1).
			MarginBottom(1),
		Spinner:   lipgloss.NewStyle().Foreground(color(colors.Checking)),
		Author:    lipgloss.NewStyle().Foreground(color(colors.Author)).Bold(true),
		Action:    lipgloss.NewStyle().Bold(true),
		Branch:    lipgloss.NewStyle().Foreground(color(colors.Branch)).Underline(true),
		Timestamp: lipgloss.NewStyle().Foreground(color(colors.Timestamp)),
	}
}

// Segment styles one piece of an event sentence
func (s Styles) Segment(kind render.SegmentKind, text string) string {
	switch kind {
	case render.KindAuthor:
		return s.Author.Render(text)
	case render.KindAction:
		return s.Action.Render(text)
	case render.KindBranch:
		return s.Branch.Render(text)
	case render.KindTimestamp:
		return s.Timestamp.Render(text)
	default:
		return text
	}
}
