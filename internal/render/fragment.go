// Package render turns event records into display sentences.
//
// Sentences are returned as typed segments rather than finished strings so
// that the terminal UI can style authors, branches and timestamps while the
// snapshot output prints the same text unstyled.
package render

import (
	"strings"

	"github.com/fini-net/gh-hookwatch/internal/events"
	"github.com/fini-net/gh-hookwatch/internal/timing"
)

// UnknownEventText is shown for any action without a sentence of its own
const UnknownEventText = "Unknown event"

// SegmentKind tells a styler what a piece of text represents
type SegmentKind int

const (
	KindText SegmentKind = iota
	KindAuthor
	KindAction
	KindBranch
	KindTimestamp
)

// Segment is one run of text within a fragment
type Segment struct {
	Kind SegmentKind
	Text string
}

// Fragment is a formatted event sentence
type Fragment []Segment

// String joins the segments into plain text
func (f Fragment) String() string {
	var b strings.Builder
	for _, s := range f {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Render joins the segments, passing each through style first
func (f Fragment) Render(style func(SegmentKind, string) string) string {
	var b strings.Builder
	for _, s := range f {
		if s.Kind == KindText {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(style(s.Kind, s.Text))
	}
	return b.String()
}

// FormatEvent builds the sentence for a single event
func FormatEvent(e events.Event) Fragment {
	ts := timing.FormatSerialized(e.Timestamp)

	switch e.Action {
	case events.ActionPush:
		return Fragment{
			{KindAuthor, e.Author},
			{KindText, " "},
			{KindAction, "pushed"},
			{KindText, " to "},
			{KindBranch, e.ToBranch},
			{KindText, " on "},
			{KindTimestamp, ts},
		}
	case events.ActionPullRequest:
		return Fragment{
			{KindAuthor, e.Author},
			{KindText, " "},
			{KindAction, "submitted a pull request"},
			{KindText, " from "},
			{KindBranch, e.FromBranch},
			{KindText, " to "},
			{KindBranch, e.ToBranch},
			{KindText, " on "},
			{KindTimestamp, ts},
		}
	case events.ActionMerge:
		return Fragment{
			{KindAuthor, e.Author},
			{KindText, " "},
			{KindAction, "merged branch"},
			{KindText, " "},
			{KindBranch, e.FromBranch},
			{KindText, " to "},
			{KindBranch, e.ToBranch},
			{KindText, " on "},
			{KindTimestamp, ts},
		}
	default:
		return Fragment{{KindText, UnknownEventText}}
	}
}
