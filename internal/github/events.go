package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fini-net/gh-hookwatch/internal/events"
	"github.com/fini-net/gh-hookwatch/internal/source"
	"github.com/google/go-github/v58/github"
)

// DefaultLimit matches the number of events the tracker backend serves
const DefaultLimit = 10

// EventSource reads a repository's activity feed from the GitHub REST API
// and translates it into tracker events
type EventSource struct {
	client *github.Client
	owner  string
	repo   string
	limit  int

	// Timeout bounds each API call; zero leaves it to the caller's context
	Timeout time.Duration
}

// NewEventSource creates a source for owner/repo
func NewEventSource(client *github.Client, owner, repo string) *EventSource {
	return &EventSource{
		client: client,
		owner:  owner,
		repo:   repo,
		limit:  DefaultLimit,
	}
}

// Repo returns "owner/name"
func (s *EventSource) Repo() string {
	return s.owner + "/" + s.repo
}

// Fetch lists recent repository events, newest first
func (s *EventSource) Fetch(ctx context.Context) (*source.Result, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	opts := &github.ListOptions{PerPage: 100}

	ghEvents, resp, err := s.client.Activity.ListRepositoryEvents(ctx, s.owner, s.repo, opts)
	if err != nil {
		return nil, source.Failed(fmt.Errorf("failed to list events for %s: %w", s.Repo(), err))
	}

	remaining := source.NoRateLimit
	if resp != nil {
		remaining = resp.Rate.Remaining
	}

	list := make([]events.Event, 0, s.limit)
	for _, ghEvent := range ghEvents {
		if len(list) == s.limit {
			break
		}
		event, ok := ToEvent(ghEvent)
		if !ok {
			continue
		}
		list = append(list, event)
	}

	return &source.Result{
		Events:             list,
		RateLimitRemaining: remaining,
	}, nil
}

// ToEvent translates a GitHub activity event. Event types the tracker does
// not display report false.
func ToEvent(ghEvent *github.Event) (events.Event, bool) {
	if ghEvent.RawPayload == nil {
		return events.Event{}, false
	}

	payload, err := ghEvent.ParsePayload()
	if err != nil {
		return events.Event{}, false
	}

	switch p := payload.(type) {
	case *github.PushEvent:
		author := p.GetPusher().GetName()
		if author == "" {
			author = ghEvent.GetActor().GetLogin()
		}
		ts := p.GetHeadCommit().GetTimestamp().Time
		if ts.IsZero() {
			ts = ghEvent.GetCreatedAt().Time
		}
		return events.Event{
			ID:        ghEvent.GetID(),
			Action:    events.ActionPush,
			Author:    orUnknown(author),
			ToBranch:  branchName(p.GetRef()),
			Timestamp: formatTime(ts),
		}, true

	case *github.PullRequestEvent:
		pr := p.GetPullRequest()
		event := events.Event{
			ID:         ghEvent.GetID(),
			Action:     events.ActionPullRequest,
			Author:     orUnknown(pr.GetUser().GetLogin()),
			FromBranch: pr.GetHead().GetRef(),
			ToBranch:   pr.GetBase().GetRef(),
			Timestamp:  formatTime(pr.GetCreatedAt().Time),
		}
		if p.GetAction() == "closed" && pr.GetMerged() {
			event.Action = events.ActionMerge
			event.Timestamp = formatTime(pr.GetMergedAt().Time)
		}
		return event, true
	}

	return events.Event{}, false
}

// branchName strips the refs/heads/ prefix from a git ref
func branchName(ref string) string {
	return strings.TrimPrefix(ref, "refs/heads/")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
