package events

// Action identifies what kind of repository activity an event describes
type Action string

const (
	ActionPush        Action = "push"
	ActionPullRequest Action = "pull_request"
	ActionMerge       Action = "merge"
)

// Known reports whether the action is one the renderer has a sentence for
func (a Action) Known() bool {
	switch a {
	case ActionPush, ActionPullRequest, ActionMerge:
		return true
	default:
		return false
	}
}

// Event is one webhook-derived activity record as served by /latest-events
type Event struct {
	ID         string `json:"_id" yaml:"id"`
	Action     Action `json:"action" yaml:"action"`
	Author     string `json:"author" yaml:"author"`
	FromBranch string `json:"from_branch,omitempty" yaml:"from_branch,omitempty"`
	ToBranch   string `json:"to_branch" yaml:"to_branch"`
	Timestamp  string `json:"timestamp" yaml:"timestamp"`
}

// NeedsFromBranch reports whether the source branch is meaningful for the action
func (e Event) NeedsFromBranch() bool {
	return e.Action == ActionPullRequest || e.Action == ActionMerge
}
