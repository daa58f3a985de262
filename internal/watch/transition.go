package watch

import "github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"

// StepKind is the side effect a tick should perform.
type StepKind int

const (
	// Stay leaves the game where it is; its task keeps firing.
	Stay StepKind = iota
	// Move cancels the current task and re-registers the game in Step.To.
	Move
	// Diff fetches live events since the watermark and advances it.
	Diff
	// Remove cancels the task and forgets the game.
	Remove
)

func (k StepKind) String() string {
	switch k {
	case Stay:
		return "stay"
	case Move:
		return "move"
	case Diff:
		return "diff"
	case Remove:
		return "remove"
	}
	return "unknown"
}

// Step is the outcome of one transition.
type Step struct {
	Kind StepKind
	To   Table
}

// Next decides what a tick for a game in table from does given the coded
// state just read from the live feed. Unmatched combinations are a silent Stay.
func Next(from Table, state statsapi.CodedState) Step {
	switch from {
	case Scheduled:
		if state == statsapi.StatePregame {
			return Step{Kind: Move, To: Pregame}
		}
		if state.IsLive() {
			return Step{Kind: Move, To: InProgress}
		}
	case Pregame:
		if state.IsLive() {
			return Step{Kind: Move, To: InProgress}
		}
	case InProgress:
		if state.IsTerminal() {
			return Step{Kind: Remove}
		}
		if state.IsLive() {
			return Step{Kind: Diff, To: InProgress}
		}
	}
	return Step{Kind: Stay, To: from}
}
