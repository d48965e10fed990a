package cannon

import "time"

// Event is a discrete gameplay occurrence forwarded to audio feedback.
type Event int

const (
	EventCannonFired Event = iota
	EventTargetHit
	EventBlockerHit
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventCannonFired:
		return "cannon_fired"
	case EventTargetHit:
		return "target_hit"
	case EventBlockerHit:
		return "blocker_hit"
	default:
		return "unknown"
	}
}

// Phase is the round state of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseRoundWon
	PhaseRoundLost
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseRoundWon:
		return "round_won"
	case PhaseRoundLost:
		return "round_lost"
	default:
		return "unknown"
	}
}

// OutcomeKind tells whether a round was won or lost.
type OutcomeKind int

const (
	OutcomeWin OutcomeKind = iota
	OutcomeLose
)

func (k OutcomeKind) String() string {
	if k == OutcomeWin {
		return "win"
	}
	return "lose"
}

// Outcome describes a finished round for the outcome UI.
type Outcome struct {
	Kind       OutcomeKind
	RoundID    string
	Level      int
	ShotsFired int
	Elapsed    time.Duration
	Score      int

	// HighScores is the top-five list to display. After a loss it already
	// contains the round's score.
	HighScores []int

	// Marked is the index of Score in HighScores, or -1.
	Marked int
}

// StepResult is returned by Advance after each frame.
type StepResult struct {
	Events  []Event
	Outcome *Outcome // Non-nil only on the frame the round ended
}
