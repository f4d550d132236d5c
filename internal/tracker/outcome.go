package tracker

import "fmt"

// Status is the weekly verdict.
type Status string

const (
	StatusGoalMet    Status = "goal met"
	StatusInProgress Status = "in progress"
	StatusTriggered  Status = "triggered"
	StatusAvoided    Status = "goal avoided"
)

// Outcome is the evaluation of the week's stickers against the threshold.
type Outcome struct {
	Type      ReinforcerType
	Status    Status
	Total     int
	Threshold int
	// Remaining is the number of stickers still needed to reach the
	// threshold, 0 once it is reached.
	Remaining   int
	Consequence string
}

// Evaluate compares total against threshold. A reward is earned once the
// total reaches the threshold; a punisher is triggered while the total is
// below it.
func Evaluate(kind ReinforcerType, total, threshold int) Outcome {
	o := Outcome{Type: kind, Total: total, Threshold: threshold}
	if total < threshold {
		o.Remaining = threshold - total
	}

	switch kind {
	case Reward:
		if total >= threshold {
			o.Status = StatusGoalMet
		} else {
			o.Status = StatusInProgress
		}
	default:
		if total < threshold {
			o.Status = StatusTriggered
		} else {
			o.Status = StatusAvoided
		}
	}
	return o
}

// Message is the status line shown to the participant.
func (o Outcome) Message() string {
	switch o.Status {
	case StatusGoalMet:
		return fmt.Sprintf("Weekly Reward Goal Met! (%d / %d stickers)", o.Total, o.Threshold)
	case StatusInProgress:
		return fmt.Sprintf("Weekly Reward Goal In Progress: %d more stickers needed for weekly goal (%d / %d stickers)",
			o.Remaining, o.Total, o.Threshold)
	case StatusTriggered:
		return fmt.Sprintf("Weekly Punisher Goal Triggered! (%d / %d stickers)", o.Total, o.Threshold)
	case StatusAvoided:
		return fmt.Sprintf("Weekly Punisher Goal Avoided! (%d / %d stickers)", o.Total, o.Threshold)
	}
	return ""
}

// Positive reports whether the outcome is good news for the participant.
func (o Outcome) Positive() bool {
	return o.Status == StatusGoalMet || o.Status == StatusAvoided
}
