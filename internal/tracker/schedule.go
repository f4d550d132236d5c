package tracker

import (
	"fmt"
	"math/rand"
	"strings"

	"behavior-go/internal/models"
)

// Phase is the program phase shown on the chart.
type Phase string

const (
	PhaseI  Phase = "Phase I"
	PhaseII Phase = "Phase II"
)

// Next toggles between the two phases.
func (p Phase) Next() Phase {
	if p == PhaseI {
		return PhaseII
	}
	return PhaseI
}

// Schedule is a reinforcement schedule.
type Schedule string

const (
	Continuous    Schedule = "Continuous"
	FixedRatio    Schedule = "Fixed Ratio"
	VariableRatio Schedule = "Variable Ratio"
)

// Schedules lists the selectable schedules in display order.
var Schedules = []Schedule{Continuous, FixedRatio, VariableRatio}

const (
	ContinuousThreshold = 1
	FixedRatioThreshold = 15
	VariableRatioMin    = 15
	VariableRatioMax    = 30
)

// ParseSchedule accepts a schedule display name, ignoring case, spaces and
// underscores ("Fixed Ratio", "fixed_ratio", "FixedRatio").
func ParseSchedule(name string) (Schedule, error) {
	norm := func(s string) string {
		s = strings.ToLower(s)
		return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
	}
	want := norm(name)
	for _, s := range Schedules {
		if norm(string(s)) == want {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown schedule %q", models.ErrValidationFailed, name)
}

// DrawThreshold returns the weekly sticker goal for a schedule. Only
// VariableRatio consumes randomness, drawing uniformly from
// [VariableRatioMin, VariableRatioMax].
func DrawThreshold(schedule Schedule, rng *rand.Rand) int {
	switch schedule {
	case FixedRatio:
		return FixedRatioThreshold
	case VariableRatio:
		return VariableRatioMin + rng.Intn(VariableRatioMax-VariableRatioMin+1)
	default:
		return ContinuousThreshold
	}
}

// ScheduleState is the tracker's program state.
type ScheduleState struct {
	Phase     Phase
	Schedule  Schedule
	Threshold int
	Week      int
}
