// Package tracker implements the weekly digital sticker chart: a behavior
// by weekday grid evaluated against a reinforcement schedule.
package tracker

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"sync"
	"time"
)

// Options configures a Tracker.
type Options struct {
	Reinforcer Reinforcer
	Behaviors  []BehaviorMapping
	// LogDir receives the weekly log CSVs.
	LogDir string
	// Rand drives VariableRatio thresholds. Defaults to a time-seeded source.
	Rand *rand.Rand
	// Now defaults to time.Now.
	Now func() time.Time
}

// Tracker holds the schedule state and sticker grid for the life of the
// process.
type Tracker struct {
	mu         sync.Mutex
	state      ScheduleState
	grid       *StickerGrid
	reinforcer Reinforcer
	behaviors  []BehaviorMapping
	logDir     string
	rng        *rand.Rand
	now        func() time.Time
}

// New returns a tracker in Phase I on the Continuous schedule, week 0.
func New(opts Options) (*Tracker, error) {
	if len(opts.Reinforcer.Stimuli) == 0 {
		return nil, errors.New("tracker needs at least one reinforcer")
	}
	if len(opts.Behaviors) == 0 {
		return nil, errors.New("tracker needs at least one behavior")
	}

	t := &Tracker{
		reinforcer: opts.Reinforcer,
		behaviors:  append([]BehaviorMapping(nil), opts.Behaviors...),
		logDir:     opts.LogDir,
		rng:        opts.Rand,
		now:        opts.Now,
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if t.now == nil {
		t.now = time.Now
	}

	rows := make([]string, len(opts.Behaviors))
	for i, b := range opts.Behaviors {
		rows[i] = b.Modified
	}
	t.grid = NewStickerGrid(rows)
	t.state = ScheduleState{
		Phase:     PhaseI,
		Schedule:  Continuous,
		Threshold: DrawThreshold(Continuous, t.rng),
	}
	return t, nil
}

// State returns a copy of the schedule state.
func (t *Tracker) State() ScheduleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Grid returns a snapshot of the sticker grid.
func (t *Tracker) Grid() *StickerGrid {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.grid.Clone()
}

// Reinforcer returns the loaded consequence.
func (t *Tracker) Reinforcer() Reinforcer {
	return t.reinforcer
}

// Behaviors returns the target to modified behavior mapping.
func (t *Tracker) Behaviors() []BehaviorMapping {
	return append([]BehaviorMapping(nil), t.behaviors...)
}

// RecordWeek overwrites the grid with the submitted checkboxes.
func (t *Tracker) RecordWeek(checked map[Cell]bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.grid.Overwrite(checked)
}

// SetSchedule switches the reinforcement schedule. Choosing the current
// schedule again changes nothing, so a VariableRatio goal is never redrawn
// mid-week.
func (t *Tracker) SetSchedule(s Schedule) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s == t.state.Schedule {
		return
	}
	t.state.Schedule = s
	t.state.Threshold = DrawThreshold(s, t.rng)
}

// AdvancePhase toggles between Phase I and Phase II.
func (t *Tracker) AdvancePhase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Phase = t.state.Phase.Next()
	return t.state.Phase
}

// Evaluate totals the grid against the current threshold.
func (t *Tracker) Evaluate() Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.evaluate()
}

func (t *Tracker) evaluate() Outcome {
	o := Evaluate(t.reinforcer.Type, t.grid.Total(), t.state.Threshold)
	o.Consequence = t.reinforcer.Description()
	return o
}

// LogPath returns where the log for week is written.
func (t *Tracker) LogPath(week int) string {
	return filepath.Join(t.logDir, LogFilename(week))
}

// Rollover closes the current week: it writes the weekly log, advances the
// week counter, clears the grid and redraws a VariableRatio goal. State is
// left untouched when the log cannot be written.
func (t *Tracker) Rollover() (WeekLog, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	week := t.state.Week + 1
	at := t.now()
	outcome := t.evaluate()
	path := t.LogPath(week)

	if err := writeLog(path, logRows(t.grid, t.state, outcome.Total, at)); err != nil {
		return WeekLog{}, fmt.Errorf("week %d rollover: %w", week, err)
	}

	log := WeekLog{
		Week:      week,
		Path:      path,
		Phase:     t.state.Phase,
		Schedule:  t.state.Schedule,
		Threshold: t.state.Threshold,
		Total:     outcome.Total,
		Outcome:   outcome,
		LoggedAt:  at,
	}

	t.state.Week = week
	t.grid.Reset()
	if t.state.Schedule == VariableRatio {
		t.state.Threshold = DrawThreshold(VariableRatio, t.rng)
	}
	return log, nil
}
