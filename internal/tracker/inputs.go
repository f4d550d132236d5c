package tracker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"behavior-go/internal/export"
	"behavior-go/internal/models"

	"github.com/gocarina/gocsv"
)

// ReinforcerType says whether the exported stimuli act as rewards or
// punishers.
type ReinforcerType string

const (
	Reward   ReinforcerType = "Reward"
	Punisher ReinforcerType = "Punisher"
)

// ReinforcerTypeFor derives the type from an export qid prefix: RSS items
// are rewards, anything else a punisher.
func ReinforcerTypeFor(qid string) ReinforcerType {
	if strings.HasPrefix(qid, string(models.SetRSS)) {
		return Reward
	}
	return Punisher
}

// Reinforcer is the consequence loaded from a participant's sticker export.
type Reinforcer struct {
	Type    ReinforcerType
	Stimuli []export.StickerRow
}

// Primary returns the top-ranked stimulus, which is the consequence shown
// against the weekly goal.
func (r Reinforcer) Primary() export.StickerRow {
	return r.Stimuli[0]
}

// Description is the text of the primary stimulus, falling back to its qid.
func (r Reinforcer) Description() string {
	p := r.Primary()
	if p.Question != "" {
		return p.Question
	}
	return p.QID
}

// LoadReinforcer reads the sticker export produced by the survey.
func LoadReinforcer(path string) (Reinforcer, error) {
	rows, err := export.Load(path)
	if err != nil {
		return Reinforcer{}, err
	}
	if len(rows) == 0 {
		return Reinforcer{}, fmt.Errorf("%w: sticker data file %q has no rows", models.ErrDataUnavailable, path)
	}
	return Reinforcer{Type: ReinforcerTypeFor(rows[0].QID), Stimuli: rows}, nil
}

// BehaviorMapping pairs a target behavior with the modified behavior that
// is tracked on the sticker chart.
type BehaviorMapping struct {
	Target   string `csv:"target_behavior"`
	Modified string `csv:"modified_behavior"`
}

// LoadBehaviors reads the target-behavior mapping CSV.
func LoadBehaviors(path string) ([]BehaviorMapping, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: behavior file %q not found", models.ErrDataUnavailable, path)
		}
		return nil, fmt.Errorf("failed to open behavior file: %w", err)
	}
	defer f.Close()

	var mappings []BehaviorMapping
	if err := gocsv.Unmarshal(f, &mappings); err != nil {
		return nil, fmt.Errorf("failed to parse behavior file: %w", err)
	}
	if len(mappings) == 0 {
		return nil, fmt.Errorf("%w: behavior file %q has no rows", models.ErrDataUnavailable, path)
	}

	seen := make(map[string]bool, len(mappings))
	for i, m := range mappings {
		m.Target = strings.TrimSpace(m.Target)
		m.Modified = strings.TrimSpace(m.Modified)
		if m.Target == "" || m.Modified == "" {
			return nil, fmt.Errorf("behavior row %d: target_behavior and modified_behavior are required", i+1)
		}
		if seen[m.Modified] {
			return nil, fmt.Errorf("behavior row %d: duplicate modified behavior %q", i+1, m.Modified)
		}
		seen[m.Modified] = true
		mappings[i] = m
	}
	return mappings, nil
}
