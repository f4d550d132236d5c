package models

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// questionRow is one row of a question source, either a CSV line with the
// header id,question,type or an entry of a YAML questions list.
type questionRow struct {
	ID       int    `csv:"id" yaml:"id"`
	Question string `csv:"question" yaml:"question"`
	Type     string `csv:"type" yaml:"type"`
}

type questionDocument struct {
	Questions []questionRow `yaml:"questions"`
}

// LoadQuestionSet reads the ordered questions of one set from a .csv,
// .yaml or .yml file.
func LoadQuestionSet(set QuestionSet, path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s questions file %q not found", ErrDataUnavailable, set, path)
		}
		return nil, fmt.Errorf("failed to read %s questions file: %w", set, err)
	}

	var rows []questionRow
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
			return nil, fmt.Errorf("failed to parse %s questions CSV: %w", set, err)
		}
	case ".yaml", ".yml":
		var doc questionDocument
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s questions YAML: %w", set, err)
		}
		rows = doc.Questions
	default:
		return nil, fmt.Errorf("unsupported question file extension %q", ext)
	}

	return buildQuestions(set, rows)
}

func buildQuestions(set QuestionSet, rows []questionRow) ([]Question, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s questions file has no rows", ErrDataUnavailable, set)
	}

	seen := make(map[int]bool, len(rows))
	questions := make([]Question, 0, len(rows))
	for i, row := range rows {
		if row.ID <= 0 {
			return nil, fmt.Errorf("%s row %d: id must be a positive integer", set, i+1)
		}
		if seen[row.ID] {
			return nil, fmt.Errorf("%s row %d: duplicate id %d", set, i+1, row.ID)
		}
		seen[row.ID] = true

		text := strings.TrimSpace(row.Question)
		if text == "" {
			return nil, fmt.Errorf("%s row %d: question text is empty", set, i+1)
		}

		category := CategoryNone
		if set == SetSPSRQ {
			category = Category(strings.ToLower(strings.TrimSpace(row.Type)))
			if category != CategoryReward && category != CategoryPunishment {
				return nil, fmt.Errorf("%s row %d: type must be reward or punishment, got %q", set, i+1, row.Type)
			}
		}

		questions = append(questions, Question{ID: row.ID, Text: text, Category: category})
	}
	return questions, nil
}

// Bank holds the three question sets for the lifetime of the process. A
// set that failed to load keeps its error so only the stage needing it is
// blocked.
type Bank struct {
	sets map[QuestionSet][]Question
	errs map[QuestionSet]error
}

// NewBank loads every set named in paths. Sets missing from paths are
// reported as unavailable.
func NewBank(paths map[QuestionSet]string) *Bank {
	b := &Bank{
		sets: make(map[QuestionSet][]Question, len(QuestionSets)),
		errs: make(map[QuestionSet]error),
	}
	for _, set := range QuestionSets {
		path, ok := paths[set]
		if !ok || path == "" {
			b.errs[set] = fmt.Errorf("%w: no source configured for %s", ErrDataUnavailable, set)
			continue
		}
		questions, err := LoadQuestionSet(set, path)
		if err != nil {
			b.errs[set] = err
			continue
		}
		b.sets[set] = questions
	}
	return b
}

// NewBankFromQuestions builds a bank from questions already in memory.
func NewBankFromQuestions(sets map[QuestionSet][]Question) *Bank {
	b := &Bank{
		sets: make(map[QuestionSet][]Question, len(sets)),
		errs: make(map[QuestionSet]error),
	}
	for _, set := range QuestionSets {
		questions, ok := sets[set]
		if !ok || len(questions) == 0 {
			b.errs[set] = fmt.Errorf("%w: no questions for %s", ErrDataUnavailable, set)
			continue
		}
		b.sets[set] = slices.Clone(questions)
	}
	return b
}

// Questions returns a copy of the ordered questions of a set, or the error
// recorded when the set was loaded.
func (b *Bank) Questions(set QuestionSet) ([]Question, error) {
	if err, ok := b.errs[set]; ok {
		return nil, err
	}
	questions, ok := b.sets[set]
	if !ok {
		return nil, fmt.Errorf("%w: unknown question set %q", ErrDataUnavailable, set)
	}
	return slices.Clone(questions), nil
}

// Errors returns the load failure of every set that is unavailable.
func (b *Bank) Errors() map[QuestionSet]error {
	out := make(map[QuestionSet]error, len(b.errs))
	for set, err := range b.errs {
		out[set] = err
	}
	return out
}
