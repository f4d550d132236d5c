// Package export reads and writes the sticker CSV handed from the survey to
// the weekly tracker.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"behavior-go/internal/models"
	"behavior-go/internal/survey"

	"github.com/gocarina/gocsv"
)

// StickerRow is one line of the sticker export.
type StickerRow struct {
	QID      string `csv:"qid"`
	Question string `csv:"question"`
	Response int    `csv:"response"`
}

// Rows converts ranked stimuli into export rows, keeping their order.
func Rows(stimuli []survey.Stimulus) []StickerRow {
	rows := make([]StickerRow, len(stimuli))
	for i, s := range stimuli {
		rows[i] = StickerRow{QID: s.QID, Question: s.Text, Response: s.Rating}
	}
	return rows
}

// Write serializes rows as CSV with the header qid,question,response.
func Write(w io.Writer, rows []StickerRow) error {
	if rows == nil {
		rows = []StickerRow{}
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write sticker CSV: %w", err)
	}
	return nil
}

// Bytes renders rows as CSV in memory.
func Bytes(rows []StickerRow) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Read parses a sticker CSV.
func Read(r io.Reader) ([]StickerRow, error) {
	var rows []StickerRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse sticker CSV: %w", err)
	}
	return rows, nil
}

// Save writes the export for a participant into dir, replacing any earlier
// file of the same name. It returns the written path.
func Save(dir string, participant models.Participant, stimuli []survey.Stimulus) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create export directory: %w", err)
	}
	path := filepath.Join(dir, participant.ExportFilename())

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create sticker export: %w", err)
	}
	defer f.Close()

	if err := Write(f, Rows(stimuli)); err != nil {
		return "", err
	}
	return path, f.Close()
}

// Load reads a sticker CSV from disk. A missing file is reported as
// models.ErrDataUnavailable.
func Load(path string) ([]StickerRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: sticker data file %q not found", models.ErrDataUnavailable, path)
		}
		return nil, fmt.Errorf("failed to open sticker data: %w", err)
	}
	defer f.Close()
	return Read(f)
}
