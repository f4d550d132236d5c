package tracker

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
)

// WeekLogRow is one behavior line of a weekly log CSV. Weekday cells are
// written as true or false.
type WeekLogRow struct {
	Behavior  string `csv:"Behavior"`
	Mon       bool   `csv:"Mon"`
	Tue       bool   `csv:"Tue"`
	Wed       bool   `csv:"Wed"`
	Thu       bool   `csv:"Thu"`
	Fri       bool   `csv:"Fri"`
	Sat       bool   `csv:"Sat"`
	Sun       bool   `csv:"Sun"`
	Phase     string `csv:"Phase"`
	Schedule  string `csv:"Schedule"`
	Threshold int    `csv:"Weekly_Threshold_Goal"`
	Total     int    `csv:"Total_Stickers_Earned"`
	Timestamp string `csv:"Log_Timestamp"`
}

// WeekLog describes a saved weekly snapshot.
type WeekLog struct {
	Week      int
	Path      string
	Phase     Phase
	Schedule  Schedule
	Threshold int
	Total     int
	Outcome   Outcome
	LoggedAt  time.Time
}

// LogFilename is the name of the log written when week rolls over.
func LogFilename(week int) string {
	return fmt.Sprintf("weekly_behavior_log_week%d.csv", week)
}

func logRows(grid *StickerGrid, state ScheduleState, total int, at time.Time) []WeekLogRow {
	stamp := at.Format(time.RFC3339)
	rows := make([]WeekLogRow, 0, len(grid.behaviors))
	for row, behavior := range grid.behaviors {
		c := grid.cells[row]
		rows = append(rows, WeekLogRow{
			Behavior:  behavior,
			Mon:       c[0],
			Tue:       c[1],
			Wed:       c[2],
			Thu:       c[3],
			Fri:       c[4],
			Sat:       c[5],
			Sun:       c[6],
			Phase:     string(state.Phase),
			Schedule:  string(state.Schedule),
			Threshold: state.Threshold,
			Total:     total,
			Timestamp: stamp,
		})
	}
	return rows
}

func writeLog(path string, rows []WeekLogRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create log directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create weekly log: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("failed to write weekly log: %w", err)
	}
	return f.Close()
}

// ReadLog parses a weekly log CSV.
func ReadLog(path string) ([]WeekLogRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []WeekLogRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse weekly log: %w", err)
	}
	return rows, nil
}
