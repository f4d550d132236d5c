package tracker

import (
	"fmt"
	"slices"
)

// Days are the fixed weekday columns of the sticker grid.
var Days = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Cell addresses one behavior on one day.
type Cell struct {
	Behavior string
	Day      string
}

// StickerGrid is a behavior by weekday matrix of earned stickers. Its
// dimensions never change after construction.
type StickerGrid struct {
	behaviors []string
	cells     [][len(Days)]bool
}

// NewStickerGrid returns an all-false grid with one row per behavior.
func NewStickerGrid(behaviors []string) *StickerGrid {
	return &StickerGrid{
		behaviors: slices.Clone(behaviors),
		cells:     make([][len(Days)]bool, len(behaviors)),
	}
}

// Behaviors returns the row labels.
func (g *StickerGrid) Behaviors() []string {
	return slices.Clone(g.behaviors)
}

// Get reports whether the sticker at row and day index was earned.
func (g *StickerGrid) Get(row, day int) bool {
	return g.cells[row][day]
}

// Set marks a single cell.
func (g *StickerGrid) Set(behavior, day string, earned bool) error {
	row := slices.Index(g.behaviors, behavior)
	if row < 0 {
		return fmt.Errorf("unknown behavior %q", behavior)
	}
	col := slices.Index(Days[:], day)
	if col < 0 {
		return fmt.Errorf("unknown day %q", day)
	}
	g.cells[row][col] = earned
	return nil
}

// Overwrite replaces every cell with its value in checked. Cells absent
// from checked become false, matching unchecked form checkboxes. Entries
// outside the grid are ignored.
func (g *StickerGrid) Overwrite(checked map[Cell]bool) {
	for row, behavior := range g.behaviors {
		for col, day := range Days {
			g.cells[row][col] = checked[Cell{Behavior: behavior, Day: day}]
		}
	}
}

// Reset clears every cell.
func (g *StickerGrid) Reset() {
	for row := range g.cells {
		g.cells[row] = [len(Days)]bool{}
	}
}

// Total is the number of stickers earned this week.
func (g *StickerGrid) Total() int {
	total := 0
	for _, n := range g.BehaviorTotals() {
		total += n
	}
	return total
}

// BehaviorTotals returns the stickers earned per behavior, in row order.
func (g *StickerGrid) BehaviorTotals() []int {
	totals := make([]int, len(g.behaviors))
	for row := range g.cells {
		for _, earned := range g.cells[row] {
			if earned {
				totals[row]++
			}
		}
	}
	return totals
}

// DayTotals returns the stickers earned per weekday.
func (g *StickerGrid) DayTotals() [len(Days)]int {
	var totals [len(Days)]int
	for row := range g.cells {
		for col, earned := range g.cells[row] {
			if earned {
				totals[col]++
			}
		}
	}
	return totals
}

// Clone returns an independent copy.
func (g *StickerGrid) Clone() *StickerGrid {
	return &StickerGrid{
		behaviors: slices.Clone(g.behaviors),
		cells:     slices.Clone(g.cells),
	}
}
