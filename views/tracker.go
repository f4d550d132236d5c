package views

import "github.com/a-h/templ"

// BehaviorItem is one target to modified behavior pair.
type BehaviorItem struct {
	Target   string
	Modified string
}

// GridCell is one checkbox of the sticker grid.
type GridCell struct {
	Day     string
	Name    string
	Checked bool
}

// GridRow is one behavior row of the sticker grid.
type GridRow struct {
	Behavior string
	Cells    []GridCell
}

// ScheduleOption is one entry of the schedule selector.
type ScheduleOption struct {
	Name     string
	Selected bool
}

// TrackerData fills the tracker screen.
type TrackerData struct {
	CSRFToken     string
	Phase         string
	Week          int
	Behaviors     []BehaviorItem
	Days          []string
	Rows          []GridRow
	Schedules     []ScheduleOption
	GoalText      string
	BehaviorChart string
	DayChart      string
	Total         int
	Outcome       Message
	Consequence   string
	LastLog       int
	LastLogName   string
	Message       *Message
}

// Tracker renders the weekly sticker chart.
func Tracker(data TrackerData) templ.Component {
	return htmlTemplate("tracker", data)
}
