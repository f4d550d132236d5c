package handlers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"

	"behavior-go/internal/models"
	"behavior-go/internal/tracker"
	"behavior-go/internal/utils"
	"behavior-go/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const trackerTitle = "Digital Sticker Chart Tracker"

// WeekArchive stores weekly rollovers. It is optional.
type WeekArchive interface {
	SaveWeek(ctx context.Context, log tracker.WeekLog, reinforcer tracker.Reinforcer) (*models.WeekRecord, error)
}

type TrackerHandler struct {
	log     *zap.Logger
	tracker *tracker.Tracker
	archive WeekArchive
}

func NewTrackerHandler(log *zap.Logger, t *tracker.Tracker, archive WeekArchive) *TrackerHandler {
	return &TrackerHandler{log: log, tracker: t, archive: archive}
}

func (h *TrackerHandler) ShowTracker(c *gin.Context) {
	h.renderTracker(c, http.StatusOK, nil)
}

// SaveWeek replaces the grid with the submitted checkboxes. Unchecked
// boxes are not sent by browsers and count as no sticker.
func (h *TrackerHandler) SaveWeek(c *gin.Context) {
	grid := h.tracker.Grid()
	checked := make(map[tracker.Cell]bool)
	for row, behavior := range grid.Behaviors() {
		for day, label := range tracker.Days {
			checked[tracker.Cell{Behavior: behavior, Day: label}] = utils.IsChecked(c.PostForm(cellName(row, day)))
		}
	}
	h.tracker.RecordWeek(checked)

	outcome := h.tracker.Evaluate()
	h.log.Info("Weekly progress updated", zap.Int("total", outcome.Total), zap.String("status", string(outcome.Status)))
	h.renderTracker(c, http.StatusOK, &views.Message{Kind: views.AlertSuccess, Text: "Weekly progress updated!"})
}

func (h *TrackerHandler) AdvancePhase(c *gin.Context) {
	phase := h.tracker.AdvancePhase()
	h.log.Info("Phase advanced", zap.String("phase", string(phase)))
	h.renderTracker(c, http.StatusOK, &views.Message{Kind: views.AlertInfo, Text: fmt.Sprintf("Advanced to %s.", phase)})
}

func (h *TrackerHandler) SetSchedule(c *gin.Context) {
	schedule, err := tracker.ParseSchedule(c.PostForm("schedule"))
	if err != nil {
		h.log.Warn("Schedule rejected", zap.Error(err))
		h.renderTracker(c, http.StatusUnprocessableEntity, &views.Message{Kind: views.AlertWarning, Text: err.Error()})
		return
	}

	h.tracker.SetSchedule(schedule)
	state := h.tracker.State()
	h.log.Info("Schedule set", zap.String("schedule", string(state.Schedule)), zap.Int("threshold", state.Threshold))
	h.renderTracker(c, http.StatusOK, nil)
}

// Rollover saves the weekly log and starts a new week.
func (h *TrackerHandler) Rollover(c *gin.Context) {
	weekLog, err := h.tracker.Rollover()
	if err != nil {
		h.log.Error("Rollover failed", zap.Error(err))
		h.renderTracker(c, http.StatusInternalServerError, &views.Message{Kind: views.AlertError, Text: "Could not save the weekly log: " + err.Error()})
		return
	}
	h.log.Info("Week rolled over",
		zap.Int("week", weekLog.Week),
		zap.String("log", weekLog.Path),
		zap.Int("total", weekLog.Total),
		zap.String("status", string(weekLog.Outcome.Status)),
	)

	if h.archive != nil {
		if _, err := h.archive.SaveWeek(c.Request.Context(), weekLog, h.tracker.Reinforcer()); err != nil {
			h.log.Error("Failed to archive week", zap.Int("week", weekLog.Week), zap.Error(err))
		}
	}

	h.renderTracker(c, http.StatusOK, &views.Message{
		Kind: views.AlertSuccess,
		Text: fmt.Sprintf("Sticker chart reset for the new week! Log saved as %s", tracker.LogFilename(weekLog.Week)),
	})
}

// DownloadLog serves a saved weekly log.
func (h *TrackerHandler) DownloadLog(c *gin.Context) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < 1 {
		c.String(http.StatusBadRequest, "Invalid week")
		return
	}

	path := h.tracker.LogPath(week)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.String(http.StatusNotFound, "Log file '%s' not found for download. Please ensure it was saved.", tracker.LogFilename(week))
			return
		}
		h.log.Error("Could not read weekly log", zap.String("path", path), zap.Error(err))
		c.String(http.StatusInternalServerError, "Could not read weekly log")
		return
	}
	c.FileAttachment(path, tracker.LogFilename(week))
}

func (h *TrackerHandler) renderTracker(c *gin.Context, status int, message *views.Message) {
	state := h.tracker.State()
	grid := h.tracker.Grid()
	outcome := h.tracker.Evaluate()

	behaviors := h.tracker.Behaviors()
	items := make([]views.BehaviorItem, 0, len(behaviors))
	for _, b := range behaviors {
		items = append(items, views.BehaviorItem{Target: b.Target, Modified: b.Modified})
	}

	rows := make([]views.GridRow, 0, len(grid.Behaviors()))
	for row, behavior := range grid.Behaviors() {
		cells := make([]views.GridCell, 0, len(tracker.Days))
		for day, label := range tracker.Days {
			cells = append(cells, views.GridCell{Day: label, Name: cellName(row, day), Checked: grid.Get(row, day)})
		}
		rows = append(rows, views.GridRow{Behavior: behavior, Cells: cells})
	}

	schedules := make([]views.ScheduleOption, 0, len(tracker.Schedules))
	for _, s := range tracker.Schedules {
		schedules = append(schedules, views.ScheduleOption{Name: string(s), Selected: s == state.Schedule})
	}

	kind := views.AlertSuccess
	switch outcome.Status {
	case tracker.StatusInProgress:
		kind = views.AlertInfo
	case tracker.StatusTriggered:
		kind = views.AlertError
	}

	data := views.TrackerData{
		CSRFToken:     c.GetString(csrfTokenContextKey),
		Phase:         string(state.Phase),
		Week:          state.Week,
		Behaviors:     items,
		Days:          tracker.Days[:],
		Rows:          rows,
		Schedules:     schedules,
		GoalText:      goalText(state),
		BehaviorChart: chartOptions(generateBehaviorChart(grid)),
		DayChart:      chartOptions(generateDayChart(grid)),
		Total:         outcome.Total,
		Outcome:       views.Message{Kind: kind, Text: outcome.Message()},
		Consequence:   outcome.Consequence,
		Message:       message,
	}
	if state.Week > 0 {
		data.LastLog = state.Week
		data.LastLogName = tracker.LogFilename(state.Week)
	}
	render(c, status, trackerTitle, views.Tracker(data))
}

// cellName is the form field of one grid checkbox.
func cellName(row, day int) string {
	return fmt.Sprintf("cell_%d_%d", row, day)
}

func goalText(state tracker.ScheduleState) string {
	switch state.Schedule {
	case tracker.Continuous:
		return fmt.Sprintf("Current Schedule: %s (Weekly Goal: %d sticker)", state.Schedule, state.Threshold)
	case tracker.VariableRatio:
		return fmt.Sprintf("Current Schedule: %s (Weekly Goal: Randomly Generated: %d stickers)", state.Schedule, state.Threshold)
	}
	return fmt.Sprintf("Current Schedule: %s (Weekly Goal: %d stickers)", state.Schedule, state.Threshold)
}
