package handlers

import (
	"encoding/json"
	"strings"
	"testing"

	"behavior-go/internal/models"
	"behavior-go/internal/survey"
	"behavior-go/internal/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStimuliChartListsHighestLast(t *testing.T) {
	stimuli := []survey.Stimulus{
		{QID: "ASQ_4", Text: "Loud noise", Rating: 7},
		{QID: "ASQ_1", Text: "Chores", Rating: 5},
	}
	raw := chartOptions(generateStimuliChart("Punisher", stimuli))

	var options map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &options))
	assert.Contains(t, raw, "Top 2 Punishers by Subjective Intensity")

	// Reversed bars draw the last category at the top.
	i1, i4 := strings.Index(raw, "ASQ_1"), strings.Index(raw, "ASQ_4")
	require.True(t, i1 >= 0 && i4 >= 0)
	assert.Less(t, i1, i4)
}

func TestPointChart(t *testing.T) {
	rss := pointChartFor(models.SetRSS)
	assert.Equal(t, "Bliss Point", rss.Label)
	assert.Contains(t, rss.Caption, "RDH")

	asq := pointChartFor(models.SetASQ)
	assert.Equal(t, "Distress Point", asq.Label)
	assert.Contains(t, asq.Caption, "PAH")

	raw := chartOptions(generatePointChart(rss, "Extra screen time"))
	assert.Contains(t, raw, "Top Reward: Extra screen time")
	assert.Contains(t, raw, "Bliss Point")
	assert.Contains(t, raw, "7.5")
}

func TestTrackerCharts(t *testing.T) {
	grid := tracker.NewStickerGrid([]string{"Raise hand", "Start homework"})
	require.NoError(t, grid.Set("Raise hand", "Mon", true))
	require.NoError(t, grid.Set("Raise hand", "Tue", true))

	behaviors := chartOptions(generateBehaviorChart(grid))
	assert.Contains(t, behaviors, "Start homework")
	assert.Contains(t, behaviors, "Stickers Earned per Behavior")

	days := chartOptions(generateDayChart(grid))
	assert.Contains(t, days, "Sun")
}

func TestGoalText(t *testing.T) {
	assert.Equal(t, "Current Schedule: Continuous (Weekly Goal: 1 sticker)",
		goalText(tracker.ScheduleState{Schedule: tracker.Continuous, Threshold: 1}))
	assert.Equal(t, "Current Schedule: Fixed Ratio (Weekly Goal: 15 stickers)",
		goalText(tracker.ScheduleState{Schedule: tracker.FixedRatio, Threshold: 15}))
	assert.Equal(t, "Current Schedule: Variable Ratio (Weekly Goal: Randomly Generated: 22 stickers)",
		goalText(tracker.ScheduleState{Schedule: tracker.VariableRatio, Threshold: 22}))
}

func TestSummaryRowsRoundToTwoPlaces(t *testing.T) {
	rows := summaryRows(survey.ScoreSummary{
		RewardTotal: 40, RewardMean: 5, RewardSD: 1.414213,
		PunishmentTotal: 30, PunishmentMean: 3.75, PunishmentSD: 0.4330127,
		Dominant: survey.DominantReward,
	})
	require.Len(t, rows, 7)
	assert.Equal(t, "40", rows[0].Value)
	assert.Equal(t, "5.00", rows[1].Value)
	assert.Equal(t, "1.41", rows[2].Value)
	assert.Equal(t, "0.43", rows[5].Value)
	assert.Equal(t, "Reward", rows[6].Value)
	assert.True(t, rows[6].Highlight)
}
