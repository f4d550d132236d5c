package handlers

import (
	"fmt"
	"net/http"

	"behavior-go/internal/export"
	"behavior-go/internal/metrics"
	"behavior-go/internal/survey"
	"behavior-go/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ResultsHandler struct {
	log *zap.Logger
}

func NewResultsHandler(log *zap.Logger) *ResultsHandler {
	return &ResultsHandler{log: log}
}

// ShowResults renders the score table, the stimulus charts and the export
// link. The summary is recomputed from the stored responses each time.
func (h *ResultsHandler) ShowResults(c *gin.Context) {
	s := SessionFrom(c)
	summary, err := s.Summary()
	if err != nil {
		fail(c, h.log, "Summary unavailable", err)
		return
	}

	pc := pointChartFor(summary.Branch)
	top := "Question text not found"
	if len(summary.Stimuli) > 0 {
		top = summary.Stimuli[0].Text
	}

	stimuli := make([]views.StimulusItem, 0, len(summary.Stimuli))
	for _, st := range summary.Stimuli {
		stimuli = append(stimuli, views.StimulusItem{QID: st.QID, Text: st.Text, Rating: st.Rating})
	}

	render(c, http.StatusOK, "Summary", views.Summary(views.SummaryData{
		Participant:  summary.Participant.Name,
		Rows:         summaryRows(summary.Score),
		Kind:         summary.Kind,
		Stimuli:      stimuli,
		StimuliChart: chartOptions(generateStimuliChart(summary.Kind, summary.Stimuli)),
		PointLabel:   pc.Label,
		PointChart:   chartOptions(generatePointChart(pc, top)),
		Caption:      pc.Caption,
		ExportName:   summary.ExportFilename(),
	}))
}

// Export downloads the sticker CSV for the completed session.
func (h *ResultsHandler) Export(c *gin.Context) {
	s := SessionFrom(c)
	summary, err := s.Summary()
	if err != nil {
		fail(c, h.log, "Export unavailable", err)
		return
	}

	data, err := export.Bytes(export.Rows(summary.Stimuli))
	if err != nil {
		fail(c, h.log, "Export failed", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, summary.ExportFilename()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// summaryRows lays out the SPSRQ statistics rounded to two places.
func summaryRows(score survey.ScoreSummary) []views.SummaryRow {
	f := func(v float64) string { return fmt.Sprintf("%.2f", metrics.Round(v, 2)) }
	return []views.SummaryRow{
		{Label: "Total Sensitivity to Reward", Value: fmt.Sprint(score.RewardTotal)},
		{Label: "Mean Reward Score", Value: f(score.RewardMean)},
		{Label: "Reward Score SD", Value: f(score.RewardSD)},
		{Label: "Total Sensitivity to Punishment", Value: fmt.Sprint(score.PunishmentTotal)},
		{Label: "Mean Punishment Score", Value: f(score.PunishmentMean)},
		{Label: "Punishment Score SD", Value: f(score.PunishmentSD)},
		{Label: "Dominant Sensitivity", Value: string(score.Dominant), Highlight: true},
	}
}
