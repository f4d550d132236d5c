package handlers

import (
	"encoding/json"
	"fmt"

	"behavior-go/internal/models"
	"behavior-go/internal/survey"
	"behavior-go/internal/tracker"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// chartOptions validates a chart and returns its echarts option JSON.
func chartOptions(chart interface {
	Validate()
	JSON() map[string]interface{}
}) string {
	chart.Validate()
	data, err := json.Marshal(chart.JSON())
	if err != nil {
		return "{}"
	}
	return string(data)
}

// generateStimuliChart ranks the top stimuli as horizontal bars, highest
// rating at the top.
func generateStimuliChart(kind string, stimuli []survey.Stimulus) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Top %d %ss by Subjective Intensity", len(stimuli), kind),
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Rating"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	// Categories run bottom-up once reversed, so add them lowest first.
	labels := make([]string, 0, len(stimuli))
	items := make([]opts.BarData, 0, len(stimuli))
	for i := len(stimuli) - 1; i >= 0; i-- {
		s := stimuli[i]
		labels = append(labels, s.QID)
		items = append(items, opts.BarData{Name: s.Text, Value: s.Rating})
	}

	bar.SetXAxis(labels).AddSeries(kind, items)
	bar.XYReversal()
	return bar
}

// pointChart describes the illustrative effort curve for each follow-up
// set.
type pointChart struct {
	Label   string
	Series  string
	Color   string
	XName   string
	YName   string
	Caption string
	Title   string
}

func pointChartFor(set models.QuestionSet) pointChart {
	if set == models.SetRSS {
		return pointChart{
			Label:   "Bliss Point",
			Series:  "Effort vs. Perceived Reward Utility",
			Color:   "green",
			XName:   "Required Behavioral Effort (RBE)",
			YName:   "Perceived Reward Utility (PRU)",
			Caption: "RDH: When access to a normally high-frequency behavior is restricted below baseline, it becomes a reinforcer.",
			Title:   "Top Reward",
		}
	}
	return pointChart{
		Label:   "Distress Point",
		Series:  "Arousal vs. Perceived Punisher Aversiveness",
		Color:   "red",
		XName:   "Arousal",
		YName:   "Perceived Punisher Aversiveness (PPA)",
		Caption: "PAH: When exposure to a low-frequency behavior is imposed above baseline, it becomes a punisher.",
		Title:   "Top Punisher",
	}
}

// Bliss and distress points sit on y = 1.5x.
const (
	curveSlope = 1.5
	pointX     = 2.5
	pointY     = 7.5
)

// generatePointChart draws y = 1.5x over x = 1..5 with the bliss or
// distress point marked at (2.5, 7.5). The title names the top stimulus.
func generatePointChart(pc pointChart, top string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s: %s", pc.Title, top)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: pc.XName}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: pc.YName}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	items := make([]opts.LineData, 0, 5)
	for x := 1; x <= 5; x++ {
		items = append(items, opts.LineData{Value: []interface{}{x, float64(x) * curveSlope}})
	}
	line.AddSeries(pc.Series, items).SetSeriesOptions(
		charts.WithLineStyleOpts(opts.LineStyle{Width: 2, Color: pc.Color}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: pc.Color}),
	)

	marker := charts.NewScatter()
	marker.AddSeries(pc.Label, []opts.ScatterData{{Value: []interface{}{pointX, pointY}, SymbolSize: 16}})
	line.Overlap(marker)
	return line
}

// generateBehaviorChart totals stickers per behavior row.
func generateBehaviorChart(grid *tracker.StickerGrid) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Stickers Earned per Behavior"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Stickers"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	totals := grid.BehaviorTotals()
	items := make([]opts.BarData, 0, len(totals))
	for _, t := range totals {
		items = append(items, opts.BarData{Value: t})
	}
	bar.SetXAxis(grid.Behaviors()).AddSeries("Stickers", items)
	return bar
}

// generateDayChart totals stickers per weekday.
func generateDayChart(grid *tracker.StickerGrid) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Stickers Earned per Day"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Stickers"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	totals := grid.DayTotals()
	items := make([]opts.LineData, 0, len(totals))
	for _, t := range totals {
		items = append(items, opts.LineData{Value: t})
	}
	line.SetXAxis(tracker.Days[:]).AddSeries("Stickers", items).
		SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}
