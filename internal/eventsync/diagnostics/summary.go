package diagnostics

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/skillcorner/event-sync/internal/eventsync/report"
)

// RenderMatchRateSummary writes an HTML bar chart of percent-matched per
// event type, for eyeballing which event types the synchronizer struggled
// with on a given match.
func RenderMatchRateSummary(w io.Writer, matchID string, rows []report.EventTypeAggregate) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Event sync match rate", Theme: "white"}),
		charts.WithTitleOpts(opts.Title{Title: "Match rate by event type", Subtitle: fmt.Sprintf("match=%s", matchID)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100, Name: "% matched"}),
	)

	labels := make([]string, len(rows))
	pct := make([]opts.BarData, len(rows))
	nb := make([]opts.BarData, len(rows))
	for i, r := range rows {
		labels[i] = r.EventTypeName
		pct[i] = opts.BarData{Value: r.PctIsMatched}
		nb[i] = opts.BarData{Value: r.NbEvents}
	}

	bar.SetXAxis(labels).
		AddSeries("% matched", pct).
		AddSeries("nb events", nb, charts.WithBarChartOpts(opts.BarChart{YAxisIndex: 1}))

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return fmt.Errorf("render match rate chart: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
