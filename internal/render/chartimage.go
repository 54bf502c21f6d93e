// Package render draws downloadable PNG charts from aggregated counts.
package render

import (
	"io"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spec-kit/assist-dashboard/internal/domain"
	"github.com/spec-kit/assist-dashboard/internal/service"
	apperrors "github.com/spec-kit/assist-dashboard/pkg/util"
)

// StatusDonutPNG renders the status distribution as a donut chart.
func StatusDonutPNG(counts []service.CountEntry, w io.Writer) error {
	if len(counts) == 0 {
		return apperrors.NewValidationError("no status data to chart", nil)
	}
	values := make([]chart.Value, 0, len(counts))
	for _, entry := range counts {
		values = append(values, chart.Value{
			Value: float64(entry.Count),
			Label: entry.Label,
			Style: chart.Style{FillColor: hexColor(domain.StatusColor(entry.Label))},
		})
	}
	donut := chart.DonutChart{
		Title:  "Distribuição por Status",
		Width:  640,
		Height: 480,
		Values: values,
	}
	if err := donut.Render(chart.PNG, w); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// TimelinePNG renders the per-day, per-status counts as a multi-series
// line chart. Needs at least two distinct days to draw a line.
func TimelinePNG(entries []service.TemporalEntry, w io.Writer) error {
	days, statuses := timelineAxes(entries)
	if len(days) < 2 {
		return apperrors.NewValidationError("not enough dated records to chart a timeline", nil)
	}

	counts := make(map[string]map[time.Time]int, len(statuses))
	for _, entry := range entries {
		if counts[entry.Status] == nil {
			counts[entry.Status] = make(map[time.Time]int)
		}
		counts[entry.Status][entry.Date] = entry.Count
	}

	series := make([]chart.Series, 0, len(statuses))
	for _, status := range statuses {
		yValues := make([]float64, len(days))
		for i, day := range days {
			yValues[i] = float64(counts[status][day])
		}
		series = append(series, chart.TimeSeries{
			Name:    status,
			XValues: days,
			YValues: yValues,
			Style:   chart.Style{StrokeColor: hexColor(domain.StatusColor(status)), StrokeWidth: 2},
		})
	}

	timeline := chart.Chart{
		Title:  "Evolução das Assistências por Dia",
		Width:  900,
		Height: 420,
		XAxis:  chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		Series: series,
	}
	timeline.Elements = []chart.Renderable{chart.Legend(&timeline)}
	if err := timeline.Render(chart.PNG, w); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func timelineAxes(entries []service.TemporalEntry) ([]time.Time, []string) {
	daySet := make(map[time.Time]struct{})
	statusSet := make(map[string]struct{})
	for _, entry := range entries {
		daySet[entry.Date] = struct{}{}
		statusSet[entry.Status] = struct{}{}
	}
	days := make([]time.Time, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	statuses := make([]string, 0, len(statusSet))
	for status := range statusSet {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	return days, statuses
}

func hexColor(hex string) drawing.Color {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	return drawing.ColorFromHex(hex)
}
