// Package report renders the three views as an HTML chart page.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/couchcryptid/flight-delay-insights/internal/domain"
)

const (
	chartWidth  = "1100px"
	chartHeight = "480px"
	pageTitle   = "Flight Delay Insights"
	singleGroup = "All flights"
	missing     = "-"
)

// Dashboard is the set of views shown on one page.
type Dashboard struct {
	Trend   domain.TrendView
	Cause   domain.CauseView
	Airport domain.AirportView
}

// Render writes the dashboard page to w.
func Render(w io.Writer, d Dashboard) error {
	page := components.NewPage()
	page.SetPageTitle(pageTitle)
	page.AddCharts(
		trendChart("Average Arrival Delay (minutes)", d.Trend, d.Trend.DelayMinutes),
		trendChart("Delay Rate", d.Trend, d.Trend.DelayRate),
		causeChart(d.Cause),
		medianChart(d.Airport),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

func subtitle(rows int, kpis string) string {
	if rows == 0 {
		return "No data for the current filters"
	}
	return kpis
}

// trendChart draws one line per group over the distinct months of the series.
func trendChart(title string, v domain.TrendView, points []domain.SeriesPoint) *charts.Line {
	sub := subtitle(v.Rows, fmt.Sprintf("Average delay %s min, delay rate %s",
		domain.FormatMinutes(v.KPIs.AvgDelayMinutes), domain.FormatRate(v.KPIs.AvgDelayRate)))

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: sub}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	labels, index := dateAxis(points)
	line.SetXAxis(labels)

	groups := v.Groups
	if len(groups) == 0 {
		groups = []string{""}
	}
	for _, g := range groups {
		data := make([]opts.LineData, len(labels))
		for i := range data {
			data[i] = opts.LineData{Value: missing}
		}
		for _, p := range points {
			if p.Group == g {
				data[index[p.Date.Format("2006-01")]] = opts.LineData{Value: p.Value}
			}
		}
		name := g
		if name == "" {
			name = singleGroup
		}
		line.AddSeries(name, data)
	}
	return line
}

func dateAxis(points []domain.SeriesPoint) ([]string, map[string]int) {
	seen := make(map[string]struct{})
	var labels []string
	for _, p := range points {
		l := p.Date.Format("2006-01")
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		labels = append(labels, l)
	}
	sort.Strings(labels)
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	return labels, index
}

func causeChart(v domain.CauseView) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: v.Title, Subtitle: subtitle(v.Rows, "")}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	var data []opts.PieData
	if v.Breakdown.Available {
		for _, s := range v.Breakdown.Shares {
			data = append(data, opts.PieData{Name: s.Cause, Value: s.Count})
		}
	}
	pie.AddSeries("Delay causes", data).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {d}%",
		}))
	return pie
}

func medianChart(v domain.AirportView) *charts.Bar {
	sub := subtitle(len(v.Rows), fmt.Sprintf("Average delay %s min, %s rows, %s delayed",
		domain.FormatMinutes(v.KPIs.AvgDelayMinutes),
		domain.FormatCount(v.KPIs.Rows),
		domain.FormatPercent(v.KPIs.DelayedPct)))

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Median Arrival Delay by Airport", Subtitle: sub}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Airport"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Minutes"}),
	)

	labels := make([]string, len(v.MedianDelay))
	data := make([]opts.BarData, len(v.MedianDelay))
	for i, b := range v.MedianDelay {
		labels[i] = b.Key
		data[i] = opts.BarData{Value: b.Value}
	}
	bar.SetXAxis(labels).AddSeries("Median delay", data)
	return bar
}
