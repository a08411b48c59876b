package report

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/couchcryptid/quake-eda/internal/analysis"
	"github.com/couchcryptid/quake-eda/internal/domain"
	"github.com/couchcryptid/quake-eda/internal/pipeline"
)

// topLocations is how many locations the location chart shows.
const topLocations = 20

// ChartsWriter renders the exploratory and diagnostic charts as one HTML page.
type ChartsWriter struct {
	path string
}

// NewChartsWriter creates a writer for path.
func NewChartsWriter(path string) *ChartsWriter {
	return &ChartsWriter{path: path}
}

// Write renders the charts for r and replaces the file at the writer's path.
func (w *ChartsWriter) Write(ctx context.Context, r *pipeline.Report) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	for _, c := range Charts(r) {
		page.AddCharts(c)
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return writeFile(ctx, w.path, buf.Bytes())
}

// Charts builds every chart for r. Charts for skipped tests are omitted.
func Charts(r *pipeline.Report) []components.Charter {
	s := r.Summary
	out := []components.Charter{
		histogramChart("Magnitude distribution", "Magnitude", s.MagnitudeHistogram),
		histogramChart("Depth distribution", "Depth (km)", s.DepthHistogram),
		countChart("Quakes by magnitude category", s.ByMagnitude),
		countChart("Quakes by depth category", s.ByDepth),
		countChart(fmt.Sprintf("Top %d locations", topLocations), head(s.ByLocation, topLocations)),
		countChart("Ring of Fire", s.RingOfFire),
		timeOfDayChart(s.ByTimeOfDay),
		scatterChart("Magnitude vs depth", "Depth (km)", "Magnitude", magnitudeDepthSeries(r.Dataset)),
	}

	if a := r.ShallowDepth; a != nil {
		series := make(map[string][]opts.ScatterData)
		for _, g := range a.Groups {
			for _, p := range g.QQ {
				series[string(g.Category)] = append(series[string(g.Category)], point(p.Theoretical, p.Sample))
			}
		}
		out = append(out, scatterChart("Shallow depth Q-Q by magnitude", "Theoretical quantile", "Depth (km)", series))
	}

	if m := r.QuakeCounts; m != nil {
		var resid, qq, scale, cooks []opts.ScatterData
		for _, d := range m.Diagnostics {
			resid = append(resid, point(d.Fitted, d.Deviance))
			qq = append(qq, point(d.TheoreticalQuantile, d.Standardized))
			scale = append(scale, point(d.Fitted, d.ScaleLocation))
			cooks = append(cooks, point(d.Leverage, d.CooksDistance))
		}
		out = append(out,
			scatterChart("Residuals vs fitted", "Fitted count", "Deviance residual", map[string][]opts.ScatterData{"cells": resid}),
			scatterChart("Normal Q-Q of standardized residuals", "Theoretical quantile", "Standardized residual", map[string][]opts.ScatterData{"cells": qq}),
			scatterChart("Scale-location", "Fitted count", "sqrt(|standardized residual|)", map[string][]opts.ScatterData{"cells": scale}),
			scatterChart("Cook's distance vs leverage", "Leverage", "Cook's distance", map[string][]opts.ScatterData{"cells": cooks}),
		)
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

func globalOpts(title, xName, yName string, xType string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: "640px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: boolPtr(true)}),
		charts.WithLegendOpts(opts.Legend{Show: boolPtr(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: xType}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
		charts.WithGridOpts(opts.Grid{ContainLabel: boolPtr(true), Left: "3%", Right: "4%", Bottom: "15%"}),
	}
}

func histogramChart(title, xName string, bins []analysis.Bin) *charts.Bar {
	labels := make([]string, len(bins))
	data := make([]opts.BarData, len(bins))
	for i, b := range bins {
		labels[i] = fmt.Sprintf("%g-%g", b.Lower, b.Upper)
		data[i] = opts.BarData{Value: b.Count}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(title, xName, "Quakes", "category")...)
	bar.SetXAxis(labels).AddSeries("quakes", data)
	return bar
}

func countChart(title string, counts []analysis.Count) *charts.Bar {
	labels := make([]string, len(counts))
	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		labels[i] = c.Name
		data[i] = opts.BarData{Value: c.Count}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(title, "", "Quakes", "category")...)
	bar.SetXAxis(labels).AddSeries("quakes", data)
	return bar
}

func timeOfDayChart(stats []analysis.TimeOfDayStats) *charts.Bar {
	labels := make([]string, len(stats))
	var mags, depths []opts.BarData
	for i, s := range stats {
		labels[i] = string(s.TimeOfDay)
		mags = append(mags, opts.BarData{Value: s.MagnitudeMean})
		depths = append(depths, opts.BarData{Value: s.DepthMean})
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts("Mean magnitude and depth by time of day", "", "", "category")...)
	bar.SetXAxis(labels).
		AddSeries("mean magnitude", mags).
		AddSeries("mean depth (km)", depths)
	return bar
}

func scatterChart(title, xName, yName string, series map[string][]opts.ScatterData) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(globalOpts(title, xName, yName, "value")...)
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sc.AddSeries(name, series[name])
	}
	return sc
}

func magnitudeDepthSeries(ds domain.Dataset) map[string][]opts.ScatterData {
	out := make(map[string][]opts.ScatterData)
	for _, q := range ds {
		out[string(q.TimeOfDay)] = append(out[string(q.TimeOfDay)], point(q.Depth, q.Magnitude))
	}
	return out
}

func point(x, y float64) opts.ScatterData {
	return opts.ScatterData{Value: []float64{x, y}, SymbolSize: 6}
}

func head(counts []analysis.Count, n int) []analysis.Count {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}
