package plotter

import (
	"fmt"
	"io"

	"biorhythms-server/biorhythm"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// EChartsPage builds an interactive HTML line chart of the series, one
// line per cycle.
func EChartsPage(f Frame, width, height int) *charts.Line {
	labels := make([]string, len(f.Series))
	for i, p := range f.Series {
		labels[i] = p.Date.Label()
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Biorhythms",
			Width:     fmt.Sprintf("%dpx", width),
			Height:    fmt.Sprintf("%dpx", height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Biorhythms",
			Subtitle: "Centre: " + f.Center.Label(),
		}),
		charts.WithYAxisOpts(opts.YAxis{Min: -1, Max: 1}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	line.SetXAxis(labels)
	for _, c := range biorhythm.Cycles() {
		data := make([]opts.LineData, len(f.Series))
		for i, p := range f.Series {
			data[i] = opts.LineData{Name: labels[i], Value: c.Pick(p)}
		}
		line.AddSeries(c.Name, data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: cssColor(c.Color)}),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		)
	}
	return line
}

// RenderHTML writes the echarts page for f to w.
func RenderHTML(w io.Writer, f Frame, width, height int) error {
	if err := EChartsPage(f, width, height).Render(w); err != nil {
		return fmt.Errorf("failed to render chart page: %w", err)
	}
	return nil
}

func cssColor(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
