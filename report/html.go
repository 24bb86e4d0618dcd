package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/decibelcooper/jetsweep"
)

// WriteHTML writes an interactive page with one chart per entry of Plots,
// showing mean and spread against radius for every algorithm.
func WriteHTML(w io.Writer, res *Results) error {
	page := components.NewPage()
	page.PageTitle = "Jet Radius Sweep"

	for _, spec := range Plots {
		scatter := charts.NewScatter()
		scatter.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{ChartID: spec.Stem, Width: "900px", Height: "500px"}),
			charts.WithTitleOpts(opts.Title{Title: spec.RadTitle, Subtitle: fmt.Sprintf("radii %s to %s", res.Labels[0], res.Labels[len(res.Labels)-1])}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
			charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Radius", NameLocation: "middle", NameGap: 25}),
			charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: spec.YLabel, NameLocation: "middle", NameGap: 40}),
		)

		for i, alg := range jetsweep.Algorithms {
			pts, err := Curve(res.Hist(alg, spec.Obs), res.Radii)
			if err != nil {
				return fmt.Errorf("could not summarize %s: %w", jetsweep.HistName(alg, spec.Obs), err)
			}
			data := make([]opts.ScatterData, 0, len(pts))
			for _, pt := range pts {
				data = append(data, opts.ScatterData{Value: []interface{}{pt.R + AlgOffset*float64(i), pt.Mean, pt.Spread}})
			}
			scatter.AddSeries(alg.Title(), data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
		}
		page.AddCharts(scatter)
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("could not render page: %w", err)
	}
	return nil
}
