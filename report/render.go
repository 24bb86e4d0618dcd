package report

import (
	"fmt"
	"os"
	"path/filepath"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/jetsweep"
)

// AlgOffset is the horizontal shift between the radius curves of
// successive algorithms. It only moves the drawn markers.
const AlgOffset = 0.01

// Plot describes the pair of figures drawn for one observable.
type Plot struct {
	Obs  jetsweep.Observable
	Stem string

	Title  string
	XLabel string

	RadTitle string
	YLabel   string
}

// Plots is the set of figures written by RenderAll.
var Plots = []Plot{
	{
		Obs: jetsweep.NJets, Stem: "njet",
		Title: "Number of Jets", XLabel: "Jets per Event",
		RadTitle: "Average Number of Jets", YLabel: "Number of Jets",
	},
	{
		Obs: jetsweep.NPartLead, Stem: "npartlead",
		Title: "Number of Particles in Leading Jet", XLabel: "Particles per Leading Jet",
		RadTitle: "Average Number of Particles in Leading Jet", YLabel: "Particle Count",
	},
	{
		Obs: jetsweep.DeltaE, Stem: "deltaE",
		Title: "E(parton) - E(jet)", XLabel: "Delta E",
		RadTitle: "Average Delta E (parton - jet)", YLabel: "Delta E",
	},
	{
		Obs: jetsweep.DeltaR, Stem: "deltaR",
		Title: "Delta R (jet - parton)", XLabel: "Delta R",
		RadTitle: "Average Delta R (jet - parton)", YLabel: "Delta R",
	},
	{
		Obs: jetsweep.ClusterTime, Stem: "cluster",
		Title: "Clustering Time", XLabel: "Clustering Time (ms)",
		RadTitle: "Clustering Time by Radius", YLabel: "Clustering Time (ms)",
	},
	{
		Obs: jetsweep.AreaLead, Stem: "area",
		Title: "Leading Jet Area", XLabel: "Area",
		RadTitle: "Leading Jet Area", YLabel: "Area",
	},
}

// Options control RenderAll.
type Options struct {
	OutDir string
	// Ref is the index of the reference radius bin.
	Ref int
	// Ext is the image format, as understood by plot.Save.
	Ext string
}

// RenderBase overlays the distributions of every algorithm at the radius
// bin ref.
func RenderBase(res *Results, spec Plot, ref int) (*plot.Plot, error) {
	if ref < 0 || ref >= len(res.Labels) {
		return nil, fmt.Errorf("report: reference radius bin %d out of range [0, %d)", ref, len(res.Labels))
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (R = %s)", spec.Title, res.Labels[ref])
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = "Count"
	p.X.Tick.Marker = jetsweep.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = jetsweep.PreciseTicks{NSuggestedTicks: 5}
	p.Legend.Top = true

	for i, alg := range jetsweep.Algorithms {
		hist, err := Project(res.Hist(alg, spec.Obs), ref)
		if err != nil {
			return nil, fmt.Errorf("could not project %s: %w", jetsweep.HistName(alg, spec.Obs), err)
		}

		h := hplot.NewH1D(hist)
		h.LineStyle.Color = jetsweep.LineColor(i)
		h.LineStyle.Width = vg.Points(1.5)

		p.Add(h)
		p.Legend.Add(alg.Title(), h)
	}
	return p, nil
}

// RenderRadius draws, for every algorithm, the mean of the observable
// against radius with the spread as error bars. Each algorithm is shifted
// by AlgOffset times its index along x.
func RenderRadius(res *Results, spec Plot) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = spec.RadTitle
	p.X.Label.Text = "Radius"
	p.Y.Label.Text = spec.YLabel
	p.X.Tick.Marker = jetsweep.RadiusTicks{Radii: res.Radii}
	p.Y.Tick.Marker = jetsweep.PreciseTicks{NSuggestedTicks: 5}
	p.Legend.Top = true
	p.Legend.Left = true

	for i, alg := range jetsweep.Algorithms {
		pts, err := Curve(res.Hist(alg, spec.Obs), res.Radii)
		if err != nil {
			return nil, fmt.Errorf("could not summarize %s: %w", jetsweep.HistName(alg, spec.Obs), err)
		}
		if len(pts) == 0 {
			continue
		}

		points := make(plotter.XYs, len(pts))
		yErrors := make(plotter.YErrors, len(pts))
		for k, pt := range pts {
			points[k].X = pt.R + AlgOffset*float64(i)
			points[k].Y = pt.Mean
			yErrors[k].Low = pt.Spread
			yErrors[k].High = pt.Spread
		}
		errPoints := plotutil.ErrorPoints{XYs: points, YErrors: yErrors}

		scatter, err := plotter.NewScatter(points)
		if err != nil {
			return nil, err
		}
		yerr, err := plotter.NewYErrorBars(errPoints)
		if err != nil {
			return nil, err
		}

		pointColor := jetsweep.LineColor(i)
		scatter.GlyphStyle.Color = pointColor
		scatter.GlyphStyle.Shape = jetsweep.Glyph(i)
		yerr.LineStyle.Color = pointColor

		p.Add(scatter, yerr)
		p.Legend.Add(alg.Title(), scatter)
	}
	return p, nil
}

// RenderAll writes <stem>base.<ext> and <stem>rad.<ext> for every entry of
// Plots into opts.OutDir and returns the written paths.
func RenderAll(res *Results, opts Options) ([]string, error) {
	if opts.Ext == "" {
		opts.Ext = "png"
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create output directory: %w", err)
	}

	var written []string
	save := func(p *plot.Plot, name string) error {
		fname := filepath.Join(opts.OutDir, name+"."+opts.Ext)
		if err := p.Save(6*vg.Inch, 4*vg.Inch, fname); err != nil {
			return fmt.Errorf("could not save %s: %w", fname, err)
		}
		written = append(written, fname)
		return nil
	}

	for _, spec := range Plots {
		base, err := RenderBase(res, spec, opts.Ref)
		if err != nil {
			return written, err
		}
		if err := save(base, spec.Stem+"base"); err != nil {
			return written, err
		}

		rad, err := RenderRadius(res, spec)
		if err != nil {
			return written, err
		}
		if err := save(rad, spec.Stem+"rad"); err != nil {
			return written, err
		}
	}
	return written, nil
}
