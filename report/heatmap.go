package report

import (
	"fmt"
	"io"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/decibelcooper/jetsweep"
)

// RadiusGrid exposes a swept histogram as a plotter.GridXYZ with radius
// along x and the observable along y. Each radius column is normalized to
// unit sum so that columns with different statistics compare.
type RadiusGrid struct {
	h     *hbook.H2D
	radii []float64
	norm  []float64
}

func NewRadiusGrid(h *hbook.H2D, radii []float64) (*RadiusGrid, error) {
	grid := h.GridXYZ()
	nx, ny := grid.Dims()
	if nx != len(radii) {
		return nil, fmt.Errorf("report: %d radius bins for %d radii", nx, len(radii))
	}

	g := &RadiusGrid{h: h, radii: radii, norm: make([]float64, nx)}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			g.norm[i] += grid.Z(i, j)
		}
	}
	return g, nil
}

func (g *RadiusGrid) Dims() (int, int) {
	return g.h.GridXYZ().Dims()
}

func (g *RadiusGrid) Z(i, j int) float64 {
	if g.norm[i] <= 0 {
		return 0
	}
	return g.h.GridXYZ().Z(i, j) / g.norm[i]
}

func (g *RadiusGrid) X(i int) float64 {
	return g.radii[i]
}

func (g *RadiusGrid) Y(j int) float64 {
	return g.h.GridXYZ().Y(j)
}

// RenderHeatMap draws the per-radius distributions of h as a heat map
// with a colour bar, and writes it as PNG to w.
func RenderHeatMap(w io.Writer, h *hbook.H2D, radii []float64, title, ylabel string) error {
	grid, err := NewRadiusGrid(h, radii)
	if err != nil {
		return err
	}

	zmax := 0.0
	nx, ny := grid.Dims()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if z := grid.Z(i, j); z > zmax {
				zmax = z
			}
		}
	}
	if zmax == 0 {
		zmax = 1
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Radius"
	p.Y.Label.Text = ylabel
	p.X.Tick.Marker = jetsweep.RadiusTicks{Radii: radii}
	p.Y.Tick.Marker = jetsweep.PreciseTicks{NSuggestedTicks: 5}

	img := vgimg.New(670, 400)
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(0)
	colorMap.SetMax(zmax)
	pal := colorMap.Palette(1000)
	heatMap := plotter.NewHeatMap(grid, pal)
	heatMap.Min = 0
	heatMap.Max = zmax
	p.Add(heatMap)

	p.Draw(dc0)

	p = plot.New()
	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	p.Add(colorBar)
	p.HideX()
	p.Y.Padding = 0

	p.Draw(dc1)

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("could not write heat map: %w", err)
	}
	return nil
}
