package report

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/stat"
)

// Project returns the value-axis distribution of h in the radius bin ix.
func Project(h *hbook.H2D, ix int) (*hbook.H1D, error) {
	grid := h.GridXYZ()
	nx, ny := grid.Dims()
	if ix < 0 || ix >= nx {
		return nil, fmt.Errorf("report: radius bin %d out of range [0, %d)", ix, nx)
	}

	p := hbook.NewH1D(ny, h.YMin(), h.YMax())
	for j := 0; j < ny; j++ {
		if w := grid.Z(ix, j); w != 0 {
			p.Fill(grid.Y(j), w)
		}
	}
	return p, nil
}

// Point is the summary of one radius bin.
type Point struct {
	R      float64
	Mean   float64
	Spread float64
}

// Curve returns the weighted mean and standard deviation of the values in
// every radius bin of h. Bins without entries are left out.
func Curve(h *hbook.H2D, radii []float64) ([]Point, error) {
	grid := h.GridXYZ()
	nx, ny := grid.Dims()
	if nx != len(radii) {
		return nil, fmt.Errorf("report: %d radius bins for %d radii", nx, len(radii))
	}

	ys := make([]float64, ny)
	for j := range ys {
		ys[j] = grid.Y(j)
	}

	var pts []Point
	ws := make([]float64, ny)
	for i := 0; i < nx; i++ {
		sumw := 0.0
		for j := range ws {
			ws[j] = grid.Z(i, j)
			sumw += ws[j]
		}
		if sumw <= 0 {
			continue
		}
		mean, std := stat.PopMeanStdDev(ys, ws)
		pts = append(pts, Point{R: radii[i], Mean: mean, Spread: std})
	}
	return pts, nil
}
