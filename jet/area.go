package jet

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// AreaDefinition configures the ghosts used to measure jet areas.
// A zero GhostArea disables area measurement.
type AreaDefinition struct {
	GhostMaxRap float64
	GhostArea   float64
	Repeat      int
}

const (
	ghostJitter = 1e-4
	ghostSeed   = 20100423
)

// GhostedArea holds one ghost layer built from an AreaDefinition. It is
// built once and shared by every clustering.
//
// Ghosts do not take part in the clustering. Once the jets of an event are
// known, each ghost is given to the nearest jet axis within the jet radius
// and the jet is credited with the ghost's cell. For anti-kt and cone jets
// this is close to the active area; kt and Cambridge-Aachen jets with
// irregular boundaries get the area of their cone of radius R clipped by
// their neighbours.
type GhostedArea struct {
	def    AreaDefinition
	cell   float64
	y, phi []float64
}

// NewGhostedArea lays ghosts on a rapidity-azimuth grid covering
// |y| <= def.GhostMaxRap, with each cell of about def.GhostArea.
func NewGhostedArea(def AreaDefinition) (*GhostedArea, error) {
	switch {
	case !(def.GhostArea > 0):
		return nil, fmt.Errorf("jet: invalid ghost area %v", def.GhostArea)
	case !(def.GhostMaxRap > 0):
		return nil, fmt.Errorf("jet: invalid ghost rapidity extent %v", def.GhostMaxRap)
	case def.Repeat > 1:
		return nil, fmt.Errorf("jet: repeated ghost layers (repeat=%d) are not supported", def.Repeat)
	}

	side := math.Sqrt(def.GhostArea)
	ny := int(math.Ceil(2 * def.GhostMaxRap / side))
	nphi := int(math.Ceil(2 * math.Pi / side))
	dy := 2 * def.GhostMaxRap / float64(ny)
	dphi := 2 * math.Pi / float64(nphi)

	ga := &GhostedArea{
		def:  def,
		cell: dy * dphi,
		y:    make([]float64, 0, ny*nphi),
		phi:  make([]float64, 0, ny*nphi),
	}

	rnd := rand.New(rand.NewPCG(ghostSeed, ghostSeed))
	jitter := func() float64 { return ghostJitter * (2*rnd.Float64() - 1) }
	for iy := 0; iy < ny; iy++ {
		for iphi := 0; iphi < nphi; iphi++ {
			ga.y = append(ga.y, -def.GhostMaxRap+(float64(iy)+0.5+jitter())*dy)
			ga.phi = append(ga.phi, -math.Pi+(float64(iphi)+0.5+jitter())*dphi)
		}
	}
	return ga, nil
}

// Definition returns the definition the ghosts were built from.
func (ga *GhostedArea) Definition() AreaDefinition { return ga.def }

// CellArea is the area carried by a single ghost.
func (ga *GhostedArea) CellArea() float64 { return ga.cell }

// NumGhosts is the number of ghosts in the layer.
func (ga *GhostedArea) NumGhosts() int { return len(ga.y) }

// assign sets the area of every jet from the ghosts whose nearest jet axis
// lies within r.
func (ga *GhostedArea) assign(jets []Jet, r float64) {
	if len(jets) == 0 {
		return
	}
	ys := make([]float64, len(jets))
	phis := make([]float64, len(jets))
	for k := range jets {
		jets[k].Area = 0
		ys[k] = Rapidity(&jets[k].PxPyPzE)
		phis[k] = jets[k].Phi()
	}

	r2 := r * r
	for g := range ga.y {
		best, bestD2 := -1, r2
		for k := range jets {
			dy := ga.y[g] - ys[k]
			if dy*dy > bestD2 {
				continue
			}
			if d2 := dist2(ga.y[g], ga.phi[g], ys[k], phis[k]); d2 <= bestD2 {
				best, bestD2 = k, d2
			}
		}
		if best >= 0 {
			jets[best].Area += ga.cell
		}
	}
}
