// Package analysis runs the jet radius sweep: it converts generated events
// into particle collections, clusters them with every algorithm at every
// radius, and accumulates the resulting observables into histograms keyed
// by radius label.
package analysis

import (
	"fmt"

	"github.com/decibelcooper/jetsweep"
	"github.com/decibelcooper/jetsweep/jet"
)

// Physics cuts shared by the whole sweep.
const (
	// MaxRap is the acceptance in |y| for particles and |eta| for partons.
	MaxRap = 4.0
	// JetPtMin is the minimum transverse momentum of a counted jet, in GeV.
	JetPtMin = 1.0
	// OverlapThreshold is the split-merge fraction of the cone algorithm.
	OverlapThreshold = 0.75

	DefaultGhostArea   = 0.01
	DefaultGhostRepeat = 1
)

// Grid is the set of jet definitions evaluated for every event.
type Grid struct {
	Radii  []float64
	Labels []string
	Defs   map[jetsweep.Algorithm][]jet.Definition
	Area   jet.AreaDefinition
}

// NewGrid builds one definition per algorithm and radius. The ghosts used
// for area measurement extend 2*max(radii) beyond the acceptance. A zero
// ghostArea disables area measurement.
//
// NewGrid panics if radii is empty or not strictly ascending.
func NewGrid(radii []float64, ghostArea float64, ghostRepeat int) *Grid {
	if len(radii) == 0 {
		panic("analysis: empty radius list")
	}
	for i, r := range radii {
		if !(r > 0) || (i > 0 && r <= radii[i-1]) {
			panic(fmt.Errorf("analysis: radii must be positive and ascending: %v", radii))
		}
	}

	grid := &Grid{
		Radii:  append([]float64(nil), radii...),
		Labels: jetsweep.RadiusLabels(radii),
		Defs:   make(map[jetsweep.Algorithm][]jet.Definition, len(jetsweep.Algorithms)),
		Area: jet.AreaDefinition{
			GhostMaxRap: MaxRap + 2*radii[len(radii)-1],
			GhostArea:   ghostArea,
			Repeat:      ghostRepeat,
		},
	}
	for _, alg := range jetsweep.Algorithms {
		defs := make([]jet.Definition, len(radii))
		for i, r := range radii {
			defs[i] = jet.Definition{Algorithm: alg, R: r}
			if alg == jetsweep.SISCone {
				defs[i].OverlapThreshold = OverlapThreshold
			}
		}
		grid.Defs[alg] = defs
	}
	return grid
}

// Size is the number of clusterings run per event.
func (g *Grid) Size() int {
	return len(g.Radii) * len(g.Defs)
}
