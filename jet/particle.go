// Package jet clusters particles into jets.
//
// The sequential-recombination algorithms (kt, anti-kt and Cambridge-Aachen)
// run on go-hep's fastjet port. The seedless cone algorithm is implemented
// here. Jet areas are measured by passive assignment of a fixed ghost grid
// to the clustered jets.
package jet

import (
	"math"

	"go-hep.org/x/hep/fmom"
)

// Particle is a clustering input: a four-momentum and an integer charge tag.
type Particle struct {
	fmom.PxPyPzE
	Charge int
}

// NewParticle returns a particle with the given momentum components.
func NewParticle(px, py, pz, e float64, charge int) Particle {
	return Particle{PxPyPzE: fmom.NewPxPyPzE(px, py, pz, e), Charge: charge}
}

// Jet is a clustered jet.
type Jet struct {
	fmom.PxPyPzE
	// Area is the jet area in the rapidity-azimuth plane, zero when area
	// measurement was disabled.
	Area float64
	// Constituents lists the input particles clustered into the jet.
	// Ghosts are never included.
	Constituents []Particle
}

const maxRapidity = 1e5

// Rapidity returns the rapidity of p. Momenta along the beam axis get a
// large finite rapidity of the sign of pz, so that distances stay finite.
func Rapidity(p *fmom.PxPyPzE) float64 {
	e, pz := p.E(), p.Pz()
	if e <= math.Abs(pz) {
		if pz >= 0 {
			return maxRapidity
		}
		return -maxRapidity
	}
	return p.Rapidity()
}

// DeltaPhi returns phi1-phi2 folded into [-pi, pi].
func DeltaPhi(phi1, phi2 float64) float64 {
	d := math.Mod(phi1-phi2, 2*math.Pi)
	switch {
	case d > math.Pi:
		d -= 2 * math.Pi
	case d < -math.Pi:
		d += 2 * math.Pi
	}
	return d
}

func dist2(y1, phi1, y2, phi2 float64) float64 {
	dy := y1 - y2
	dphi := DeltaPhi(phi1, phi2)
	return dy*dy + dphi*dphi
}

func addMomentum(dst *fmom.PxPyPzE, p *fmom.PxPyPzE) {
	*dst = fmom.NewPxPyPzE(dst.Px()+p.Px(), dst.Py()+p.Py(), dst.Pz()+p.Pz(), dst.E()+p.E())
}
