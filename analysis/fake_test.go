package analysis

import (
	"math"

	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/jetsweep/gen"
)

func ptEtaPhiE(pt, eta, phi, e float64) fmom.PxPyPzE {
	return fmom.NewPxPyPzE(pt*math.Cos(phi), pt*math.Sin(phi), pt*math.Sinh(eta), e)
}

func massless(pt, eta, phi float64) fmom.PxPyPzE {
	return ptEtaPhiE(pt, eta, phi, pt*math.Cosh(eta))
}

// collimatedRecord is an event whose three visible particles form one
// cluster of E=100 and pT=50 at eta 0.2, plus a neutrino and a particle
// outside the acceptance.
func collimatedRecord() gen.Record {
	pt := 50 / (1 + 2*math.Cos(0.15))
	return gen.Record{
		{ID: 90, Status: gen.StatusSystem, P: fmom.NewPxPyPzE(0, 0, 0, 13000)},
		{ID: 2212, Status: gen.StatusBeam, P: fmom.NewPxPyPzE(0, 0, 6500, 6500), Charge: 1},
		{ID: 2212, Status: gen.StatusBeam, P: fmom.NewPxPyPzE(0, 0, -6500, 6500), Charge: 1},
		{ID: 21, Status: gen.StatusIncoming, P: fmom.NewPxPyPzE(0, 0, 60, 60)},
		{ID: 21, Status: gen.StatusIncoming, P: fmom.NewPxPyPzE(0, 0, -60, 60)},
		{ID: 2, Status: gen.StatusHardOutgoing, P: massless(55, 0.2, 0), Charge: 2. / 3},
		{ID: 21, Status: gen.StatusHardOutgoing, P: massless(55, -0.2, math.Pi)},
		{ID: 211, Status: gen.StatusHadron, P: ptEtaPhiE(pt, 0.2, -0.15, 100./3), Charge: 1},
		{ID: 22, Status: gen.StatusHadron, P: ptEtaPhiE(pt, 0.2, 0, 100./3)},
		{ID: -211, Status: gen.StatusHadron, P: ptEtaPhiE(pt, 0.2, 0.15, 100./3), Charge: -1},
		{ID: 12, Status: gen.StatusHadron, P: massless(5, 0, 1)},
		{ID: 211, Status: gen.StatusUnderlying, P: massless(2, 4.5, 1), Charge: 1},
	}
}

// fakeGen replays a fixed record, rejecting the events whose index is
// listed in reject.
type fakeGen struct {
	record gen.Record
	reject map[int]bool
	calls  int
}

func (g *fakeGen) ReadString(string) error { return nil }
func (g *fakeGen) Init() error             { return nil }

func (g *fakeGen) Next() (bool, error) {
	g.calls++
	return !g.reject[g.calls-1], nil
}

func (g *fakeGen) Record() gen.Record { return g.record }
