package analysis

import (
	"fmt"
	"time"

	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/jetsweep"
	"github.com/decibelcooper/jetsweep/jet"
)

// Clusterer clusters particles under one definition.
type Clusterer func(particles []jet.Particle, def jet.Definition, area *jet.GhostedArea) (*jet.ClusterSequence, error)

// Stats counts what happened during a run.
type Stats struct {
	Events           int
	Rejected         int
	LayoutMismatches int
	OutOfAcceptance  int
	Clusterings      int
	// Skipped counts, per algorithm, the (event, radius) pairs that left
	// no jet above the pT threshold.
	Skipped map[jetsweep.Algorithm]int
}

func newStats() Stats {
	return Stats{Skipped: make(map[jetsweep.Algorithm]int, len(jetsweep.Algorithms))}
}

// Sweep clusters each event under every definition of a Grid and fills the
// observables into Hists.
type Sweep struct {
	Grid  *Grid
	Hists *Hists
	Stats *Stats
	// Area is nil when area measurement is disabled.
	Area    *jet.GhostedArea
	PtMin   float64
	Cluster Clusterer
}

// NewSweep prepares a sweep over grid. The ghosts are built once here.
func NewSweep(grid *Grid, hists *Hists, stats *Stats) (*Sweep, error) {
	s := &Sweep{
		Grid:    grid,
		Hists:   hists,
		Stats:   stats,
		PtMin:   JetPtMin,
		Cluster: jet.Cluster,
	}
	if grid.Area.GhostArea > 0 {
		area, err := jet.NewGhostedArea(grid.Area)
		if err != nil {
			return nil, fmt.Errorf("could not create ghosts: %w", err)
		}
		s.Area = area
	}
	return s, nil
}

// Process runs every clustering of the grid over ev.
func (s *Sweep) Process(ev *Event) error {
	for _, alg := range jetsweep.Algorithms {
		for i, def := range s.Grid.Defs[alg] {
			if err := s.process(s.Hists.Algs[alg], s.Grid.Labels[i], def, ev); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Sweep) process(h *AlgHists, label string, def jet.Definition, ev *Event) error {
	start := time.Now()
	cs, err := s.Cluster(ev.All, def, s.Area)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("could not cluster event: %w", err)
	}
	s.Stats.Clusterings++

	jets := jet.SortedByPt(jet.SelectPtMin(s.PtMin).Apply(cs.InclusiveJets()))

	var fillErr error
	fill := func(obs jetsweep.Observable, v float64) {
		if err := h.Fill(obs, label, v); err != nil && fillErr == nil {
			fillErr = err
		}
	}

	fill(jetsweep.ClusterTime, float64(elapsed)/float64(time.Millisecond))
	fill(jetsweep.NJets, float64(len(jets)))
	for i := range jets {
		j := &jets[i]
		fill(jetsweep.NPart, float64(len(j.Constituents)))
		fill(jetsweep.Area, j.Area)
		fill(jetsweep.Eta, j.Eta())
		fill(jetsweep.Phi, j.Phi())
	}

	lead, ok := LeadingJet(jets)
	if !ok {
		s.Stats.Skipped[h.Alg]++
		return fillErr
	}
	fill(jetsweep.NPartLead, float64(len(lead.Constituents)))
	fill(jetsweep.AreaLead, lead.Area)
	fill(jetsweep.PtLead, lead.Pt())
	fill(jetsweep.ELead, lead.E())
	fill(jetsweep.EtaLead, lead.Eta())
	fill(jetsweep.PhiLead, lead.Phi())

	if len(ev.Partons) == 2 {
		idx, dr := NearestParton(&lead, ev.Partons)
		fill(jetsweep.DeltaR, dr)
		fill(jetsweep.DeltaE, ev.Partons[idx].E()-lead.E())
	}
	return fillErr
}

// LeadingJet returns the first jet of a pT-sorted list. ok is false when
// the list is empty.
func LeadingJet(sorted []jet.Jet) (lead jet.Jet, ok bool) {
	if len(sorted) == 0 {
		return jet.Jet{}, false
	}
	return sorted[0], true
}

// NearestParton returns the index of the parton closest to j in (eta, phi)
// and that distance. The second parton is picked only when strictly closer.
func NearestParton(j *jet.Jet, partons []jet.Particle) (int, float64) {
	d1 := fmom.DeltaR(&partons[0].PxPyPzE, &j.PxPyPzE)
	d2 := fmom.DeltaR(&partons[1].PxPyPzE, &j.PxPyPzE)
	if d2 < d1 {
		return 1, d2
	}
	return 0, d1
}
