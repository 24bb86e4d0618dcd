package analysis

import (
	"fmt"
	"math"

	"github.com/decibelcooper/jetsweep"
	"go-hep.org/x/hep/hbook"
)

// RadiusHist is a 2D histogram whose x axis has one unit-wide bin per jet
// radius. Fills address the x axis by radius label, never by value.
type RadiusHist struct {
	*hbook.H2D

	labels []string
	index  map[string]int
}

// NewRadiusHist returns a histogram with len(labels) radius bins and ny
// value bins spanning [ylo, yhi).
func NewRadiusHist(name, title string, labels []string, ny int, ylo, yhi float64) *RadiusHist {
	n := len(labels)
	h := &RadiusHist{
		H2D:    hbook.NewH2D(n, -0.5, float64(n)-0.5, ny, ylo, yhi),
		labels: append([]string(nil), labels...),
		index:  make(map[string]int, n),
	}
	for i, l := range labels {
		h.index[l] = i
	}
	h.Ann["name"] = name
	h.Ann["title"] = title
	return h
}

// Labels returns the radius labels, one per x bin.
func (h *RadiusHist) Labels() []string { return h.labels }

// Fill adds v with weight w in the bin labelled label.
func (h *RadiusHist) Fill(label string, v, w float64) error {
	i, ok := h.index[label]
	if !ok {
		return fmt.Errorf("analysis: no radius bin labelled %q in %v", label, h.Ann["name"])
	}
	h.H2D.Fill(float64(i), v, w)
	return nil
}

type binning struct {
	title  string
	n      int
	lo, hi float64
}

func observableBinning(alg jetsweep.Algorithm, obs jetsweep.Observable) binning {
	switch obs {
	case jetsweep.NJets:
		return binning{"Number of Jets", 300, -0.5, 599.5}
	case jetsweep.NPart:
		return binning{"Number of Particles per Jet", 100, -0.5, 599.5}
	case jetsweep.NPartLead:
		return binning{"Number of Particles per Leading Jet", 100, -0.5, 599.5}
	case jetsweep.DeltaE:
		return binning{"Delta E", 100, -100, 100}
	case jetsweep.DeltaR:
		return binning{"Delta R Leading", 100, 0, 2}
	case jetsweep.ClusterTime:
		hi := 20.0
		if alg == jetsweep.SISCone {
			hi = 20000
		}
		return binning{"Time Required to cluster (ms)", 500, 0, hi}
	case jetsweep.Area:
		return binning{"Jet Area", 100, 0, 2 * math.Pi}
	case jetsweep.AreaLead:
		return binning{"Lead Jet Area", 100, 0, 2 * math.Pi}
	case jetsweep.PtLead:
		return binning{"Lead Jet Pt", 100, 0, 1000}
	case jetsweep.ELead:
		return binning{"Lead Jet Energy", 100, 0, 1000}
	case jetsweep.Eta:
		return binning{"Jet Eta", 100, -MaxRap, MaxRap}
	case jetsweep.EtaLead:
		return binning{"Lead Jet Eta", 100, -MaxRap, MaxRap}
	case jetsweep.Phi:
		return binning{"Jet Phi", 100, -math.Pi, math.Pi}
	case jetsweep.PhiLead:
		return binning{"Lead Jet Phi", 100, -math.Pi, math.Pi}
	}
	panic(fmt.Errorf("analysis: unknown observable %q", obs))
}

// AlgHists bundles every sweep histogram of one algorithm.
type AlgHists struct {
	Alg jetsweep.Algorithm
	H   map[jetsweep.Observable]*RadiusHist
}

func NewAlgHists(alg jetsweep.Algorithm, labels []string) *AlgHists {
	ah := &AlgHists{
		Alg: alg,
		H:   make(map[jetsweep.Observable]*RadiusHist, len(jetsweep.Observables)),
	}
	for _, obs := range jetsweep.Observables {
		b := observableBinning(alg, obs)
		ah.H[obs] = NewRadiusHist(
			jetsweep.HistName(alg, obs), b.title+" - "+alg.Title(),
			labels, b.n, b.lo, b.hi,
		)
	}
	return ah
}

// Fill adds v with unit weight to the obs histogram at the radius label.
func (ah *AlgHists) Fill(obs jetsweep.Observable, label string, v float64) error {
	h, ok := ah.H[obs]
	if !ok {
		return fmt.Errorf("analysis: no %q histogram for %v", obs, ah.Alg)
	}
	return h.Fill(label, v, 1)
}

// EventHists holds the event-level histograms that are not swept over
// radius.
type EventHists struct {
	Mult, ChargeMult    *hbook.H1D
	PartonPt, PartonE   *hbook.H1D
	PartonEtaPhi        *hbook.H2D
	FinalPt, FinalE     *hbook.H1D
	FinalEtaPhi         *hbook.H2D
	ChargedPt, ChargedE *hbook.H1D
	ChargedEtaPhi       *hbook.H2D
}

func newH1D(name, title string, n int, lo, hi float64) *hbook.H1D {
	h := hbook.NewH1D(n, lo, hi)
	h.Ann["name"] = name
	h.Ann["title"] = title
	return h
}

func newH2D(name, title string, nx int, xlo, xhi float64, ny int, ylo, yhi float64) *hbook.H2D {
	h := hbook.NewH2D(nx, xlo, xhi, ny, ylo, yhi)
	h.Ann["name"] = name
	h.Ann["title"] = title
	return h
}

func NewEventHists() *EventHists {
	return &EventHists{
		Mult:          newH1D("mult", "Visible Multiplicity", 300, -0.5, 899.5),
		ChargeMult:    newH1D("chargemult", "Charged Multiplicity", 300, -0.5, 899.5),
		PartonPt:      newH1D("partonpt", "Parton Pt", 100, 0, 1000),
		PartonE:       newH1D("parton_e", "Parton Energy", 100, 0, 1000),
		PartonEtaPhi:  newH2D("partonetaphi", "Parton Eta x Phi", 100, -5, 5, 100, -math.Pi, math.Pi),
		FinalPt:       newH1D("finalstatept", "Detected Pt", 200, 0, 100),
		FinalE:        newH1D("finalstateE", "Detected E", 200, 0, 100),
		FinalEtaPhi:   newH2D("finaletaphi", "Detected Eta x Phi", 100, -5, 5, 100, -math.Pi, math.Pi),
		ChargedPt:     newH1D("chargedfstatept", "Detected Charged Pt", 200, 0, 100),
		ChargedE:      newH1D("chargedfstateE", "Detected Charged E", 200, 0, 100),
		ChargedEtaPhi: newH2D("chargedetaphi", "Detected Charged Eta x Phi", 100, -12, 12, 100, -math.Pi, math.Pi),
	}
}

// Fill records the multiplicities and the parton and particle kinematics
// of ev.
func (eh *EventHists) Fill(ev *Event) {
	eh.Mult.Fill(float64(len(ev.All)), 1)
	eh.ChargeMult.Fill(float64(len(ev.Charged)), 1)

	for i := range ev.Partons {
		p := &ev.Partons[i]
		eh.PartonEtaPhi.Fill(p.Eta(), p.Phi(), 1)
		eh.PartonPt.Fill(p.Pt(), 1)
		eh.PartonE.Fill(p.E(), 1)
	}
	for i := range ev.All {
		p := &ev.All[i]
		eh.FinalPt.Fill(p.Pt(), 1)
		eh.FinalE.Fill(p.E(), 1)
		eh.FinalEtaPhi.Fill(p.Eta(), p.Phi(), 1)
	}
	for i := range ev.Charged {
		p := &ev.Charged[i]
		eh.ChargedPt.Fill(p.Pt(), 1)
		eh.ChargedE.Fill(p.E(), 1)
		eh.ChargedEtaPhi.Fill(p.Eta(), p.Phi(), 1)
	}
}

// h1s and h2s list the histograms in output order.
func (eh *EventHists) h1s() []*hbook.H1D {
	return []*hbook.H1D{
		eh.Mult, eh.ChargeMult, eh.PartonPt, eh.PartonE,
		eh.FinalPt, eh.FinalE, eh.ChargedPt, eh.ChargedE,
	}
}

func (eh *EventHists) h2s() []*hbook.H2D {
	return []*hbook.H2D{eh.PartonEtaPhi, eh.FinalEtaPhi, eh.ChargedEtaPhi}
}

// Hists holds every histogram filled during a run.
type Hists struct {
	Labels []string
	Algs   map[jetsweep.Algorithm]*AlgHists
	Event  *EventHists
}

func NewHists(grid *Grid) *Hists {
	hs := &Hists{
		Labels: grid.Labels,
		Algs:   make(map[jetsweep.Algorithm]*AlgHists, len(jetsweep.Algorithms)),
		Event:  NewEventHists(),
	}
	for _, alg := range jetsweep.Algorithms {
		hs.Algs[alg] = NewAlgHists(alg, grid.Labels)
	}
	return hs
}
