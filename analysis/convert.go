package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/decibelcooper/jetsweep/gen"
	"github.com/decibelcooper/jetsweep/jet"
)

// ErrPartonAcceptance reports an event whose hard partons fall outside the
// acceptance. Such events are regenerated.
var ErrPartonAcceptance = errors.New("analysis: hard parton outside acceptance")

// Record positions of the outgoing hard partons.
var partonSlots = [2]int{5, 6}

// Event holds the particle collections of one converted event.
type Event struct {
	// All holds the visible final-state particles within the acceptance.
	All []jet.Particle
	// Charged is the subset of All with nonzero charge.
	Charged []jet.Particle
	// Partons are the two outgoing partons of the hard scattering, with a
	// charge tag of three times their charge.
	Partons []jet.Particle
	// LayoutOK is false when the record entries assumed to hold the hard
	// partons did not carry the expected status.
	LayoutOK bool
}

// Converter maps generator records to Events. The returned Event and its
// slices are reused by the next call.
type Converter struct {
	MaxRap float64

	ev Event
}

func NewConverter(maxRap float64) *Converter {
	return &Converter{MaxRap: maxRap}
}

func (c *Converter) Convert(rec gen.Record) (*Event, error) {
	ev := &c.ev
	ev.All = ev.All[:0]
	ev.Charged = ev.Charged[:0]
	ev.Partons = ev.Partons[:0]
	ev.LayoutOK = true

	if len(rec) <= partonSlots[1] {
		return nil, fmt.Errorf("analysis: event record too short (%d entries)", len(rec))
	}

	for _, i := range partonSlots {
		if st := rec[i].Status; st != gen.StatusHardOutgoing {
			Logf("analysis: record entry %d has status %d, expected outgoing hard parton (%d)", i, st, gen.StatusHardOutgoing)
			ev.LayoutOK = false
		}
	}
	for _, i := range partonSlots {
		p := jet.Particle{
			PxPyPzE: rec[i].P,
			Charge:  int(math.Round(3 * rec[i].Charge)),
		}
		if math.Abs(p.Eta()) > c.MaxRap {
			return ev, ErrPartonAcceptance
		}
		ev.Partons = append(ev.Partons, p)
	}

	for i := range rec {
		rp := &rec[i]
		if !rp.IsFinal() || !rp.IsVisible() {
			continue
		}
		p := jet.Particle{PxPyPzE: rp.P, Charge: int(math.Round(rp.Charge))}
		if math.Abs(jet.Rapidity(&p.PxPyPzE)) > c.MaxRap {
			continue
		}
		ev.All = append(ev.All, p)
		if rp.Charge != 0 {
			ev.Charged = append(ev.Charged, p)
		}
	}
	return ev, nil
}
