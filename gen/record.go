// Package gen provides the event generators feeding the jet sweep.
//
// A generator is configured with Pythia-style "Key:sub = value" strings,
// initialized once, and then advanced one event at a time. Each accepted
// event exposes a Record laid out like a Pythia event record: entry 0 is the
// system, 1 and 2 the beams, 3 and 4 the incoming partons, and 5 and 6 the
// outgoing partons of the hard scattering.
package gen

import (
	"errors"

	"go-hep.org/x/hep/fmom"
	"go-hep.org/x/hep/heppdt"
)

// Status codes used in a Record. Final-state particles have a positive
// status; everything else is negative.
const (
	StatusSystem       = -11
	StatusBeam         = -12
	StatusIncoming     = -21
	StatusHardOutgoing = -23
	StatusHadron       = 83
	StatusUnderlying   = 84
)

// ErrExhausted is returned by Next when a replay source has no events left.
var ErrExhausted = errors.New("gen: no more events")

// Particle is one entry of an event record.
type Particle struct {
	ID     int
	Status int
	P      fmom.PxPyPzE
	Charge float64
}

// IsFinal reports whether the particle is in the final state.
func (p *Particle) IsFinal() bool { return p.Status > 0 }

// IsVisible reports whether the particle would leave a trace in a detector.
func (p *Particle) IsVisible() bool { return IsVisible(p.ID) }

// Record is the particle listing of one event.
type Record []Particle

// Generator produces events one at a time.
type Generator interface {
	// ReadString applies one "Key:sub = value" setting. Blank lines and
	// lines starting with ! or # are ignored.
	ReadString(setting string) error
	// Init prepares the generator after all settings are read.
	Init() error
	// Next advances to the next event. It returns false with a nil error
	// when the event was rejected and should simply be retried.
	Next() (bool, error)
	// Record returns the current event. It is only valid until the next
	// call to Next.
	Record() Record
}

// IsVisible reports whether particles with PDG id pdg are detectable.
// Neutrinos and the usual invisible BSM states are not.
func IsVisible(pdg int) bool {
	if pdg < 0 {
		pdg = -pdg
	}
	switch pdg {
	case 12, 14, 16, 18, 39, 1000012, 1000014, 1000016, 1000022, 1000039, 5000039:
		return false
	}
	return true
}

var quarkCharges = [...]float64{0, -1. / 3, 2. / 3, -1. / 3, 2. / 3, -1. / 3, 2. / 3}

// Charge returns the electric charge of the particle with PDG id pdg, in
// units of the positron charge.
func Charge(pdg int) float64 {
	if p := heppdt.ParticleByID(heppdt.PID(pdg)); p != nil {
		return p.Charge
	}

	sign := 1.0
	id := pdg
	if id < 0 {
		sign = -1
		id = -id
	}
	switch {
	case id >= 1 && id <= 6:
		return sign * quarkCharges[id]
	case id == 11 || id == 13 || id == 15:
		return -sign
	case id == 211 || id == 321 || id == 2212 || id == 24:
		return sign
	}
	return 0
}
