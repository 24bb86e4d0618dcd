package gen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"go-hep.org/x/hep/fmom"
	"go-hep.org/x/hep/hepmc"
)

// HepMC replays events previously written to a HepMC2 ASCII file, e.g. by
// an external Pythia run. The file is set with "HepMC:file = path".
type HepMC struct {
	File string

	f      *os.File
	dec    *hepmc.Decoder
	record Record
}

func (h *HepMC) ReadString(setting string) error {
	key, value, ok, err := ParseSetting(setting)
	if err != nil || !ok {
		return err
	}
	switch key {
	case "hepmc:file":
		h.File = value
		return nil
	}
	return fmt.Errorf("gen: unknown setting %q", key)
}

func (h *HepMC) Init() error {
	if h.File == "" {
		return fmt.Errorf("gen: HepMC:file not set")
	}
	f, err := os.Open(h.File)
	if err != nil {
		return fmt.Errorf("could not open HepMC file: %w", err)
	}
	h.f = f
	h.dec = hepmc.NewDecoder(f)
	return nil
}

func (h *HepMC) Next() (bool, error) {
	if h.dec == nil {
		return false, fmt.Errorf("gen: HepMC source not initialized")
	}

	var evt hepmc.Event
	err := h.dec.Decode(&evt)
	if errors.Is(err, io.EOF) {
		return false, ErrExhausted
	}
	if err != nil {
		return false, fmt.Errorf("could not decode HepMC event: %w", err)
	}

	h.record = FromHepMC(&evt, h.record[:0])
	return true, nil
}

func (h *HepMC) Record() Record { return h.record }

// Close releases the underlying file.
func (h *HepMC) Close() error {
	if h.f == nil {
		return nil
	}
	err := h.f.Close()
	h.f = nil
	h.dec = nil
	return err
}

// FromHepMC lays out the particles of evt as a Record, appending to dst.
// Particles are ordered by barcode starting at index 1; index 0 holds a
// system entry carrying the summed beam momenta. HepMC status 1 maps to a
// final-state status, every other code c to -|c|.
func FromHepMC(evt *hepmc.Event, dst Record) Record {
	barcodes := make([]int, 0, len(evt.Particles))
	for bc := range evt.Particles {
		barcodes = append(barcodes, bc)
	}
	sort.Ints(barcodes)

	var sys fmom.PxPyPzE
	for _, beam := range evt.Beams {
		if beam == nil {
			continue
		}
		sys = fmom.NewPxPyPzE(
			sys.Px()+beam.Momentum.Px(), sys.Py()+beam.Momentum.Py(),
			sys.Pz()+beam.Momentum.Pz(), sys.E()+beam.Momentum.E(),
		)
	}
	dst = append(dst, Particle{ID: 90, Status: StatusSystem, P: sys})

	for _, bc := range barcodes {
		p := evt.Particles[bc]
		status := int(p.Status)
		if status > 1 {
			status = -status
		}
		id := int(p.PdgID)
		dst = append(dst, Particle{
			ID:     id,
			Status: status,
			P:      p.Momentum,
			Charge: Charge(id),
		})
	}
	return dst
}
