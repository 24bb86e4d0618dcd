package analysis

import (
	"errors"
	"fmt"
	"log"

	"github.com/decibelcooper/jetsweep/gen"
)

// Logf reports diagnostics and progress. Replace it to silence or capture
// them.
var Logf = log.Printf

// ErrStalled is returned when the generator rejects too many consecutive
// events.
var ErrStalled = errors.New("analysis: generator stalled")

const progressEvery = 50

// Config parametrizes a Pipeline.
type Config struct {
	Radii       []float64
	GhostArea   float64
	GhostRepeat int
	PtMin       float64
	// MaxRejects caps consecutive rejected events. Zero means no cap.
	MaxRejects int
}

// Pipeline drives a generator through the sweep.
type Pipeline struct {
	Grid  *Grid
	Hists *Hists
	Stats Stats

	gen        gen.Generator
	conv       *Converter
	sweep      *Sweep
	maxRejects int
}

// NewPipeline prepares a run over the already initialized generator g.
func NewPipeline(g gen.Generator, cfg Config) (*Pipeline, error) {
	grid := NewGrid(cfg.Radii, cfg.GhostArea, cfg.GhostRepeat)
	p := &Pipeline{
		Grid:       grid,
		Hists:      NewHists(grid),
		Stats:      newStats(),
		gen:        g,
		conv:       NewConverter(MaxRap),
		maxRejects: cfg.MaxRejects,
	}

	sweep, err := NewSweep(grid, p.Hists, &p.Stats)
	if err != nil {
		return nil, err
	}
	if cfg.PtMin > 0 {
		sweep.PtMin = cfg.PtMin
	}
	p.sweep = sweep
	return p, nil
}

// Sweep exposes the sweep, e.g. to replace its Clusterer.
func (p *Pipeline) Sweep() *Sweep { return p.sweep }

// Run processes n accepted events. Rejected events, including events whose
// hard partons fall outside the acceptance, are retried without counting.
func (p *Pipeline) Run(n int) error {
	rejects := 0
	for p.Stats.Events < n {
		ok, err := p.gen.Next()
		if err != nil {
			return fmt.Errorf("could not generate event %d: %w", p.Stats.Events+1, err)
		}

		var ev *Event
		if ok {
			ev, err = p.conv.Convert(p.gen.Record())
			switch {
			case errors.Is(err, ErrPartonAcceptance):
				p.Stats.OutOfAcceptance++
				ok = false
			case err != nil:
				return fmt.Errorf("could not convert event %d: %w", p.Stats.Events+1, err)
			}
		}
		if !ok {
			p.Stats.Rejected++
			rejects++
			if p.maxRejects > 0 && rejects >= p.maxRejects {
				return fmt.Errorf("%w: %d consecutive events rejected", ErrStalled, rejects)
			}
			continue
		}
		rejects = 0

		p.Stats.Events++
		if p.Stats.Events%progressEvery == 0 {
			Logf("event: %d", p.Stats.Events)
		}
		if !ev.LayoutOK {
			p.Stats.LayoutMismatches++
		}

		p.Hists.Event.Fill(ev)
		if err := p.sweep.Process(ev); err != nil {
			return fmt.Errorf("could not process event %d: %w", p.Stats.Events, err)
		}
	}
	return nil
}
