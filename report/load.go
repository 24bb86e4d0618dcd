// Package report renders the histograms written by a jet radius sweep:
// distributions at a reference radius, and the mean and spread of each
// observable as a function of radius.
package report

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/rootcnv"

	"github.com/decibelcooper/jetsweep"
)

// MissingError reports a histogram absent from the input file.
type MissingError struct {
	Key string
	Err error
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("report: missing histogram %q: %v", e.Key, e.Err)
}

func (e *MissingError) Unwrap() error { return e.Err }

// Results holds every swept histogram of a run.
type Results struct {
	Labels []string
	Radii  []float64
	H      map[jetsweep.Algorithm]map[jetsweep.Observable]*hbook.H2D
}

// Hist returns the (alg, obs) histogram.
func (r *Results) Hist(alg jetsweep.Algorithm, obs jetsweep.Observable) *hbook.H2D {
	return r.H[alg][obs]
}

// Load reads the radius labels and every (algorithm, observable) histogram
// from the ROOT file fname.
func Load(fname string) (*Results, error) {
	f, err := groot.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("could not open input file: %w", err)
	}
	defer f.Close()

	return load(f)
}

func load(f *riofs.File) (*Results, error) {
	obj, err := f.Get(jetsweep.RadiiKey)
	if err != nil {
		return nil, &MissingError{Key: jetsweep.RadiiKey, Err: err}
	}
	str, ok := obj.(fmt.Stringer)
	if !ok {
		return nil, fmt.Errorf("report: %q is a %T, not a string", jetsweep.RadiiKey, obj)
	}
	labels, radii, err := jetsweep.ParseLabels(str.String())
	if err != nil {
		return nil, fmt.Errorf("could not decode radius labels: %w", err)
	}

	res := &Results{
		Labels: labels,
		Radii:  radii,
		H:      make(map[jetsweep.Algorithm]map[jetsweep.Observable]*hbook.H2D, len(jetsweep.Algorithms)),
	}
	for _, alg := range jetsweep.Algorithms {
		res.H[alg] = make(map[jetsweep.Observable]*hbook.H2D, len(jetsweep.Observables))
		for _, obs := range jetsweep.Observables {
			key := jetsweep.HistName(alg, obs)
			obj, err := f.Get(key)
			if err != nil {
				return nil, &MissingError{Key: key, Err: err}
			}
			h2, ok := obj.(rhist.H2)
			if !ok {
				return nil, fmt.Errorf("report: %q is a %T, not a 2D histogram", key, obj)
			}
			h := rootcnv.H2D(h2)
			if nx, _ := h.GridXYZ().Dims(); nx != len(labels) {
				return nil, fmt.Errorf("report: %q has %d radius bins, want %d", key, nx, len(labels))
			}
			res.H[alg][obs] = h
		}
	}
	return res, nil
}
