package analysis

import (
	"fmt"
	"os"
	"path/filepath"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rbase"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/root"

	"github.com/decibelcooper/jetsweep"
)

type namedObject struct {
	name string
	obj  root.Object
}

// objects lists every histogram in output order: event-level histograms
// first, then each algorithm's observables.
func (hs *Hists) objects() []namedObject {
	var objs []namedObject
	for _, h := range hs.Event.h1s() {
		objs = append(objs, namedObject{h.Name(), rhist.NewH1DFrom(h)})
	}
	for _, h := range hs.Event.h2s() {
		objs = append(objs, namedObject{h.Name(), rhist.NewH2DFrom(h)})
	}
	for _, alg := range jetsweep.Algorithms {
		ah := hs.Algs[alg]
		for _, obs := range jetsweep.Observables {
			objs = append(objs, namedObject{
				jetsweep.HistName(alg, obs),
				rhist.NewH2DFrom(ah.H[obs].H2D),
			})
		}
	}
	return objs
}

// WriteROOT writes every histogram of hs, and the radius labels under
// jetsweep.RadiiKey, to a new ROOT file.
func WriteROOT(fname string, hs *Hists) error {
	if dir := filepath.Dir(fname); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create output directory: %w", err)
		}
	}

	f, err := groot.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}

	if err := putAll(f, hs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not close output file: %w", err)
	}
	return nil
}

func putAll(f *riofs.File, hs *Hists) error {
	for _, o := range hs.objects() {
		if err := f.Put(o.name, o.obj); err != nil {
			return fmt.Errorf("could not write %q: %w", o.name, err)
		}
	}
	labels := rbase.NewObjString(jetsweep.JoinLabels(hs.Labels))
	if err := f.Put(jetsweep.RadiiKey, labels); err != nil {
		return fmt.Errorf("could not write radius labels: %w", err)
	}
	return nil
}
