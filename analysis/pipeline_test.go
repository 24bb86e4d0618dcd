package analysis

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"

	"github.com/decibelcooper/jetsweep"
)

func testConfig() Config {
	return Config{
		Radii:      jetsweep.DefaultRadii(0.1, 10),
		PtMin:      JetPtMin,
		MaxRejects: 100,
	}
}

func TestPipelineRun(t *testing.T) {
	captureLogf(t)
	g := &fakeGen{record: collimatedRecord(), reject: map[int]bool{0: true, 3: true}}

	p, err := NewPipeline(g, testConfig())
	require.NoError(t, err)
	require.NoError(t, p.Run(10))

	assert.Equal(t, 10, p.Stats.Events)
	assert.Equal(t, 2, p.Stats.Rejected)
	assert.Equal(t, 12, g.calls)
	assert.Equal(t, 400, p.Stats.Clusterings)
	assert.Zero(t, p.Stats.LayoutMismatches)
	assert.Equal(t, int64(10), p.Hists.Event.Mult.Entries())
	assert.Equal(t, int64(20), p.Hists.Event.PartonPt.Entries())
	assert.Equal(t, int64(30), p.Hists.Event.FinalPt.Entries())
	assert.Equal(t, int64(20), p.Hists.Event.ChargedPt.Entries())
	for _, alg := range jetsweep.Algorithms {
		assert.Equal(t, int64(100), p.Hists.Algs[alg].H[jetsweep.NJets].Entries())
	}

	fname := filepath.Join(t.TempDir(), "out", "test.root")
	require.NoError(t, WriteROOT(fname, p.Hists))

	f, err := groot.Open(fname)
	require.NoError(t, err)
	defer f.Close()

	assert.Len(t, f.Keys(), len(jetsweep.Algorithms)*len(jetsweep.Observables)+11+1)
	for _, alg := range jetsweep.Algorithms {
		for _, obs := range jetsweep.Observables {
			obj, err := f.Get(jetsweep.HistName(alg, obs))
			require.NoError(t, err)
			_, ok := obj.(rhist.H2)
			assert.True(t, ok, "%v %v", alg, obs)
		}
	}

	obj, err := f.Get(jetsweep.RadiiKey)
	require.NoError(t, err)
	str, ok := obj.(fmt.Stringer)
	require.True(t, ok)
	assert.Equal(t, jetsweep.JoinLabels(p.Grid.Labels), str.String())
}

func TestPipelineLayoutMismatch(t *testing.T) {
	msgs := captureLogf(t)
	rec := collimatedRecord()
	rec[5].Status = 1
	rec[5].ID = 22

	p, err := NewPipeline(&fakeGen{record: rec}, testConfig())
	require.NoError(t, err)
	require.NoError(t, p.Run(3))

	assert.Equal(t, 3, p.Stats.Events)
	assert.Equal(t, 3, p.Stats.LayoutMismatches)
	assert.Len(t, *msgs, 3)
}

func TestPipelineStalls(t *testing.T) {
	captureLogf(t)

	t.Run("rejected events", func(t *testing.T) {
		reject := make(map[int]bool)
		for i := 0; i < 10; i++ {
			reject[i] = true
		}
		cfg := testConfig()
		cfg.MaxRejects = 5
		p, err := NewPipeline(&fakeGen{record: collimatedRecord(), reject: reject}, cfg)
		require.NoError(t, err)

		err = p.Run(1)
		assert.True(t, errors.Is(err, ErrStalled), "got %v", err)
		assert.Equal(t, 5, p.Stats.Rejected)
		assert.Zero(t, p.Stats.Events)
	})

	t.Run("partons outside acceptance", func(t *testing.T) {
		rec := collimatedRecord()
		rec[6].P = massless(55, -4.5, 0)
		cfg := testConfig()
		cfg.MaxRejects = 3
		p, err := NewPipeline(&fakeGen{record: rec}, cfg)
		require.NoError(t, err)

		err = p.Run(1)
		assert.True(t, errors.Is(err, ErrStalled), "got %v", err)
		assert.Equal(t, 3, p.Stats.OutOfAcceptance)
		assert.Equal(t, 3, p.Stats.Rejected)
	})
}

type failingGen struct{ fakeGen }

func (failingGen) Next() (bool, error) { return false, errors.New("boom") }

func TestPipelineGeneratorFailure(t *testing.T) {
	p, err := NewPipeline(&failingGen{}, testConfig())
	require.NoError(t, err)
	err = p.Run(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
