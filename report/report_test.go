package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rbase"

	"github.com/decibelcooper/jetsweep"
	"github.com/decibelcooper/jetsweep/analysis"
)

// writeSweep fills every swept histogram with a few values per radius and
// writes them to a ROOT file.
func writeSweep(t *testing.T) (string, *analysis.Hists) {
	t.Helper()
	grid := analysis.NewGrid(jetsweep.DefaultRadii(0.1, 10), 0, 1)
	hs := analysis.NewHists(grid)

	for _, alg := range jetsweep.Algorithms {
		for _, obs := range jetsweep.Observables {
			if alg == jetsweep.AntiKt && obs == jetsweep.NJets {
				continue
			}
			h := hs.Algs[alg].H[obs]
			lo, hi := h.YMin(), h.YMax()
			for ix, label := range grid.Labels {
				for k := 0; k < 3; k++ {
					v := lo + (hi-lo)*(0.2+0.05*float64(ix)+0.02*float64(k+int(alg)))
					require.NoError(t, h.Fill(label, v, 1))
				}
			}
		}
	}

	// a known distribution in the reference bin of antikt njets
	njets := hs.Algs[jetsweep.AntiKt].H[jetsweep.NJets]
	require.NoError(t, njets.Fill("0.80", 3, 1))
	require.NoError(t, njets.Fill("0.80", 3, 1))
	require.NoError(t, njets.Fill("0.80", 5, 1))

	fname := filepath.Join(t.TempDir(), "sweep.root")
	require.NoError(t, analysis.WriteROOT(fname, hs))
	return fname, hs
}

func TestLoad(t *testing.T) {
	fname, _ := writeSweep(t)

	res, err := Load(fname)
	require.NoError(t, err)
	if diff := cmp.Diff(jetsweep.RadiusLabels(jetsweep.DefaultRadii(0.1, 10)), res.Labels); diff != "" {
		t.Fatalf("labels (-want +got):\n%s", diff)
	}
	require.Len(t, res.Radii, 10)
	assert.InDelta(t, 0.8, res.Radii[7], 1e-12)

	for _, alg := range jetsweep.Algorithms {
		for _, obs := range jetsweep.Observables {
			require.NotNil(t, res.Hist(alg, obs), "%v %v", alg, obs)
		}
	}
}

func TestProjectAndCurve(t *testing.T) {
	fname, hs := writeSweep(t)
	res, err := Load(fname)
	require.NoError(t, err)

	h := res.Hist(jetsweep.AntiKt, jetsweep.NJets)
	p, err := Project(h, 7)
	require.NoError(t, err)
	assert.Equal(t, 3.0, p.SumW())
	assert.Equal(t, h.YMin(), p.XMin())
	assert.Equal(t, h.YMax(), p.XMax())

	// njets bins are 2 wide from -0.5: 3 is counted at 2.5, 5 at 4.5
	pts, err := Curve(h, res.Radii)
	require.NoError(t, err)
	require.Len(t, pts, 1)
	assert.InDelta(t, 0.8, pts[0].R, 1e-12)
	assert.InDelta(t, 19./6, pts[0].Mean, 1e-9)
	assert.InDelta(t, 0.9428090415820634, pts[0].Spread, 1e-9)

	// projections carry the whole content of their radius bin
	kt := res.Hist(jetsweep.Kt, jetsweep.PtLead)
	for ix := range res.Radii {
		p, err := Project(kt, ix)
		require.NoError(t, err)
		assert.Equal(t, 3.0, p.SumW(), "radius bin %d", ix)
	}
	pts, err = Curve(kt, res.Radii)
	require.NoError(t, err)
	assert.Len(t, pts, 10)
	for k := 1; k < len(pts); k++ {
		assert.Greater(t, pts[k].Mean, pts[k-1].Mean)
	}
	assert.Equal(t, int64(30), hs.Algs[jetsweep.Kt].H[jetsweep.PtLead].Entries())

	_, err = Project(h, 10)
	assert.Error(t, err)
	_, err = Project(h, -1)
	assert.Error(t, err)
	_, err = Curve(h, res.Radii[:5])
	assert.Error(t, err)
}

func TestLoadMissing(t *testing.T) {
	t.Run("histogram", func(t *testing.T) {
		fname := filepath.Join(t.TempDir(), "partial.root")
		f, err := groot.Create(fname)
		require.NoError(t, err)
		require.NoError(t, f.Put(jetsweep.RadiiKey, rbase.NewObjString("0.10,0.20")))
		require.NoError(t, f.Close())

		_, err = Load(fname)
		var missing *MissingError
		require.True(t, errors.As(err, &missing), "got %v", err)
		assert.Equal(t, jetsweep.HistName(jetsweep.AntiKt, jetsweep.NJets), missing.Key)
		assert.Contains(t, err.Error(), "antiktnjets")
	})

	t.Run("radius labels", func(t *testing.T) {
		fname := filepath.Join(t.TempDir(), "empty.root")
		f, err := groot.Create(fname)
		require.NoError(t, err)
		require.NoError(t, f.Close())

		_, err = Load(fname)
		var missing *MissingError
		require.True(t, errors.As(err, &missing), "got %v", err)
		assert.Equal(t, jetsweep.RadiiKey, missing.Key)
	})

	t.Run("file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.root"))
		require.Error(t, err)
		var missing *MissingError
		assert.False(t, errors.As(err, &missing))
	})
}

func TestRenderAllIsReproducible(t *testing.T) {
	fname, _ := writeSweep(t)
	res, err := Load(fname)
	require.NoError(t, err)

	dir1, dir2 := t.TempDir(), t.TempDir()
	files1, err := RenderAll(res, Options{OutDir: dir1, Ref: 7, Ext: "png"})
	require.NoError(t, err)
	files2, err := RenderAll(res, Options{OutDir: dir2, Ref: 7, Ext: "png"})
	require.NoError(t, err)
	require.Len(t, files1, 2*len(Plots))
	require.Len(t, files2, len(files1))

	for i := range files1 {
		assert.Equal(t, filepath.Base(files1[i]), filepath.Base(files2[i]))
		b1, err := os.ReadFile(files1[i])
		require.NoError(t, err)
		b2, err := os.ReadFile(files2[i])
		require.NoError(t, err)
		assert.True(t, bytes.Equal(b1, b2), "%s differs between runs", filepath.Base(files1[i]))
	}
	assert.FileExists(t, filepath.Join(dir1, "njetbase.png"))
	assert.FileExists(t, filepath.Join(dir1, "njetrad.png"))
	assert.FileExists(t, filepath.Join(dir1, "arearad.png"))

	_, err = RenderAll(res, Options{OutDir: t.TempDir(), Ref: 10, Ext: "png"})
	assert.Error(t, err)
}

func TestWriteHTML(t *testing.T) {
	fname, _ := writeSweep(t)
	res, err := Load(fname)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, res))
	html := buf.String()
	for _, spec := range Plots {
		assert.Contains(t, html, spec.RadTitle)
	}
	assert.Contains(t, html, "Cambridge-Aachen")
}

func TestRenderHeatMap(t *testing.T) {
	fname, _ := writeSweep(t)
	res, err := Load(fname)
	require.NoError(t, err)

	h := res.Hist(jetsweep.SISCone, jetsweep.DeltaR)
	grid, err := NewRadiusGrid(h, res.Radii)
	require.NoError(t, err)
	nx, ny := grid.Dims()
	for i := 0; i < nx; i++ {
		sum := 0.0
		for j := 0; j < ny; j++ {
			sum += grid.Z(i, j)
		}
		assert.InDelta(t, 1, sum, 1e-12)
		assert.Equal(t, res.Radii[i], grid.X(i))
	}

	var buf bytes.Buffer
	require.NoError(t, RenderHeatMap(&buf, h, res.Radii, "Delta R - SISCone", "Delta R"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	_, err = NewRadiusGrid(h, res.Radii[:3])
	assert.Error(t, err)
}
