package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/fmom"
	"go-hep.org/x/hep/hepmc"
)

func TestFromHepMC(t *testing.T) {
	evt := hepmc.Event{
		Particles: map[int]*hepmc.Particle{
			1: {Barcode: 1, PdgID: 2212, Status: 4, Momentum: fmom.NewPxPyPzE(0, 0, 6500, 6500)},
			2: {Barcode: 2, PdgID: 2212, Status: 4, Momentum: fmom.NewPxPyPzE(0, 0, -6500, 6500)},
			3: {Barcode: 3, PdgID: 21, Status: 21, Momentum: fmom.NewPxPyPzE(0, 0, 300, 300)},
			4: {Barcode: 4, PdgID: 21, Status: 21, Momentum: fmom.NewPxPyPzE(0, 0, -300, 300)},
			5: {Barcode: 5, PdgID: 2, Status: 23, Momentum: fmom.NewPxPyPzE(250, 0, 0, 250)},
			6: {Barcode: 6, PdgID: -2, Status: 23, Momentum: fmom.NewPxPyPzE(-250, 0, 0, 250)},
			9: {Barcode: 9, PdgID: 211, Status: 1, Momentum: fmom.NewPxPyPzE(10, 1, 2, 11)},
			7: {Barcode: 7, PdgID: 14, Status: 1, Momentum: fmom.NewPxPyPzE(1, 1, 1, 2)},
		},
	}

	rec := FromHepMC(&evt, nil)
	require.Len(t, rec, 9)
	assert.Equal(t, StatusSystem, rec[0].Status)
	assert.Equal(t, -4, rec[1].Status)
	assert.Equal(t, StatusHardOutgoing, rec[5].Status)
	assert.Equal(t, StatusHardOutgoing, rec[6].Status)
	assert.InDelta(t, 2./3, rec[5].Charge, 1e-6)

	// barcodes 7 and 9 are compacted to indices 7 and 8
	assert.Equal(t, 14, rec[7].ID)
	assert.True(t, rec[7].IsFinal())
	assert.False(t, rec[7].IsVisible())
	assert.Equal(t, 211, rec[8].ID)
	assert.InDelta(t, 1, rec[8].Charge, 1e-12)
}

func TestHepMCSource(t *testing.T) {
	var h HepMC
	require.Error(t, h.Init())
	_, err := h.Next()
	require.Error(t, err)

	require.NoError(t, h.ReadString("HepMC:file = /does/not/exist.hepmc"))
	assert.Equal(t, "/does/not/exist.hepmc", h.File)
	require.Error(t, h.Init())
	require.Error(t, h.ReadString("Beams:eCM = 13000"))
	require.NoError(t, h.Close())
}
