package jet

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSelectors(t *testing.T) {
	jets := []Jet{
		{PxPyPzE: masslessPtEtaPhi(0.5, 0, 0).PxPyPzE},
		{PxPyPzE: masslessPtEtaPhi(30, 1, 1).PxPyPzE},
		{PxPyPzE: NewParticle(1, 0, 0, 1, 0).PxPyPzE},
		{PxPyPzE: masslessPtEtaPhi(80, 0.5, -1).PxPyPzE},
	}

	sel := SortedByPt(SelectPtMin(1).Apply(jets))
	var pts []float64
	for i := range sel {
		pts = append(pts, math.Round(sel[i].Pt()*1e6)/1e6)
	}
	if diff := cmp.Diff([]float64{80, 30, 1}, pts); diff != "" {
		t.Fatalf("selected jets (-want +got):\n%s", diff)
	}
	assert.Len(t, jets, 4)
	assert.Empty(t, SelectPtMin(100).Apply(jets))
}

func TestRapidityAndDeltaPhi(t *testing.T) {
	p := masslessPtEtaPhi(10, 1.5, 0.3)
	assert.InDelta(t, 1.5, Rapidity(&p.PxPyPzE), 1e-9)

	beam := NewParticle(0, 0, 10, 10, 0)
	assert.Equal(t, maxRapidity, Rapidity(&beam.PxPyPzE))
	beam = NewParticle(0, 0, -10, 10, 0)
	assert.Equal(t, -maxRapidity, Rapidity(&beam.PxPyPzE))

	assert.InDelta(t, -0.2, DeltaPhi(math.Pi-0.1, -math.Pi+0.1), 1e-12)
	assert.InDelta(t, 0.2, DeltaPhi(-math.Pi+0.1, math.Pi-0.1), 1e-12)
	assert.InDelta(t, 0.5, DeltaPhi(1, 0.5), 1e-12)
}

func TestSetOperations(t *testing.T) {
	a := []int{1, 3, 5, 7}
	b := []int{3, 4, 7, 9}
	assert.Equal(t, []int{3, 7}, intersect(a, b))
	assert.Equal(t, []int{1, 3, 4, 5, 7, 9}, union(a, b))
	assert.Equal(t, []int{1, 5}, difference(a, []int{3, 7}))
	assert.Equal(t, []int{1, 3, 5, 7}, difference(a, nil))
	assert.Nil(t, intersect(a, []int{2, 4}))
}

func TestAddMomentum(t *testing.T) {
	sum := NewParticle(1, 2, 3, 10, 0).PxPyPzE
	p := NewParticle(-0.5, 4, -1, 5, 0).PxPyPzE
	addMomentum(&sum, &p)
	assert.Equal(t, NewParticle(0.5, 6, 2, 15, 0).PxPyPzE, sum)
}
