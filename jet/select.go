package jet

import "sort"

// Selector reports whether a jet passes a selection.
type Selector func(j *Jet) bool

// SelectPtMin keeps jets with transverse momentum of at least ptmin.
func SelectPtMin(ptmin float64) Selector {
	return func(j *Jet) bool { return j.Pt() >= ptmin }
}

// Apply returns the jets passing the selection, in their original order.
func (sel Selector) Apply(jets []Jet) []Jet {
	out := make([]Jet, 0, len(jets))
	for i := range jets {
		if sel(&jets[i]) {
			out = append(out, jets[i])
		}
	}
	return out
}

// SortedByPt sorts jets by decreasing transverse momentum, in place, and
// returns them.
func SortedByPt(jets []Jet) []Jet {
	sort.SliceStable(jets, func(i, j int) bool {
		return jets[i].Pt() > jets[j].Pt()
	})
	return jets
}
