package jet

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"go-hep.org/x/hep/fmom"
)

// The cone algorithm follows the seedless infrared-safe cone construction:
// every distinct cone content is enumerated from the circles of radius R
// through pairs of particles, stable cones are kept, further passes run on
// the particles left outside any stable cone, and overlapping stable cones
// are resolved by a split-merge step.

const (
	maxConePasses     = 1000
	maxSplitMergeIter = 100000
)

type conePoint struct {
	y, phi float64
}

// protojet is a set of particle indices, kept sorted, and its axis.
type protojet struct {
	members []int
	p       fmom.PxPyPzE
	y, phi  float64
}

func newProtojet(particles []Particle, members []int) *protojet {
	pj := &protojet{members: members}
	pj.update(particles)
	return pj
}

func (pj *protojet) update(particles []Particle) {
	pj.p = fmom.PxPyPzE{}
	for _, i := range pj.members {
		addMomentum(&pj.p, &particles[i].PxPyPzE)
	}
	pj.y = Rapidity(&pj.p)
	pj.phi = pj.p.Phi()
}

func (pj *protojet) pt() float64 { return pj.p.Pt() }

func (pj *protojet) key() string { return setKey(pj.members) }

func setKey(set []int) string {
	var sb strings.Builder
	for _, i := range set {
		sb.WriteString(strconv.Itoa(i))
		sb.WriteByte(',')
	}
	return sb.String()
}

func clusterCone(particles []Particle, def Definition, area *GhostedArea) []Jet {
	points := make([]conePoint, len(particles))
	active := make([]int, 0, len(particles))
	for i := range particles {
		p := &particles[i]
		points[i] = conePoint{y: Rapidity(&p.PxPyPzE), phi: p.Phi()}
		if p.Pt() > 0 {
			active = append(active, i)
		}
	}

	var protos []*protojet
	for pass := 0; len(active) > 0 && pass < maxConePasses; pass++ {
		cones := stableCones(particles, points, active, def.R)
		if len(cones) == 0 {
			break
		}
		used := make(map[int]bool)
		for _, c := range cones {
			protos = append(protos, newProtojet(particles, c))
			for _, i := range c {
				used[i] = true
			}
		}
		remaining := active[:0]
		for _, i := range active {
			if !used[i] {
				remaining = append(remaining, i)
			}
		}
		active = remaining
	}

	final := splitMerge(particles, points, protos, def.OverlapThreshold)

	jets := make([]Jet, len(final))
	for k, pj := range final {
		consts := make([]Particle, len(pj.members))
		for m, i := range pj.members {
			consts[m] = particles[i]
		}
		jets[k] = Jet{PxPyPzE: pj.p, Constituents: consts}
	}
	if area != nil {
		area.assign(jets, def.R)
	}
	return jets
}

// stableCones returns the contents of every stable cone of radius r among
// the active particles. A cone is stable when the particles within r of
// the axis of its content are exactly that content.
func stableCones(particles []Particle, points []conePoint, active []int, r float64) [][]int {
	r2 := r * r
	seen := make(map[string]bool)
	var cones [][]int

	within := func(y, phi float64, skip1, skip2 int) []int {
		var content []int
		for _, i := range active {
			if i == skip1 || i == skip2 {
				continue
			}
			if dist2(points[i].y, points[i].phi, y, phi) <= r2 {
				content = append(content, i)
			}
		}
		return content
	}

	try := func(content []int) {
		if len(content) == 0 {
			return
		}
		key := setKey(content)
		if seen[key] {
			return
		}
		seen[key] = true

		pj := newProtojet(particles, content)
		if setKey(within(pj.y, pj.phi, -1, -1)) == key {
			cones = append(cones, content)
		}
	}

	for a, i := range active {
		try(within(points[i].y, points[i].phi, -1, -1))

		for _, j := range active[a+1:] {
			dy := points[j].y - points[i].y
			dphi := DeltaPhi(points[j].phi, points[i].phi)
			d2 := dy*dy + dphi*dphi
			if d2 == 0 || d2 > 4*r2 {
				continue
			}

			h := math.Sqrt(r2/d2 - 0.25)
			my, mphi := points[i].y+dy/2, points[i].phi+dphi/2
			for _, s := range [2]float64{1, -1} {
				cy, cphi := my-s*h*dphi, mphi+s*h*dy
				base := within(cy, cphi, i, j)
				// i and j sit on the circle; enumerate both sides of it.
				try(withMembers(base))
				try(withMembers(base, i))
				try(withMembers(base, j))
				try(withMembers(base, i, j))
			}
		}
	}
	return cones
}

func withMembers(base []int, extra ...int) []int {
	set := make([]int, 0, len(base)+len(extra))
	set = append(set, base...)
	set = append(set, extra...)
	sort.Ints(set)
	return set
}

// splitMerge resolves overlaps between protojets. The hardest protojet is
// compared with the next hardest one sharing particles with it: if the
// shared transverse momentum exceeds f times that of the softer one, the
// two merge; otherwise each shared particle goes to the nearer axis. A
// protojet overlapping nothing becomes a jet.
func splitMerge(particles []Particle, points []conePoint, protos []*protojet, f float64) []*protojet {
	var jets []*protojet
	protos = dedupe(protos)
	for iter := 0; len(protos) > 0; iter++ {
		if iter >= maxSplitMergeIter {
			Logf("jet: split-merge did not converge, keeping %d overlapping protojets", len(protos))
			return append(jets, protos...)
		}

		sort.SliceStable(protos, func(a, b int) bool {
			return protos[a].pt() > protos[b].pt()
		})

		j1 := protos[0]
		k := -1
		var shared []int
		for i := 1; i < len(protos); i++ {
			if shared = intersect(j1.members, protos[i].members); len(shared) > 0 {
				k = i
				break
			}
		}
		if k < 0 {
			jets = append(jets, j1)
			protos = protos[1:]
			continue
		}

		j2 := protos[k]
		overlap := newProtojet(particles, shared)
		if overlap.pt() > f*j2.pt() {
			j1.members = union(j1.members, j2.members)
			j1.update(particles)
			protos = append(protos[:k], protos[k+1:]...)
		} else {
			var lose1, lose2 []int
			for _, i := range shared {
				d1 := dist2(points[i].y, points[i].phi, j1.y, j1.phi)
				d2 := dist2(points[i].y, points[i].phi, j2.y, j2.phi)
				if d1 < d2 {
					lose2 = append(lose2, i)
				} else {
					lose1 = append(lose1, i)
				}
			}
			j1.members = difference(j1.members, lose1)
			j2.members = difference(j2.members, lose2)
			j1.update(particles)
			j2.update(particles)
		}
		protos = dedupe(protos)
	}
	return jets
}

// dedupe drops empty protojets and protojets with identical content.
func dedupe(protos []*protojet) []*protojet {
	seen := make(map[string]bool, len(protos))
	out := protos[:0]
	for _, pj := range protos {
		if len(pj.members) == 0 {
			continue
		}
		key := pj.key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, pj)
	}
	return out
}

func intersect(a, b []int) []int {
	var out []int
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func union(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

func difference(a, b []int) []int {
	if len(b) == 0 {
		return a
	}
	out := make([]int, 0, len(a))
	for i, j := 0, 0; i < len(a); i++ {
		for j < len(b) && b[j] < a[i] {
			j++
		}
		if j < len(b) && b[j] == a[i] {
			continue
		}
		out = append(out, a[i])
	}
	return out
}
