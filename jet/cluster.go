package jet

import (
	"fmt"

	"github.com/decibelcooper/jetsweep"
	"go-hep.org/x/hep/fastjet"
	"go-hep.org/x/hep/fmom"
)

// ClusterSequence holds the result of clustering one set of particles.
type ClusterSequence struct {
	def  Definition
	jets []Jet
}

// Cluster runs the algorithm of def over particles. When area is not nil,
// jet areas are measured with its ghosts.
func Cluster(particles []Particle, def Definition, area *GhostedArea) (*ClusterSequence, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	var (
		jets []Jet
		err  error
	)
	switch def.Algorithm {
	case jetsweep.SISCone:
		jets = clusterCone(particles, def, area)
	default:
		jets, err = clusterSequential(particles, def, area)
	}
	if err != nil {
		return nil, err
	}
	return &ClusterSequence{def: def, jets: jets}, nil
}

// Definition returns the definition the sequence was clustered with.
func (cs *ClusterSequence) Definition() Definition { return cs.def }

// InclusiveJets returns every jet found, unsorted and without a pT cut.
func (cs *ClusterSequence) InclusiveJets() []Jet { return cs.jets }

func fastjetAlgorithm(alg jetsweep.Algorithm) fastjet.JetAlgorithm {
	switch alg {
	case jetsweep.Kt:
		return fastjet.KtAlgorithm
	case jetsweep.CambridgeAachen:
		return fastjet.CambridgeAlgorithm
	}
	return fastjet.AntiKtAlgorithm
}

// clusterSequential runs go-hep fastjet over the real particles only. Its
// plain strategy recombines in O(N³), which is fine for an event but not
// for thousands of ghosts, so areas are assigned passively afterwards.
func clusterSequential(particles []Particle, def Definition, area *GhostedArea) ([]Jet, error) {
	inputs := make([]fastjet.Jet, 0, len(particles))

	// constituents come back as copies of the inputs; map them back to
	// the particles through their momenta.
	index := make(map[fmom.PxPyPzE][]int, len(particles))
	for i := range particles {
		p := &particles[i]
		inputs = append(inputs, fastjet.NewJet(p.Px(), p.Py(), p.Pz(), p.E()))
		index[p.PxPyPzE] = append(index[p.PxPyPzE], i)
	}
	if len(inputs) == 0 {
		return nil, nil
	}

	fjdef := fastjet.NewJetDefinition(
		fastjetAlgorithm(def.Algorithm), def.R,
		fastjet.EScheme, fastjet.N2PlainStrategy,
	)
	cs, err := fastjet.NewClusterSequence(inputs, fjdef)
	if err != nil {
		return nil, fmt.Errorf("could not cluster %d particles with %v: %w", len(particles), def, err)
	}
	fjets, err := cs.InclusiveJets(0)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve jets for %v: %w", def, err)
	}

	jets := make([]Jet, 0, len(fjets))
	for i := range fjets {
		fj := &fjets[i]
		var consts []Particle
		for _, c := range fj.Constituents() {
			idx := index[c.PxPyPzE]
			if len(idx) == 0 {
				return nil, fmt.Errorf("jet: constituent %v of %v matches no input particle", c.PxPyPzE, def)
			}
			consts = append(consts, particles[idx[0]])
			index[c.PxPyPzE] = idx[1:]
		}
		jets = append(jets, Jet{PxPyPzE: fj.PxPyPzE, Constituents: consts})
	}
	if area != nil {
		area.assign(jets, def.R)
	}
	return jets, nil
}
