package jetsweep

import (
	"fmt"
	"strconv"
	"strings"
)

// Observable names one quantity recorded per (algorithm, radius).
type Observable string

const (
	NJets       Observable = "njets"
	NPart       Observable = "npart"
	NPartLead   Observable = "npartlead"
	DeltaE      Observable = "deltaE"
	DeltaR      Observable = "deltaR"
	ClusterTime Observable = "clustertime"
	Area        Observable = "area"
	AreaLead    Observable = "arealead"
	PtLead      Observable = "ptlead"
	ELead       Observable = "elead"
	Eta         Observable = "eta"
	EtaLead     Observable = "etalead"
	Phi         Observable = "phi"
	PhiLead     Observable = "philead"
)

// Observables is the full set written for every algorithm.
var Observables = []Observable{
	NJets, NPart, NPartLead, DeltaE, DeltaR, ClusterTime, Area,
	AreaLead, PtLead, ELead, Eta, EtaLead, Phi, PhiLead,
}

// HistName is the key under which the (algorithm, observable) histogram is
// stored in the output file. Writer and reader both go through here.
func HistName(alg Algorithm, obs Observable) string {
	return alg.Name() + string(obs)
}

// RadiiKey names the record holding the radius axis labels.
const RadiiKey = "radii"

// LabelPrecision is the number of decimals in a radius label.
const LabelPrecision = 2

// RadiusLabel formats r as the label of its radius bin.
func RadiusLabel(r float64) string {
	return strconv.FormatFloat(r, 'f', LabelPrecision, 64)
}

// RadiusLabels formats every radius in radii.
func RadiusLabels(radii []float64) []string {
	labels := make([]string, len(radii))
	for i, r := range radii {
		labels[i] = RadiusLabel(r)
	}
	return labels
}

// JoinLabels encodes labels for storage as a single string.
func JoinLabels(labels []string) string {
	return strings.Join(labels, ",")
}

// ParseLabels decodes a string written by JoinLabels back into labels and
// the radii they denote.
func ParseLabels(s string) ([]string, []float64, error) {
	if s == "" {
		return nil, nil, fmt.Errorf("empty radius label record")
	}
	labels := strings.Split(s, ",")
	radii := make([]float64, len(labels))
	for i, l := range labels {
		r, err := strconv.ParseFloat(l, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid radius label %q: %w", l, err)
		}
		radii[i] = r
	}
	return labels, radii, nil
}
