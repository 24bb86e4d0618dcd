package jetsweep

import "fmt"

// Algorithm is one of the jet clustering algorithms compared by the sweep.
type Algorithm uint8

const (
	AntiKt Algorithm = iota
	Kt
	CambridgeAachen
	SISCone
)

// Algorithms lists every algorithm in the order the sweep and the plots use.
var Algorithms = []Algorithm{AntiKt, Kt, CambridgeAachen, SISCone}

// Name is the short key used as a histogram name prefix.
func (a Algorithm) Name() string {
	switch a {
	case AntiKt:
		return "antikt"
	case Kt:
		return "kt"
	case CambridgeAachen:
		return "ca"
	case SISCone:
		return "sis"
	}
	return fmt.Sprintf("alg%d", uint8(a))
}

// Title is the human readable name used in plot legends and histogram titles.
func (a Algorithm) Title() string {
	switch a {
	case AntiKt:
		return "Anti-Kt"
	case Kt:
		return "Kt"
	case CambridgeAachen:
		return "Cambridge-Aachen"
	case SISCone:
		return "SISCone"
	}
	return a.Name()
}

func (a Algorithm) String() string {
	return a.Name()
}
