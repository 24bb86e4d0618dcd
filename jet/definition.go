package jet

import (
	"fmt"

	"github.com/decibelcooper/jetsweep"
)

// Definition selects a clustering algorithm and its parameters.
type Definition struct {
	Algorithm jetsweep.Algorithm
	R         float64
	// OverlapThreshold is the split-merge overlap fraction of the cone
	// algorithm. It is ignored by the others.
	OverlapThreshold float64
}

// Validate checks that the definition can be clustered.
func (def Definition) Validate() error {
	if !(def.R > 0) {
		return fmt.Errorf("jet: invalid radius %v", def.R)
	}
	switch def.Algorithm {
	case jetsweep.AntiKt, jetsweep.Kt, jetsweep.CambridgeAachen:
	case jetsweep.SISCone:
		if !(def.OverlapThreshold > 0 && def.OverlapThreshold < 1) {
			return fmt.Errorf("jet: invalid overlap threshold %v", def.OverlapThreshold)
		}
	default:
		return fmt.Errorf("jet: unknown algorithm %v", def.Algorithm)
	}
	return nil
}

func (def Definition) String() string {
	if def.Algorithm == jetsweep.SISCone {
		return fmt.Sprintf("%s R=%s f=%g", def.Algorithm.Title(), jetsweep.RadiusLabel(def.R), def.OverlapThreshold)
	}
	return fmt.Sprintf("%s R=%s", def.Algorithm.Title(), jetsweep.RadiusLabel(def.R))
}
