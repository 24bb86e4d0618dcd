package jetsweep

import (
	"fmt"
	"strconv"
	"strings"
)

// RadiusFlags collects jet radii from a repeatable flag. The first Set
// discards the defaults. Radii must be positive and strictly ascending.
type RadiusFlags struct {
	Radii   []float64
	beenSet bool
}

// DefaultRadii returns n radii spaced by step, starting at step.
func DefaultRadii(step float64, n int) []float64 {
	radii := make([]float64, n)
	for i := range radii {
		radii[i] = step * float64(i+1)
	}
	return radii
}

func (f *RadiusFlags) Set(valueStr string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Radii = nil
	}

	for _, field := range strings.Split(valueStr, ",") {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return err
		}
		if value <= 0 {
			return fmt.Errorf("radius must be positive, got %v", value)
		}
		if n := len(f.Radii); n > 0 && value <= f.Radii[n-1] {
			return fmt.Errorf("radii must be ascending, %v follows %v", value, f.Radii[n-1])
		}
		f.Radii = append(f.Radii, value)
	}
	return nil
}

func (f *RadiusFlags) String() string {
	return strings.Join(RadiusLabels(f.Radii), ",")
}
