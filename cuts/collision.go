package cuts

import (
	"math"

	"github.com/decibelcooper/ckstar/aod"
)

// SelectCollision requires the sel8 trigger flag and a z vertex inside the
// configured window.
func (s *Selector) SelectCollision(c aod.Collision) bool {
	return c.Sel8 && math.Abs(c.PosZ) < s.cuts.Event.ZVertexMax
}

// Multiplicity returns the configured estimator for c.
func (s *Selector) Multiplicity(c aod.Collision) float64 {
	return s.cuts.Estimator.Value(c)
}

func (e Estimator) Value(c aod.Collision) float64 {
	switch e {
	case FT0Sum:
		return c.MultZeqFT0A + c.MultZeqFT0C
	case CentFT0C:
		return c.CentFT0C
	case CentFT0M:
		return c.CentFT0M
	}
	return 0
}
