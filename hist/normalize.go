package hist

import (
	"errors"
	"fmt"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/floats"
)

// ErrEmptyRange is returned when the normalization range holds no mixed-event
// counts.
var ErrEmptyRange = errors.New("empty normalization range")

// Subtraction is the outcome of scaling a mixed-event background to a
// same-event distribution.
type Subtraction struct {
	Scale      float64
	Background *hbook.H1D
	Signal     *hbook.H1D
}

func sumRange(h *hbook.H1D, lo, hi float64) float64 {
	var ws []float64
	for _, b := range h.Binning.Bins {
		if x := b.XMid(); x >= lo && x < hi {
			ws = append(ws, b.SumW())
		}
	}
	return floats.Sum(ws)
}

// Subtract scales me so that its integral over [lo, hi) matches se, and
// returns the scaled background together with se minus it. se and me must
// share the same binning.
func Subtract(se, me *hbook.H1D, lo, hi float64) (Subtraction, error) {
	if se.Len() != me.Len() || se.XMin() != me.XMin() || se.XMax() != me.XMax() {
		return Subtraction{}, fmt.Errorf("incompatible binnings: %d bins [%v, %v) vs %d bins [%v, %v)",
			se.Len(), se.XMin(), se.XMax(), me.Len(), me.XMin(), me.XMax(),
		)
	}

	den := sumRange(me, lo, hi)
	if den == 0 {
		return Subtraction{}, fmt.Errorf("%w: [%v, %v)", ErrEmptyRange, lo, hi)
	}
	scale := sumRange(se, lo, hi) / den

	bkg := hbook.NewH1D(me.Len(), me.XMin(), me.XMax())
	bkg.Ann["name"] = me.Name() + "_scaled"
	sig := hbook.NewH1D(se.Len(), se.XMin(), se.XMax())
	sig.Ann["name"] = se.Name() + "_signal"

	for i, b := range me.Binning.Bins {
		x := b.XMid()
		w := scale * b.SumW()
		if w != 0 {
			bkg.Fill(x, w)
		}
		if d := se.Binning.Bins[i].SumW() - w; d != 0 {
			sig.Fill(x, d)
		}
	}
	return Subtraction{Scale: scale, Background: bkg, Signal: sig}, nil
}
