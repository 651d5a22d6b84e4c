package ckstar

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// eps absorbs the rounding of lo/step at bin edges such as 0.6/0.2.
const eps = 1e-9

// PreciseTicks places major ticks on round multiples of 1, 2, 3, 4, 5, 6 or 8
// times a power of ten. Labels carry as many decimals as the major spacing
// needs, so a mass axis reads 0.6, 0.8, 1.0 instead of mixing precisions.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(lo, hi float64) []plot.Tick {
	n := t.NSuggestedTicks
	if n == 0 {
		n = 4
	}
	if hi <= lo {
		panic("illegal range")
	}

	major, mult := majorStep(hi-lo, n)
	decimals := max(0, -int(math.Floor(math.Log10(major)+eps)))

	var ticks []plot.Tick
	for k := math.Ceil(lo/major - eps); k*major <= hi+eps*major; k++ {
		v := roundTo(k*major, decimals)
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', decimals, 64)})
	}

	minor := minorStep(major, mult)
	ratio := int(math.Round(major / minor))
	for k := math.Ceil(lo/minor - eps); k*minor <= hi+eps*minor; k++ {
		if int(k)%ratio == 0 {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: roundTo(k*minor, decimals+1)})
	}
	return ticks
}

// majorStep returns the spacing giving at least n-1 intervals over span,
// together with its leading digit.
func majorStep(span float64, n int) (float64, int) {
	tens := math.Pow10(int(math.Floor(math.Log10(span))))
	for span/tens < float64(n-1) {
		tens /= 10
	}
	mult := int(span / tens / float64(n-1))
	switch mult {
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	return float64(mult) * tens, mult
}

func minorStep(major float64, mult int) float64 {
	switch mult {
	case 3, 6:
		return major / 3
	case 5:
		return major / 5
	}
	return major / 2
}

func roundTo(x float64, decimals int) float64 {
	pow := math.Pow10(decimals)
	if r := math.Round(x*pow) / pow; r != 0 {
		return r
	}
	// no negative zero
	return 0
}

// LineColor is the color of the i-th curve of a plot.
func LineColor(i int) color.Color {
	switch i % 4 {
	case 1:
		return color.RGBA{G: 255, A: 255}
	case 2:
		return color.RGBA{B: 255, A: 255}
	case 3:
		return color.RGBA{R: 255, B: 127, G: 127, A: 255}
	}
	return color.RGBA{A: 255}
}
