package emath

import "math"

// Some functions that only operate on basic types, that are useful

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// `f` is assumed to be in the range [0,1]
func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

// Center is the geometric center of a w x h raster, in pixel
// coordinates (pixel [0,0] is centered on 0.0,0.0). Rotations and
// log-polar sampling all pivot about this point.
func Center(w, h int) (float64, float64) {
	return float64(w-1) / 2.0, float64(h-1) / 2.0
}

// RoundInt rounds half away from zero.
func RoundInt(f float64) int { return int(math.Round(f)) }

func AbsInt(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// FloorDiv is integer division rounding towards -Inf, so that splitting
// a negative size delta in half still centers things.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
