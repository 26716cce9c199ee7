package register

import(
	"math"

	"github.com/abworrall/ereg/pkg/efft"
	"github.com/abworrall/ereg/pkg/emath"
)

// Correlate returns the circular cross-correlation of two same-sized
// grids, computed as IFFT(F(a) . conj(F(b))). If b is a copy of a
// shifted by (dx,dy), the peak of the surface is at (-dx,-dy), modulo
// the grid size.
//
// With Options.NormalizeCrossPower, each frequency term is scaled to
// unit magnitude first (textbook phase correlation).
func (r *Registrar)Correlate(a, b emath.FloatGrid) emath.FloatGrid {
	if !a.SameSize(b) {
		panic(dimensionMismatch(a, b).Error())
	}

	rows, cols := a.Dy(), a.Dx()
	fa := efft.NewBuffer(a.Values())
	fb := efft.NewBuffer(b.Values())
	r.FFT.Forward(fa, rows, cols)
	r.FFT.Forward(fb, rows, cols)

	// fa = fa * conj(fb)
	maxMag := 0.0
	for i := 0; i < len(fa); i += 2 {
		ar, ai, br, bi := fa[i], fa[i+1], fb[i], fb[i+1]
		re := ar*br + ai*bi
		im := ai*br - ar*bi
		fa[i], fa[i+1] = re, im
		maxMag = math.Max(maxMag, math.Hypot(re, im))
	}

	if r.NormalizeCrossPower {
		// Terms down at round-off level carry no signal; scaling them up
		// to unit magnitude would swamp the surface with noise.
		floor := maxMag * peakTolerance
		for i := 0; i < len(fa); i += 2 {
			mag := math.Hypot(fa[i], fa[i+1])
			if mag <= floor {
				fa[i], fa[i+1] = 0, 0
				continue
			}
			fa[i], fa[i+1] = fa[i]/mag, fa[i+1]/mag
		}
	}

	r.FFT.Inverse(fa, rows, cols)

	return emath.NewFloatGridFromValues(cols, rows, efft.RealPart(fa))
}

// Correlation peaks closer than this (relative to the surface's
// magnitude) to the maximum are ties. FFT round-off leaves ripple on
// surfaces that should be flat, e.g. from a uniform image.
const peakTolerance = 1e-9

// peak is the first index in [0,hi) that ties for the surface maximum.
func peak(surface emath.FloatGrid, hi int) int {
	return surface.ArgMaxWithin(0, hi, peakTolerance)
}

// unwrap maps a circular index in [0,n) to a signed offset; anything
// past halfway is treated as negative.
func unwrap(i, n int) int {
	if i > n/2 {
		return i - n
	}
	return i
}
