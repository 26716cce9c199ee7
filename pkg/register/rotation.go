package register

import(
	"math"

	"github.com/abworrall/ereg/pkg/eimage"
	"github.com/abworrall/ereg/pkg/emath"
	"github.com/abworrall/ereg/pkg/resample"
)

// EstimateRotation finds the angle (radians, about the image center)
// that best turns the source channel into the target channel. The
// answer is quantized to 2*pi/AngularResolution.
//
// If the images differ in size, the target is padded or cropped to the
// source's size; hint says which edges to keep. A positive hint.DX keeps
// the left edge, otherwise the right; a positive hint.DY keeps the top,
// otherwise the bottom. This is what undoes the canvas growth of an
// earlier ApplyTranslation. Without a hint, differing sizes are an
// ErrDimensionMismatch.
func (r *Registrar)EstimateRotation(source eimage.Image, sourceChannel int, target eimage.Image, targetChannel int, hint *Displacement) (float64, error) {
	src, tgt := source.Channel(sourceChannel), target.Channel(targetChannel)

	if !src.SameSize(tgt) {
		if hint == nil {
			return 0, dimensionMismatch(src, tgt)
		}
		tgt = r.Resampler.Rescale(tgt, src.Dx(), src.Dy(), hintAlignment(*hint))
		r.Logger.Debugw("rescaled rotation target", "hint", hint.String(), "size", tgt.Bounds().Size())
	}

	cx, cy := emath.Center(src.Dx(), src.Dy())
	lpSrc := ToLogPolar(src, cx, cy, r.AngularResolution, r.RadialResolution)
	lpTgt := ToLogPolar(tgt, cx, cy, r.AngularResolution, r.RadialResolution)
	r.dump("logpolar-source", lpSrc)
	r.dump("logpolar-target", lpTgt)

	surface := r.Correlate(lpSrc, lpTgt)
	r.dump("rotation-surface", surface)

	// Only the first half of the surface by default; see Options
	hi := surface.Len() / 2
	if r.SearchFullRotationSpace {
		hi = surface.Len()
	}
	i := peak(surface, hi)

	col := unwrap(i % r.AngularResolution, r.AngularResolution)
	angle := float64(-col) * 2.0 * math.Pi / float64(r.AngularResolution)

	r.Logger.Debugw("rotation estimate", "source", sourceChannel, "target", targetChannel,
		"radians", angle, "degrees", angle * 180.0 / math.Pi, "peak", surface.Values()[i])
	return angle, nil
}

func hintAlignment(hint Displacement) resample.Alignment {
	align := resample.Alignment{X: resample.AnchorEnd, Y: resample.AnchorEnd}
	if hint.DX > 0 {
		align.X = resample.AnchorStart
	}
	if hint.DY > 0 {
		align.Y = resample.AnchorStart
	}
	return align
}
