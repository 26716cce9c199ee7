package register

import(
	"fmt"

	"github.com/abworrall/ereg/pkg/eimage"
	"github.com/abworrall/ereg/pkg/emath"
)

// A Displacement is a translation, in pixels. +DX is right, +DY is down.
type Displacement struct {
	DX, DY float64
}

func (d Displacement)String() string                   { return fmt.Sprintf("(%.2f,%.2f)", d.DX, d.DY) }
func (d Displacement)Add(d2 Displacement) Displacement { return Displacement{d.DX + d2.DX, d.DY + d2.DY} }
func (d Displacement)Scale(f float64) Displacement     { return Displacement{d.DX * f, d.DY * f} }
func (d Displacement)SquaredLength() float64           { return d.DX*d.DX + d.DY*d.DY }
func (d Displacement)IsZero() bool                     { return d.SquaredLength() == 0 }

// Round returns the nearest whole-pixel displacement.
func (d Displacement)Round() (int, int) { return emath.RoundInt(d.DX), emath.RoundInt(d.DY) }

// EstimateTranslation finds the whole-pixel shift that best maps the
// source channel onto the target channel. Both must be the same size.
// Shifts are only recoverable up to half the image size in each
// direction; bigger ones wrap around and come back with the wrong sign.
func (r *Registrar)EstimateTranslation(source eimage.Image, sourceChannel int, target eimage.Image, targetChannel int) (Displacement, error) {
	src, tgt := source.Channel(sourceChannel), target.Channel(targetChannel)
	if !src.SameSize(tgt) {
		return Displacement{}, dimensionMismatch(src, tgt)
	}

	surface := r.Correlate(src, tgt)
	r.dump("translation-surface", surface)

	i := peak(surface, surface.Len())
	w, h := surface.Dx(), surface.Dy()
	peakX, peakY := unwrap(i % w, w), unwrap(i / w, h)

	// The peak sits at minus the shift
	d := Displacement{DX: float64(-peakX), DY: float64(-peakY)}

	r.Logger.Debugw("translation estimate", "source", sourceChannel, "target", targetChannel, "shift", d.String(), "peak", surface.Get(i % w, i / w))
	return d, nil
}
