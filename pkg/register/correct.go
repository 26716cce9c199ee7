package register

import(
	"math"

	"github.com/pkg/errors"

	"github.com/abworrall/ereg/pkg/eimage"
)

// averageTranslation estimates each selected channel of img against the
// matching channel of ref, and averages the results.
func (r *Registrar)averageTranslation(img, ref eimage.Image, ch Channel) (Displacement, error) {
	lo, hi, err := ch.span(img)
	if err != nil {
		return Displacement{}, err
	}

	sum := Displacement{}
	for i := lo; i < hi; i++ {
		d, err := r.EstimateTranslation(img, i, ref, referenceChannel(i, ref))
		if err != nil {
			return Displacement{}, errors.Wrapf(err, "channel %d", i)
		}
		sum = sum.Add(d)
	}

	return sum.Scale(1.0 / float64(hi - lo)), nil
}

func (r *Registrar)averageRotation(img, ref eimage.Image, ch Channel, hint *Displacement) (float64, error) {
	lo, hi, err := ch.span(img)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for i := lo; i < hi; i++ {
		angle, err := r.EstimateRotation(img, i, ref, referenceChannel(i, ref), hint)
		if err != nil {
			return 0, errors.Wrapf(err, "channel %d", i)
		}
		sum += angle
	}

	return sum / float64(hi - lo), nil
}

// CorrectTranslation shifts img so that its selected channel(s) line up
// with ref. The shift is the plain average of the per-channel estimates.
// If that average is zero, img comes back untouched and changed is false.
func (r *Registrar)CorrectTranslation(img, ref eimage.Image, ch Channel) (bool, eimage.Image, error) {
	d, err := r.averageTranslation(img, ref, ch)
	if err != nil {
		return false, img, err
	}
	if d.IsZero() {
		return false, img, nil
	}

	r.Logger.Infow("correcting translation", "channel", ch.String(), "shift", d.String())
	return true, r.ApplyTranslation(img, ch, d, r.PreserveSize), nil
}

// CorrectRotation is the rotation counterpart of CorrectTranslation. The
// hint is passed through to EstimateRotation, for when img has already
// been grown by a translation.
func (r *Registrar)CorrectRotation(img, ref eimage.Image, ch Channel, hint *Displacement) (bool, eimage.Image, error) {
	angle, err := r.averageRotation(img, ref, ch, hint)
	if err != nil {
		return false, img, err
	}
	if angle == 0 {
		return false, img, nil
	}

	r.Logger.Infow("correcting rotation", "channel", ch.String(), "radians", angle, "degrees", angle * 180.0 / math.Pi)
	return true, r.ApplyRotation(img, ch, angle, r.PreserveSize), nil
}
