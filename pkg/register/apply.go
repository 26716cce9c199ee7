package register

import(
	"image"

	"github.com/abworrall/ereg/pkg/eimage"
	"github.com/abworrall/ereg/pkg/emath"
	"github.com/abworrall/ereg/pkg/resample"
)

// ApplyTranslation moves the selected channel(s) by v, rounded to whole
// pixels. The canvas grows by |dx| x |dy|; unselected channels are
// placed so that they stay put relative to the original frame, which
// lets one channel of an image be registered against another.
//
// With preserveSize, the result is cropped back to the input's size,
// keeping the original frame's origin.
//
// The input is never modified; a zero shift returns it as-is. A channel
// selector that matches nothing moves nothing, but still grows the canvas.
func (r *Registrar)ApplyTranslation(img eimage.Image, ch Channel, v Displacement, preserveSize bool) eimage.Image {
	dx, dy := v.Round()
	if dx == 0 && dy == 0 {
		return img
	}

	w, h := img.Width(), img.Height()
	out := eimage.New(w + emath.AbsInt(dx), h + emath.AbsInt(dy), img.NumChannels(), img.PixelType)

	for i, c := range img.Channels {
		if ch.selects(i) {
			out.Channels[i].Paste(c, max(dx, 0), max(dy, 0))
		} else {
			out.Channels[i].Paste(c, max(-dx, 0), max(-dy, 0))
		}
	}

	if preserveSize {
		x0, y0 := max(0, -dx), max(0, -dy)
		crop := image.Rect(x0, y0, x0+w, y0+h)
		for i := range out.Channels {
			out.Channels[i] = r.Resampler.Crop(out.Channels[i], crop)
		}
	}

	r.Logger.Debugw("applied translation", "channel", ch.String(), "dx", dx, "dy", dy, "size", out.Bounds().Size())
	return out
}

// ApplyRotation turns the selected channel(s) by angle radians about
// the image center. With preserveSize the rotated channels are cropped
// back to the input's size and the rest are left alone; otherwise every
// channel ends up on the rotated channel's grown canvas, with unselected
// channels centered on it.
func (r *Registrar)ApplyRotation(img eimage.Image, ch Channel, angle float64, preserveSize bool) eimage.Image {
	if angle == 0 {
		return img
	}

	w, h := img.Width(), img.Height()

	rotated := map[int]emath.FloatGrid{}
	for i, c := range img.Channels {
		if ch.selects(i) {
			rotated[i] = r.Resampler.Rotate(c, angle)
		}
	}
	if len(rotated) == 0 {
		return img
	}

	// All rotated channels are the same size, so any will do
	var grownW, grownH int
	for _, g := range rotated {
		grownW, grownH = g.Dx(), g.Dy()
		break
	}
	ox, oy := resample.CenterOffset(grownW - w), resample.CenterOffset(grownH - h)

	out := eimage.Image{Channels: make([]emath.FloatGrid, img.NumChannels()), PixelType: img.PixelType}
	for i, c := range img.Channels {
		g, isRotated := rotated[i]
		switch {
		case preserveSize && isRotated:
			out.Channels[i] = r.Resampler.Crop(g, image.Rect(ox, oy, ox+w, oy+h))
		case preserveSize:
			out.Channels[i] = c
		case isRotated:
			out.Channels[i] = g
		default:
			out.Channels[i] = r.Resampler.Rescale(c, grownW, grownH, resample.Centered)
		}
	}

	r.Logger.Debugw("applied rotation", "channel", ch.String(), "radians", angle, "size", out.Bounds().Size())
	return out
}
