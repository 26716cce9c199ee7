package resample

import(
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/abworrall/ereg/pkg/emath"
)

// Imaging hands rotation to github.com/disintegration/imaging. It works
// at 8 bits per channel, so it's only good for previews; it pivots about
// its own idea of the center, which can be half a pixel off ours. Don't
// use it to apply registration corrections; see PreviewOnly.
type Imaging struct{ canvasOps }

func (Imaging)Rotate(g emath.FloatGrid, theta float64) emath.FloatGrid {
	if theta == 0 {
		return g.Copy()
	}

	codec := newGrayCodec(g)
	bg := color.Gray16{codec.encode(0)}

	// imaging.Rotate turns positive angles counter-clockwise on screen, which is our negative
	out := imaging.Rotate(codec.toGray16(g), -theta * 180.0 / math.Pi, bg)
	return codec.fromImage(out)
}
