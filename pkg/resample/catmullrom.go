package resample

import(
	"image"
	"image/color"

	"golang.org/x/image/draw"      // replace by "image/draw" at some point
	"golang.org/x/image/math/f64"  // replace by "image/math/f64" at some point

	"github.com/abworrall/ereg/pkg/emath"
)

// CatmullRom rotates with the Catmull-Rom kernel from x/image/draw;
// sharper than Bilinear, at the cost of 16-bit quantization.
type CatmullRom struct{ canvasOps }

func (CatmullRom)Rotate(g emath.FloatGrid, theta float64) emath.FloatGrid {
	if theta == 0 {
		return g.Copy()
	}

	dw, dh := RotatedSize(g.Dx(), g.Dy(), theta)
	codec := newGrayCodec(g)
	src := codec.toGray16(g)

	// Transform leaves pixels it can't map alone, so paint the canvas with zero first
	dst := image.NewGray16(image.Rect(0, 0, dw, dh))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Gray16{codec.encode(0)}), image.Point{}, draw.Src)

	// x/image/draw puts pixel centers at +0.5, we put them on the integers
	s2d := emath.Identity().Translate(0.5, 0.5).Mult(rotationXForm(g.Dx(), g.Dy(), dw, dh, theta)).Translate(-0.5, -0.5)
	draw.CatmullRom.Transform(dst, f64.Aff3(s2d), src, src.Bounds(), draw.Src, nil)

	return codec.fromImage(dst)
}
