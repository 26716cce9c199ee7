package resample

import(
	"image"
	"image/color"
	"math"

	"github.com/abworrall/ereg/pkg/emath"
)

// The golang image libraries want integer pixels, so a grayCodec packs
// a channel's values into 16 bits, spread over the channel's range
// (stretched to include zero, so zero survives the round trip exactly
// for the usual non-negative data).
type grayCodec struct {
	lo    float64
	scale float64
}

func newGrayCodec(g emath.FloatGrid) grayCodec {
	lo, hi := g.MinMax()
	lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	if hi == lo {
		hi = lo + 1
	}
	return grayCodec{lo: lo, scale: (hi - lo) / 0xFFFF}
}

func (c grayCodec)encode(v float64) uint16 {
	u := math.Round((v - c.lo) / c.scale)
	if u < 0      { u = 0 }
	if u > 0xFFFF { u = 0xFFFF }
	return uint16(u)
}

func (c grayCodec)decode(u uint32) float64 { return c.lo + float64(u)*c.scale }

func (c grayCodec)toGray16(g emath.FloatGrid) *image.Gray16 {
	img := image.NewGray16(g.Bounds())
	for y:=0; y<g.Dy(); y++ {
		for x:=0; x<g.Dx(); x++ {
			img.SetGray16(x, y, color.Gray16{c.encode(g.Get(x,y))})
		}
	}
	return img
}

// fromImage reads the red channel back out (they're all gray anyway).
func (c grayCodec)fromImage(img image.Image) emath.FloatGrid {
	b := img.Bounds()
	g := emath.NewFloatGrid(b.Dx(), b.Dy())
	for y:=0; y<b.Dy(); y++ {
		for x:=0; x<b.Dx(); x++ {
			r,_,_,_ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			g.Set(x, y, c.decode(r))
		}
	}
	return g
}
