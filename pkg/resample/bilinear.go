package resample

import(
	"math"

	"github.com/abworrall/ereg/pkg/emath"
)

// Bilinear works directly on the float values, so it loses nothing to
// quantization. It is the default.
type Bilinear struct{ canvasOps }

func (Bilinear)Rotate(g emath.FloatGrid, theta float64) emath.FloatGrid {
	if theta == 0 {
		return g.Copy()
	}

	dw, dh := RotatedSize(g.Dx(), g.Dy(), theta)
	inv, err := rotationXForm(g.Dx(), g.Dy(), dw, dh, theta).Invert()
	if err != nil {
		panic(err) // a rotation is never singular
	}

	// Walk the destination, pulling each pixel from where it came from in the source
	out := emath.NewFloatGrid(dw, dh)
	for y:=0; y<dh; y++ {
		for x:=0; x<dw; x++ {
			sx, sy := inv.Apply(float64(x), float64(y))
			out.Set(x, y, sampleEdge(g, sx, sy))
		}
	}
	return out
}

const edgeSlack = 1e-6

// sampleEdge is bilinear interpolation that, unlike FloatGrid.Bilinear,
// is happy all the way out to the edge pixels. Outside the grid is 0.
func sampleEdge(g emath.FloatGrid, x, y float64) float64 {
	w, h := g.Dx(), g.Dy()
	if x < -edgeSlack || y < -edgeSlack || x > float64(w-1)+edgeSlack || y > float64(h-1)+edgeSlack {
		return 0
	}
	x = math.Max(0, math.Min(x, float64(w-1)))
	y = math.Max(0, math.Min(y, float64(h-1)))

	x0, y0 := int(x), int(y)
	x1, y1 := min(x0+1, w-1), min(y0+1, h-1)
	fx, fy := x - float64(x0), y - float64(y0)

	top := g.Get(x0,y0)*(1-fx) + g.Get(x1,y0)*fx
	bot := g.Get(x0,y1)*(1-fx) + g.Get(x1,y1)*fx
	return top*(1-fy) + bot*fy
}
