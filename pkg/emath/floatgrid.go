package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
	"gonum.org/v1/gonum/floats"
)

// A FloatGrid is a grid of floats, stored row by row. It is the
// working representation of a single image channel; all the
// registration maths happens on these.
//
// The grid is backed by a slice, so copies of a FloatGrid share their
// values. Use Copy() if you need a grid you can scribble on.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

// NewFloatGridFromValues wraps `vals` (row-major, w*h long) without copying.
func NewFloatGridFromValues(w, h int, vals []float64) FloatGrid {
	if len(vals) != w*h {
		panic(fmt.Sprintf("NewFloatGridFromValues: %d values for a %dx%d grid", len(vals), w, h))
	}
	return FloatGrid{stride: w, values: vals}
}

func (g FloatGrid)NewFromThis() FloatGrid   { return NewFloatGrid(g.Dx(), g.Dy()) }
func (g FloatGrid)Set(x, y int, v float64)  { g.values[g.stride*y + x] = v }
func (g FloatGrid)Get(x, y int) float64     { return g.values[g.stride*y + x] }
func (g FloatGrid)Dx() int                  { return g.stride }
func (g FloatGrid)Values() []float64        { return g.values }
func (g FloatGrid)Bounds() image.Rectangle  { return image.Rect(0, 0, g.Dx(), g.Dy()) }
func (g FloatGrid)Len() int                 { return len(g.values) }

func (g FloatGrid)Dy() int {
	if g.stride == 0 {
		return 0
	}
	return len(g.values) / g.stride
}

func (g FloatGrid)SameSize(g2 FloatGrid) bool {
	return g.Dx() == g2.Dx() && g.Dy() == g2.Dy()
}

func (g FloatGrid)Copy() FloatGrid {
	g2 := FloatGrid{stride: g.stride, values:make([]float64, len(g.values))}
	copy(g2.values, g.values)
	return g2
}

func (g FloatGrid)Fill(v float64) {
	for i := range g.values {
		g.values[i] = v
	}
}

// Paste copies all of `src` into g, with src's origin landing at
// [x0,y0]. Anything that falls off the edge of g is dropped.
func (g FloatGrid)Paste(src FloatGrid, x0, y0 int) {
	for y:=0; y<src.Dy(); y++ {
		dy := y + y0
		if dy < 0 || dy >= g.Dy() { continue }

		// Clip the row, then copy it in one go
		xMin, xMax := 0, src.Dx()
		if x0 < 0           { xMin = -x0 }
		if x0+xMax > g.Dx() { xMax = g.Dx() - x0 }
		if xMin >= xMax     { continue }

		copy(g.values[dy*g.stride + x0 + xMin : dy*g.stride + x0 + xMax],
			src.values[y*src.stride + xMin : y*src.stride + xMax])
	}
}

// SubGrid returns a new grid holding the values inside `r`. Parts of
// `r` that lie outside g read as zero.
func (g FloatGrid)SubGrid(r image.Rectangle) FloatGrid {
	g2 := NewFloatGrid(r.Dx(), r.Dy())
	g2.Paste(g, -r.Min.X, -r.Min.Y)
	return g2
}

// Bilinear samples the grid at a fractional location. Any point within
// a pixel of the border reads as 0; we never extrapolate.
func (g FloatGrid)Bilinear(x, y float64) float64 {
	if x < 1 || y < 1 || x >= float64(g.Dx()-1) || y >= float64(g.Dy()-1) {
		return 0
	}

	x0, y0 := int(x), int(y)
	fx, fy := x - float64(x0), y - float64(y0)

	i := y0*g.stride + x0
	top := g.values[i]          *(1-fx) + g.values[i+1]          *fx
	bot := g.values[i+g.stride] *(1-fx) + g.values[i+g.stride+1] *fx
	return top*(1-fy) + bot*fy
}

// ArgMax returns the index of the largest value in values[lo:hi]. On
// ties, the first (lowest) index wins.
func (g FloatGrid)ArgMax(lo, hi int) int {
	return lo + floats.MaxIdx(g.values[lo:hi])
}

// ArgMaxWithin is ArgMax, but anything within rel*max(|v|) of the
// largest value counts as a tie, so the first of them wins. Round-off
// ripple on a flat surface then can't pull the answer away from lo.
func (g FloatGrid)ArgMaxWithin(lo, hi int, rel float64) int {
	vals := g.values[lo:hi]
	top := floats.Max(vals)
	tol := rel * math.Max(math.Abs(top), math.Abs(floats.Min(vals)))
	for i, v := range vals {
		if v >= top - tol {
			return lo + i
		}
	}
	return lo + floats.MaxIdx(vals)
}

// Sum adds up every value in the grid.
func (g FloatGrid)Sum() float64 { return floats.Sum(g.values) }

func (g FloatGrid)MinMax() (float64, float64) {
	if len(g.values) == 0 {
		return 0, 0
	}
	return floats.Min(g.values), floats.Max(g.values)
}

func (g FloatGrid)Stats() string {
	min, max := g.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", g.Dx(), g.Dy(), min, max)
}

// ToImg saves a simple grayscale, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision
func (g FloatGrid)ToImg(title, filename string) error {
	min, max := g.MinMax()
	span := max - min
	if span == 0 || math.IsNaN(span) {
		span = 1.0
	}

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{g.Dx(), g.Dy()}})
	for x:=0; x<g.Dx(); x++ {
		for y:=0; y<g.Dy(); y++ {
			gray := GammaExpand_F64((g.Get(x,y) - min) / span)
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,0.2,0.2)
	dc.DrawString(title, 10, 20)
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("ToImg '%s': %v", filename, err)
	}
	return nil
}
