// Package resample has the pixel-level geometry that registration
// leans on: rotating a channel onto a grown canvas, resizing the canvas
// around an anchor, and cropping.
//
// Rotation angles are in radians; a positive angle turns +X towards +Y
// in image coords (so, counter-clockwise if your Y axis points up,
// clockwise as it appears on screen). Rotations pivot about
// emath.Center(), and the grown canvas is positioned so that cropping it
// at CenterOffset(delta) gives back a rotation about that same point.
package resample

import(
	"fmt"
	"image"
	"math"
	"sort"
	"strings"

	"github.com/abworrall/ereg/pkg/emath"
)

// Anchor says which edge of a canvas its content sticks to.
type Anchor int

const(
	AnchorStart  Anchor = iota // left, or top
	AnchorCenter
	AnchorEnd                  // right, or bottom
)

// Alignment positions old content on a resized canvas.
type Alignment struct {
	X, Y Anchor
}

var(
	TopLeft     = Alignment{AnchorStart, AnchorStart}
	Centered    = Alignment{AnchorCenter, AnchorCenter}
	BottomRight = Alignment{AnchorEnd, AnchorEnd}
)

func (a Anchor)offset(from, to int) int {
	switch a {
	case AnchorEnd:    return to - from
	case AnchorCenter: return emath.FloorDiv(to - from, 2)
	default:           return 0
	}
}

// CenterOffset is where a rotated canvas that grew by `delta` pixels
// needs cropping to put the pivot back where it was.
func CenterOffset(delta int) int { return emath.FloorDiv(delta, 2) }

// RotatedSize is the size of the axis-aligned box around a w x h
// raster once rotated by theta.
func RotatedSize(w, h int, theta float64) (int, int) {
	c, s := math.Abs(math.Cos(theta)), math.Abs(math.Sin(theta))
	fw, fh := float64(w)*c + float64(h)*s, float64(w)*s + float64(h)*c

	// Allow for rounding noise, e.g. cos(pi/2) isn't quite zero
	return int(math.Ceil(fw - 1e-6)), int(math.Ceil(fh - 1e-6))
}

// rotationXForm maps src pixel coords into the coords of a rotated
// canvas of size dw x dh.
func rotationXForm(sw, sh, dw, dh int, theta float64) emath.Aff3 {
	cx, cy := emath.Center(sw, sh)
	ox, oy := float64(CenterOffset(dw - sw)), float64(CenterOffset(dh - sh))
	return emath.Identity().Translate(cx+ox, cy+oy).Rotate(theta).Translate(-cx, -cy)
}

// canvasOps are the bits that are the same for every resampler.
type canvasOps struct{}

// Rescale resizes the canvas to w x h, without scaling; the old content
// is positioned per `align`, new areas are 0 and overhangs are cropped.
func (canvasOps)Rescale(g emath.FloatGrid, w, h int, align Alignment) emath.FloatGrid {
	out := emath.NewFloatGrid(w, h)
	out.Paste(g, align.X.offset(g.Dx(), w), align.Y.offset(g.Dy(), h))
	return out
}

func (canvasOps)Crop(g emath.FloatGrid, r image.Rectangle) emath.FloatGrid {
	return g.SubGrid(r)
}

// A Resampler does all three operations.
type Resampler interface {
	Rotate(g emath.FloatGrid, theta float64) emath.FloatGrid
	Rescale(g emath.FloatGrid, w, h int, align Alignment) emath.FloatGrid
	Crop(g emath.FloatGrid, r image.Rectangle) emath.FloatGrid
}

var registry = map[string]Resampler{
	"bilinear":   Bilinear{},
	"catmullrom": CatmullRom{},
	"imaging":    Imaging{},
}

// Get returns the resampler called `name`; the empty name gives Bilinear.
func Get(name string) (Resampler, error) {
	if name == "" {
		name = "bilinear"
	}
	if r, exists := registry[name]; exists {
		return r, nil
	}
	return nil, fmt.Errorf("no resampler named '%s' (have: %s)", name, List())
}

// PreviewOnly says whether the named resampler is too coarse to apply
// registration corrections with. Imaging quantizes to 8 bits and can
// pivot half a pixel off center, which can throw a rotation off by more
// than one angle bucket at the default resolution.
func PreviewOnly(name string) bool {
	_, isImaging := registry[name].(Imaging)
	return isImaging
}

func List() string {
	names := []string{}
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
