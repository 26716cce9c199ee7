package register

import(
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abworrall/ereg/pkg/eimage"
	"github.com/abworrall/ereg/pkg/emath"
)

func newTestRegistrar(t *testing.T, tweaks ...func(*Options)) *Registrar {
	t.Helper()
	opts := NewOptions()
	for _, f := range tweaks {
		f(&opts)
	}
	r, err := NewRegistrar(opts, nil)
	require.NoError(t, err)
	return r
}

func lowRes(o *Options) {
	o.AngularResolution = 360
	o.RadialResolution = 120
}

func mono(g emath.FloatGrid) eimage.Image {
	return eimage.Image{Channels: []emath.FloatGrid{g}, PixelType: eimage.Float32}
}

func noiseGrid(w, h int, seed int64) emath.FloatGrid {
	rng := rand.New(rand.NewSource(seed))
	g := emath.NewFloatGrid(w, h)
	for i := range g.Values() {
		g.Values()[i] = rng.Float64()
	}
	return g
}

func blockGrid(w, h, cx, cy, size int, v float64) emath.FloatGrid {
	g := emath.NewFloatGrid(w, h)
	for y := cy - size/2; y < cy - size/2 + size; y++ {
		for x := cx - size/2; x < cx - size/2 + size; x++ {
			g.Set(x, y, v)
		}
	}
	return g
}

// circularShift moves every pixel by (dx,dy), wrapping around the edges.
func circularShift(g emath.FloatGrid, dx, dy int) emath.FloatGrid {
	w, h := g.Dx(), g.Dy()
	out := g.NewFromThis()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(((x+dx)%w + w) % w, ((y+dy)%h + h) % h, g.Get(x, y))
		}
	}
	return out
}

type blob struct {
	x, y, sigma, amp float64
}

var testBlobs = []blob{
	{ 18,   0, 5, 1.0},
	{-12,  20, 4, 0.7},
	{ -8, -25, 6, 0.5},
	{ 30,  16, 3, 0.9},
	{  4,  -9, 4, 0.4},
}

// blobGrid renders testBlobs (offsets from the center) turned by theta
// about the center. Rendering analytically means the rotated version
// has no resampling error in it.
func blobGrid(w, h int, theta float64) emath.FloatGrid {
	cx, cy := emath.Center(w, h)
	c, s := math.Cos(theta), math.Sin(theta)
	g := emath.NewFloatGrid(w, h)

	for _, b := range testBlobs {
		bx, by := cx + c*b.x - s*b.y, cy + s*b.x + c*b.y
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				d2 := (float64(x)-bx)*(float64(x)-bx) + (float64(y)-by)*(float64(y)-by)
				g.Set(x, y, g.Get(x, y) + b.amp * math.Exp(-d2 / (2*b.sigma*b.sigma)))
			}
		}
	}
	return g
}
