package emath

import (
	"image"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampGrid(w, h int) FloatGrid {
	g := NewFloatGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, float64(y*w+x))
		}
	}
	return g
}

func TestFloatGrid_Dims(t *testing.T) {
	g := NewFloatGrid(7, 3)
	assert.Equal(t, 7, g.Dx())
	assert.Equal(t, 3, g.Dy())
	assert.Equal(t, image.Rect(0, 0, 7, 3), g.Bounds())

	var empty FloatGrid
	assert.Equal(t, 0, empty.Dy())
}

func TestFloatGrid_CopyIsIndependent(t *testing.T) {
	g := rampGrid(4, 4)
	g2 := g.Copy()
	g2.Set(1, 1, -1)
	assert.Equal(t, 5.0, g.Get(1, 1))

	alias := g
	alias.Set(1, 1, -1)
	assert.Equal(t, -1.0, g.Get(1, 1))
}

func TestFloatGrid_PasteClips(t *testing.T) {
	dst := NewFloatGrid(4, 3)
	src := NewFloatGrid(3, 3)
	src.Fill(9)

	dst.Paste(src, 2, 1)
	want := []float64{
		0, 0, 0, 0,
		0, 0, 9, 9,
		0, 0, 9, 9,
	}
	assert.Equal(t, want, dst.Values())

	dst = NewFloatGrid(4, 3)
	dst.Paste(src, -2, -2)
	want = []float64{
		9, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	assert.Equal(t, want, dst.Values())

	dst = NewFloatGrid(4, 3)
	dst.Paste(src, 10, 0)
	assert.Equal(t, 0.0, dst.Sum())
}

func TestFloatGrid_SubGrid(t *testing.T) {
	g := rampGrid(5, 4)

	sub := g.SubGrid(image.Rect(1, 2, 4, 4))
	require.Equal(t, 3, sub.Dx())
	require.Equal(t, 2, sub.Dy())
	assert.Equal(t, []float64{11, 12, 13, 16, 17, 18}, sub.Values())

	// Off the edge reads as zero
	sub = g.SubGrid(image.Rect(4, 3, 6, 5))
	assert.Equal(t, []float64{19, 0, 0, 0}, sub.Values())
}

func TestFloatGrid_Bilinear(t *testing.T) {
	g := rampGrid(6, 6)

	assert.InDelta(t, 14.0, g.Bilinear(2, 2), 1e-12)
	assert.InDelta(t, 14.5, g.Bilinear(2.5, 2), 1e-12)
	assert.InDelta(t, 17.0, g.Bilinear(2, 2.5), 1e-12)
	assert.InDelta(t, 17.5, g.Bilinear(2.5, 2.5), 1e-12)

	// Within a pixel of the border, no extrapolation
	assert.Equal(t, 0.0, g.Bilinear(0.5, 3))
	assert.Equal(t, 0.0, g.Bilinear(3, 0.99))
	assert.Equal(t, 0.0, g.Bilinear(5, 3))
	assert.Equal(t, 0.0, g.Bilinear(3, 5.2))
	assert.Equal(t, 0.0, g.Bilinear(-3, -3))
}

func TestFloatGrid_ArgMaxFirstWins(t *testing.T) {
	g := NewFloatGridFromValues(3, 2, []float64{1, 5, 2, 5, 0, 5})
	assert.Equal(t, 1, g.ArgMax(0, g.Len()))
	assert.Equal(t, 3, g.ArgMax(2, g.Len()))
	assert.Equal(t, 2, g.ArgMax(2, 3))

	flat := NewFloatGrid(3, 3)
	assert.Equal(t, 0, flat.ArgMax(0, flat.Len()))
}

func TestFloatGrid_ArgMaxWithin(t *testing.T) {
	ripple := NewFloatGridFromValues(4, 1, []float64{8e7, 8e7 + 1e-6, 8e7 - 2e-6, 8e7 + 3e-6})
	assert.Equal(t, 3, ripple.ArgMax(0, ripple.Len()))
	assert.Equal(t, 0, ripple.ArgMaxWithin(0, ripple.Len(), 1e-9))
	assert.Equal(t, 1, ripple.ArgMaxWithin(1, ripple.Len(), 1e-9))

	// A real peak still wins
	g := NewFloatGridFromValues(3, 2, []float64{1, 5, 2, 5.1, 0, 5})
	assert.Equal(t, 3, g.ArgMaxWithin(0, g.Len(), 1e-9))
	assert.Equal(t, 1, g.ArgMaxWithin(0, g.Len(), 0.1))

	neg := NewFloatGridFromValues(3, 1, []float64{-3, -1, -2})
	assert.Equal(t, 1, neg.ArgMaxWithin(0, neg.Len(), 1e-9))
}

func TestFloatGrid_FromValuesPanicsOnBadLength(t *testing.T) {
	assert.Panics(t, func() { NewFloatGridFromValues(3, 3, make([]float64, 8)) })
}

func TestFloatGrid_ToImg(t *testing.T) {
	g := rampGrid(32, 16)
	filename := filepath.Join(t.TempDir(), "ramp.png")
	require.NoError(t, g.ToImg("ramp", filename))
	assert.FileExists(t, filename)

	// A flat grid must not divide by zero
	flat := NewFloatGrid(8, 8)
	require.NoError(t, flat.ToImg("", filepath.Join(t.TempDir(), "flat.png")))
}

func TestCenter(t *testing.T) {
	cx, cy := Center(100, 80)
	assert.Equal(t, 49.5, cx)
	assert.Equal(t, 39.5, cy)
}

func TestRoundInt(t *testing.T) {
	assert.Equal(t, 3, RoundInt(2.5))
	assert.Equal(t, -3, RoundInt(-2.5))
	assert.Equal(t, -2, RoundInt(-2.4))
	assert.Equal(t, 4, AbsInt(-4))
	assert.False(t, math.IsNaN(GammaExpand_F64(0.5)))
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 2, FloorDiv(5, 2))
	assert.Equal(t, -1, FloorDiv(-1, 2))
	assert.Equal(t, -2, FloorDiv(-3, 2))
	assert.Equal(t, 0, FloorDiv(0, 2))
}
