package register

import(
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/ereg/pkg/eimage"
	"github.com/abworrall/ereg/pkg/emath"
)

func TestResidual(t *testing.T) {
	r := newTestRegistrar(t)

	ref := emath.NewFloatGrid(20, 10)
	ref.Fill(0.5)
	img := emath.NewFloatGrid(20, 10)
	img.Fill(0.75)

	// Left-hand quarter is padding, and gets skipped
	for y := 0; y < 10; y++ {
		for x := 0; x < 5; x++ {
			img.Set(x, y, 0)
		}
	}

	res, err := r.Residual(mono(img), mono(ref), AllChannels)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, res.Compared, 1e-9)
	assert.InDelta(t, 0.25, res.Mean, 0.25*0.002)
	assert.InDelta(t, 0.25, res.P50, 0.25*0.002)
	assert.InDelta(t, 0.25, res.P95, 0.25*0.002)
	assert.Contains(t, res.String(), "75.0% compared")
}

func TestResidual_Identical(t *testing.T) {
	r := newTestRegistrar(t)
	img := eimage.Image{Channels: []emath.FloatGrid{noiseGrid(16, 16, 1), noiseGrid(16, 16, 2)}, PixelType: eimage.Float32}

	res, err := r.Residual(img, img, AllChannels)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Mean)
	assert.Equal(t, 0.0, res.Max)
	assert.InDelta(t, 1.0, res.Compared, 0.01)
}

func TestResidual_Errors(t *testing.T) {
	r := newTestRegistrar(t)

	_, err := r.Residual(mono(noiseGrid(8, 8, 1)), mono(noiseGrid(9, 8, 1)), AllChannels)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = r.Residual(mono(noiseGrid(8, 8, 1)), mono(noiseGrid(8, 8, 1)), Channel(2))
	assert.True(t, errors.Is(err, ErrNoSuchChannel))

	// Nothing to compare
	res, err := r.Residual(mono(emath.NewFloatGrid(4, 4)), mono(noiseGrid(4, 4, 1)), AllChannels)
	require.NoError(t, err)
	assert.Equal(t, Residual{}, res)
}
