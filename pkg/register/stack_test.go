package register

import(
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/abworrall/ereg/pkg/eimage"
)

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"translate": ModeTranslate, "Rotation": ModeRotate, "rigid": ModeRigid, "": ModeRigid} {
		m, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, m)
	}
	_, err := ParseMode("affine")
	assert.Error(t, err)
	assert.Equal(t, "rigid", ModeRigid.String())
}

func TestStack(t *testing.T) {
	r := newTestRegistrar(t, func(o *Options) { o.Workers = 2 })
	ref := noiseGrid(48, 40, 11)

	frames := []eimage.Frame{
		{LoadFilename: "/data/a.png", Image: mono(circularShift(ref, 3, -2))},
		{LoadFilename: "/data/b.png", Image: mono(ref)},
		{LoadFilename: "/data/c.png", Image: mono(noiseGrid(40, 40, 1))},
		{LoadFilename: "/data/d.png", Image: mono(circularShift(ref, -5, 0))},
	}

	results, err := r.Stack(context.Background(), mono(ref), frames, AllChannels, ModeTranslate)
	require.Len(t, results, 4)

	// One bad frame, which is reported but doesn't stop the others
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	assert.Contains(t, err.Error(), "c.png")

	assert.Equal(t, "a.png", results[0].Name)
	assert.Equal(t, Displacement{-3, 2}, results[0].Shift)
	assert.True(t, results[0].Changed)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 0.0, results[0].Residual.Mean)
	assert.InDelta(t, float64(45*38)/float64(48*40), results[0].Residual.Compared, 0.01)

	assert.False(t, results[1].Changed)
	assert.True(t, results[1].Image.Equal(mono(ref)))

	assert.Error(t, results[2].Err)
	assert.True(t, results[2].Image.Equal(frames[2].Image))
	assert.Contains(t, results[2].String(), "FAILED")

	assert.Equal(t, Displacement{5, 0}, results[3].Shift)

	// Corrected frames line up with the reference away from the edges
	for y := 2; y < 40-2; y++ {
		for x := 0; x < 48-3; x++ {
			require.Equal(t, ref.Get(x, y), results[0].Image.Channel(0).Get(x, y))
		}
	}
}

func TestStack_Cancelled(t *testing.T) {
	r := newTestRegistrar(t)
	ref := mono(noiseGrid(16, 16, 1))
	frames := []eimage.Frame{{LoadFilename: "a.png", Image: ref}, {LoadFilename: "b.png", Image: ref}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := r.Stack(ctx, ref, frames, AllChannels, ModeRigid)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	for _, res := range results {
		assert.True(t, errors.Is(res.Err, context.Canceled))
		assert.False(t, res.Changed)
	}
}

func TestRegisterFrame_Rigid(t *testing.T) {
	r := newTestRegistrar(t, lowRes)
	ref := mono(blobGrid(64, 64, 0))

	res := r.RegisterFrame("same", ref, ref, AllChannels, ModeRigid)
	require.NoError(t, res.Err)
	assert.False(t, res.Changed)
	assert.Equal(t, 0.0, res.Angle)
	assert.True(t, res.Shift.IsZero())

	res = r.RegisterFrame("bad", ref, ref, Channel(4), ModeRotate)
	assert.True(t, errors.Is(res.Err, ErrNoSuchChannel))
}
