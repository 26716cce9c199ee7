//go:build fftw

package fftw

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/ereg/pkg/efft"
)

func TestMatchesDSP(t *testing.T) {
	rows, cols := 9, 14
	vals := make([]float64, rows*cols)
	for i := range vals {
		vals[i] = math.Cos(float64(i) * 0.21)
	}

	a, b := efft.NewBuffer(vals), efft.NewBuffer(vals)
	Transformer{}.Forward(a, rows, cols)
	efft.DSP{}.Forward(b, rows, cols)
	for i := range a {
		assert.InDelta(t, b[i], a[i], 1e-9)
	}

	Transformer{}.Inverse(a, rows, cols)
	got := efft.RealPart(a)
	for i := range vals {
		assert.InDelta(t, vals[i], got[i], 1e-9)
	}
}

func TestRegistered(t *testing.T) {
	tr, err := efft.Get("fftw")
	require.NoError(t, err)
	assert.IsType(t, Transformer{}, tr)
}

func TestConcurrentTransforms(t *testing.T) {
	rows, cols := 12, 10
	vals := make([]float64, rows*cols)
	for i := range vals {
		vals[i] = math.Sin(float64(i) * 0.37)
	}
	want := efft.NewBuffer(vals)
	efft.DSP{}.Forward(want, rows, cols)

	var wg sync.WaitGroup
	got := make([][]float64, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			buf := efft.NewBuffer(vals)
			Transformer{}.Forward(buf, rows, cols)
			got[i] = buf
		}(i)
	}
	wg.Wait()

	for _, buf := range got {
		require.Len(t, buf, len(want))
		for i := range want {
			assert.InDelta(t, want[i], buf[i], 1e-9)
		}
	}
}
