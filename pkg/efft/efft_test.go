package efft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSignal(rows, cols int) []float64 {
	vals := make([]float64, rows*cols)
	for i := range vals {
		vals[i] = math.Sin(float64(i)*0.37) + float64(i%7)
	}
	return vals
}

func backendsUnderTest(t *testing.T) map[string]Transformer {
	m := map[string]Transformer{}
	for _, name := range []string{"dsp", "gonum"} {
		tr, err := Get(name)
		require.NoError(t, err)
		m[name] = tr
	}
	return m
}

func TestRoundTrip(t *testing.T) {
	for name, tr := range backendsUnderTest(t) {
		tr := tr
		t.Run(name, func(t *testing.T) {
			for _, dims := range [][2]int{{8, 16}, {5, 12}, {3, 9}} {
				rows, cols := dims[0], dims[1]
				vals := testSignal(rows, cols)
				buf := NewBuffer(vals)

				tr.Forward(buf, rows, cols)
				tr.Inverse(buf, rows, cols)

				got := RealPart(buf)
				for i := range vals {
					assert.InDelta(t, vals[i], got[i], 1e-9, "%dx%d index %d", rows, cols, i)
					assert.InDelta(t, 0.0, buf[2*i+1], 1e-9)
				}
			}
		})
	}
}

func TestForwardDCTerm(t *testing.T) {
	rows, cols := 6, 10
	vals := testSignal(rows, cols)
	sum := 0.0
	for _, v := range vals {
		sum += v
	}

	for name, tr := range backendsUnderTest(t) {
		buf := NewBuffer(vals)
		tr.Forward(buf, rows, cols)
		assert.InDelta(t, sum, buf[0], 1e-9, name)
		assert.InDelta(t, 0.0, buf[1], 1e-9, name)
	}
}

func TestBackendsAgree(t *testing.T) {
	rows, cols := 12, 20
	vals := testSignal(rows, cols)

	a, b := NewBuffer(vals), NewBuffer(vals)
	DSP{}.Forward(a, rows, cols)
	Gonum{}.Forward(b, rows, cols)
	for i := range a {
		assert.InDelta(t, a[i], b[i], 1e-8, "index %d", i)
	}
}

func TestGetUnknownBackend(t *testing.T) {
	_, err := Get("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gonum")

	tr, err := Get("")
	require.NoError(t, err)
	assert.IsType(t, DSP{}, tr)
}

func TestCheckSizePanics(t *testing.T) {
	assert.Panics(t, func() { DSP{}.Forward(make([]float64, 10), 2, 3) })
}
