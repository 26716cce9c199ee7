// Package efft is the 2D Fourier transform capability the registration
// code runs on. Buffers are interleaved complex values (re,im,re,im...),
// stored row by row, so a rows x cols transform works on a slice of
// 2*rows*cols floats.
//
// Several backends exist; they are looked up by name so config files
// can pick one. The FFTW3 backend lives in its own (cgo) package and
// registers itself when linked in.
package efft

import(
	"fmt"
	"sort"
	"strings"
	"sync"
)

// A Transformer does in-place 2D complex transforms. Inverse is
// normalized, so Inverse(Forward(x)) == x.
type Transformer interface {
	Forward(buf []float64, rows, cols int)
	Inverse(buf []float64, rows, cols int)
}

const DefaultBackend = "dsp"

var(
	mu       sync.RWMutex
	backends = map[string]Transformer{}
)

func init() {
	Register("dsp",   DSP{})
	Register("gonum", Gonum{})
}

// Register makes a backend available under `name`, replacing any
// previous one.
func Register(name string, t Transformer) {
	mu.Lock()
	defer mu.Unlock()
	backends[name] = t
}

// Get looks up a backend by name; the empty name means DefaultBackend.
func Get(name string) (Transformer, error) {
	if name == "" {
		name = DefaultBackend
	}

	mu.RLock()
	defer mu.RUnlock()
	if t, exists := backends[name]; exists {
		return t, nil
	}
	return nil, fmt.Errorf("no FFT backend named '%s' (have: %s)", name, listLocked())
}

func List() string {
	mu.RLock()
	defer mu.RUnlock()
	return listLocked()
}

func listLocked() string {
	names := []string{}
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// NewBuffer builds an interleaved buffer from row-major real values, with
// zero imaginary parts.
func NewBuffer(real []float64) []float64 {
	buf := make([]float64, 2*len(real))
	for i, v := range real {
		buf[2*i] = v
	}
	return buf
}

// RealPart pulls the real values back out of an interleaved buffer.
func RealPart(buf []float64) []float64 {
	out := make([]float64, len(buf)/2)
	for i := range out {
		out[i] = buf[2*i]
	}
	return out
}

func checkSize(buf []float64, rows, cols int) {
	if len(buf) != 2*rows*cols {
		panic(fmt.Sprintf("efft: buffer of %d floats is not a %dx%d complex grid", len(buf), rows, cols))
	}
}
