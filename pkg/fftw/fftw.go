//go:build fftw

package fftw

// Wraps the fftw3 library for use in Golang, as an efft.Transformer.
//
// The pure-Go backends in efft are fine for the frame sizes we see, but
// the big log-polar correlations (1080x360 by default) are a lot
// quicker through FFTW. Build with `-tags fftw` to link this in; it
// registers itself as the "fftw" backend.
//
// In your OS, install a C buildchain and the FFTW3 dev library:
//  $ sudo apt-get install build-essential
//  $ sudo apt-get install libfftw3-dev
//
// If you run into precision issues, because your underlying C
// platform doesn't think a C 'double' is the same as a Golang
// float64, read https://www.fftw.org/fftw3_doc/Precision.html and
// make changes to the library name in LDFLAGS, and all the `fftw_`
// prefixes to C types and functions in this file.

// #cgo LDFLAGS: -lm -lfftw3
// #include <fftw3.h>
import "C"

import(
	"fmt"
	"sync"
	"unsafe"

	"github.com/abworrall/ereg/pkg/efft"
)

func init() {
	efft.Register("fftw", Transformer{})
}

// Creation & destruction of plans is not thread safe; execution is.
var planMu sync.Mutex

// An FftwPlan owns its buffer, which lives in C memory (FFTW holds on to
// the pointer between calls, which Go memory isn't allowed to be).
// Data is copied in and out around each execution.
type FftwPlan struct {
	fftw_p C.fftw_plan
	io     *C.fftw_complex
	buf    []float64 // Go view of io, interleaved re/im
}

// NewFftwPlan builds an in-place complex 2D plan over a freshly
// allocated rows x cols buffer.
func NewFftwPlan(rows, cols int, inverse bool) *FftwPlan {
	n := rows * cols
	io := C.fftw_alloc_complex(C.size_t(n))
	sign := C.int(C.FFTW_FORWARD)
	if inverse {
		sign = C.int(C.FFTW_BACKWARD)
	}

	planMu.Lock()
	defer planMu.Unlock()
	p := C.fftw_plan_dft_2d(C.int(rows), C.int(cols), io, io, sign, C.FFTW_ESTIMATE)

	return &FftwPlan{
		fftw_p: p,
		io:     io,
		buf:    unsafe.Slice((*float64)(unsafe.Pointer(io)), 2*n),
	}
}

// Execute transforms buf in place, via the plan's own buffer.
func (p *FftwPlan) Execute(buf []float64) {
	copy(p.buf, buf)
	C.fftw_execute(p.fftw_p)
	copy(buf, p.buf)
}

func (p *FftwPlan) Destroy() {
	planMu.Lock()
	defer planMu.Unlock()
	C.fftw_destroy_plan(p.fftw_p)
	C.fftw_free(unsafe.Pointer(p.io))
	p.buf = nil
}

type Transformer struct{}

func (Transformer)Forward(buf []float64, rows, cols int) {
	run(buf, rows, cols, false)
}

// Inverse normalizes, as FFTW's backward transform doesn't.
func (Transformer)Inverse(buf []float64, rows, cols int) {
	run(buf, rows, cols, true)

	scale := 1.0 / float64(rows*cols)
	for i := range buf {
		buf[i] *= scale
	}
}

func run(buf []float64, rows, cols int, inverse bool) {
	if len(buf) != 2*rows*cols {
		panic(fmt.Sprintf("fftw: buffer of %d floats is not a %dx%d complex grid", len(buf), rows, cols))
	}

	p := NewFftwPlan(rows, cols, inverse)
	defer p.Destroy()
	p.Execute(buf)
}
