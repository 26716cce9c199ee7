// Package register estimates, and then undoes, the rigid motion between
// two images: translation by phase correlation, rotation by phase
// correlation of log-polar resamplings.
//
// Conventions: pixel centers are on the integers, the center of a WxH
// image is ((W-1)/2, (H-1)/2), and positive angles turn +X towards +Y
// (so clockwise on screen, since Y points down). An estimate made with
// (source=A, target=B) can be applied straight to A to make it look
// like B.
package register

import(
	"fmt"
	"image"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/abworrall/ereg/pkg/efft"
	"github.com/abworrall/ereg/pkg/emath"
	"github.com/abworrall/ereg/pkg/resample"
)

// A Resampler is the pixel-moving capability the appliers delegate to.
// See pkg/resample for the geometry each method is expected to follow.
type Resampler interface {
	Rotate(g emath.FloatGrid, theta float64) emath.FloatGrid
	Rescale(g emath.FloatGrid, w, h int, align resample.Alignment) emath.FloatGrid
	Crop(g emath.FloatGrid, r image.Rectangle) emath.FloatGrid
}

// A Registrar holds the tunables and the collaborators (FFT, resampler,
// logger). It keeps no state between calls, so one can be shared
// between goroutines.
type Registrar struct {
	Options
	FFT       efft.Transformer
	Resampler Resampler
	Logger    *zap.SugaredLogger

	dumpSeq   atomic.Int64
}

// NewRegistrar looks up the backends named in the options. A nil logger
// means no logging.
func NewRegistrar(opts Options, logger *zap.SugaredLogger) (*Registrar, error) {
	if err := opts.Finalize(); err != nil {
		return nil, err
	}

	fft, err := efft.Get(opts.FFT)
	if err != nil {
		return nil, err
	}
	rs, err := resample.Get(opts.Resampler)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if resample.PreviewOnly(opts.Resampler) {
		logger.Warnw("resampler is for previews only, corrections will not be accurate", "resampler", opts.Resampler)
	}

	return &Registrar{Options: opts, FFT: fft, Resampler: rs, Logger: logger}, nil
}

// Default returns a Registrar with default options and no logging.
func Default() *Registrar {
	r, err := NewRegistrar(NewOptions(), nil)
	if err != nil {
		panic(fmt.Sprintf("default options are broken: %v", err))
	}
	return r
}

// dump writes the grid as a PNG into DebugDir, if there is one. Failing
// to write a debug image is never fatal.
func (r *Registrar)dump(name string, g emath.FloatGrid) {
	if r.DebugDir == "" {
		return
	}

	n := r.dumpSeq.Add(1)
	filename := filepath.Join(r.DebugDir, fmt.Sprintf("%04d-%s.png", n, name))
	if err := g.ToImg(fmt.Sprintf("%s %s", name, g.Stats()), filename); err != nil {
		r.Logger.Warnw("debug dump failed", "file", filename, "err", err)
		return
	}
	r.Logger.Debugw("debug dump", "file", filename)
}
