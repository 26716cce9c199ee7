package register

import(
	"fmt"
	"math"

	"github.com/codahale/hdrhistogram"

	"github.com/abworrall/ereg/pkg/eimage"
	"github.com/abworrall/ereg/pkg/emath"
)

// Residual differences are recorded as parts-per-million of the
// reference's pixel range.
const residualScale = 1000000

// A Residual summarizes how different a corrected image still is from
// its reference. All values are fractions of the pixel type's range.
type Residual struct {
	Compared float64 // fraction of pixels that both images had data for
	Mean     float64
	P50      float64
	P95      float64
	Max      float64
}

func (res Residual)String() string {
	return fmt.Sprintf("residual mean=%.4f p50=%.4f p95=%.4f max=%.4f (%.1f%% compared)",
		res.Mean, res.P50, res.P95, res.Max, 100.0 * res.Compared)
}

// Residual compares the selected channel(s) of img with ref, which must
// be the same size. Pixels that are zero in either image are skipped;
// that's the padding that corrections bring in at the edges.
func (r *Registrar)Residual(img, ref eimage.Image, ch Channel) (Residual, error) {
	lo, hi, err := ch.span(img)
	if err != nil {
		return Residual{}, err
	}

	rangeMin, rangeMax := ref.PixelType.Range()
	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	hist := hdrhistogram.New(1, residualScale, 3)
	nPix := 0

	for i := lo; i < hi; i++ {
		a, b := img.Channel(i), ref.Channel(referenceChannel(i, ref))
		if !a.SameSize(b) {
			return Residual{}, dimensionMismatch(a, b)
		}

		diff := emath.NewFloatGrid(a.Dx(), a.Dy())
		for y := 0; y < a.Dy(); y++ {
			for x := 0; x < a.Dx(); x++ {
				nPix++
				va, vb := a.Get(x, y), b.Get(x, y)
				if va == 0 || vb == 0 {
					continue
				}

				d := math.Min(math.Abs(va - vb) / span, 1.0)
				diff.Set(x, y, d)
				if err := hist.RecordValue(int64(math.Round(d * residualScale))); err != nil {
					return Residual{}, err
				}
			}
		}
		r.dump(fmt.Sprintf("residual-%d", i), diff)
	}

	if nPix == 0 || hist.TotalCount() == 0 {
		return Residual{}, nil
	}

	return Residual{
		Compared: float64(hist.TotalCount()) / float64(nPix),
		Mean:     hist.Mean() / residualScale,
		P50:      float64(hist.ValueAtQuantile(50)) / residualScale,
		P95:      float64(hist.ValueAtQuantile(95)) / residualScale,
		Max:      float64(hist.Max()) / residualScale,
	}, nil
}
