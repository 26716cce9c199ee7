package efft

import(
	"gonum.org/v1/gonum/dsp/fourier"
)

// Gonum runs transforms as a pass of 1D transforms over the rows,
// followed by a pass over the columns, using gonum's FFTPACK port.
type Gonum struct{}

func (Gonum)Forward(buf []float64, rows, cols int) {
	checkSize(buf, rows, cols)
	gonum2D(buf, rows, cols, false)
}

func (Gonum)Inverse(buf []float64, rows, cols int) {
	checkSize(buf, rows, cols)
	gonum2D(buf, rows, cols, true)

	// fourier's Sequence is unnormalized
	scale := 1.0 / float64(rows*cols)
	for i := range buf {
		buf[i] *= scale
	}
}

func gonum2D(buf []float64, rows, cols int, inverse bool) {
	run := func(f *fourier.CmplxFFT, dst, src []complex128) {
		if inverse {
			f.Sequence(dst, src)
		} else {
			f.Coefficients(dst, src)
		}
	}

	// Rows
	rowFFT := fourier.NewCmplxFFT(cols)
	in, out := make([]complex128, cols), make([]complex128, cols)
	for y:=0; y<rows; y++ {
		for x:=0; x<cols; x++ {
			i := 2 * (y*cols + x)
			in[x] = complex(buf[i], buf[i+1])
		}
		run(rowFFT, out, in)
		for x:=0; x<cols; x++ {
			i := 2 * (y*cols + x)
			buf[i], buf[i+1] = real(out[x]), imag(out[x])
		}
	}

	// Columns
	colFFT := fourier.NewCmplxFFT(rows)
	in, out = make([]complex128, rows), make([]complex128, rows)
	for x:=0; x<cols; x++ {
		for y:=0; y<rows; y++ {
			i := 2 * (y*cols + x)
			in[y] = complex(buf[i], buf[i+1])
		}
		run(colFFT, out, in)
		for y:=0; y<rows; y++ {
			i := 2 * (y*cols + x)
			buf[i], buf[i+1] = real(out[y]), imag(out[y])
		}
	}
}
