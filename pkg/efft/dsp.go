package efft

import(
	"github.com/mjibson/go-dsp/fft"
)

// DSP runs transforms with github.com/mjibson/go-dsp, which handles any
// size (radix-2 where it can, Bluestein otherwise).
type DSP struct{}

func (DSP)Forward(buf []float64, rows, cols int) {
	checkSize(buf, rows, cols)
	fromComplex2D(buf, fft.FFT2(toComplex2D(buf, rows, cols)))
}

func (DSP)Inverse(buf []float64, rows, cols int) {
	checkSize(buf, rows, cols)
	fromComplex2D(buf, fft.IFFT2(toComplex2D(buf, rows, cols)))
}

func toComplex2D(buf []float64, rows, cols int) [][]complex128 {
	c := make([][]complex128, rows)
	for y:=0; y<rows; y++ {
		c[y] = make([]complex128, cols)
		for x:=0; x<cols; x++ {
			i := 2 * (y*cols + x)
			c[y][x] = complex(buf[i], buf[i+1])
		}
	}
	return c
}

func fromComplex2D(buf []float64, c [][]complex128) {
	i := 0
	for _, row := range c {
		for _, v := range row {
			buf[i], buf[i+1] = real(v), imag(v)
			i += 2
		}
	}
}
