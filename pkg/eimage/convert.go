package eimage

import(
	"image"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"
)

// FromImage pulls the pixels out of a golang image. Gray images give a
// single channel, anything else gives three (R,G,B); alpha is dropped.
func FromImage(src image.Image) Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src.(type) {
	case *image.Gray:
		img := New(w, h, 1, Uint8)
		fill1(img, src, 8)
		return img
	case *image.Gray16:
		img := New(w, h, 1, Uint16)
		fill1(img, src, 0)
		return img
	case *image.RGBA, *image.NRGBA, *image.YCbCr, *image.Paletted, *image.CMYK:
		img := New(w, h, 3, Uint8)
		fill3(img, src, 8)
		return img
	default:
		img := New(w, h, 3, Uint16)
		fill3(img, src, 0)
		return img
	}
}

func fill1(img Image, src image.Image, shift uint) {
	b := src.Bounds()
	for y:=0; y<b.Dy(); y++ {
		for x:=0; x<b.Dx(); x++ {
			r,_,_,_ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			img.Channels[0].Set(x, y, float64(r >> shift))
		}
	}
}

func fill3(img Image, src image.Image, shift uint) {
	b := src.Bounds()
	for y:=0; y<b.Dy(); y++ {
		for x:=0; x<b.Dx(); x++ {
			r,g,bl,_ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			img.Channels[0].Set(x, y, float64(r >> shift))
			img.Channels[1].Set(x, y, float64(g >> shift))
			img.Channels[2].Set(x, y, float64(bl >> shift))
		}
	}
}

// unit maps a channel value onto [0,1], clamping anything out of range
// for the pixel type.
func (img Image)unit(c, x, y int) float64 {
	min, max := img.PixelType.Range()
	v := (img.Channels[c].Get(x, y) - min) / (max - min)
	if v < 0 { v = 0 }
	if v > 1 { v = 1 }
	return v
}

// rgb returns the unit values to display at a point; channels past the
// third are ignored, a single channel is shown as gray.
func (img Image)rgb(x, y int) (float64, float64, float64) {
	switch img.NumChannels() {
	case 0:
		return 0, 0, 0
	case 1:
		v := img.unit(0, x, y)
		return v, v, v
	case 2:
		return img.unit(0, x, y), img.unit(1, x, y), 0
	default:
		return img.unit(0, x, y), img.unit(1, x, y), img.unit(2, x, y)
	}
}

// ToImage renders into a golang image, scaled to 16 bits per channel.
func (img Image)ToImage() image.Image {
	w, h := img.Width(), img.Height()

	if img.NumChannels() == 1 {
		out := image.NewGray16(image.Rect(0, 0, w, h))
		for y:=0; y<h; y++ {
			for x:=0; x<w; x++ {
				out.SetGray16(x, y, color.Gray16{uint16(img.unit(0, x, y) * 0xFFFF + 0.5)})
			}
		}
		return out
	}

	out := image.NewRGBA64(image.Rect(0, 0, w, h))
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			r, g, b := img.rgb(x, y)
			out.SetRGBA64(x, y, color.RGBA64{uint16(r*0xFFFF + 0.5), uint16(g*0xFFFF + 0.5), uint16(b*0xFFFF + 0.5), 0xFFFF})
		}
	}
	return out
}

// HDRImage wraps an Image so it implements hdr.Image, so it can be
// written out without losing precision.
type HDRImage struct {
	Image
}

// Implement image.Image
func (hi HDRImage)ColorModel() color.Model { return hdrcolor.RGBModel }
func (hi HDRImage)At(x, y int) color.Color { return hi.HDRAt(x, y) }

// Implement hdr.Image
func (hi HDRImage)Size() int { return hi.Width() * hi.Height() }
func (hi HDRImage)HDRAt(x, y int) hdrcolor.Color {
	r, g, b := hi.rgb(x, y)
	return hdrcolor.RGB{R: r, G: g, B: b}
}
