// Package eimage holds the multi-channel Image that registration
// works on, and the glue to get them in and out of files.
package eimage

import(
	"fmt"
	"image"

	"github.com/abworrall/ereg/pkg/emath"
)

// PixelType is the numeric type the pixels were declared as, back in
// whatever file or camera they came from. The values themselves are
// always held as float64.
type PixelType struct {
	Bits   int
	Signed bool
	Float  bool
}

var(
	Uint8   = PixelType{Bits: 8}
	Uint16  = PixelType{Bits: 16}
	Int16   = PixelType{Bits: 16, Signed: true}
	Float32 = PixelType{Bits: 32, Signed: true, Float: true}
)

func (pt PixelType)String() string {
	switch {
	case pt.Float:  return fmt.Sprintf("float%d", pt.Bits)
	case pt.Signed: return fmt.Sprintf("int%d", pt.Bits)
	default:        return fmt.Sprintf("uint%d", pt.Bits)
	}
}

// Range is the span of values the type can hold. Floats are taken to
// be normalized, [0.0, 1.0].
func (pt PixelType)Range() (float64, float64) {
	switch {
	case pt.Float:
		return 0.0, 1.0
	case pt.Signed:
		half := float64(uint64(1) << uint(pt.Bits-1))
		return -half, half - 1
	default:
		return 0.0, float64(uint64(1) << uint(pt.Bits)) - 1
	}
}

// An Image is a stack of equally sized channels. Nothing in this
// module changes an Image once it has been built; operations that
// transform one hand back a new Image. Channels may be shared between
// Images though, so don't Set() on a channel you didn't allocate.
type Image struct {
	Channels []emath.FloatGrid
	PixelType
}

// New returns a zeroed w x h image with n channels.
func New(w, h, n int, pt PixelType) Image {
	img := Image{Channels: make([]emath.FloatGrid, n), PixelType: pt}
	for i := range img.Channels {
		img.Channels[i] = emath.NewFloatGrid(w, h)
	}
	return img
}

// NewFromChannels builds an image out of existing grids, which must all
// be the same size.
func NewFromChannels(pt PixelType, chans ...emath.FloatGrid) (Image, error) {
	for i := 1; i < len(chans); i++ {
		if !chans[i].SameSize(chans[0]) {
			return Image{}, fmt.Errorf("channel %d is %s, channel 0 is %s", i, chans[i].Bounds().Size(), chans[0].Bounds().Size())
		}
	}
	return Image{Channels: chans, PixelType: pt}, nil
}

func (img Image)NumChannels() int { return len(img.Channels) }

func (img Image)Width() int {
	if len(img.Channels) == 0 { return 0 }
	return img.Channels[0].Dx()
}

func (img Image)Height() int {
	if len(img.Channels) == 0 { return 0 }
	return img.Channels[0].Dy()
}

func (img Image)Bounds() image.Rectangle { return image.Rect(0, 0, img.Width(), img.Height()) }

func (img Image)Channel(i int) emath.FloatGrid { return img.Channels[i] }

// SameSize compares width and height only.
func (img Image)SameSize(img2 Image) bool {
	return img.Width() == img2.Width() && img.Height() == img2.Height()
}

// Clone deep-copies the image.
func (img Image)Clone() Image {
	img2 := Image{Channels: make([]emath.FloatGrid, len(img.Channels)), PixelType: img.PixelType}
	for i, c := range img.Channels {
		img2.Channels[i] = c.Copy()
	}
	return img2
}

// WithChannel returns a new Image that shares all channels with img,
// apart from channel i, which is replaced by g.
func (img Image)WithChannel(i int, g emath.FloatGrid) Image {
	img2 := Image{Channels: make([]emath.FloatGrid, len(img.Channels)), PixelType: img.PixelType}
	copy(img2.Channels, img.Channels)
	img2.Channels[i] = g
	return img2
}

// Equal is true if both images have the same type, size and values.
func (img Image)Equal(img2 Image) bool {
	if img.PixelType != img2.PixelType || len(img.Channels) != len(img2.Channels) || !img.SameSize(img2) {
		return false
	}
	for i := range img.Channels {
		a, b := img.Channels[i].Values(), img2.Channels[i].Values()
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

func (img Image)String() string {
	return fmt.Sprintf("Image[%dx%d, %d chan, %s]", img.Width(), img.Height(), img.NumChannels(), img.PixelType)
}
