package eimage

import(
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr/codec/rgbe"
)

// Write picks an encoder from the filename: ".hdr" gives a Radiance
// RGBE file (no clamping to 16 bits), anything else gives a PNG.
func Write(img Image, filename string) error {
	if strings.ToLower(filepath.Ext(filename)) == ".hdr" {
		return WriteHDR(img, filename)
	}
	return WritePNG(img, filename)
}

func WritePNG(img Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img.ToImage())
	}
}

// WriteHDR outputs a HDR image. You can load this into photoshop or other HDR tools.
func WriteHDR(img Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("WriteHDR, open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		if err := rgbe.Encode(writer, HDRImage{img}); err != nil {
			return fmt.Errorf("WriteHDR, encoding RGBE file '%s': %v", filename, err)
		}
		return nil
	}
}
