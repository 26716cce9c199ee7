package eimage

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/tiff"
)

// A Frame is an Image loaded from a file, with a note of when it was
// captured so a sequence can be put in order.
type Frame struct {
	LoadFilename string
	Captured     time.Time
	Image
}

func (f Frame)Filename() string { return filepath.Base(f.LoadFilename) }

func (f Frame)String() string {
	return fmt.Sprintf("%s: %s, captured %s", f.Filename(), f.Image, f.Captured.Format(time.RFC3339))
}

var loadableExts = map[string]bool{".tif": true, ".tiff": true, ".png": true, ".jpg": true, ".jpeg": true}

// LoadFilesAndDirs loads every image file named, recursing into
// directories. Files we don't know how to decode are skipped. The
// frames come back sorted by capture time (then by name).
func LoadFilesAndDirs(args ...string) ([]Frame, error) {
	frames := []Frame{}

	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return nil, fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := os.ReadDir(arg)
			if err != nil {
				return nil, fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				sub, err := LoadFilesAndDirs(filepath.Join(arg, content.Name()))
				if err != nil {
					return nil, fmt.Errorf("load %s: %v", arg, err)
				}
				frames = append(frames, sub...)
			}

		case loadableExts[strings.ToLower(filepath.Ext(arg))]:
			f, err := LoadFrame(arg)
			if err != nil {
				return nil, fmt.Errorf("loadfile %s: %v", arg, err)
			}
			frames = append(frames, f)
		}
	}

	sort.SliceStable(frames, func(i, j int) bool {
		if !frames[i].Captured.Equal(frames[j].Captured) {
			return frames[i].Captured.Before(frames[j].Captured)
		}
		return frames[i].LoadFilename < frames[j].LoadFilename
	})

	return frames, nil
}

// LoadFrame decodes a single file. The capture time comes from EXIF
// DateTimeOriginal where there is one, else the file's mtime.
func LoadFrame(filename string) (Frame, error) {
	f := Frame{LoadFilename: filename}

	reader, err := os.Open(filename)
	if err != nil {
		return f, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer reader.Close()

	img, _, err := image.Decode(reader)
	if err != nil {
		return f, fmt.Errorf("decode '%s': %v", filename, err)
	}
	f.Image = FromImage(img)

	if t, err := captureTime(filename); err == nil {
		f.Captured = t
	} else if info, err := os.Stat(filename); err == nil {
		f.Captured = info.ModTime()
	}

	return f, nil
}

func captureTime(filename string) (time.Time, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return time.Time{}, fmt.Errorf("open+r exif '%s': %v", filename, err)
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return time.Time{}, fmt.Errorf("exif parsing '%s': %v", filename, err)
	}
	return ex.DateTime()
}
