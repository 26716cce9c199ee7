package register

import(
	"fmt"

	"github.com/pkg/errors"

	"github.com/abworrall/ereg/pkg/eimage"
)

// A Channel picks which channel(s) of an image an operation works on.
type Channel int

const AllChannels Channel = -1

func (c Channel)String() string {
	if c == AllChannels {
		return "all"
	}
	return fmt.Sprintf("%d", int(c))
}

func (c Channel)selects(i int) bool { return c == AllChannels || int(c) == i }

// span returns the [lo,hi) range of channel indices selected in img.
func (c Channel)span(img eimage.Image) (int, int, error) {
	n := img.NumChannels()
	switch {
	case c == AllChannels:
		return 0, n, nil
	case int(c) >= 0 && int(c) < n:
		return int(c), int(c)+1, nil
	default:
		return 0, 0, errors.Wrapf(ErrNoSuchChannel, "channel %d, image has %d", int(c), n)
	}
}

// referenceChannel is the channel of the reference that channel i of the
// image is compared against. References with fewer channels (e.g. a
// mono reference for a color stack) reuse their first channel.
func referenceChannel(i int, ref eimage.Image) int {
	if i < ref.NumChannels() {
		return i
	}
	return 0
}
