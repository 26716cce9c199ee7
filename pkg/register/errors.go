package register

import(
	"github.com/pkg/errors"

	"github.com/abworrall/ereg/pkg/emath"
)

// ErrDimensionMismatch is returned when two images need to be the same
// size to be compared, and aren't. Callers are expected to skip the
// frame; it is never worth retrying.
var ErrDimensionMismatch = errors.New("image dimensions differ")

// ErrNoSuchChannel is returned when a channel selector points past the
// end of an image's channels.
var ErrNoSuchChannel = errors.New("no such channel")

func dimensionMismatch(src, tgt emath.FloatGrid) error {
	return errors.Wrapf(ErrDimensionMismatch, "source is %dx%d, target is %dx%d", src.Dx(), src.Dy(), tgt.Dx(), tgt.Dy())
}
