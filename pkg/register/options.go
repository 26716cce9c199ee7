package register

import(
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/abworrall/ereg/pkg/efft"
	"github.com/abworrall/ereg/pkg/resample"
)

/* Example config file ...

angularresolution: 1080
radialresolution: 360
searchfullrotationspace: false
normalizecrosspower: false
preservesize: true
fft: gonum
resampler: catmullrom
debugdir: /tmp/ereg-debug
workers: 8

*/

type Options struct {
	AngularResolution       int     // Number of angle buckets in the log-polar images
	RadialResolution        int     // Number of radius buckets in the log-polar images

	// Rotation peak search looks at the first half of the correlation
	// surface only, to dodge the theta/theta+pi ambiguity. Set this to
	// look at all of it.
	SearchFullRotationSpace bool

	// Divide the cross-power spectrum by its magnitude (i.e. proper phase
	// correlation). Off by default; peaks are less sharp, but that is
	// what existing alignments were tuned against.
	NormalizeCrossPower     bool

	PreserveSize            bool    // Corrections crop back to the input's size, rather than growing the canvas

	FFT                     string  // efft backend name
	Resampler               string  // resample backend name; "imaging" is for previews, not registration

	DebugDir                string  // If set, correlation surfaces etc. get dumped here as PNGs
	Workers                 int     // Frames registered in parallel, by Stack
}

const(
	DefaultAngularResolution = 1080
	DefaultRadialResolution  = 360
)

func NewOptions() Options {
	return Options{
		AngularResolution: DefaultAngularResolution,
		RadialResolution:  DefaultRadialResolution,
		PreserveSize:      true,
		FFT:               efft.DefaultBackend,
		Resampler:         "bilinear",
		Workers:           4,
	}
}

func newOptionsFromYaml(b []byte) (Options, error) {
	o := NewOptions()
	if err := yaml.Unmarshal(b, &o); err != nil {
		return o, errors.Wrap(err, "parse options")
	}
	return o, o.Finalize()
}

func LoadOptions(filename string) (Options, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Options{}, errors.Wrapf(err, "options read %s", filename)
	}

	o, err := newOptionsFromYaml(contents)
	return o, errors.Wrapf(err, "options %s", filename)
}

func (o Options)AsYaml() string {
	b, err := yaml.Marshal(o)
	if err != nil {
		return fmt.Sprintf("# can't marshal options: %v\n", err)
	}
	return string(b)
}

// Finalize does sanity checks, and fills in anything left blank.
func (o *Options)Finalize() error {
	if o.AngularResolution <= 0 || o.RadialResolution <= 0 {
		return errors.Errorf("log-polar resolution must be positive, got %dx%d", o.AngularResolution, o.RadialResolution)
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if _, err := efft.Get(o.FFT); err != nil {
		return err
	}
	if _, err := resample.Get(o.Resampler); err != nil {
		return err
	}
	if o.FFT == "" {
		o.FFT = efft.DefaultBackend
	}
	if o.Resampler == "" {
		o.Resampler = "bilinear"
	}
	return nil
}
