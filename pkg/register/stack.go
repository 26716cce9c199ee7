package register

import(
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/abworrall/ereg/pkg/eimage"
)

// A Mode says which corrections Stack runs on each frame.
type Mode int

const(
	ModeTranslate Mode = iota
	ModeRotate
	ModeRigid // translate, then rotate
)

func (m Mode)String() string {
	switch m {
	case ModeTranslate: return "translate"
	case ModeRotate:    return "rotate"
	case ModeRigid:     return "rigid"
	default:            return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "translate", "translation": return ModeTranslate, nil
	case "rotate", "rotation":       return ModeRotate, nil
	case "rigid", "":                return ModeRigid, nil
	}
	return ModeRigid, errors.Errorf("unknown mode '%s' (want translate, rotate or rigid)", s)
}

// A Result is what happened to one frame.
type Result struct {
	Name    string
	Shift   Displacement // averaged translation estimate, before rounding
	Angle   float64      // averaged rotation estimate, radians
	Changed bool
	Image   eimage.Image // the corrected frame; the input frame if nothing changed or it failed

	// How far the corrected frame is from the reference. Zero if the frame
	// grew, as there's nothing to line it up against.
	Residual Residual

	Err     error
}

func (res Result)String() string {
	if res.Err != nil {
		return fmt.Sprintf("%s: FAILED: %v", res.Name, res.Err)
	}
	return fmt.Sprintf("%s: shift %s, rotate %.3fdeg, changed=%v, %s", res.Name, res.Shift, res.Angle * 180.0 / math.Pi, res.Changed, res.Residual)
}

// RegisterFrame corrects a single frame against the reference.
func (r *Registrar)RegisterFrame(name string, frame, ref eimage.Image, ch Channel, mode Mode) Result {
	res := Result{Name: name, Image: frame}
	img := frame

	if mode == ModeTranslate || mode == ModeRigid {
		d, err := r.averageTranslation(img, ref, ch)
		if err != nil {
			res.Err = errors.Wrap(err, "translation")
			return res
		}
		res.Shift = d
		if !d.IsZero() {
			img = r.ApplyTranslation(img, ch, d, r.PreserveSize)
			res.Changed = true
		}
	}

	if mode == ModeRotate || mode == ModeRigid {
		var hint *Displacement
		if mode == ModeRigid {
			hint = &res.Shift
		}
		angle, err := r.averageRotation(img, ref, ch, hint)
		if err != nil {
			res.Err = errors.Wrap(err, "rotation")
			return res
		}
		res.Angle = angle
		if angle != 0 {
			img = r.ApplyRotation(img, ch, angle, r.PreserveSize)
			res.Changed = true
		}
	}

	res.Image = img
	if img.SameSize(ref) {
		residual, err := r.Residual(img, ref, ch)
		if err != nil {
			res.Err = errors.Wrap(err, "residual")
			return res
		}
		res.Residual = residual
	}

	r.Logger.Infow("registered frame", "frame", name, "mode", mode.String(), "shift", res.Shift.String(),
		"radians", res.Angle, "changed", res.Changed, "residual", res.Residual.Mean)
	return res
}

type stackJob struct {
	Index int
	Frame eimage.Frame
}

// Stack registers every frame against ref, using Options.Workers
// goroutines. Results come back in the same order as the frames. Frames
// that fail (or that never started because ctx was cancelled) keep
// their error in their Result, and are skipped; all such errors are
// combined into the returned error.
func (r *Registrar)Stack(ctx context.Context, ref eimage.Image, frames []eimage.Frame, ch Channel, mode Mode) ([]Result, error) {
	var wg sync.WaitGroup
	jobsChan := make(chan stackJob, len(frames))
	results  := make([]Result, len(frames))

	nWorkers := max(r.Workers, 1)
	for i := 0; i < nWorkers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			for job := range jobsChan {
				name := job.Frame.Filename()
				if err := ctx.Err(); err != nil {
					results[job.Index] = Result{Name: name, Image: job.Frame.Image, Err: err}
					continue
				}
				results[job.Index] = r.RegisterFrame(name, job.Frame.Image, ref, ch, mode)
			}
		}()
	}

	for i, f := range frames {
		jobsChan<- stackJob{i, f}
	}
	close(jobsChan)
	wg.Wait()

	var err error
	for _, res := range results {
		if res.Err != nil {
			r.Logger.Warnw("skipping frame", "frame", res.Name, "err", res.Err)
			err = multierr.Append(err, errors.Wrap(res.Err, res.Name))
		}
	}

	return results, err
}
