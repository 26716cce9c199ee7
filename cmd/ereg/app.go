package main

import(
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/abworrall/ereg/pkg/efft"
	"github.com/abworrall/ereg/pkg/eimage"
	"github.com/abworrall/ereg/pkg/register"
	"github.com/abworrall/ereg/pkg/resample"
)

const(
	flagConfig    = "config"
	flagVerbose   = "verbose"
	flagFFT       = "fft"
	flagResampler = "resampler"
	flagRef       = "ref"
	flagFrame     = "frame"
	flagChannel   = "channel"
	flagOutput    = "output"
	flagOutDir    = "outdir"
	flagMode      = "mode"
	flagGrow      = "grow"
)

func newApp() *cli.App { return newAppWithLogger(newLogger) }

// newAppWithLogger lets tests see what gets logged.
func newAppWithLogger(mkLogger func(verbose bool) (*zap.SugaredLogger, error)) *cli.App {
	var reg *register.Registrar

	channelFlag := &cli.IntFlag{
		Name:  flagChannel,
		Value: int(register.AllChannels),
		Usage: "channel to register (-1 for all of them)",
	}
	refFlag := &cli.StringFlag{
		Name:     flagRef,
		Required: true,
		Usage:    "reference image `FILE`",
	}

	pairFlags := []cli.Flag{
		refFlag,
		&cli.StringFlag{Name: flagFrame, Required: true, Usage: "image `FILE` to correct"},
		&cli.StringFlag{Name: flagOutput, Aliases: []string{"o"}, Usage: "write the corrected image to `FILE` (.png or .hdr)"},
		channelFlag,
	}

	return &cli.App{
		Name:  "ereg",
		Usage: "rigid registration of image frames",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load options from YAML `FILE`",
			},
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "debug logging",
			},
			&cli.StringFlag{Name: flagFFT, Usage: "FFT backend: " + efft.List()},
			&cli.StringFlag{Name: flagResampler, Usage: "resampler: " + resample.List() + " (imaging is too coarse for registration, use it for previews only)"},
			&cli.BoolFlag{Name: flagGrow, Usage: "let corrected images grow, rather than cropping to the input size"},
		},
		Before: func(c *cli.Context) error {
			logger, err := mkLogger(c.Bool(flagVerbose))
			if err != nil {
				return err
			}

			opts := register.NewOptions()
			if file := c.String(flagConfig); file != "" {
				if opts, err = register.LoadOptions(file); err != nil {
					return err
				}
			}
			if c.IsSet(flagFFT) {
				opts.FFT = c.String(flagFFT)
			}
			if c.IsSet(flagResampler) {
				opts.Resampler = c.String(flagResampler)
			}
			if c.Bool(flagGrow) {
				opts.PreserveSize = false
			}

			if reg, err = register.NewRegistrar(opts, logger); err != nil {
				return err
			}
			logger.Debugf("final options:-\n\n%s\n", reg.Options.AsYaml())
			return nil
		},
		After: func(c *cli.Context) error {
			if reg != nil {
				_ = reg.Logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "translate",
				Usage:     "shift a frame to line up with the reference",
				UsageText: "ereg translate --ref REF --frame FRAME [-o OUT]",
				Flags:     pairFlags,
				Action: func(c *cli.Context) error {
					return registerPair(c, reg, register.ModeTranslate)
				},
			},
			{
				Name:      "rotate",
				Usage:     "rotate a frame about its center to line up with the reference",
				UsageText: "ereg rotate --ref REF --frame FRAME [-o OUT]",
				Flags:     pairFlags,
				Action: func(c *cli.Context) error {
					return registerPair(c, reg, register.ModeRotate)
				},
			},
			{
				Name:      "register",
				Usage:     "register a whole stack of frames against the reference",
				UsageText: "ereg register --ref REF [--mode rigid] [--outdir DIR] FILES/DIRS...",
				Flags: []cli.Flag{
					refFlag,
					channelFlag,
					&cli.StringFlag{Name: flagMode, Value: register.ModeRigid.String(), Usage: "translate, rotate or rigid"},
					&cli.StringFlag{Name: flagOutDir, Usage: "write corrected frames into `DIR`"},
				},
				Action: func(c *cli.Context) error {
					return registerStack(c, reg)
				},
			},
			{
				Name:      "inspect",
				Usage:     "describe image files",
				UsageText: "ereg inspect FILES/DIRS...",
				Action: func(c *cli.Context) error {
					return inspect(c)
				},
			},
		},
	}
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "logger")
	}
	return logger.Sugar(), nil
}

func registerPair(c *cli.Context, reg *register.Registrar, mode register.Mode) error {
	ref, err := eimage.LoadFrame(c.String(flagRef))
	if err != nil {
		return err
	}
	frame, err := eimage.LoadFrame(c.String(flagFrame))
	if err != nil {
		return err
	}

	res := reg.RegisterFrame(frame.Filename(), frame.Image, ref.Image, register.Channel(c.Int(flagChannel)), mode)
	if res.Err != nil {
		return errors.Wrap(res.Err, frame.Filename())
	}
	fmt.Fprintln(c.App.Writer, res)

	if out := c.String(flagOutput); out != "" {
		return eimage.Write(res.Image, out)
	}
	return nil
}

func registerStack(c *cli.Context, reg *register.Registrar) error {
	mode, err := register.ParseMode(c.String(flagMode))
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return errors.New("no frames given")
	}

	ref, err := eimage.LoadFrame(c.String(flagRef))
	if err != nil {
		return err
	}
	frames, err := eimage.LoadFilesAndDirs(c.Args().Slice()...)
	if err != nil {
		return err
	}
	reg.Logger.Infow("registering stack", "reference", ref.Filename(), "frames", len(frames), "mode", mode.String())

	results, stackErr := reg.Stack(c.Context, ref.Image, frames, register.Channel(c.Int(flagChannel)), mode)

	outDir := c.String(flagOutDir)
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return errors.Wrap(err, "outdir")
		}
	}

	for i, res := range results {
		fmt.Fprintln(c.App.Writer, res)
		if res.Err != nil || outDir == "" {
			continue
		}
		if err := eimage.Write(res.Image, filepath.Join(outDir, outputName(i, res.Name))); err != nil {
			return err
		}
	}

	return stackErr
}

// outputName prefixes the frame's position in the stack, as frames from
// different directories can share a name.
func outputName(i int, name string) string {
	return fmt.Sprintf("%04d-%s.png", i, strings.TrimSuffix(name, filepath.Ext(name)))
}

func inspect(c *cli.Context) error {
	frames, err := eimage.LoadFilesAndDirs(c.Args().Slice()...)
	if err != nil {
		return err
	}
	for _, f := range frames {
		fmt.Fprintf(c.App.Writer, "%s\n", f)
		for i, ch := range f.Channels {
			fmt.Fprintf(c.App.Writer, "  [%d] %s\n", i, ch.Stats())
		}
	}
	return nil
}
