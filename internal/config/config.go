package config

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"wave-city/internal/heightfield"
)

// Options holds everything configurable from the command line.
type Options struct {
	// ModelPath is a .glb/.gltf building model; empty uses the builtin box.
	ModelPath string
	// ParamsPath is a YAML preset merged over the defaults at startup and on reload.
	ParamsPath string
	// SaveParamsPath, when set, receives the final parameters on exit.
	SaveParamsPath string

	Noise string
	// Seed for the noise generator and grid rotations; 0 picks one at random.
	Seed int64

	FPSLimit int
	Width    int
	Height   int
	Debug    bool
}

// Defaults returns the options used when no flags are given.
func Defaults() Options {
	return Options{
		Noise:    "perlin",
		FPSLimit: 120,
		Width:    1280,
		Height:   720,
	}
}

// ErrHelp is returned when -h or -help was requested.
var ErrHelp = flag.ErrHelp

// ParseFlags parses args (without the program name) into Options. Usage and
// parse errors are written to out.
func ParseFlags(name string, args []string, out io.Writer) (Options, error) {
	o := Defaults()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&o.ModelPath, "model", o.ModelPath, "building model (.glb or .gltf); empty draws a box")
	fs.StringVar(&o.ParamsPath, "params", o.ParamsPath, "YAML parameter preset loaded at startup and reloaded with r")
	fs.StringVar(&o.SaveParamsPath, "save-params", o.SaveParamsPath, "write the final parameters to this YAML file on exit")
	fs.StringVar(&o.Noise, "noise", o.Noise, "noise generator: perlin or simplex")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "noise and layout seed (0 = random)")
	fs.IntVar(&o.FPSLimit, "fps", o.FPSLimit, "frame rate cap (0 = uncapped)")
	fs.IntVar(&o.Width, "width", o.Width, "initial window width")
	fs.IntVar(&o.Height, "height", o.Height, "initial window height")
	fs.BoolVar(&o.Debug, "debug", o.Debug, "debug logging")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return o, o.Validate()
}

// Validate checks option ranges.
func (o Options) Validate() error {
	var errs []error
	if _, err := heightfield.NewNoise(o.Noise, 1); err != nil {
		errs = append(errs, err)
	}
	if o.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("fps must be >= 0, got %d", o.FPSLimit))
	}
	if o.Width <= 0 || o.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", o.Width, o.Height))
	}
	return errors.Join(errs...)
}

// ResolveSeed returns Seed, or a random seed when it is zero.
func (o Options) ResolveSeed() int64 {
	if o.Seed != 0 {
		return o.Seed
	}
	return heightfield.RandomSeed()
}
