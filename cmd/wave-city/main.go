package main

import (
	"errors"
	"os"
	"runtime"

	"wave-city/internal/config"
	"wave-city/internal/game"
	"wave-city/internal/input"
	"wave-city/internal/params"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	opts, err := config.ParseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, config.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Error().Err(err).Msg("invalid arguments")
		os.Exit(2)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	p := params.Default()
	if opts.ParamsPath != "" {
		if p, err = params.Load(opts.ParamsPath); err != nil {
			log.Fatal().Err(err).Str("path", opts.ParamsPath).Msg("load parameters")
		}
	}

	if err := glfw.Init(); err != nil {
		log.Fatal().Err(err).Msg("glfw init")
	}

	window, err := game.SetupWindow(opts.Width, opts.Height, "wave-city")
	if err != nil {
		glfw.Terminate()
		log.Fatal().Err(err).Msg("create window")
	}

	app, err := game.NewApp(window, input.NewInputManager(), opts, p)
	if err != nil {
		glfw.Terminate()
		log.Fatal().Err(err).Msg("start")
	}
	game.SetupInputHandlers(app)

	// closer exits the process after its hooks run, so the loop must hand
	// control back here before GL is torn down.
	exitC := make(chan struct{}, 1)
	doneC := make(chan struct{})
	closer.Bind(func() {
		exitC <- struct{}{}
		<-doneC
		log.Info().Msg("bye")
	})
	defer closer.Close()

	app.Run(exitC)

	if err := app.Close(); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	glfw.Terminate()
	close(doneC)
}
