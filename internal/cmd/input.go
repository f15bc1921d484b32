package cmd

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/btn0s/prototype-playground/backbone"
	"github.com/btn0s/prototype-playground/internal/log"
	"github.com/btn0s/prototype-playground/poller"
	"github.com/btn0s/prototype-playground/source"
	"github.com/btn0s/prototype-playground/source/joydev"
	"github.com/btn0s/prototype-playground/source/sdlpad"
)

// Backend selects where gamepad snapshots come from.
type Backend struct {
	Source string `help:"Gamepad backend (auto prefers the Linux joystick API, then SDL)" enum:"auto,sdl,joydev,none" default:"auto" env:"BACKBONE_SOURCE"`
}

// Input configures the whole input stack: backend, poll cadence and
// normalizer thresholds.
type Input struct {
	Backend `embed:""`
	Poll    poller.Config    `embed:"" prefix:"poll."`
	Options backbone.Options `embed:"" prefix:"input."`
}

// open never fails: a backend that cannot be opened degrades to a source
// without devices.
func (b *Backend) open(logger *slog.Logger) source.Source {
	switch b.Source {
	case "none":
		return source.Empty{}
	case "sdl":
		return sdlpad.New(logger)
	case "joydev":
		src, err := joydev.Open(logger)
		if err != nil {
			logger.Warn("Joystick API unavailable, no controllers will be reported", "error", err)
			return source.Empty{}
		}
		return src
	}

	if runtime.GOOS == "linux" {
		src, err := joydev.Open(logger)
		if err == nil {
			return src
		}
		logger.Debug("Joystick API unavailable, falling back to SDL", "error", err)
	}
	return sdlpad.New(logger)
}

type pipeline struct {
	src        source.Source
	poller     *poller.Poller
	normalizer *backbone.Normalizer
}

func (in *Input) pipeline(src source.Source, logger *slog.Logger, trace log.SnapshotLogger) *pipeline {
	p := poller.New(src, in.Poll, logger, trace)
	return &pipeline{
		src:        src,
		poller:     p,
		normalizer: backbone.New(p, in.Options, logger),
	}
}

func (p *pipeline) run(ctx context.Context) error {
	return p.poller.Run(ctx, p.normalizer)
}

// Close must not be called while run is active.
func (p *pipeline) Close() error {
	p.normalizer.Close()
	return p.src.Close()
}
