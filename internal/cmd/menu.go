package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/btn0s/prototype-playground/internal/log"
	"github.com/btn0s/prototype-playground/menu"
)

// Menu drives an on-screen menu with a gamepad.
type Menu struct {
	Input `embed:""`
	Items int  `help:"Number of menu entries" default:"5" env:"BACKBONE_MENU_ITEMS"`
	Plain bool `help:"Print the menu as text instead of drawing it full screen" env:"BACKBONE_MENU_PLAIN"`
}

// FullScreen reports whether the menu takes over the terminal. Console
// logging must be off in that case.
func (c *Menu) FullScreen() bool {
	return !c.Plain && term.IsTerminal(int(os.Stdout.Fd()))
}

// Run is called by Kong when the menu command is executed.
func (c *Menu) Run(logger *slog.Logger, trace log.SnapshotLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var r menu.Renderer = &menu.TextRenderer{W: os.Stdout}
	if c.FullScreen() {
		tr, err := menu.NewTerminalRenderer()
		if err != nil {
			return err
		}
		r = tr
	}

	p := c.pipeline(c.open(logger), logger, trace)
	defer func() { _ = p.Close() }()
	return c.run(ctx, p, r, logger)
}

// run returns when the renderer quits or ctx is done, after the poll loop
// stopped.
func (c *Menu) run(ctx context.Context, p *pipeline, r menu.Renderer, logger *slog.Logger) error {
	m := menu.New(menu.DefaultLabels(c.Items))
	if err := menu.Bind(p.normalizer, m, menu.DefaultBindings); err != nil {
		return err
	}
	m.OnSelect(func(i int) {
		logger.Info("Menu option selected", "index", i, "item", m.View().Items[i])
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	pollErr := make(chan error, 1)
	go func() { pollErr <- p.run(ctx) }()

	err := r.Run(ctx, m)
	cancel()
	if perr := <-pollErr; err == nil {
		err = perr
	}
	return err
}
