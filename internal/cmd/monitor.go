package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btn0s/prototype-playground/backbone"
	"github.com/btn0s/prototype-playground/internal/log"
)

// Monitor logs every normalized input event.
type Monitor struct {
	Input      `embed:""`
	StateEvery time.Duration `help:"Log the published stick state at debug level on this period (0 disables)" default:"0s" env:"BACKBONE_STATE_EVERY"`
}

// Run is called by Kong when the monitor command is executed.
func (c *Monitor) Run(logger *slog.Logger, trace log.SnapshotLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := c.pipeline(c.open(logger), logger, trace)
	defer func() { _ = p.Close() }()
	return c.monitor(ctx, p, logger)
}

func (c *Monitor) monitor(ctx context.Context, p *pipeline, logger *slog.Logger) error {
	n := p.normalizer
	for _, b := range backbone.Buttons() {
		for _, kind := range []backbone.InputKind{backbone.Press, backbone.Release, backbone.Hold} {
			n.OnButton(b, kind, func() {
				logger.Info("Button", "button", b, "event", kind)
			})
		}
	}
	for _, side := range []backbone.Side{backbone.SideLeft, backbone.SideRight} {
		for _, d := range []backbone.Direction{backbone.Up, backbone.Down, backbone.Left, backbone.Right} {
			n.OnDirection(side, d, func() {
				logger.Debug("Stick", "stick", side, "direction", d)
			})
		}
	}

	if c.StateEvery > 0 {
		go func() {
			ticker := time.NewTicker(c.StateEvery)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					st := n.State()
					logger.Debug("State",
						"left", stickAttr(st.Left),
						"right", stickAttr(st.Right))
				}
			}
		}()
	}

	logger.Info("Monitoring gamepad input, press Ctrl-C to stop")
	return p.run(ctx)
}

func stickAttr(s backbone.JoystickSample) slog.Value {
	attrs := []slog.Attr{slog.Float64("x", s.X), slog.Float64("y", s.Y)}
	if s.HasAngle {
		attrs = append(attrs, slog.Float64("angle", s.Angle))
	}
	return slog.GroupValue(attrs...)
}
