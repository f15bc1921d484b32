// Package poller drives a snapshot source on a fixed cadence and feeds every
// snapshot to a sink on a single goroutine.
//
// The poll loop is also the execution context for delayed work scheduled via
// AfterFunc and for device notifications, so a sink never sees concurrent
// calls.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/btn0s/prototype-playground/internal/log"
	"github.com/btn0s/prototype-playground/source"
)

// Strategy selects how the poll cadence is driven.
type Strategy string

const (
	// StrategyAuto picks interval for sources that push device changes and
	// refresh for everything else.
	StrategyAuto Strategy = "auto"
	// StrategyInterval polls on a fixed period.
	StrategyInterval Strategy = "interval"
	// StrategyRefresh polls once per display refresh.
	StrategyRefresh Strategy = "refresh"
)

const (
	DefaultInterval    = 100 * time.Millisecond
	DefaultRefreshRate = 60
)

// ErrAlreadyRunning is returned when Run is called more than once.
var ErrAlreadyRunning = errors.New("poller already running")

// Config configures the poll cadence.
type Config struct {
	Strategy    string        `help:"Poll cadence strategy" enum:"auto,interval,refresh" default:"auto" env:"BACKBONE_POLL_STRATEGY"`
	Interval    time.Duration `help:"Poll period of the interval strategy" default:"100ms" env:"BACKBONE_POLL_INTERVAL"`
	RefreshRate int           `help:"Refresh rate in Hz of the refresh strategy" default:"60" env:"BACKBONE_POLL_REFRESH_RATE"`
}

// Sink receives snapshots.
type Sink interface {
	Update(snap *source.Snapshot)
}

// Poller pulls snapshots from a source. A Poller runs at most once.
type Poller struct {
	src      source.Source
	strategy Strategy
	period   time.Duration
	logger   *slog.Logger
	trace    log.SnapshotLogger

	tasks   chan func()
	done    chan struct{}
	running atomic.Bool
}

// New creates a Poller for src. The strategy is decided here, once.
func New(src source.Source, cfg Config, logger *slog.Logger, trace log.SnapshotLogger) *Poller {
	if src == nil {
		src = source.Empty{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if trace == nil {
		trace = log.NewSnapshotLogger(nil)
	}
	strategy := chooseStrategy(Strategy(cfg.Strategy), src)
	return &Poller{
		src:      src,
		strategy: strategy,
		period:   period(strategy, cfg),
		logger:   logger,
		trace:    trace,
		tasks:    make(chan func(), 64),
		done:     make(chan struct{}),
	}
}

func chooseStrategy(s Strategy, src source.Source) Strategy {
	switch s {
	case StrategyInterval, StrategyRefresh:
		return s
	}
	if _, ok := src.(source.Notifier); ok {
		return StrategyInterval
	}
	return StrategyRefresh
}

func period(s Strategy, cfg Config) time.Duration {
	if s == StrategyRefresh {
		rate := cfg.RefreshRate
		if rate <= 0 {
			rate = DefaultRefreshRate
		}
		return time.Second / time.Duration(rate)
	}
	if cfg.Interval <= 0 {
		return DefaultInterval
	}
	return cfg.Interval
}

// Strategy returns the strategy chosen at construction.
func (p *Poller) Strategy() Strategy { return p.strategy }

// Period returns the time between two poll cycles.
func (p *Poller) Period() time.Duration { return p.period }

// AfterFunc runs fn on the poll loop once d has elapsed. It implements
// backbone.Scheduler. Functions that become due after Run returned are
// dropped.
func (p *Poller) AfterFunc(d time.Duration, fn func()) (cancel func()) {
	var cancelled atomic.Bool
	timer := time.AfterFunc(d, func() {
		p.post(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})
	return func() {
		cancelled.Store(true)
		timer.Stop()
	}
}

func (p *Poller) post(fn func()) {
	select {
	case p.tasks <- fn:
	case <-p.done:
	}
}

// Run polls until ctx is done. The ticker and any device listener are
// released before Run returns.
func (p *Poller) Run(ctx context.Context, sink Sink) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(p.done)

	if n, ok := p.src.(source.Notifier); ok {
		unregister := n.Notify(func(ev source.DeviceEvent) {
			p.post(func() { p.deviceChanged(ev, sink) })
		})
		defer unregister()
	}

	ticker := time.NewTicker(p.period)
	defer ticker.Stop()

	p.logger.Info("Polling gamepads", "strategy", p.strategy, "period", p.period)
	p.cycle(sink)

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("Poller stopped")
			return nil
		case <-ticker.C:
			p.cycle(sink)
		case fn := <-p.tasks:
			fn()
		}
	}
}

func (p *Poller) cycle(sink Sink) {
	for _, snap := range p.src.Snapshots() {
		if snap == nil {
			continue
		}
		p.trace.Log(snap)
		sink.Update(snap)
	}
}

func (p *Poller) deviceChanged(ev source.DeviceEvent, sink Sink) {
	p.logger.Info("Gamepad "+ev.Kind.String(), "index", ev.Index, "id", ev.ID)
	p.cycle(sink)
}
