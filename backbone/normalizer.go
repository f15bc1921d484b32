// Package backbone turns raw gamepad snapshots into discrete input events.
//
// Buttons are edge-triggered: Press and Release fire on transitions and Hold
// fires once after a button stayed down for the hold threshold. Sticks are
// level-triggered: a direction callback fires on every update while the axis
// is beyond the direction threshold.
//
// A Normalizer is driven by a single goroutine (the poll loop): Update, Close
// and every function passed to the Scheduler must run there. Registration
// and the published State may be used from any goroutine.
package backbone

import (
	"log/slog"
	"sync"
	"time"

	"github.com/btn0s/prototype-playground/source"
)

// Callback is invoked when an input event fires.
type Callback func()

// Scheduler runs delayed work on the normalizer's execution context.
type Scheduler interface {
	// AfterFunc arranges for fn to run once d has elapsed. Calling the
	// returned cancel func before fn ran prevents it from ever running.
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// Options tunes a Normalizer. Zero values select the defaults.
type Options struct {
	HoldThreshold      time.Duration `help:"How long a button must stay pressed before a hold event fires" default:"500ms" env:"BACKBONE_HOLD_THRESHOLD"`
	DirectionThreshold float64       `help:"Axis magnitude a stick must exceed to fire a direction" default:"0.5" env:"BACKBONE_DIRECTION_THRESHOLD"`
}

type subscriber struct {
	id uint64
	fn func(State)
}

// Normalizer converts snapshots into events and dispatches them to the
// registered callbacks.
type Normalizer struct {
	sched              Scheduler
	logger             *slog.Logger
	holdThreshold      time.Duration
	directionThreshold float64

	regMu              sync.RWMutex
	buttonCallbacks    [numButtons][numKinds]Callback
	directionCallbacks [numSides][numDirections]Callback

	// owned by the poll loop
	buttons [numButtons]ButtonState
	holds   [numButtons]func()
	closed  bool

	stateMu   sync.RWMutex
	published State
	subs      []subscriber
	nextSub   uint64
}

// New returns a Normalizer with neutral state that arms hold timers on sched.
func New(sched Scheduler, opts Options, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.HoldThreshold <= 0 {
		opts.HoldThreshold = DefaultHoldThreshold
	}
	if opts.DirectionThreshold <= 0 {
		opts.DirectionThreshold = DefaultDirectionThreshold
	}
	return &Normalizer{
		sched:              sched,
		logger:             logger,
		holdThreshold:      opts.HoldThreshold,
		directionThreshold: opts.DirectionThreshold,
	}
}

// OnButton registers cb for kind events of b, replacing any previous
// registration for that pair. A nil cb clears the slot.
func (n *Normalizer) OnButton(b Button, kind InputKind, cb Callback) {
	if int(b) >= numButtons || int(kind) >= numKinds {
		return
	}
	n.regMu.Lock()
	n.buttonCallbacks[b][kind] = cb
	n.regMu.Unlock()
}

// OnDirection registers cb for a stick direction, replacing any previous
// registration for that pair. A nil cb clears the slot.
func (n *Normalizer) OnDirection(side Side, d Direction, cb Callback) {
	if int(side) >= numSides || int(d) >= numDirections {
		return
	}
	n.regMu.Lock()
	n.directionCallbacks[side][d] = cb
	n.regMu.Unlock()
}

// OnInput registers cb by name: either a button ("A", "DPadDown") with the
// given kind, or a stick direction ("LeftDown", "RightUp"), for which kind is
// ignored.
func (n *Normalizer) OnInput(name string, kind InputKind, cb Callback) error {
	if b, ok := ParseButton(name); ok {
		n.OnButton(b, kind, cb)
		return nil
	}
	if side, d, ok := ParseDirection(name); ok {
		n.OnDirection(side, d, cb)
		return nil
	}
	return unknownInput(name)
}

// Update processes one snapshot: button transitions first, then stick
// directions, then the new state is published.
func (n *Normalizer) Update(snap *source.Snapshot) {
	if snap == nil || n.closed {
		return
	}

	// Registrations made by callbacks during this update apply from the next one.
	n.regMu.RLock()
	buttonCbs := n.buttonCallbacks
	directionCbs := n.directionCallbacks
	n.regMu.RUnlock()

	for i, raw := range snap.Buttons {
		b, ok := ButtonForIndex(i)
		if !ok {
			continue
		}
		n.updateButton(b, raw.Pressed, &buttonCbs)
	}

	left := NewJoystickSample(snap.Axis(0), snap.Axis(1))
	right := NewJoystickSample(snap.Axis(2), snap.Axis(3))
	n.crossDirections(SideLeft, left, &directionCbs)
	n.crossDirections(SideRight, right, &directionCbs)

	n.publish(left, right)
}

func (n *Normalizer) updateButton(b Button, pressed bool, cbs *[numButtons][numKinds]Callback) {
	wasPressed := n.buttons[b].Pressed
	n.buttons[b] = ButtonState{Pressed: pressed, Touched: pressed}

	switch {
	case pressed && !wasPressed:
		n.logger.Debug("button event", "button", b, "kind", Press)
		if cb := cbs[b][Press]; cb != nil {
			cb()
		}
		n.armHold(b)
	case !pressed && wasPressed:
		n.cancelHold(b)
		n.logger.Debug("button event", "button", b, "kind", Release)
		if cb := cbs[b][Release]; cb != nil {
			cb()
		}
	}
}

func (n *Normalizer) armHold(b Button) {
	n.cancelHold(b)
	if n.closed || n.sched == nil {
		return
	}
	n.holds[b] = n.sched.AfterFunc(n.holdThreshold, func() {
		n.holds[b] = nil
		if n.closed {
			return
		}
		n.regMu.RLock()
		cb := n.buttonCallbacks[b][Hold]
		n.regMu.RUnlock()
		n.logger.Debug("button event", "button", b, "kind", Hold)
		if cb != nil {
			cb()
		}
	})
}

func (n *Normalizer) cancelHold(b Button) {
	if cancel := n.holds[b]; cancel != nil {
		cancel()
		n.holds[b] = nil
	}
}

func (n *Normalizer) crossDirections(side Side, s JoystickSample, cbs *[numSides][numDirections]Callback) {
	fire := func(d Direction) {
		if cb := cbs[side][d]; cb != nil {
			cb()
		}
	}
	t := n.directionThreshold
	if s.X > t {
		fire(Right)
	} else if s.X < -t {
		fire(Left)
	}
	if s.Y > t {
		fire(Down)
	} else if s.Y < -t {
		fire(Up)
	}
}

func (n *Normalizer) publish(left, right JoystickSample) {
	n.stateMu.Lock()
	n.published.Buttons = n.buttons
	n.published.Left = left
	n.published.Right = right
	st := n.published
	subs := make([]func(State), len(n.subs))
	for i, s := range n.subs {
		subs[i] = s.fn
	}
	n.stateMu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

// State returns the last published state.
func (n *Normalizer) State() State {
	n.stateMu.RLock()
	defer n.stateMu.RUnlock()
	return n.published
}

// Subscribe registers fn to be called with the new state after every update.
func (n *Normalizer) Subscribe(fn func(State)) (unsubscribe func()) {
	n.stateMu.Lock()
	id := n.nextSub
	n.nextSub++
	n.subs = append(n.subs, subscriber{id: id, fn: fn})
	n.stateMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.stateMu.Lock()
			defer n.stateMu.Unlock()
			for i, s := range n.subs {
				if s.id == id {
					n.subs = append(n.subs[:i], n.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Close cancels every pending hold timer and drops all callbacks and
// subscribers. No callback fires after Close returns.
func (n *Normalizer) Close() {
	if n.closed {
		return
	}
	n.closed = true
	for b := range n.holds {
		n.cancelHold(Button(b))
	}

	n.regMu.Lock()
	n.buttonCallbacks = [numButtons][numKinds]Callback{}
	n.directionCallbacks = [numSides][numDirections]Callback{}
	n.regMu.Unlock()

	n.stateMu.Lock()
	n.subs = nil
	n.stateMu.Unlock()
}
