package testing

import (
	"sync"
	"time"

	"github.com/btn0s/prototype-playground/source"
)

// Pad builds a standard-layout snapshot with the given button indices pressed
// and the axes set to axes (missing axes are zero).
func Pad(axes []float64, pressed ...int) *source.Snapshot {
	s := &source.Snapshot{
		ID:        "pad0",
		Name:      "Scripted Pad",
		Buttons:   make([]source.Button, source.StandardButtons),
		Axes:      make([]float64, source.StandardAxes),
		Timestamp: time.Unix(0, 0),
	}
	copy(s.Axes, axes)
	for _, i := range pressed {
		if i >= len(s.Buttons) {
			s.Buttons = append(s.Buttons, make([]source.Button, i-len(s.Buttons)+1)...)
		}
		s.Buttons[i] = source.Button{Pressed: true, Value: 1}
	}
	return s
}

// ScriptedSource replays a fixed list of frames, one per Snapshots call, and
// keeps returning the last frame once the script is exhausted.
type ScriptedSource struct {
	mu     sync.Mutex
	frames [][]*source.Snapshot
	last   []*source.Snapshot
	calls  int
	closed bool
}

func NewScriptedSource(frames ...[]*source.Snapshot) *ScriptedSource {
	return &ScriptedSource{frames: frames}
}

// Set replaces the remaining script with a single frame.
func (s *ScriptedSource) Set(snaps ...*source.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = nil
	s.last = snaps
}

func (s *ScriptedSource) Snapshots() []*source.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.frames) > 0 {
		s.last = s.frames[0]
		s.frames = s.frames[1:]
	}
	out := make([]*source.Snapshot, len(s.last))
	for i, snap := range s.last {
		out[i] = snap.Clone()
	}
	return out
}

func (s *ScriptedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Calls reports how many times Snapshots was called.
func (s *ScriptedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *ScriptedSource) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// NotifyingSource is a ScriptedSource that also pushes device events.
type NotifyingSource struct {
	*ScriptedSource

	lmu       sync.Mutex
	listeners map[int]func(source.DeviceEvent)
	nextID    int
}

func NewNotifyingSource(frames ...[]*source.Snapshot) *NotifyingSource {
	return &NotifyingSource{
		ScriptedSource: NewScriptedSource(frames...),
		listeners:      map[int]func(source.DeviceEvent){},
	}
}

func (s *NotifyingSource) Notify(fn func(source.DeviceEvent)) func() {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.lmu.Unlock()
	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

// Emit delivers ev to every registered listener.
func (s *NotifyingSource) Emit(ev source.DeviceEvent) {
	s.lmu.Lock()
	fns := make([]func(source.DeviceEvent), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// Listeners reports how many listeners are registered.
func (s *NotifyingSource) Listeners() int {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	return len(s.listeners)
}
