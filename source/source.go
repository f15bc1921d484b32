// Package source defines the boundary between the platform gamepad APIs and
// the input normalizer.
//
// A Source is queried once per poll cycle and returns one Snapshot per
// connected device. Snapshots use the standard gamepad layout: buttons 0-17
// and axes 0-3 (left X, left Y, right X, right Y) in [-1, 1] with Y growing
// downwards.
package source

import "time"

// StandardButtons is the number of buttons in the standard layout.
const StandardButtons = 18

// StandardAxes is the number of axes in the standard layout.
const StandardAxes = 4

// Button is the raw state of a single button.
type Button struct {
	Pressed bool
	// Value is the analog value in [0, 1]; digital buttons report 0 or 1.
	Value float64
}

// Snapshot is one poll cycle's read of a device.
type Snapshot struct {
	Index     int
	ID        string
	Name      string
	Buttons   []Button
	Axes      []float64
	Timestamp time.Time
}

// Axis returns the axis value at i, or 0 if the device has no such axis.
func (s *Snapshot) Axis(i int) float64 {
	if s == nil || i < 0 || i >= len(s.Axes) {
		return 0
	}
	return s.Axes[i]
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.Buttons = append([]Button(nil), s.Buttons...)
	c.Axes = append([]float64(nil), s.Axes...)
	return &c
}

// Source returns the current state of every connected device.
//
// Snapshots may contain nil entries for device slots that are empty. A
// platform without any query capability returns an empty slice, not an error.
type Source interface {
	Snapshots() []*Snapshot
	Close() error
}

// DeviceEventKind tells whether a device appeared or went away.
type DeviceEventKind uint8

const (
	Connected DeviceEventKind = iota
	Disconnected
)

func (k DeviceEventKind) String() string {
	switch k {
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// DeviceEvent is a connect/disconnect notification.
type DeviceEvent struct {
	Kind  DeviceEventKind
	Index int
	ID    string
}

// Notifier is implemented by sources that can push device changes.
// The returned func removes the listener; it is safe to call more than once.
type Notifier interface {
	Notify(fn func(DeviceEvent)) (unregister func())
}

// Empty is a Source without any devices.
type Empty struct{}

func (Empty) Snapshots() []*Snapshot { return nil }
func (Empty) Close() error           { return nil }
