package joydev

import "github.com/btn0s/prototype-playground/source"

const (
	axisMax          = 32767
	triggerThreshold = 0.5
)

// Standard layout indices used by the translation.
const (
	stdL2        = 6
	stdR2        = 7
	stdDPadUp    = 12
	stdDPadDown  = 13
	stdDPadLeft  = 14
	stdDPadRight = 15
)

// layout translates the driver's button and axis numbering into the
// standard gamepad layout.
type layout struct {
	// buttons maps a joystick button number to a standard button index.
	buttons map[int]int
	// sticks holds the joystick axes for standard axes 0-3.
	sticks [source.StandardAxes]int
	// triggers holds the analog trigger axes for L2 and R2.
	triggers [2]int
	// hat holds the X and Y axes of the D-pad hat.
	hat [2]int
}

// xpadLayout is the layout of the Linux xpad driver (Xbox and most
// XInput-style controllers). D-pads reported as buttons 11-14 are mapped too.
var xpadLayout = layout{
	buttons: map[int]int{
		0:  0,  // A
		1:  1,  // B
		2:  2,  // X
		3:  3,  // Y
		4:  4,  // LB
		5:  5,  // RB
		6:  8,  // Back
		7:  9,  // Start
		8:  16, // Guide
		9:  10, // left stick
		10: 11, // right stick
		11: stdDPadLeft,
		12: stdDPadRight,
		13: stdDPadUp,
		14: stdDPadDown,
	},
	sticks:   [source.StandardAxes]int{0, 1, 3, 4},
	triggers: [2]int{2, 5},
	hat:      [2]int{6, 7},
}

func (l *layout) translate(buttons, axes []int16) *source.Snapshot {
	snap := &source.Snapshot{
		Buttons: make([]source.Button, source.StandardButtons),
		Axes:    make([]float64, source.StandardAxes),
	}
	press := func(i int, value float64) {
		if value > snap.Buttons[i].Value {
			snap.Buttons[i] = source.Button{Pressed: value > 0, Value: value}
		}
	}

	for n, v := range buttons {
		if std, ok := l.buttons[n]; ok && v != 0 {
			press(std, 1)
		}
	}

	axis := func(n int) (float64, bool) {
		if n < 0 || n >= len(axes) {
			return 0, false
		}
		return normalize(axes[n]), true
	}

	for i, n := range l.sticks {
		if v, ok := axis(n); ok {
			snap.Axes[i] = v
		}
	}

	for i, n := range l.triggers {
		v, ok := axis(n)
		if !ok {
			continue
		}
		// Triggers rest at -1 and travel to +1.
		value := (v + 1) / 2
		std := stdL2 + i
		if value > triggerThreshold {
			press(std, value)
		} else if value > snap.Buttons[std].Value {
			snap.Buttons[std].Value = value
		}
	}

	if v, ok := axis(l.hat[0]); ok {
		if v < 0 {
			press(stdDPadLeft, 1)
		} else if v > 0 {
			press(stdDPadRight, 1)
		}
	}
	if v, ok := axis(l.hat[1]); ok {
		if v < 0 {
			press(stdDPadUp, 1)
		} else if v > 0 {
			press(stdDPadDown, 1)
		}
	}
	return snap
}

func normalize(v int16) float64 {
	f := float64(v) / axisMax
	switch {
	case f < -1:
		return -1
	case f > 1:
		return 1
	}
	return f
}
