package backbone

import (
	"math"
	"strconv"
)

// ButtonState is the last observed state of a button.
type ButtonState struct {
	Pressed bool
	// Touched mirrors Pressed as of the last update.
	Touched bool
}

// JoystickSample is the last observed position of a stick.
type JoystickSample struct {
	X, Y float64
	// Angle is in degrees in [0, 360), measured from +X towards +Y (down).
	// Only meaningful when HasAngle is set.
	Angle    float64
	HasAngle bool
}

// State is the published view of all buttons and both sticks.
type State struct {
	Buttons [numButtons]ButtonState
	Left    JoystickSample
	Right   JoystickSample
}

// Button returns the state of b.
func (s State) Button(b Button) ButtonState {
	if int(b) >= numButtons {
		return ButtonState{}
	}
	return s.Buttons[b]
}

// Stick returns the sample of the given side.
func (s State) Stick(side Side) JoystickSample {
	if side == SideRight {
		return s.Right
	}
	return s.Left
}

// NewJoystickSample computes the angle of an axis pair. The angle is absent
// when both axes round to zero at one decimal place.
func NewJoystickSample(x, y float64) JoystickSample {
	s := JoystickSample{X: x, Y: y}
	if roundsToZero(x) && roundsToZero(y) {
		return s
	}
	angle := math.Atan2(y, x) * (180 / math.Pi)
	if angle < 0 {
		angle += 360
	}
	if angle >= 360 {
		angle -= 360
	}
	s.Angle = angle
	s.HasAngle = true
	return s
}

func roundsToZero(v float64) bool {
	return strconv.FormatFloat(math.Abs(v), 'f', 1, 64) == "0.0"
}
