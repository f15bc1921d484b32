package backbone

import "time"

// Button identifies a controller button.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonL1
	ButtonL2
	ButtonL3
	ButtonR1
	ButtonR2
	ButtonR3
	ButtonMenu
	ButtonHome
	ButtonCapture
	ButtonMore
	ButtonDPadUp
	ButtonDPadDown
	ButtonDPadLeft
	ButtonDPadRight

	numButtons = int(ButtonDPadRight) + 1
)

var buttonNames = [numButtons]string{
	ButtonA:         "A",
	ButtonB:         "B",
	ButtonX:         "X",
	ButtonY:         "Y",
	ButtonL1:        "L1",
	ButtonL2:        "L2",
	ButtonL3:        "L3",
	ButtonR1:        "R1",
	ButtonR2:        "R2",
	ButtonR3:        "R3",
	ButtonMenu:      "Menu",
	ButtonHome:      "Home",
	ButtonCapture:   "Capture",
	ButtonMore:      "More",
	ButtonDPadUp:    "DPadUp",
	ButtonDPadDown:  "DPadDown",
	ButtonDPadLeft:  "DPadLeft",
	ButtonDPadRight: "DPadRight",
}

func (b Button) String() string {
	if int(b) < numButtons {
		return buttonNames[b]
	}
	return "Unknown"
}

// Buttons returns every button identifier in declaration order.
func Buttons() []Button {
	out := make([]Button, numButtons)
	for i := range out {
		out[i] = Button(i)
	}
	return out
}

// InputKind is the kind of a button event.
type InputKind uint8

const (
	Press InputKind = iota
	Release
	Hold

	numKinds = int(Hold) + 1
)

func (k InputKind) String() string {
	switch k {
	case Press:
		return "press"
	case Release:
		return "release"
	case Hold:
		return "hold"
	default:
		return "unknown"
	}
}

// Side selects a joystick.
type Side uint8

const (
	SideLeft Side = iota
	SideRight

	numSides = int(SideRight) + 1
)

func (s Side) String() string {
	if s == SideRight {
		return "Right"
	}
	return "Left"
}

// Direction is a compass direction of a stick. Down is positive Y.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right

	numDirections = int(Right) + 1
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

const (
	// DefaultHoldThreshold is how long a button must stay pressed before Hold fires.
	DefaultHoldThreshold = 500 * time.Millisecond
	// DefaultDirectionThreshold is the axis magnitude a stick must exceed to fire a direction.
	DefaultDirectionThreshold = 0.5
)
