package backbone

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownInput is returned by OnInput for names that are neither a button
// nor a stick direction.
var ErrUnknownInput = errors.New("unknown input identifier")

// standardLayout maps raw button indices of the standard gamepad layout.
var standardLayout = [...]Button{
	0:  ButtonA,
	1:  ButtonB,
	2:  ButtonX,
	3:  ButtonY,
	4:  ButtonL1,
	5:  ButtonR1,
	6:  ButtonL2,
	7:  ButtonR2,
	8:  ButtonCapture,
	9:  ButtonMenu,
	10: ButtonL3,
	11: ButtonR3,
	12: ButtonDPadUp,
	13: ButtonDPadDown,
	14: ButtonDPadLeft,
	15: ButtonDPadRight,
	16: ButtonHome,
	17: ButtonMore,
}

// ButtonForIndex maps a raw button index to its identifier.
func ButtonForIndex(index int) (Button, bool) {
	if index < 0 || index >= len(standardLayout) {
		return 0, false
	}
	return standardLayout[index], true
}

// ParseButton looks up a button by name, ignoring case.
func ParseButton(name string) (Button, bool) {
	for i, n := range buttonNames {
		if strings.EqualFold(n, name) {
			return Button(i), true
		}
	}
	return 0, false
}

// ParseDirection parses a side-prefixed direction such as "LeftDown" or "RightUp".
func ParseDirection(name string) (Side, Direction, bool) {
	var side Side
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "left"):
		side, lower = SideLeft, lower[len("left"):]
	case strings.HasPrefix(lower, "right"):
		side, lower = SideRight, lower[len("right"):]
	default:
		return 0, 0, false
	}
	for d := Direction(0); int(d) < numDirections; d++ {
		if strings.ToLower(d.String()) == lower {
			return side, d, true
		}
	}
	return 0, 0, false
}

func unknownInput(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownInput, name)
}
