package sdlpad

import (
	"github.com/Zyko0/go-sdl3/sdl"

	"github.com/btn0s/prototype-playground/source"
)

const (
	axisMax          = 32767
	triggerThreshold = 0.5
)

// standardButtons lists the SDL button for each standard layout index.
// L2 and R2 (6 and 7) are analog triggers and handled separately.
var standardButtons = map[int]sdl.GamepadButton{
	0:  sdl.GAMEPAD_BUTTON_SOUTH,
	1:  sdl.GAMEPAD_BUTTON_EAST,
	2:  sdl.GAMEPAD_BUTTON_WEST,
	3:  sdl.GAMEPAD_BUTTON_NORTH,
	4:  sdl.GAMEPAD_BUTTON_LEFT_SHOULDER,
	5:  sdl.GAMEPAD_BUTTON_RIGHT_SHOULDER,
	8:  sdl.GAMEPAD_BUTTON_BACK,
	9:  sdl.GAMEPAD_BUTTON_START,
	10: sdl.GAMEPAD_BUTTON_LEFT_STICK,
	11: sdl.GAMEPAD_BUTTON_RIGHT_STICK,
	12: sdl.GAMEPAD_BUTTON_DPAD_UP,
	13: sdl.GAMEPAD_BUTTON_DPAD_DOWN,
	14: sdl.GAMEPAD_BUTTON_DPAD_LEFT,
	15: sdl.GAMEPAD_BUTTON_DPAD_RIGHT,
	16: sdl.GAMEPAD_BUTTON_GUIDE,
	17: sdl.GAMEPAD_BUTTON_MISC1,
}

var standardTriggers = map[int]sdl.GamepadAxis{
	6: sdl.GAMEPAD_AXIS_LEFT_TRIGGER,
	7: sdl.GAMEPAD_AXIS_RIGHT_TRIGGER,
}

var standardAxes = [source.StandardAxes]sdl.GamepadAxis{
	sdl.GAMEPAD_AXIS_LEFTX,
	sdl.GAMEPAD_AXIS_LEFTY,
	sdl.GAMEPAD_AXIS_RIGHTX,
	sdl.GAMEPAD_AXIS_RIGHTY,
}

// translate reads one gamepad into the standard layout. SDL already reports
// Y growing downwards.
func translate(button func(sdl.GamepadButton) bool, axis func(sdl.GamepadAxis) int16) *source.Snapshot {
	snap := &source.Snapshot{
		Buttons: make([]source.Button, source.StandardButtons),
		Axes:    make([]float64, source.StandardAxes),
	}
	for i, b := range standardButtons {
		if button(b) {
			snap.Buttons[i] = source.Button{Pressed: true, Value: 1}
		}
	}
	for i, a := range standardTriggers {
		v := normalize(axis(a))
		if v < 0 {
			v = 0
		}
		snap.Buttons[i] = source.Button{Pressed: v > triggerThreshold, Value: v}
	}
	for i, a := range standardAxes {
		snap.Axes[i] = normalize(axis(a))
	}
	return snap
}

func normalize(v int16) float64 {
	f := float64(v) / axisMax
	if f < -1 {
		return -1
	}
	return f
}
