package joydev

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btn0s/prototype-playground/source"
)

func encode(t *testing.T, events ...jsEvent) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, e := range events {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, e))
	}
	return buf.Bytes()
}

func TestReadEvents(t *testing.T) {
	data := encode(t,
		jsEvent{Time: 1, Value: 1, Type: jsEventButton | jsEventInit, Number: 0},
		jsEvent{Time: 2, Value: -32767, Type: jsEventAxis, Number: 1},
	)
	// trailing partial record
	data = append(data, 0x01, 0x02)

	var got []jsEvent
	err := readEvents(bytes.NewReader(data), func(e jsEvent) { got = append(got, e) })

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Len(t, got, 2)
	assert.Equal(t, jsEvent{Time: 1, Value: 1, Type: jsEventButton | jsEventInit, Number: 0}, got[0])
	assert.Equal(t, int16(-32767), got[1].Value)
}

func TestDeviceAppliesEvents(t *testing.T) {
	r, w := io.Pipe()
	d := newDevice("js0", "Test Pad", 11, 8, r)
	done := make(chan error, 1)
	go func() { done <- d.run() }()

	_, err := w.Write(encode(t,
		jsEvent{Value: 1, Type: jsEventButton | jsEventInit, Number: 0},
		jsEvent{Value: 32767, Type: jsEventAxis, Number: 0},
		jsEvent{Value: 32767, Type: jsEventAxis, Number: 5},
		jsEvent{Value: -32767, Type: jsEventAxis, Number: 7},
		jsEvent{Value: 1, Type: jsEventButton, Number: 20},
	))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap := d.snapshot(time.Now())
		return snap.Buttons[0].Pressed && snap.Buttons[stdR2].Pressed && snap.Buttons[stdDPadUp].Pressed
	}, time.Second, time.Millisecond)

	snap := d.snapshot(time.Unix(5, 0))
	assert.Equal(t, "js0", snap.ID)
	assert.Equal(t, "Test Pad", snap.Name)
	assert.Equal(t, time.Unix(5, 0), snap.Timestamp)
	assert.Equal(t, 1.0, snap.Axes[0])
	assert.Len(t, snap.Buttons, source.StandardButtons)

	require.NoError(t, d.Close())
	assert.True(t, d.isClosed())
	assert.Error(t, <-done)
	assert.NoError(t, d.Close())
}

func TestXpadLayout(t *testing.T) {
	buttons := make([]int16, 11)
	axes := make([]int16, 8)
	axes[2] = -32767 // LT released
	axes[5] = -32767 // RT released

	snap := xpadLayout.translate(buttons, axes)
	for i, b := range snap.Buttons {
		assert.False(t, b.Pressed, "button %d", i)
	}
	assert.Equal(t, []float64{0, 0, 0, 0}, snap.Axes)

	buttons[6] = 1 // Back
	buttons[7] = 1 // Start
	buttons[8] = 1 // Guide
	buttons[10] = 1
	axes[0] = -32767
	axes[1] = 16384
	axes[3] = 32767
	axes[4] = -32768
	axes[2] = 32767 // LT fully pressed
	axes[5] = -16000
	axes[6] = 32767 // hat right
	axes[7] = 32767 // hat down

	snap = xpadLayout.translate(buttons, axes)
	assert.True(t, snap.Buttons[8].Pressed, "Back maps to Capture")
	assert.True(t, snap.Buttons[9].Pressed, "Start maps to Menu")
	assert.True(t, snap.Buttons[16].Pressed, "Guide maps to Home")
	assert.True(t, snap.Buttons[11].Pressed, "right stick click maps to R3")
	assert.True(t, snap.Buttons[stdL2].Pressed)
	assert.InDelta(t, 1.0, snap.Buttons[stdL2].Value, 1e-9)
	assert.False(t, snap.Buttons[stdR2].Pressed)
	assert.Greater(t, snap.Buttons[stdR2].Value, 0.0)
	assert.True(t, snap.Buttons[stdDPadRight].Pressed)
	assert.True(t, snap.Buttons[stdDPadDown].Pressed)
	assert.False(t, snap.Buttons[stdDPadLeft].Pressed)
	assert.InDelta(t, -1.0, snap.Axes[0], 1e-9)
	assert.InDelta(t, 0.5, snap.Axes[1], 1e-3)
	assert.InDelta(t, 1.0, snap.Axes[2], 1e-9)
	assert.Equal(t, -1.0, snap.Axes[3], "values beyond -32767 are clamped")
}

func TestXpadDPadButtons(t *testing.T) {
	buttons := make([]int16, 15)
	buttons[13] = 1
	snap := xpadLayout.translate(buttons, nil)
	assert.True(t, snap.Buttons[stdDPadUp].Pressed)
	assert.Equal(t, []float64{0, 0, 0, 0}, snap.Axes)
}

func TestIsJoystick(t *testing.T) {
	assert.True(t, isJoystick("js0"))
	assert.True(t, isJoystick("js12"))
	assert.False(t, isJoystick("js"))
	assert.False(t, isJoystick("event3"))
	assert.False(t, isJoystick("jsx"))
	assert.Equal(t, 12, indexOf("js12"))
}

func TestTrimName(t *testing.T) {
	assert.Equal(t, "js0", trimName([]byte{'j', 's', '0', 0, 0, 0}))
	assert.Equal(t, "", trimName([]byte{0, 0}))
}

func TestOpenDirMissing(t *testing.T) {
	_, err := OpenDir("/nonexistent/backbone/input", nil)
	assert.ErrorIs(t, err, ErrNoInputDir)
}

func TestSourceSnapshotsAndNotify(t *testing.T) {
	s, err := OpenDir(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, s.Snapshots())

	var events []source.DeviceEvent
	unregister := s.Notify(func(ev source.DeviceEvent) { events = append(events, ev) })

	r1, _ := io.Pipe()
	r0, _ := io.Pipe()
	d1 := newDevice("js1", "second", 11, 8, r1)
	d1.index = 1
	d0 := newDevice("js0", "first", 11, 8, r0)
	s.mu.Lock()
	s.devices["js1"] = d1
	s.devices["js0"] = d0
	s.mu.Unlock()

	snaps := s.Snapshots()
	require.Len(t, snaps, 2)
	assert.Equal(t, "js0", snaps[0].ID)
	assert.Equal(t, "js1", snaps[1].ID)

	s.handleWatch(watchEvent{op: opDelete, name: "js1"})
	s.handleWatch(watchEvent{op: opDelete, name: "event4"})
	assert.True(t, d1.isClosed())
	require.Len(t, s.Snapshots(), 1)
	assert.Equal(t, []source.DeviceEvent{{Kind: source.Disconnected, Index: 1, ID: "js1"}}, events)

	unregister()
	s.disconnect("js0")
	assert.Len(t, events, 1)

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Close(), ErrClosed)
}
