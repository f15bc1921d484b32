package joydev

import (
	"encoding/binary"
	"io"
	"sync"
	"time"

	"github.com/btn0s/prototype-playground/source"
)

const (
	jsEventButton uint8 = 0x01
	jsEventAxis   uint8 = 0x02
	jsEventInit   uint8 = 0x80
)

// jsEvent mirrors struct js_event from linux/joystick.h.
type jsEvent struct {
	Time   uint32
	Value  int16
	Type   uint8
	Number uint8
}

type device struct {
	index       int
	id          string
	name        string
	buttonCount int
	axisCount   int
	file        io.ReadCloser
	layout      *layout

	mu      sync.Mutex
	buttons []int16
	axes    []int16
	closed  bool
}

func newDevice(id, name string, buttons, axes int, file io.ReadCloser) *device {
	return &device{
		id:          id,
		name:        name,
		buttonCount: buttons,
		axisCount:   axes,
		file:        file,
		layout:      &xpadLayout,
		buttons:     make([]int16, buttons),
		axes:        make([]int16, axes),
	}
}

// run folds events into the device state until the file fails or is closed.
func (d *device) run() error {
	return readEvents(d.file, d.apply)
}

func readEvents(r io.Reader, apply func(jsEvent)) error {
	for {
		var e jsEvent
		if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
			return err
		}
		apply(e)
	}
}

func (d *device) apply(e jsEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := int(e.Number)
	switch e.Type &^ jsEventInit {
	case jsEventButton:
		if n >= len(d.buttons) {
			d.buttons = append(d.buttons, make([]int16, n-len(d.buttons)+1)...)
		}
		d.buttons[n] = e.Value
	case jsEventAxis:
		if n >= len(d.axes) {
			d.axes = append(d.axes, make([]int16, n-len(d.axes)+1)...)
		}
		d.axes[n] = e.Value
	}
}

func (d *device) snapshot(now time.Time) *source.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	snap := d.layout.translate(d.buttons, d.axes)
	snap.Index = d.index
	snap.ID = d.id
	snap.Name = d.name
	snap.Timestamp = now
	return snap
}

func (d *device) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *device) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()
	return d.file.Close()
}
