// Package joydev reads gamepads through the Linux joystick API
// (/dev/input/js*).
//
// Each device gets a reader goroutine that folds js_event records into the
// latest button and axis values; Snapshots returns them in the standard
// layout. Device hot-plugging is watched with inotify and reported through
// Notify.
package joydev

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/btn0s/prototype-playground/source"
)

// InputDir is where the kernel creates joystick device nodes.
const InputDir = "/dev/input"

var (
	// ErrNoInputDir is returned by Open when the input directory cannot be read.
	ErrNoInputDir = errors.New("joystick input directory not readable")
	// ErrClosed is returned by operations on a closed Source.
	ErrClosed = errors.New("joydev source closed")
)

// Source is a source.Source and source.Notifier over /dev/input/js*.
type Source struct {
	dir    string
	logger *slog.Logger

	mu        sync.RWMutex
	devices   map[string]*device
	listeners map[int]func(source.DeviceEvent)
	nextID    int
	closed    bool

	watcher io.Closer
	wg      sync.WaitGroup
}

// Open scans InputDir and starts watching it for hot-plug events.
func Open(logger *slog.Logger) (*Source, error) {
	return OpenDir(InputDir, logger)
}

// OpenDir is Open for an arbitrary directory.
func OpenDir(dir string, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoInputDir, err)
	}

	s := &Source{
		dir:       dir,
		logger:    logger,
		devices:   map[string]*device{},
		listeners: map[int]func(source.DeviceEvent){},
	}

	watcher, err := startWatch(dir, s.handleWatch)
	if err != nil {
		logger.Warn("Hot-plug notifications unavailable", "dir", dir, "error", err)
	} else {
		s.watcher = watcher
	}

	for _, entry := range entries {
		if isJoystick(entry.Name()) {
			s.connect(entry.Name(), false)
		}
	}
	return s, nil
}

func isJoystick(name string) bool {
	if !strings.HasPrefix(name, "js") {
		return false
	}
	_, err := strconv.Atoi(name[2:])
	return err == nil
}

func indexOf(name string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(name, "js"))
	return n
}

// Snapshots returns one snapshot per open device, ordered by index.
func (s *Source) Snapshots() []*source.Snapshot {
	s.mu.RLock()
	devs := make([]*device, 0, len(s.devices))
	for _, d := range s.devices {
		devs = append(devs, d)
	}
	s.mu.RUnlock()

	sort.Slice(devs, func(i, j int) bool { return devs[i].index < devs[j].index })
	out := make([]*source.Snapshot, 0, len(devs))
	now := time.Now()
	for _, d := range devs {
		out = append(out, d.snapshot(now))
	}
	return out
}

// Notify registers fn for connect/disconnect events.
func (s *Source) Notify(fn func(source.DeviceEvent)) (unregister func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Source) emit(ev source.DeviceEvent) {
	s.mu.RLock()
	fns := make([]func(source.DeviceEvent), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (s *Source) handleWatch(ev watchEvent) {
	if !isJoystick(ev.name) {
		return
	}
	switch ev.op {
	case opCreate:
		s.connect(ev.name, true)
	case opAttrib:
		// udev fixes permissions after the node appears.
		s.mu.RLock()
		_, known := s.devices[ev.name]
		s.mu.RUnlock()
		if !known {
			s.connect(ev.name, false)
		}
	case opDelete:
		s.disconnect(ev.name)
	}
}

func (s *Source) connect(name string, retry bool) {
	path := filepath.Join(s.dir, name)
	attempts := 1
	if retry {
		attempts = 5
	}

	var d *device
	var err error
	for i := 0; i < attempts; i++ {
		d, err = openDevice(path, name)
		if err == nil || !errors.Is(err, os.ErrPermission) {
			break
		}
		time.Sleep(200 * time.Millisecond)
	}
	if err != nil {
		s.logger.Warn("Cannot open joystick", "path", path, "error", err)
		return
	}
	d.index = indexOf(name)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = d.Close()
		return
	}
	if old, ok := s.devices[name]; ok {
		_ = old.Close()
	}
	s.devices[name] = d
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		err := d.run()
		if !d.isClosed() {
			s.logger.Debug("Joystick reader stopped", "id", name, "error", err)
			s.disconnect(name)
		}
	}()

	s.logger.Info("Joystick opened", "id", name, "name", d.name, "buttons", d.buttonCount, "axes", d.axisCount)
	s.emit(source.DeviceEvent{Kind: source.Connected, Index: d.index, ID: name})
}

func (s *Source) disconnect(name string) {
	s.mu.Lock()
	d, ok := s.devices[name]
	if ok {
		delete(s.devices, name)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	_ = d.Close()
	s.emit(source.DeviceEvent{Kind: source.Disconnected, Index: d.index, ID: name})
}

// Close stops the watcher and every device reader.
func (s *Source) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.closed = true
	devs := s.devices
	s.devices = map[string]*device{}
	s.listeners = map[int]func(source.DeviceEvent){}
	s.mu.Unlock()

	var errs []error
	if s.watcher != nil {
		errs = append(errs, s.watcher.Close())
	}
	for _, d := range devs {
		errs = append(errs, d.Close())
	}
	s.wg.Wait()
	return errors.Join(errs...)
}
