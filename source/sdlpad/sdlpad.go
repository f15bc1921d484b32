// Package sdlpad reads gamepads through SDL3.
//
// The SDL library is loaded lazily by the first Snapshots call so that all
// SDL calls happen on the poll goroutine. If SDL cannot be loaded the source
// logs once and behaves like source.Empty.
package sdlpad

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Zyko0/go-sdl3/bin/binsdl"
	"github.com/Zyko0/go-sdl3/sdl"

	"github.com/btn0s/prototype-playground/source"
)

type Source struct {
	logger *slog.Logger

	mu     sync.Mutex
	loaded bool
	failed bool
	closed bool
	unload func()
	pads   map[sdl.JoystickID]*sdl.Gamepad
}

func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		logger: logger,
		pads:   map[sdl.JoystickID]*sdl.Gamepad{},
	}
}

func (s *Source) load() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("load SDL library: %v", r)
		}
	}()
	lib := binsdl.Load()
	if err := sdl.Init(sdl.INIT_GAMEPAD); err != nil {
		lib.Unload()
		return fmt.Errorf("init SDL gamepad subsystem: %w", err)
	}
	s.unload = lib.Unload
	return nil
}

func (s *Source) ready() bool {
	if s.closed || s.failed {
		return false
	}
	if s.loaded {
		return true
	}
	if err := s.load(); err != nil {
		s.failed = true
		s.logger.Warn("SDL gamepad support unavailable, no controllers will be reported", "error", err)
		return false
	}
	s.loaded = true
	s.logger.Debug("SDL gamepad subsystem initialized")
	return true
}

// Snapshots opens newly attached gamepads, closes vanished ones and returns
// the state of every open gamepad.
func (s *Source) Snapshots() []*source.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready() {
		return nil
	}

	sdl.UpdateGamepads()
	ids, err := sdl.GetGamepads()
	if err != nil {
		s.logger.Debug("Listing gamepads failed", "error", err)
		return nil
	}
	slices.Sort(ids)

	now := time.Now()
	seen := make(map[sdl.JoystickID]bool, len(ids))
	out := make([]*source.Snapshot, 0, len(ids))
	for i, id := range ids {
		pad, ok := s.pads[id]
		if !ok {
			pad, err = id.OpenGamepad()
			if err != nil {
				s.logger.Warn("Cannot open gamepad", "id", id, "error", err)
				continue
			}
			s.pads[id] = pad
			s.logger.Info("Gamepad opened", "id", id)
		}
		seen[id] = true

		snap := translate(pad.Button, pad.Axis)
		snap.Index = i
		snap.ID = fmt.Sprintf("sdl%d", id)
		snap.Name = "SDL Gamepad"
		snap.Timestamp = now
		out = append(out, snap)
	}

	for id, pad := range s.pads {
		if !seen[id] {
			pad.Close()
			delete(s.pads, id)
			s.logger.Info("Gamepad closed", "id", id)
		}
	}
	return out
}

// Close releases all gamepads and unloads SDL.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for id, pad := range s.pads {
		pad.Close()
		delete(s.pads, id)
	}
	if s.loaded {
		sdl.Quit()
		s.unload()
	}
	return nil
}
