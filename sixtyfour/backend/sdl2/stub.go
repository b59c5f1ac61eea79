//go:build !sdl2

package sdl2

import (
	"errors"

	"github.com/valerio/go-sixtyfour/sixtyfour/backend"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/event"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/key"
	"github.com/valerio/go-sixtyfour/sixtyfour/video"
)

var ErrNotAvailable = errors.New("SDL2 backend not available - build with -tags sdl2 to enable")

// Backend stub for when SDL2 is not available
type Backend struct{}

// New creates a stub SDL2 backend that returns an error
func New() *Backend {
	return &Backend{}
}

// Init returns an error indicating SDL2 is not available
func (s *Backend) Init(config backend.BackendConfig) error {
	return ErrNotAvailable
}

func (s *Backend) PollEvent() (event.Event, bool) { return event.Event{}, false }

func (s *Backend) ResolveASCII(sc key.Scancode, mods key.Mod) byte { return 0 }

func (s *Backend) FrameBuffer() *video.FrameBuffer { return nil }

func (s *Backend) Present() error { return ErrNotAvailable }

// Cleanup does nothing
func (s *Backend) Cleanup() error {
	return nil
}
