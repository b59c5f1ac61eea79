//go:build !ebiten

package ebitengine

import (
	"errors"

	"github.com/valerio/go-sixtyfour/sixtyfour/backend"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/event"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/key"
	"github.com/valerio/go-sixtyfour/sixtyfour/video"
)

var ErrNotAvailable = errors.New("Ebiten backend not available - build with -tags ebiten to enable")

// Backend stub for when Ebitengine is not compiled in
type Backend struct{}

// New creates a stub Ebiten backend that returns an error
func New(showFPS bool) *Backend {
	return &Backend{}
}

// Init returns an error indicating Ebitengine is not available
func (b *Backend) Init(config backend.BackendConfig) error {
	return ErrNotAvailable
}

func (b *Backend) PollEvent() (event.Event, bool) { return event.Event{}, false }

func (b *Backend) ResolveASCII(sc key.Scancode, mods key.Mod) byte { return 0 }

func (b *Backend) FrameBuffer() *video.FrameBuffer { return nil }

func (b *Backend) Present() error { return ErrNotAvailable }

// Cleanup does nothing
func (b *Backend) Cleanup() error {
	return nil
}
