package backend

import (
	"github.com/valerio/go-sixtyfour/sixtyfour/display"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/event"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/key"
	"github.com/valerio/go-sixtyfour/sixtyfour/video"
)

// Backend represents a host platform (window or terminal + keyboard).
// Backends are responsible for:
// - Owning the host pixel buffer the frame pump scans out into
// - Presenting that buffer to their specific output
// - Translating platform input into scancode events, one per poll
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before any other call.
	Init(config BackendConfig) error

	// PollEvent returns the next pending input event without blocking.
	// It reports false when no event is pending.
	PollEvent() (event.Event, bool)

	// ResolveASCII maps a scancode to the character it types under the
	// given modifiers using the host keyboard layout, 0 if none.
	ResolveASCII(sc key.Scancode, mods key.Mod) byte

	// FrameBuffer returns the host pixel buffer, FBWidth x FBHeight.
	FrameBuffer() *video.FrameBuffer

	// Present displays the current contents of the pixel buffer.
	Present() error

	// Cleanup resources when shutting down
	Cleanup() error
}

// FullscreenToggler is implemented by backends that can switch between
// windowed and fullscreen output.
type FullscreenToggler interface {
	ToggleFullscreen() error
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title        string
	WindowWidth  int
	WindowHeight int
	FBWidth      int
	FBHeight     int
	Fullscreen   bool
}

// DefaultConfig returns the standard 640x400 window over a 392x272 buffer.
func DefaultConfig() BackendConfig {
	return BackendConfig{
		Title:        display.DefaultTitle,
		WindowWidth:  display.DefaultWindowWidth,
		WindowHeight: display.DefaultWindowHeight,
		FBWidth:      video.FramebufferWidth,
		FBHeight:     video.FramebufferHeight,
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c BackendConfig) WithDefaults() BackendConfig {
	d := DefaultConfig()
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.WindowWidth <= 0 {
		c.WindowWidth = d.WindowWidth
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = d.WindowHeight
	}
	if c.FBWidth <= 0 {
		c.FBWidth = d.FBWidth
	}
	if c.FBHeight <= 0 {
		c.FBHeight = d.FBHeight
	}
	return c
}
