//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/valerio/go-sixtyfour/sixtyfour/backend"
	"github.com/valerio/go-sixtyfour/sixtyfour/display"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/event"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/key"
	"github.com/valerio/go-sixtyfour/sixtyfour/video"
	"github.com/veandco/go-sdl2/sdl"
)

// Backend implements the Backend interface using SDL2 bindings
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stubbed backend, see build tags (sdl2)
type Backend struct {
	window     *sdl.Window
	renderer   *sdl.Renderer
	texture    *sdl.Texture
	config     backend.BackendConfig
	frame      *video.FrameBuffer
	fullscreen bool
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{}
}

// Init initializes the SDL2 backend
func (s *Backend) Init(config backend.BackendConfig) error {
	s.config = config.WithDefaults()
	s.frame = video.NewFrameBuffer(s.config.FBWidth, s.config.FBHeight)
	s.frame.Fill(video.BlackColor)

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	window, err := sdl.CreateWindow(
		s.config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(s.config.WindowWidth),
		int32(s.config.WindowHeight),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window

	// no vsync, the frame pump does its own pacing
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	s.renderer = renderer

	// RGBA8888 is a packed format, so the uint32 pixels upload as they are
	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(s.config.FBWidth),
		int32(s.config.FBHeight),
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %w", err)
	}
	s.texture = texture

	if s.config.Fullscreen {
		if err := s.ToggleFullscreen(); err != nil {
			slog.Warn("Failed to enter fullscreen", "error", err)
		}
	}

	slog.Info("SDL2 backend initialized",
		"window", fmt.Sprintf("%dx%d", s.config.WindowWidth, s.config.WindowHeight),
		"framebuffer", fmt.Sprintf("%dx%d", s.config.FBWidth, s.config.FBHeight))
	return nil
}

// PollEvent returns the next keyboard or close event. Key repeats and
// other SDL events are consumed and skipped.
func (s *Backend) PollEvent() (event.Event, bool) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			return event.Event{Kind: event.Close}, true
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_CLOSE {
				return event.Event{Kind: event.Close}, true
			}
		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			kind := event.KeyUp
			if e.Type == sdl.KEYDOWN {
				kind = event.KeyDown
			}
			return event.Event{
				Kind:     kind,
				Scancode: key.Scancode(e.Keysym.Scancode),
				Mods:     modsFromSDL(e.Keysym.Mod),
			}, true
		}
	}
	return event.Event{}, false
}

func modsFromSDL(mod uint16) key.Mod {
	var m key.Mod
	if mod&(sdl.KMOD_LSHIFT|sdl.KMOD_RSHIFT) != 0 {
		m |= key.ModShift
	}
	if mod&(sdl.KMOD_LCTRL|sdl.KMOD_RCTRL) != 0 {
		m |= key.ModCtrl
	}
	if mod&(sdl.KMOD_LALT|sdl.KMOD_RALT) != 0 {
		m |= key.ModAlt
	}
	return m
}

// ResolveASCII uses the keycode SDL derives from the active keyboard layout
// for unmodified printable keys, and the US table otherwise.
func (s *Backend) ResolveASCII(sc key.Scancode, mods key.Mod) byte {
	kc := sdl.GetKeyFromScancode(sdl.Scancode(sc))
	if mods == key.ModNone && kc >= ' ' && kc < 0x7F {
		return byte(kc)
	}
	return key.ASCII(sc, mods)
}

func (s *Backend) FrameBuffer() *video.FrameBuffer {
	return s.frame
}

// Present uploads the frame and draws it stretched to the window
func (s *Backend) Present() error {
	pixels := s.frame.ToSlice()
	if err := s.texture.Update(nil, unsafe.Pointer(&pixels[0]), s.frame.Width()*display.RGBABytesPerPixel); err != nil {
		return fmt.Errorf("failed to update texture: %w", err)
	}

	if err := s.renderer.SetDrawColor(0, 0, 0, 0xFF); err != nil {
		return fmt.Errorf("failed to set draw color: %w", err)
	}
	if err := s.renderer.Clear(); err != nil {
		return fmt.Errorf("failed to clear renderer: %w", err)
	}
	if err := s.renderer.Copy(s.texture, nil, nil); err != nil {
		return fmt.Errorf("failed to copy texture: %w", err)
	}
	s.renderer.Present()
	return nil
}

// ToggleFullscreen switches between windowed and desktop fullscreen
func (s *Backend) ToggleFullscreen() error {
	var flags uint32
	if !s.fullscreen {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := s.window.SetFullscreen(flags); err != nil {
		return fmt.Errorf("failed to toggle fullscreen: %w", err)
	}
	s.fullscreen = !s.fullscreen
	slog.Debug("Fullscreen toggled", "fullscreen", s.fullscreen)
	return nil
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}
