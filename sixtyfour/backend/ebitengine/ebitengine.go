//go:build ebiten

package ebitengine

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/valerio/go-sixtyfour/sixtyfour/backend"
	"github.com/valerio/go-sixtyfour/sixtyfour/display"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/event"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/key"
	"github.com/valerio/go-sixtyfour/sixtyfour/video"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const (
	eventBufferSize = 256
	startTimeout    = 5 * time.Second
	stopTimeout     = time.Second
)

var ErrWindowClosed = errors.New("ebiten window terminated")

// Backend implements the Backend interface with Ebitengine. The game loop
// runs on its own goroutine; events reach the pump through a buffered
// channel and frames are handed over in Present under a mutex.
type Backend struct {
	config  backend.BackendConfig
	frame   *video.FrameBuffer
	showFPS bool

	mu     sync.Mutex
	pixels []byte
	dirty  bool
	window *ebiten.Image

	events chan event.Event
	ready  chan struct{}
	done   chan struct{}
	runErr error

	stopping   atomic.Bool
	fullscreen atomic.Bool

	clipboardOnce sync.Once
	clipboardOK   bool
}

// New creates a new Ebitengine backend. showFPS draws the measured frame
// rate over the picture.
func New(showFPS bool) *Backend {
	return &Backend{
		showFPS: showFPS,
		events:  make(chan event.Event, eventBufferSize),
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Init opens the window and starts the game loop
func (b *Backend) Init(config backend.BackendConfig) error {
	b.config = config.WithDefaults()
	b.frame = video.NewFrameBuffer(b.config.FBWidth, b.config.FBHeight)
	b.frame.Fill(video.BlackColor)
	b.pixels = b.frame.AppendRGBA(nil)
	b.dirty = true
	b.fullscreen.Store(b.config.Fullscreen)

	ebiten.SetWindowSize(b.config.WindowWidth, b.config.WindowHeight)
	ebiten.SetWindowTitle(b.config.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(b.config.Fullscreen)

	go func() {
		defer close(b.done)
		if err := ebiten.RunGame(&game{b}); err != nil {
			b.runErr = err
			slog.Error("Ebiten game loop stopped", "error", err)
		}
	}()

	select {
	case <-b.ready:
	case <-b.done:
		return fmt.Errorf("failed to start ebiten: %w", b.runErr)
	case <-time.After(startTimeout):
		return fmt.Errorf("failed to start ebiten: no frame drawn after %s", startTimeout)
	}

	slog.Info("Ebiten backend initialized",
		"window", fmt.Sprintf("%dx%d", b.config.WindowWidth, b.config.WindowHeight))
	return nil
}

func (b *Backend) PollEvent() (event.Event, bool) {
	select {
	case ev := <-b.events:
		return ev, true
	default:
		return event.Event{}, false
	}
}

func (b *Backend) ResolveASCII(sc key.Scancode, mods key.Mod) byte {
	return key.ASCII(sc, mods)
}

func (b *Backend) FrameBuffer() *video.FrameBuffer {
	return b.frame
}

// Present copies the frame for the game goroutine to draw
func (b *Backend) Present() error {
	select {
	case <-b.done:
		if b.runErr != nil {
			return fmt.Errorf("%w: %w", ErrWindowClosed, b.runErr)
		}
		return ErrWindowClosed
	default:
	}

	b.mu.Lock()
	b.pixels = b.frame.AppendRGBA(b.pixels[:0])
	b.dirty = true
	b.mu.Unlock()
	return nil
}

// ToggleFullscreen is applied by the game goroutine on its next update
func (b *Backend) ToggleFullscreen() error {
	b.fullscreen.Store(!b.fullscreen.Load())
	return nil
}

// Cleanup stops the game loop and waits briefly for it to exit
func (b *Backend) Cleanup() error {
	slog.Info("Cleaning up Ebiten backend")
	b.stopping.Store(true)
	select {
	case <-b.done:
	case <-time.After(stopTimeout):
		slog.Warn("Ebiten game loop did not stop in time")
	}
	return nil
}

func (b *Backend) send(ev event.Event) {
	select {
	case b.events <- ev:
	default:
		slog.Debug("Dropping host event, buffer full", "kind", ev.Kind, "scancode", ev.Scancode)
	}
}

func (b *Backend) handleClipboardPaste() {
	b.clipboardOnce.Do(func() {
		b.clipboardOK = clipboard.Init() == nil
	})
	if !b.clipboardOK {
		slog.Warn("Clipboard not available")
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	for _, ev := range pasteEvents(data) {
		b.send(ev)
	}
}

// game is the ebiten.Game run on the ebiten goroutine
type game struct {
	b *Backend
}

func (g *game) Update() error {
	b := g.b
	if b.stopping.Load() {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() {
		b.send(event.Event{Kind: event.Close})
	}
	if want := b.fullscreen.Load(); want != ebiten.IsFullscreen() {
		ebiten.SetFullscreen(want)
		if !want {
			ebiten.SetWindowSize(b.config.WindowWidth, b.config.WindowHeight)
		}
	}

	var mods key.Mod
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= key.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= key.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= key.ModAlt
	}

	if mods&key.ModCtrl != 0 && mods&key.ModShift != 0 && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		b.handleClipboardPaste()
		return nil
	}

	for ek, sc := range keyMapping {
		switch {
		case inpututil.IsKeyJustPressed(ek):
			b.send(event.Event{Kind: event.KeyDown, Scancode: sc, Mods: mods})
		case inpututil.IsKeyJustReleased(ek):
			b.send(event.Event{Kind: event.KeyUp, Scancode: sc, Mods: mods})
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	b := g.b
	if b.window == nil {
		b.window = ebiten.NewImage(b.config.FBWidth, b.config.FBHeight)
	}

	b.mu.Lock()
	if b.dirty {
		b.window.WritePixels(b.pixels)
		b.dirty = false
	}
	b.mu.Unlock()

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(b.config.FBWidth), float64(sh)/float64(b.config.FBHeight))
	screen.DrawImage(b.window, op)

	if b.showFPS {
		msg := fmt.Sprintf("FPS %.1f", ebiten.ActualFPS())
		text.Draw(screen, msg, basicfont.Face7x13, 4, 14, color.White)
	}

	select {
	case <-b.ready:
	default:
		close(b.ready)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return display.DefaultWindowWidth, display.DefaultWindowHeight
}

var keyMapping = map[ebiten.Key]key.Scancode{
	ebiten.KeyA: key.A, ebiten.KeyB: key.B, ebiten.KeyC: key.C, ebiten.KeyD: key.D,
	ebiten.KeyE: key.E, ebiten.KeyF: key.F, ebiten.KeyG: key.G, ebiten.KeyH: key.H,
	ebiten.KeyI: key.I, ebiten.KeyJ: key.J, ebiten.KeyK: key.K, ebiten.KeyL: key.L,
	ebiten.KeyM: key.M, ebiten.KeyN: key.N, ebiten.KeyO: key.O, ebiten.KeyP: key.P,
	ebiten.KeyQ: key.Q, ebiten.KeyR: key.R, ebiten.KeyS: key.S, ebiten.KeyT: key.T,
	ebiten.KeyU: key.U, ebiten.KeyV: key.V, ebiten.KeyW: key.W, ebiten.KeyX: key.X,
	ebiten.KeyY: key.Y, ebiten.KeyZ: key.Z,

	ebiten.KeyDigit1: key.Num1, ebiten.KeyDigit2: key.Num2, ebiten.KeyDigit3: key.Num3,
	ebiten.KeyDigit4: key.Num4, ebiten.KeyDigit5: key.Num5, ebiten.KeyDigit6: key.Num6,
	ebiten.KeyDigit7: key.Num7, ebiten.KeyDigit8: key.Num8, ebiten.KeyDigit9: key.Num9,
	ebiten.KeyDigit0: key.Num0,

	ebiten.KeyEnter:       key.Return,
	ebiten.KeyNumpadEnter: key.Return,
	ebiten.KeyEscape:      key.Escape,
	ebiten.KeyBackspace:   key.Backspace,
	ebiten.KeyTab:         key.Tab,
	ebiten.KeySpace:       key.Space,

	ebiten.KeyMinus: key.Minus, ebiten.KeyEqual: key.Equals,
	ebiten.KeyBracketLeft: key.LeftBracket, ebiten.KeyBracketRight: key.RightBracket,
	ebiten.KeyBackslash: key.Backslash, ebiten.KeySemicolon: key.Semicolon,
	ebiten.KeyQuote: key.Apostrophe, ebiten.KeyBackquote: key.Grave,
	ebiten.KeyComma: key.Comma, ebiten.KeyPeriod: key.Period, ebiten.KeySlash: key.Slash,

	ebiten.KeyArrowUp: key.Up, ebiten.KeyArrowDown: key.Down,
	ebiten.KeyArrowLeft: key.Left, ebiten.KeyArrowRight: key.Right,

	ebiten.KeyF1: key.F1, ebiten.KeyF2: key.F2, ebiten.KeyF3: key.F3, ebiten.KeyF4: key.F4,
	ebiten.KeyF5: key.F5, ebiten.KeyF6: key.F6, ebiten.KeyF7: key.F7, ebiten.KeyF8: key.F8,
	ebiten.KeyF9: key.F9, ebiten.KeyF10: key.F10, ebiten.KeyF11: key.F11, ebiten.KeyF12: key.F12,
}
