package terminal

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-sixtyfour/sixtyfour/backend"
	"github.com/valerio/go-sixtyfour/sixtyfour/backend/terminal/render"
	"github.com/valerio/go-sixtyfour/sixtyfour/display"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/event"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/key"
	"github.com/valerio/go-sixtyfour/sixtyfour/video"
)

const logBufferSize = 100

// Backend implements the Backend interface using tcell for terminal rendering.
// Terminals report no key releases, so only KeyDown events are produced.
type Backend struct {
	screen    tcell.Screen
	config    backend.BackendConfig
	frame     *video.FrameBuffer
	logBuffer *render.LogBuffer
	logLevel  slog.Leveler
	prevLog   *slog.Logger
}

// New creates a new terminal backend. Logs at or above logLevel are shown
// in a panel below the picture while the backend is active.
func New(logLevel slog.Leveler) *Backend {
	return &Backend{logLevel: logLevel}
}

// NewWithScreen creates a terminal backend drawing to an existing screen.
func NewWithScreen(screen tcell.Screen, logLevel slog.Leveler) *Backend {
	return &Backend{screen: screen, logLevel: logLevel}
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config.WithDefaults()
	t.frame = video.NewFrameBuffer(t.config.FBWidth, t.config.FBHeight)
	t.frame.Fill(video.BlackColor)

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	// Capture logs so they don't corrupt the screen
	if t.logLevel == nil {
		t.logLevel = slog.LevelInfo
	}
	t.logBuffer = render.NewLogBuffer(logBufferSize)
	t.prevLog = slog.Default()
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, t.logLevel)))

	t.screen.SetTitle(t.config.Title)
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	slog.Info("Terminal backend initialized")
	return nil
}

// PollEvent returns the next key event. Resizes are handled here and never
// returned.
func (t *Backend) PollEvent() (event.Event, bool) {
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if out, ok := translateKey(ev); ok {
				return out, true
			}
			slog.Debug("Unmapped terminal key", "key", ev.Name())
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
	return event.Event{}, false
}

var keyMapping = map[tcell.Key]key.Scancode{
	tcell.KeyEnter:      key.Return,
	tcell.KeyEscape:     key.Escape,
	tcell.KeyBackspace:  key.Backspace,
	tcell.KeyBackspace2: key.Backspace,
	tcell.KeyTab:        key.Tab,
	tcell.KeyUp:         key.Up,
	tcell.KeyDown:       key.Down,
	tcell.KeyLeft:       key.Left,
	tcell.KeyRight:      key.Right,
	tcell.KeyF1:         key.F1,
	tcell.KeyF2:         key.F2,
	tcell.KeyF3:         key.F3,
	tcell.KeyF4:         key.F4,
	tcell.KeyF5:         key.F5,
	tcell.KeyF6:         key.F6,
	tcell.KeyF7:         key.F7,
	tcell.KeyF8:         key.F8,
	tcell.KeyF9:         key.F9,
	tcell.KeyF10:        key.F10,
	tcell.KeyF11:        key.F11,
	tcell.KeyF12:        key.F12,
}

func translateKey(ev *tcell.EventKey) (event.Event, bool) {
	if ev.Key() == tcell.KeyCtrlC {
		return event.Event{Kind: event.Close}, true
	}
	if ev.Key() == tcell.KeyRune {
		sc, mods, ok := key.FromRune(ev.Rune())
		if !ok {
			return event.Event{}, false
		}
		return event.Event{Kind: event.KeyDown, Scancode: sc, Mods: mods}, true
	}
	if sc, ok := keyMapping[ev.Key()]; ok {
		var mods key.Mod
		if ev.Modifiers()&tcell.ModShift != 0 {
			mods |= key.ModShift
		}
		return event.Event{Kind: event.KeyDown, Scancode: sc, Mods: mods}, true
	}
	return event.Event{}, false
}

func (t *Backend) ResolveASCII(sc key.Scancode, mods key.Mod) byte {
	return key.ASCII(sc, mods)
}

func (t *Backend) FrameBuffer() *video.FrameBuffer {
	return t.frame
}

// Present draws the frame and the log panel
func (t *Backend) Present() error {
	t.render()
	t.screen.Show()
	return nil
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.prevLog != nil {
		slog.SetDefault(t.prevLog)
		t.prevLog = nil
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

func (t *Backend) render() {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < display.MinTerminalWidth || termHeight < display.MinTerminalHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", display.MinTerminalWidth, display.MinTerminalHeight)
		drawText(t.screen, 0, termHeight/2, termWidth, msg, style)
		return
	}

	pictureRows := termHeight - display.LogPanelHeight - 2
	cols, rows := render.FitCells(t.frame.Width(), t.frame.Height(), termWidth, pictureRows)

	title := fmt.Sprintf(" %s ", t.config.Title)
	drawText(t.screen, 1, 0, termWidth-1, title, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	t.drawPicture(0, 1, cols, rows)
	t.drawLogs(0, rows+2, termWidth, termHeight-rows-2)
}

func (t *Backend) drawPicture(startX, startY, cols, rows int) {
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top, bottom := render.SampleCell(t.frame, cols, rows, cx, cy)
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			t.screen.SetContent(startX+cx, startY+cy, render.UpperHalfBlock, nil, style)
		}
	}
}

func toTcell(c video.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (t *Backend) drawLogs(startX, startY, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, logEntry := range t.logBuffer.GetRecent(height) {
		style := infoStyle
		switch {
		case logEntry.Level >= slog.LevelError:
			style = errStyle
		case logEntry.Level >= slog.LevelWarn:
			style = warnStyle
		case logEntry.Level < slog.LevelInfo:
			style = debugStyle
		}

		logText := render.FormatLogEntry(logEntry)
		if len(logText) > width && width > 3 {
			logText = logText[:width-3] + "..."
		}
		drawText(t.screen, startX, startY+i, width, logText, style)
	}
}

func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= width {
			break
		}
		s.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
