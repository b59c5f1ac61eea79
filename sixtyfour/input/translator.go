package input

import (
	"github.com/valerio/go-sixtyfour/sixtyfour/input/action"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/event"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/key"
)

// Engine key codes produced for special keys.
const (
	CodeReturn    = 0x0D
	CodeBackspace = 0x01
	CodeEscape    = 0x03
	CodeLeft      = 0x08
	CodeRight     = 0x09
	CodeUp        = 0x0B
	CodeDown      = 0x0A
)

// remap is checked against the raw scancode before any character lookup,
// so keys that produce no character (arrows) still reach the engine.
var remap = map[key.Scancode]int{
	key.Return:    CodeReturn,
	key.Backspace: CodeBackspace,
	key.Escape:    CodeEscape,
	key.Left:      CodeLeft,
	key.Right:     CodeRight,
	key.Up:        CodeUp,
	key.Down:      CodeDown,
}

// Outcome is what the pump should do with a translated event.
type Outcome int

const (
	Ignore Outcome = iota
	Inject
	Hotkey
	Quit
)

// Result of translating one host event.
type Result struct {
	Outcome Outcome
	Code    int           // engine key code, for Inject
	Action  action.Action // for Hotkey
}

// Resolver resolves a scancode to a character under a modifier state.
// Hosts implement it with their own keyboard layout tables.
type Resolver interface {
	ResolveASCII(sc key.Scancode, mods key.Mod) byte
}

// Translator turns host input events into engine key codes. It keeps no
// state between events.
type Translator struct {
	cancel   key.Scancode
	hotkeys  map[key.Scancode]action.Action
	resolver Resolver
}

// NewTranslator creates a translator. A nil resolver falls back to the US
// layout of key.ASCII.
func NewTranslator(cancel key.Scancode, hotkeys map[key.Scancode]action.Action, r Resolver) *Translator {
	return &Translator{
		cancel:   cancel,
		hotkeys:  hotkeys,
		resolver: r,
	}
}

// Translate maps one event. Only key-down events can inject; modifiers held
// on the host are ignored and the character is resolved unshifted.
func (t *Translator) Translate(ev event.Event) Result {
	switch ev.Kind {
	case event.Close:
		return Result{Outcome: Quit}
	case event.KeyDown:
	default:
		return Result{Outcome: Ignore}
	}

	if ev.Scancode == t.cancel {
		return Result{Outcome: Quit}
	}
	if act, ok := t.hotkeys[ev.Scancode]; ok {
		return Result{Outcome: Hotkey, Action: act}
	}
	if code, ok := remap[ev.Scancode]; ok {
		return Result{Outcome: Inject, Code: code}
	}

	c := t.resolve(ev.Scancode)
	if c == 0 {
		return Result{Outcome: Ignore}
	}
	if c > ' ' {
		c = invertCase(c)
	}
	return Result{Outcome: Inject, Code: int(c)}
}

func (t *Translator) resolve(sc key.Scancode) byte {
	if t.resolver != nil {
		return t.resolver.ResolveASCII(sc, key.ModNone)
	}
	return key.ASCII(sc, key.ModNone)
}

func invertCase(c byte) byte {
	switch {
	case c >= 'a' && c <= 'z':
		return c - 'a' + 'A'
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 'a'
	}
	return c
}

// KeySink receives injected key presses.
type KeySink interface {
	KeyDown(code int)
	KeyUp(code int)
}

// Press injects a full key press: down immediately followed by up.
func Press(s KeySink, code int) {
	s.KeyDown(code)
	s.KeyUp(code)
}
