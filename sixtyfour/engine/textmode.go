package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Geometry of the TextMode frame. The visible screen window matches the
// host framebuffer size; the 40x25 text area sits centred inside it with
// the remainder drawn as border.
const (
	TextFrameWidth  = 504
	TextFrameHeight = 312

	TextScreenX      = 56
	TextScreenY      = 20
	TextScreenWidth  = 392
	TextScreenHeight = 272

	TextColumns = 40
	TextRows    = 25

	textAreaX = TextScreenX + (TextScreenWidth-TextColumns*8)/2
	textAreaY = TextScreenY + (TextScreenHeight-TextRows*8)/2

	keyBufferSize = 10

	// the cursor toggles every 20 frames
	blinkMicros = 20 * 16667
)

// Control codes understood by TextMode.
const (
	KeyDelete = 0x01
	KeyStop   = 0x03
	KeyLeft   = 0x08
	KeyRight  = 0x09
	KeyDown   = 0x0A
	KeyUp     = 0x0B
	KeyReturn = 0x0D
)

const minCharROMSize = 128 * 8

var (
	ErrCharROMTooSmall  = errors.New("character ROM too small")
	ErrAudioUnsupported = errors.New("audio output is not supported")
)

// TextMode is a stand-in engine presenting a 40x25 character screen. Keys
// go into a small keyboard buffer and are consumed on the next Exec, where
// printable codes are written at the cursor and control codes move it.
type TextMode struct {
	frame  []byte
	screen [TextColumns * TextRows]byte
	colors [TextColumns * TextRows]byte
	chars  *charset

	border     byte
	background byte
	ink        byte

	col, row int

	keys    [keyBufferSize]int
	keyHead int
	keyLen  int

	blinkAccum uint32
	cursorOn   bool
	dirty      bool

	elapsed uint64
	freed   bool
}

var _ Engine = (*TextMode)(nil)

// NewTextMode creates a TextMode engine. A character ROM, when supplied,
// provides the glyphs; otherwise they are rendered from a built-in font.
func NewTextMode(desc Desc) (*TextMode, error) {
	if desc.AudioSamples > 0 {
		return nil, fmt.Errorf("%w: %d samples requested", ErrAudioUnsupported, desc.AudioSamples)
	}

	t := &TextMode{
		frame:      make([]byte, TextFrameWidth*TextFrameHeight),
		border:     ColorLightBlue,
		background: ColorBlue,
		ink:        ColorLightBlue,
		dirty:      true,
	}

	switch {
	case len(desc.ROMs.Chars) == 0:
		t.chars = charsetFromFont()
	case len(desc.ROMs.Chars) < minCharROMSize:
		return nil, fmt.Errorf("%w: %d bytes, need at least %d",
			ErrCharROMTooSmall, len(desc.ROMs.Chars), minCharROMSize)
	default:
		t.chars = charsetFromROM(desc.ROMs.Chars)
	}

	slog.Debug("Text mode engine created",
		"char_rom", len(desc.ROMs.Chars),
		"basic_rom", len(desc.ROMs.Basic),
		"kernal_rom", len(desc.ROMs.Kernal),
		"tape", desc.TapeEnabled)

	t.clear()
	t.printLine(1, "    **** SIXTYFOUR FRAME PUMP ****")
	if len(desc.ROMs.Basic) > 0 {
		t.printLine(3, fmt.Sprintf(" %d BYTES BASIC ROM LOADED", len(desc.ROMs.Basic)))
	} else {
		t.printLine(3, " 64K RAM SYSTEM")
	}
	if desc.TapeEnabled {
		t.printLine(4, " DATASETTE ATTACHED")
	}
	t.printLine(6, "READY.")
	t.col, t.row = 0, 7

	return t, nil
}

func (t *TextMode) DisplayInfo() DisplayInfo {
	return DisplayInfo{
		Frame: Frame{
			Dim:    Dim{Width: TextFrameWidth, Height: TextFrameHeight},
			Buffer: t.frame,
		},
		Screen: Rect{
			X:      TextScreenX,
			Y:      TextScreenY,
			Width:  TextScreenWidth,
			Height: TextScreenHeight,
		},
		Palette: Palette,
	}
}

func (t *TextMode) Exec(micros uint32) {
	t.elapsed += uint64(micros)

	for t.keyLen > 0 {
		code := t.keys[t.keyHead]
		t.keyHead = (t.keyHead + 1) % keyBufferSize
		t.keyLen--
		t.handleKey(code)
	}

	t.blinkAccum += micros
	if t.blinkAccum >= blinkMicros {
		t.blinkAccum %= blinkMicros
		t.cursorOn = !t.cursorOn
		t.dirty = true
	}

	if t.dirty {
		t.render()
		t.dirty = false
	}
}

// KeyDown queues a key code. Codes arriving while the buffer is full are
// dropped, like the keyboard buffer of the real machine.
func (t *TextMode) KeyDown(code int) {
	if t.keyLen == keyBufferSize {
		return
	}
	t.keys[(t.keyHead+t.keyLen)%keyBufferSize] = code
	t.keyLen++
}

func (t *TextMode) KeyUp(code int) {}

func (t *TextMode) Free() {
	t.frame = nil
	t.chars = nil
	t.freed = true
}

// Freed reports whether Free has been called.
func (t *TextMode) Freed() bool {
	return t.freed
}

// Cursor returns the cursor position.
func (t *TextMode) Cursor() (col, row int) {
	return t.col, t.row
}

// Line returns the text on a screen row with trailing blanks removed.
// Graphics characters are shown as '?'.
func (t *TextMode) Line(row int) string {
	var sb strings.Builder
	for col := 0; col < TextColumns; col++ {
		r := screenCodeRune(t.screen[row*TextColumns+col])
		if r == 0 {
			r = '?'
		}
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func (t *TextMode) handleKey(code int) {
	t.dirty = true

	switch code {
	case KeyReturn:
		t.col = 0
		t.lineFeed()
	case KeyDelete:
		if t.col == 0 {
			return
		}
		t.col--
		start := t.row * TextColumns
		line := t.screen[start : start+TextColumns]
		copy(line[t.col:], line[t.col+1:])
		line[TextColumns-1] = ' '
	case KeyStop:
		start := t.row * TextColumns
		for i := start; i < start+TextColumns; i++ {
			t.screen[i] = ' '
		}
		t.col = 0
	case KeyLeft:
		if t.col > 0 {
			t.col--
		} else if t.row > 0 {
			t.col, t.row = TextColumns-1, t.row-1
		}
	case KeyRight:
		t.advance()
	case KeyUp:
		if t.row > 0 {
			t.row--
		}
	case KeyDown:
		t.lineFeed()
	default:
		sc, ok := screenCode(code)
		if !ok {
			t.dirty = false
			return
		}
		i := t.row*TextColumns + t.col
		t.screen[i] = sc
		t.colors[i] = t.ink
		t.advance()
	}
}

func (t *TextMode) advance() {
	t.col++
	if t.col == TextColumns {
		t.col = 0
		t.lineFeed()
	}
}

func (t *TextMode) lineFeed() {
	if t.row < TextRows-1 {
		t.row++
		return
	}
	copy(t.screen[:], t.screen[TextColumns:])
	copy(t.colors[:], t.colors[TextColumns:])
	last := (TextRows - 1) * TextColumns
	for i := last; i < len(t.screen); i++ {
		t.screen[i] = ' '
		t.colors[i] = t.ink
	}
}

func (t *TextMode) clear() {
	for i := range t.screen {
		t.screen[i] = ' '
		t.colors[i] = t.ink
	}
	t.col, t.row = 0, 0
}

func (t *TextMode) printLine(row int, s string) {
	for col, r := range []byte(s) {
		if col >= TextColumns {
			break
		}
		if sc, ok := screenCode(int(r)); ok {
			t.screen[row*TextColumns+col] = sc
		}
	}
}

func (t *TextMode) render() {
	for i := range t.frame {
		t.frame[i] = t.border
	}

	cursor := t.row*TextColumns + t.col
	for cell := range t.screen {
		code := t.screen[cell]
		if cell == cursor && t.cursorOn {
			code ^= 0x80
		}
		g := &t.chars[code&0x7F]
		reverse := code&0x80 != 0
		fg, bg := t.colors[cell], t.background

		x0 := textAreaX + (cell%TextColumns)*8
		y0 := textAreaY + (cell/TextColumns)*8
		for cy := 0; cy < 8; cy++ {
			bits := g[cy]
			if reverse {
				bits = ^bits
			}
			line := t.frame[(y0+cy)*TextFrameWidth+x0:]
			for cx := 0; cx < 8; cx++ {
				if bits&(0x80>>cx) != 0 {
					line[cx] = fg
				} else {
					line[cx] = bg
				}
			}
		}
	}
}
