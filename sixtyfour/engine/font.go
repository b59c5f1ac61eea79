package engine

import (
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// glyph is an 8x8 character cell, one byte per row, most significant bit
// leftmost.
type glyph [8]byte

// charset holds the 128 non-reversed glyphs of a character generator,
// indexed by screen code. Screen codes 128-255 are the reversed glyphs.
type charset [128]glyph

// charsetFromROM reads the first 1 KiB of a character ROM, which holds the
// upper case/graphics set in screen code order.
func charsetFromROM(rom ROMImage) *charset {
	cs := &charset{}
	for code := range cs {
		copy(cs[code][:], rom[code*8:code*8+8])
	}
	return cs
}

// charsetFromFont renders a character set from basicfont's 7x13 face for
// use when no character ROM was supplied. The 13 pixel glyphs are sampled
// down to 8 rows, which costs a row in the middle of tall characters.
func charsetFromFont() *charset {
	face := basicfont.Face7x13
	cs := &charset{}
	for code := range cs {
		r := screenCodeRune(byte(code))
		if r == 0 {
			continue
		}
		dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, face.Ascent), r)
		if !ok {
			continue
		}
		for cy := 0; cy < 8; cy++ {
			// caps occupy rows 2..10 of the face
			sy := maskp.Y + 2 + (cy*9+4)/8
			var row byte
			for cx := 0; cx < 7 && cx < dr.Dx(); cx++ {
				_, _, _, a := mask.At(maskp.X+cx, sy).RGBA()
				if a >= 0x8000 {
					row |= 0x80 >> cx
				}
			}
			cs[code][cy] = row
		}
	}
	return cs
}

// screenCodeRune maps a screen code of the upper case set to the rune it
// depicts. Graphics characters have no rune and return 0, except the
// shifted letters which are shown as lower case.
func screenCodeRune(code byte) rune {
	code &= 0x7F
	switch {
	case code == 0:
		return '@'
	case code >= 1 && code <= 26:
		return rune('A' + code - 1)
	case code == 27:
		return '['
	case code == 28:
		return '\\'
	case code == 29:
		return ']'
	case code == 30:
		return '^'
	case code == 31:
		return '_'
	case code >= 32 && code <= 63:
		return rune(code)
	case code >= 65 && code <= 90:
		return rune('a' + code - 65)
	}
	return 0
}

// screenCode maps an engine key code to the screen code it prints, if any.
func screenCode(code int) (byte, bool) {
	switch {
	case code >= 0x20 && code <= 0x3F:
		return byte(code), true
	case code == '@':
		return 0, true
	case code >= 'A' && code <= 'Z':
		return byte(code - 'A' + 1), true
	case code >= '[' && code <= '_':
		return byte(code - '[' + 27), true
	case code >= 'a' && code <= 'z':
		return byte(code - 'a' + 65), true
	}
	return 0, false
}
