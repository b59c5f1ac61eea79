// Package key defines host keyboard scancodes and their character
// resolution. Scancodes follow the USB HID usage table, which SDL uses
// directly, so other hosts translate their own key identifiers into it.
package key

import "strings"

// Scancode identifies a physical key.
type Scancode int

const (
	Unknown Scancode = 0

	A Scancode = 4 + iota - 1
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z

	Num1
	Num2
	Num3
	Num4
	Num5
	Num6
	Num7
	Num8
	Num9
	Num0

	Return
	Escape
	Backspace
	Tab
	Space

	Minus
	Equals
	LeftBracket
	RightBracket
	Backslash
	NonUSHash
	Semicolon
	Apostrophe
	Grave
	Comma
	Period
	Slash
)

const (
	F1 Scancode = 58 + iota
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

const (
	Right Scancode = 79
	Left  Scancode = 80
	Down  Scancode = 81
	Up    Scancode = 82
)

// Mod is a bitmask of active keyboard modifiers.
type Mod uint16

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt

	ModNone Mod = 0
)

var names = map[Scancode]string{
	Return: "RETURN", Escape: "ESCAPE", Backspace: "BACKSPACE", Tab: "TAB", Space: "SPACE",
	Left: "LEFT", Right: "RIGHT", Up: "UP", Down: "DOWN",
	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
}

func (s Scancode) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	if c := ASCII(s, ModNone); c > ' ' {
		return strings.ToUpper(string(rune(c)))
	}
	return "UNKNOWN"
}

// Parse resolves a key name as printed by String, case-insensitively.
func Parse(name string) (Scancode, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return Unknown, false
	}
	for sc, n := range names {
		if n == name {
			return sc, true
		}
	}
	if len(name) == 1 {
		if sc, _, ok := FromRune(rune(name[0])); ok {
			return sc, true
		}
	}
	return Unknown, false
}

type chars struct {
	plain, shifted byte
}

// US layout.
var ascii = map[Scancode]chars{
	Num1: {'1', '!'}, Num2: {'2', '@'}, Num3: {'3', '#'}, Num4: {'4', '$'}, Num5: {'5', '%'},
	Num6: {'6', '^'}, Num7: {'7', '&'}, Num8: {'8', '*'}, Num9: {'9', '('}, Num0: {'0', ')'},

	Return: {'\r', '\r'}, Escape: {0x1B, 0x1B}, Backspace: {'\b', '\b'}, Tab: {'\t', '\t'},
	Space: {' ', ' '},

	Minus: {'-', '_'}, Equals: {'=', '+'}, LeftBracket: {'[', '{'}, RightBracket: {']', '}'},
	Backslash: {'\\', '|'}, Semicolon: {';', ':'}, Apostrophe: {'\'', '"'},
	Grave: {'`', '~'}, Comma: {',', '<'}, Period: {'.', '>'}, Slash: {'/', '?'},
}

// ASCII resolves a scancode under the given modifiers to the character the
// key produces, or 0 if it produces none.
func ASCII(sc Scancode, mods Mod) byte {
	shift := mods&ModShift != 0
	if sc >= A && sc <= Z {
		if shift {
			return byte('A' + sc - A)
		}
		return byte('a' + sc - A)
	}
	c, ok := ascii[sc]
	if !ok {
		return 0
	}
	if shift {
		return c.shifted
	}
	return c.plain
}

// FromRune finds the key and modifiers that type r.
func FromRune(r rune) (Scancode, Mod, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return A + Scancode(r-'a'), ModNone, true
	case r >= 'A' && r <= 'Z':
		return A + Scancode(r-'A'), ModShift, true
	case r == '\n':
		return Return, ModNone, true
	}
	for sc, c := range ascii {
		if rune(c.plain) == r {
			return sc, ModNone, true
		}
	}
	for sc, c := range ascii {
		if rune(c.shifted) == r {
			return sc, ModShift, true
		}
	}
	return Unknown, ModNone, false
}
