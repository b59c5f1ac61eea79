package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScancodeValues(t *testing.T) {
	// USB HID usage IDs
	assert.Equal(t, Scancode(4), A)
	assert.Equal(t, Scancode(29), Z)
	assert.Equal(t, Scancode(30), Num1)
	assert.Equal(t, Scancode(39), Num0)
	assert.Equal(t, Scancode(40), Return)
	assert.Equal(t, Scancode(41), Escape)
	assert.Equal(t, Scancode(42), Backspace)
	assert.Equal(t, Scancode(44), Space)
	assert.Equal(t, Scancode(56), Slash)
	assert.Equal(t, Scancode(69), F12)
}

func TestASCII(t *testing.T) {
	tests := []struct {
		sc   Scancode
		mods Mod
		want byte
	}{
		{A, ModNone, 'a'},
		{A, ModShift, 'A'},
		{M, ModNone, 'm'},
		{Num2, ModNone, '2'},
		{Num2, ModShift, '@'},
		{Slash, ModShift, '?'},
		{Space, ModNone, ' '},
		{Return, ModNone, '\r'},
		{Left, ModNone, 0},
		{F5, ModNone, 0},
		{Unknown, ModNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.sc.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ASCII(tt.sc, tt.mods))
		})
	}
}

func TestFromRune(t *testing.T) {
	for _, r := range "azAZ09 ,./;'[]=-!@?\"" {
		sc, mods, ok := FromRune(r)
		assert.True(t, ok, "rune %q", r)
		assert.Equal(t, byte(r), ASCII(sc, mods), "rune %q", r)
	}

	sc, _, ok := FromRune('\n')
	assert.True(t, ok)
	assert.Equal(t, Return, sc)

	_, _, ok = FromRune('é')
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	tests := map[string]Scancode{
		"escape": Escape,
		"ESCAPE": Escape,
		"F12":    F12,
		"q":      Q,
		" up ":   Up,
	}
	for name, want := range tests {
		got, ok := Parse(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := Parse("")
	assert.False(t, ok)
	_, ok = Parse("hyper")
	assert.False(t, ok)
}

func TestString(t *testing.T) {
	assert.Equal(t, "ESCAPE", Escape.String())
	assert.Equal(t, "Q", Q.String())
	assert.Equal(t, "1", Num1.String())
	assert.Equal(t, "UNKNOWN", Unknown.String())
}
