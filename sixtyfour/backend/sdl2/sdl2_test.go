//go:build sdl2

package sdl2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-sixtyfour/sixtyfour/backend"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/key"
	"github.com/veandco/go-sdl2/sdl"
)

func TestSDL2ImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*Backend)(nil)
	var _ backend.FullscreenToggler = (*Backend)(nil)
}

func TestModsFromSDL(t *testing.T) {
	assert.Equal(t, key.ModNone, modsFromSDL(0))
	assert.Equal(t, key.ModShift, modsFromSDL(sdl.KMOD_LSHIFT))
	assert.Equal(t, key.ModShift|key.ModCtrl, modsFromSDL(sdl.KMOD_RSHIFT|sdl.KMOD_LCTRL))
}

func TestScancodesMatchSDL(t *testing.T) {
	assert.Equal(t, key.Scancode(sdl.SCANCODE_A), key.A)
	assert.Equal(t, key.Scancode(sdl.SCANCODE_RETURN), key.Return)
	assert.Equal(t, key.Scancode(sdl.SCANCODE_ESCAPE), key.Escape)
	assert.Equal(t, key.Scancode(sdl.SCANCODE_BACKSPACE), key.Backspace)
	assert.Equal(t, key.Scancode(sdl.SCANCODE_LEFT), key.Left)
	assert.Equal(t, key.Scancode(sdl.SCANCODE_UP), key.Up)
	assert.Equal(t, key.Scancode(sdl.SCANCODE_F12), key.F12)
}
