//go:build ebiten

package ebitengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-sixtyfour/sixtyfour/backend"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/key"
)

func TestEbitenImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*Backend)(nil)
	var _ backend.FullscreenToggler = (*Backend)(nil)
}

func TestKeyMappingIsInjective(t *testing.T) {
	seen := map[key.Scancode]int{}
	for _, sc := range keyMapping {
		seen[sc]++
	}
	// both enter keys map to RETURN
	for sc, n := range seen {
		if sc == key.Return {
			assert.Equal(t, 2, n)
			continue
		}
		assert.Equal(t, 1, n, "scancode %s", sc)
	}
}

func TestPollEventDrainsChannel(t *testing.T) {
	b := New(false)
	b.send(pasteEvents([]byte("q"))[0])

	ev, ok := b.PollEvent()
	assert.True(t, ok)
	assert.Equal(t, key.Q, ev.Scancode)

	_, ok = b.PollEvent()
	assert.False(t, ok)
}
