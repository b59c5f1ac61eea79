package sixtyfour_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-sixtyfour/sixtyfour"
	"github.com/valerio/go-sixtyfour/sixtyfour/backend"
	"github.com/valerio/go-sixtyfour/sixtyfour/backend/headless"
	"github.com/valerio/go-sixtyfour/sixtyfour/engine"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/event"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/key"
	"github.com/valerio/go-sixtyfour/sixtyfour/timing"
	"github.com/valerio/go-sixtyfour/sixtyfour/video"
)

func newHeadless(t *testing.T, frames int, snap headless.SnapshotConfig) *headless.Backend {
	t.Helper()
	h := headless.New(frames, key.Escape, snap)
	require.NoError(t, h.Init(backend.DefaultConfig()))
	t.Cleanup(func() { _ = h.Cleanup() })
	return h
}

func fastConfig() sixtyfour.Config {
	cfg := sixtyfour.DefaultConfig()
	cfg.Pacing = timing.PacingNone
	return cfg
}

func TestTextModeTyping(t *testing.T) {
	h := newHeadless(t, 30, headless.SnapshotConfig{})
	h.TypeText(0, "hello")
	h.At(12, event.Event{Kind: event.KeyDown, Scancode: key.Return})

	tm, err := engine.NewTextMode(engine.Desc{})
	require.NoError(t, err)

	p, err := sixtyfour.New(tm, h, fastConfig())
	require.NoError(t, err)
	require.NoError(t, p.Run())

	assert.Equal(t, "HELLO", tm.Line(7))
	_, row := tm.Cursor()
	assert.Equal(t, 8, row)
	assert.True(t, tm.Freed())

	assert.Equal(t, 30, h.Frames())
	assert.Equal(t, uint64(30), p.Stats().Frames)
	assert.Equal(t, uint64(6), p.Stats().InjectedKeys)

	border := video.Color(engine.Palette[engine.ColorLightBlue])
	assert.Equal(t, border, h.FrameBuffer().GetPixel(0, 0))
}

func TestTestPatternSnapshots(t *testing.T) {
	dir := t.TempDir()
	snap, err := headless.CreateSnapshotConfig(5, dir, "pattern")
	require.NoError(t, err)
	h := newHeadless(t, 10, snap)

	tp := engine.NewTestPattern(engine.PatternBars)
	p, err := sixtyfour.New(tp, h, fastConfig())
	require.NoError(t, err)
	require.NoError(t, p.Run())

	assert.Len(t, h.Snapshots(), 2)
	for x := 0; x < 16; x++ {
		px := h.FrameBuffer().GetPixel((2*x+1)*engine.PatternWidth/32, 0)
		assert.Equal(t, video.Color(engine.Palette[x]), px, "bar %d", x)
	}
}
