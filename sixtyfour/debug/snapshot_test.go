package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-sixtyfour/sixtyfour/video"
)

func TestFrameImage(t *testing.T) {
	fb := video.NewFrameBuffer(4, 2)
	fb.Fill(video.BlackColor)
	fb.SetPixel(3, 1, video.RGB(0x11, 0x22, 0x33))

	img := FrameImage(fb)

	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	c := img.RGBAAt(3, 1)
	assert.Equal(t, []uint8{0x11, 0x22, 0x33, 0xFF}, []uint8{c.R, c.G, c.B, c.A})
	c = img.RGBAAt(0, 0)
	assert.Equal(t, []uint8{0, 0, 0, 0xFF}, []uint8{c.R, c.G, c.B, c.A})
}

func TestSaveFramePNGToDir(t *testing.T) {
	dir := t.TempDir()
	fb := video.NewFrameBuffer(video.FramebufferWidth, video.FramebufferHeight)
	fb.Fill(video.WhiteColor)

	path, err := SaveFramePNGToDir(fb, "frame_1", dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "frame_1_"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, video.FramebufferWidth, img.Bounds().Dx())
	assert.Equal(t, video.FramebufferHeight, img.Bounds().Dy())
}

func TestSaveFramePNGToDir_MissingDir(t *testing.T) {
	fb := video.NewFrameBuffer(2, 2)
	_, err := SaveFramePNGToDir(fb, "x", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestTakeSnapshot(t *testing.T) {
	dir := t.TempDir()
	TakeSnapshot(video.NewFrameBuffer(2, 2), dir)
	TakeSnapshot(nil, dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
