package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor_RGBA(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	assert.Equal(t, Color(0x123456FF), c)

	r, g, b, a := c.RGBA()
	assert.Equal(t, []uint8{0x12, 0x34, 0x56, 0xFF}, []uint8{r, g, b, a})

	r, g, b, a = Color(0x88000044).RGBA()
	assert.Equal(t, []uint8{0x88, 0x00, 0x00, 0x44}, []uint8{r, g, b, a})
	assert.Equal(t, Color(0x880000FF), RGB(r, g, b))
}

func TestFrameBuffer(t *testing.T) {
	fb := NewFrameBuffer(3, 2)
	assert.Equal(t, 3, fb.Width())
	assert.Equal(t, 2, fb.Height())
	assert.Len(t, fb.ToSlice(), 6)

	fb.SetPixel(2, 1, WhiteColor)
	assert.Equal(t, WhiteColor, fb.GetPixel(2, 1))
	assert.Equal(t, uint32(WhiteColor), fb.ToSlice()[5])

	fb.Fill(BlackColor)
	assert.Equal(t, BlackColor, fb.GetPixel(2, 1))
}

func TestFrameBuffer_AppendRGBA(t *testing.T) {
	fb := NewFrameBuffer(2, 1)
	fb.SetPixel(0, 0, RGB(1, 2, 3))
	fb.SetPixel(1, 0, Color(0x0A0B0C0D))

	out := fb.AppendRGBA([]byte{0xEE})

	assert.Equal(t, []byte{0xEE, 1, 2, 3, 0xFF, 0x0A, 0x0B, 0x0C, 0x0D}, out)
}
