package video

import "github.com/valerio/go-sixtyfour/sixtyfour/display"

// Host pixel buffer dimensions. They cover the visible screen area, border
// included, reported by the emulated video chip.
const (
	FramebufferWidth  = 392
	FramebufferHeight = 272
)

// Color is a packed RGBA8888 pixel: red in the most significant byte, alpha
// in the least significant one.
type Color uint32

const (
	BlackColor Color = 0x000000FF
	WhiteColor Color = 0xFFFFFFFF
)

// RGB builds an opaque Color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<display.RGBARShift |
		uint32(g)<<display.RGBAGShift |
		uint32(b)<<display.RGBABShift |
		display.RGBAColorMask)
}

// RGBA unpacks the channels.
func (c Color) RGBA() (r, g, b, a uint8) {
	return uint8(c >> display.RGBARShift & display.RGBAColorMask),
		uint8(c >> display.RGBAGShift & display.RGBAColorMask),
		uint8(c >> display.RGBABShift & display.RGBAColorMask),
		uint8(c & display.RGBAColorMask)
}

type FrameBuffer struct {
	width  int
	height int
	buffer []uint32
}

// NewFrameBuffer creates a frame buffer with the specified size.
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		buffer: make([]uint32, width*height),
	}
}

func (fb *FrameBuffer) Width() int  { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }

func (fb *FrameBuffer) GetPixel(x, y int) Color {
	return Color(fb.buffer[y*fb.width+x])
}

func (fb *FrameBuffer) SetPixel(x, y int, color Color) {
	fb.buffer[y*fb.width+x] = uint32(color)
}

// Fill sets every pixel to color.
func (fb *FrameBuffer) Fill(color Color) {
	for i := range fb.buffer {
		fb.buffer[i] = uint32(color)
	}
}

// ToSlice exposes the backing pixels, row-major with a pitch of Width.
func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer
}

// AppendRGBA appends the frame as r,g,b,a bytes, the layout image.RGBA and
// most GPU upload paths expect, and returns the extended slice.
func (fb *FrameBuffer) AppendRGBA(dst []byte) []byte {
	for _, p := range fb.buffer {
		dst = append(dst, byte(p>>24), byte(p>>16), byte(p>>8), byte(p))
	}
	return dst
}
