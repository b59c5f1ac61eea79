package video

import "github.com/valerio/go-sixtyfour/sixtyfour/engine"

// PaletteSize is the number of colours addressable by a palette index. Only
// the low nibble of a frame byte selects a colour.
const PaletteSize = 16

// Palette is a fixed 16 entry colour table. Indexing it with b&0x0F can
// never go out of range.
type Palette [PaletteSize]uint32

// NewPalette copies up to 16 colours from src. Missing entries are opaque
// black.
func NewPalette(src []uint32) Palette {
	var p Palette
	for i := range p {
		if i < len(src) {
			p[i] = src[i]
		} else {
			p[i] = uint32(BlackColor)
		}
	}
	return p
}

// ScanOut converts the indexed screen region described by info into RGBA
// pixels at the top-left of dst. The region is clipped to dst. Pixels
// outside the region are not touched.
//
// info must have passed Validate; this runs once per frame over every
// visible pixel and does no further checking.
func ScanOut(dst *FrameBuffer, info engine.DisplayInfo, pal *Palette) {
	w := min(info.Screen.Width, dst.width)
	h := min(info.Screen.Height, dst.height)
	if w <= 0 || h <= 0 {
		return
	}

	pitch := info.Frame.Dim.Width
	src := info.Frame.Buffer
	out := dst.buffer

	for y := 0; y < h; y++ {
		si := (y+info.Screen.Y)*pitch + info.Screen.X
		row := src[si : si+w]
		di := y * dst.width
		line := out[di : di+w]
		for x, b := range row {
			line[x] = pal[b&0x0F]
		}
	}
}
