package engine

// Colour indices of the 16 colour palette.
const (
	ColorBlack = iota
	ColorWhite
	ColorRed
	ColorCyan
	ColorPurple
	ColorGreen
	ColorBlue
	ColorYellow
	ColorOrange
	ColorBrown
	ColorLightRed
	ColorDarkGrey
	ColorGrey
	ColorLightGreen
	ColorLightBlue
	ColorLightGrey
)

// Palette is the VIC-II palette as packed RGBA8888 (0xRRGGBBAA).
var Palette = []uint32{
	0x000000FF, // black
	0xFFFFFFFF, // white
	0x9F4E44FF, // red
	0x6ABFC6FF, // cyan
	0xA057A3FF, // purple
	0x5CAB5EFF, // green
	0x50459BFF, // blue
	0xC9D487FF, // yellow
	0xA1683CFF, // orange
	0x6D5412FF, // brown
	0xCB7E75FF, // light red
	0x626262FF, // dark grey
	0x898989FF, // grey
	0x9AE29BFF, // light green
	0x887ECBFF, // light blue
	0xADADADFF, // light grey
}
