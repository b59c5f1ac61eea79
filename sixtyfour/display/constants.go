package display

// RGBA pixel format constants
const (
	// RGBABytesPerPixel is the number of bytes per pixel in RGBA format
	RGBABytesPerPixel = 4
	// RGBARShift is the bit shift for the red component in RGBA format
	RGBARShift = 24
	// RGBAGShift is the bit shift for the green component in RGBA format
	RGBAGShift = 16
	// RGBABShift is the bit shift for the blue component in RGBA format
	RGBABShift = 8
	// RGBAColorMask is the mask for extracting color components
	RGBAColorMask = 0xFF
)

// Window constants
const (
	// DefaultWindowWidth is the host window width; the framebuffer is
	// stretched to fill it
	DefaultWindowWidth = 640
	// DefaultWindowHeight is the host window height
	DefaultWindowHeight = 400
	// DefaultTitle is the window title
	DefaultTitle = "sixtyfour"
)

// Terminal rendering constants
const (
	// CellsPerRow is the number of vertical pixels packed in one text cell
	// using half blocks
	CellsPerRow = 2
	// LogPanelHeight is the number of terminal rows reserved for log output
	LogPanelHeight = 6
	// MinTerminalWidth is the narrowest terminal the renderer draws into
	MinTerminalWidth = 20
	// MinTerminalHeight is the shortest terminal the renderer draws into
	MinTerminalHeight = 10
)

// Snapshot constants
const (
	// SnapshotTimeFormat is the timestamp format used in snapshot file names
	SnapshotTimeFormat = "20060102_150405"
	// SnapshotPrefix is the default snapshot file name prefix
	SnapshotPrefix = "sixtyfour_snapshot"
)
