// Package engine defines the contract between the frame pump and the
// emulation engine that owns all chip state, plus the stand-in engines
// shipped with this module.
package engine

import (
	"errors"
	"fmt"
)

// Engine is the emulation engine driven by the frame pump. Implementations
// are created once by a constructor taking a Desc, and released once with
// Free. None of the methods can fail once construction succeeded.
type Engine interface {
	// Exec advances emulated time by the given number of microseconds.
	Exec(micros uint32)

	// DisplayInfo describes the indexed video surface. It is invariant for
	// the lifetime of the engine; Frame.Buffer aliases the live surface.
	DisplayInfo() DisplayInfo

	// KeyDown and KeyUp inject a key state change for an engine key code.
	KeyDown(code int)
	KeyUp(code int)

	// Free releases everything owned by the engine.
	Free()
}

// ROMImage is a raw ROM dump.
type ROMImage []byte

// ROMs holds the system ROM images an engine may need.
type ROMs struct {
	Chars  ROMImage
	Basic  ROMImage
	Kernal ROMImage
}

// Desc configures engine construction.
type Desc struct {
	// TapeEnabled attaches the datasette peripheral.
	TapeEnabled bool
	// AudioSamples is the size of the audio sample buffer, 0 disables audio.
	AudioSamples int
	ROMs         ROMs
}

// Dim is a width/height pair in pixels.
type Dim struct {
	Width  int
	Height int
}

// Rect is the visible screen window inside the frame.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Frame is the whole indexed surface. Dim.Width doubles as the row pitch.
type Frame struct {
	Dim    Dim
	Buffer []byte
}

// DisplayInfo is the display descriptor reported by an engine.
type DisplayInfo struct {
	Frame   Frame
	Screen  Rect
	Palette []uint32
}

var ErrInvalidDisplay = errors.New("invalid display info")

// Validate checks that every pixel of the screen window lies inside the
// frame buffer, so a scan-out never indexes past it.
func (d DisplayInfo) Validate() error {
	f, s := d.Frame, d.Screen
	switch {
	case f.Dim.Width <= 0 || f.Dim.Height <= 0:
		return fmt.Errorf("%w: frame is %dx%d", ErrInvalidDisplay, f.Dim.Width, f.Dim.Height)
	case len(f.Buffer) < f.Dim.Width*f.Dim.Height:
		return fmt.Errorf("%w: frame buffer holds %d bytes, need %d",
			ErrInvalidDisplay, len(f.Buffer), f.Dim.Width*f.Dim.Height)
	case s.X < 0 || s.Y < 0 || s.Width < 0 || s.Height < 0:
		return fmt.Errorf("%w: negative screen window %+v", ErrInvalidDisplay, s)
	case s.X+s.Width > f.Dim.Width || s.Y+s.Height > f.Dim.Height:
		return fmt.Errorf("%w: screen window %+v exceeds %dx%d frame",
			ErrInvalidDisplay, s, f.Dim.Width, f.Dim.Height)
	case len(d.Palette) == 0:
		return fmt.Errorf("%w: empty palette", ErrInvalidDisplay)
	}
	return nil
}
