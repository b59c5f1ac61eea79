package event

import "github.com/valerio/go-sixtyfour/sixtyfour/input/key"

// Kind is the kind of a host input event
type Kind int

const (
	Other   Kind = iota // anything the pump does not act on
	KeyDown             // a key was pressed
	KeyUp               // a key was released
	Close               // the user asked to close the window
)

// Event is a single host input event. Mods records the modifiers held when
// the event was generated; the translator ignores them.
type Event struct {
	Kind     Kind
	Scancode key.Scancode
	Mods     key.Mod
}

// Type represents how an action was triggered
type Type int

const (
	Press   Type = iota // Key pressed down (debounced)
	Release             // Key released (debounced)
	Hold                // Continuous while pressed (not debounced)
)
