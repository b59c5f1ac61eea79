package action

// Action represents host-side actions bound to hotkeys. They never reach
// the engine.
type Action int

const (
	Quit Action = iota
	Snapshot
	ToggleFullscreen
)

func (a Action) String() string {
	switch a {
	case Quit:
		return "quit"
	case Snapshot:
		return "snapshot"
	case ToggleFullscreen:
		return "toggle-fullscreen"
	}
	return "unknown"
}
