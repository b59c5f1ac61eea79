package timing

import "time"

// Limiter controls frame rate timing for the frame pump.
type Limiter interface {
	// Begin marks the start of a frame's work.
	Begin()

	// WaitForNextFrame blocks until the frame period has elapsed since Begin.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) Begin()            {}
func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// FrameMicros is the emulated time advanced per frame, and the target
// wall-clock period of one loop iteration (~60 Hz).
const FrameMicros = 16667

// FramePeriod is FrameMicros as a time.Duration.
const FramePeriod = FrameMicros * time.Microsecond

// TargetFPS returns the frame rate implied by the given period.
func TargetFPS(period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	return float64(time.Second) / float64(period)
}

// Pacing names a Limiter implementation selectable from the command line.
type Pacing string

const (
	PacingSleep  Pacing = "sleep"
	PacingTicker Pacing = "ticker"
	PacingNone   Pacing = "none"
)

// Valid reports whether p names a known pacing mode. Empty means sleep.
func (p Pacing) Valid() bool {
	switch p {
	case PacingSleep, PacingTicker, PacingNone, "":
		return true
	}
	return false
}

// NewLimiter builds the limiter for the given pacing mode.
func NewLimiter(p Pacing, period time.Duration) (Limiter, bool) {
	switch p {
	case PacingSleep, "":
		return NewGovernor(period, SystemClock()), true
	case PacingTicker:
		return NewTickerLimiter(period), true
	case PacingNone:
		return NewNoOpLimiter(), true
	default:
		return nil, false
	}
}
