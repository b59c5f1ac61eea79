package sixtyfour

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/valerio/go-sixtyfour/sixtyfour/input/action"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/key"
	"github.com/valerio/go-sixtyfour/sixtyfour/timing"
)

var ErrInvalidConfig = errors.New("invalid pump configuration")

// maxPeriod is the longest frame whose length in microseconds fits Exec.
const maxPeriod = time.Duration(math.MaxUint32) * time.Microsecond

// Config holds the frame pump options.
type Config struct {
	// Pacing selects the frame limiter. Ignored when Limiter is set.
	Pacing timing.Pacing
	// Period is both the wall-clock target for one iteration and the emulated
	// time the engine advances per frame, so emulation runs at real speed.
	Period time.Duration
	// Limiter overrides Pacing with a caller-supplied limiter.
	Limiter timing.Limiter

	// QueueDepth > 0 buffers up to that many host events between frames,
	// polling only while the queue has room, instead of polling exactly once.
	// Still one key per frame.
	QueueDepth int

	// MaxFrames stops the loop after that many presented frames, 0 for no
	// limit.
	MaxFrames uint64

	// CancelKey ends the run when pressed. It is never injected.
	CancelKey key.Scancode
	// Hotkeys are host actions that are never injected.
	Hotkeys map[key.Scancode]action.Action

	// SnapshotDir receives hotkey snapshots, the working directory if empty.
	SnapshotDir string
}

// DefaultConfig returns sleep pacing at ~60 Hz, ESCAPE to quit, F11 for
// fullscreen and F12 for a snapshot.
func DefaultConfig() Config {
	return Config{
		Pacing:    timing.PacingSleep,
		Period:    timing.FramePeriod,
		CancelKey: key.Escape,
		Hotkeys: map[key.Scancode]action.Action{
			key.F11: action.ToggleFullscreen,
			key.F12: action.Snapshot,
		},
	}
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	if c.Limiter == nil && !c.Pacing.Valid() {
		return fmt.Errorf("%w: unknown pacing %q", ErrInvalidConfig, c.Pacing)
	}
	if c.Period < 0 {
		return fmt.Errorf("%w: negative frame period %s", ErrInvalidConfig, c.Period)
	}
	if c.Period > 0 && c.Period < time.Microsecond {
		return fmt.Errorf("%w: frame period %s is below one microsecond", ErrInvalidConfig, c.Period)
	}
	if c.Period > maxPeriod {
		return fmt.Errorf("%w: frame period %s is too long", ErrInvalidConfig, c.Period)
	}
	if c.QueueDepth < 0 {
		return fmt.Errorf("%w: negative input queue depth %d", ErrInvalidConfig, c.QueueDepth)
	}
	if c.CancelKey == key.Unknown {
		return fmt.Errorf("%w: no cancel key", ErrInvalidConfig)
	}
	if act, ok := c.Hotkeys[c.CancelKey]; ok {
		return fmt.Errorf("%w: cancel key %s is also bound to %s", ErrInvalidConfig, c.CancelKey, act)
	}
	return nil
}

func (c Config) limiter() timing.Limiter {
	if c.Limiter != nil {
		return c.Limiter
	}
	l, _ := timing.NewLimiter(c.Pacing, c.Period)
	return l
}
