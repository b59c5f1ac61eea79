package timing

import "time"

// Clock is the time source used by the Governor. time.Now readings carry a
// monotonic component, so Sub between two of them never goes backward.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the wall clock backed by the time package.
func SystemClock() Clock {
	return systemClock{}
}
