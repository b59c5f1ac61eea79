package timing

import (
	"log/slog"
	"time"
)

// Governor holds the loop to a fixed period by sleeping out whatever is left
// of the period once the frame's work is done. Frames that run long are not
// compensated: there is no catch-up and no frame skipping.
type Governor struct {
	clock  Clock
	period time.Duration
	start  time.Time

	stats Stats

	// actual FPS measurement, refreshed once per second
	measureCt   int
	measureTime time.Time
}

// Stats summarises the pacing of a run.
type Stats struct {
	Frames     uint64
	Overruns   uint64 // frames whose work took at least the full period
	Slept      time.Duration
	LastSleep  time.Duration
	ActualFPS  float64
	LastWorked time.Duration
}

func NewGovernor(period time.Duration, clock Clock) *Governor {
	if period <= 0 {
		period = FramePeriod
	}
	if clock == nil {
		clock = SystemClock()
	}
	now := clock.Now()
	return &Governor{
		clock:       clock,
		period:      period,
		start:       now,
		measureTime: now,
	}
}

// Period returns the target frame period.
func (g *Governor) Period() time.Duration {
	return g.period
}

func (g *Governor) Begin() {
	g.start = g.clock.Now()
}

func (g *Governor) WaitForNextFrame() {
	now := g.clock.Now()
	elapsed := now.Sub(g.start)

	g.stats.Frames++
	g.stats.LastWorked = elapsed
	g.stats.LastSleep = 0

	if remaining := g.period - elapsed; remaining > 0 {
		g.clock.Sleep(remaining)
		g.stats.Slept += remaining
		g.stats.LastSleep = remaining
	} else {
		g.stats.Overruns++
	}

	g.measure()
}

func (g *Governor) measure() {
	g.measureCt++
	now := g.clock.Now()
	window := now.Sub(g.measureTime)
	if window < time.Second {
		return
	}

	g.stats.ActualFPS = float64(g.measureCt) / window.Seconds()
	slog.Debug("Frame rate",
		"fps", g.stats.ActualFPS,
		"target_fps", TargetFPS(g.period),
		"overruns", g.stats.Overruns)

	g.measureCt = 0
	g.measureTime = now
}

func (g *Governor) Reset() {
	now := g.clock.Now()
	g.start = now
	g.measureTime = now
	g.measureCt = 0
	g.stats = Stats{}
}

// Stats returns a copy of the pacing counters.
func (g *Governor) Stats() Stats {
	return g.stats
}
