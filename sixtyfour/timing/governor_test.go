package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when told to, or when slept on.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
	jitter time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(0, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d + c.jitter)
}

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestGovernor_SleepsOutRemainder(t *testing.T) {
	tests := []struct {
		name      string
		work      time.Duration
		wantSleep time.Duration
	}{
		{"idle frame", 0, FramePeriod},
		{"light frame", 5 * time.Millisecond, FramePeriod - 5*time.Millisecond},
		{"almost full frame", FramePeriod - time.Microsecond, time.Microsecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			g := NewGovernor(FramePeriod, clock)

			g.Begin()
			start := clock.Now()
			clock.Advance(tt.work)
			g.WaitForNextFrame()

			require.Len(t, clock.sleeps, 1)
			assert.Equal(t, tt.wantSleep, clock.sleeps[0])
			assert.Equal(t, FramePeriod, clock.Now().Sub(start), "iteration should last exactly one period")
			assert.Equal(t, uint64(0), g.Stats().Overruns)
		})
	}
}

func TestGovernor_NoSleepWhenBehind(t *testing.T) {
	for _, work := range []time.Duration{FramePeriod, FramePeriod + time.Millisecond, 10 * FramePeriod} {
		clock := newFakeClock()
		g := NewGovernor(FramePeriod, clock)

		g.Begin()
		clock.Advance(work)
		assert.NotPanics(t, g.WaitForNextFrame)

		assert.Empty(t, clock.sleeps, "no sleep expected for %v of work", work)
		assert.Equal(t, uint64(1), g.Stats().Overruns)
	}
}

func TestGovernor_NoCatchUp(t *testing.T) {
	clock := newFakeClock()
	g := NewGovernor(FramePeriod, clock)

	// one long frame followed by a short one: the short one still gets a
	// full-period sleep budget, the lost time is never made up
	g.Begin()
	clock.Advance(3 * FramePeriod)
	g.WaitForNextFrame()

	g.Begin()
	clock.Advance(time.Millisecond)
	g.WaitForNextFrame()

	require.Len(t, clock.sleeps, 1)
	assert.Equal(t, FramePeriod-time.Millisecond, clock.sleeps[0])
}

func TestGovernor_ToleratesJitter(t *testing.T) {
	clock := newFakeClock()
	clock.jitter = 2 * time.Millisecond
	g := NewGovernor(FramePeriod, clock)

	for i := 0; i < 120; i++ {
		g.Begin()
		start := clock.Now()
		clock.Advance(4 * time.Millisecond)
		g.WaitForNextFrame()

		iteration := clock.Now().Sub(start)
		assert.GreaterOrEqual(t, iteration, FramePeriod)
		assert.LessOrEqual(t, iteration, FramePeriod+clock.jitter)
	}

	for _, d := range clock.sleeps {
		assert.Positive(t, d)
	}
	stats := g.Stats()
	assert.Equal(t, uint64(120), stats.Frames)
	assert.Greater(t, stats.ActualFPS, 0.0)
}

func TestGovernor_Reset(t *testing.T) {
	clock := newFakeClock()
	g := NewGovernor(FramePeriod, clock)

	g.Begin()
	clock.Advance(2 * FramePeriod)
	g.WaitForNextFrame()
	require.Equal(t, uint64(1), g.Stats().Frames)

	g.Reset()
	assert.Equal(t, Stats{}, g.Stats())
}

func TestGovernor_Defaults(t *testing.T) {
	g := NewGovernor(0, nil)
	assert.Equal(t, FramePeriod, g.Period())
	assert.InDelta(t, 60.0, TargetFPS(g.Period()), 0.01)
}

func TestGovernor_RealClockConverges(t *testing.T) {
	if testing.Short() {
		t.Skip("wall clock test")
	}

	const frames = 10
	period := 5 * time.Millisecond
	g := NewGovernor(period, SystemClock())

	start := time.Now()
	for i := 0; i < frames; i++ {
		g.Begin()
		time.Sleep(time.Millisecond)
		g.WaitForNextFrame()
	}
	total := time.Since(start)

	assert.GreaterOrEqual(t, total, frames*period)
	// generous bound, schedulers on CI machines oversleep
	assert.Less(t, total, frames*period+250*time.Millisecond)
}

func TestNewLimiter(t *testing.T) {
	tests := []struct {
		pacing Pacing
		ok     bool
	}{
		{PacingSleep, true},
		{"", true},
		{PacingTicker, true},
		{PacingNone, true},
		{"turbo", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.pacing), func(t *testing.T) {
			l, ok := NewLimiter(tt.pacing, FramePeriod)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ok, tt.pacing.Valid())
			if ok {
				assert.NotNil(t, l)
			}
			if tl, isTicker := l.(*TickerLimiter); isTicker {
				tl.Stop()
			}
		})
	}
}

func TestNoOpLimiter(t *testing.T) {
	l := NewNoOpLimiter()
	start := time.Now()
	for i := 0; i < 1000; i++ {
		l.Begin()
		l.WaitForNextFrame()
	}
	l.Reset()
	assert.Less(t, time.Since(start), FramePeriod)
}
