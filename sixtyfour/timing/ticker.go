package timing

import "time"

// TickerLimiter uses time.Ticker for simple, consistent frame timing.
// Less accurate than the Governor under load, since ticks queue up while a
// frame runs long, but it never drifts.
type TickerLimiter struct {
	ticker *time.Ticker
	ch     <-chan time.Time
	period time.Duration
}

func NewTickerLimiter(period time.Duration) *TickerLimiter {
	if period <= 0 {
		period = FramePeriod
	}
	ticker := time.NewTicker(period)
	return &TickerLimiter{
		ticker: ticker,
		ch:     ticker.C,
		period: period,
	}
}

func (t *TickerLimiter) Begin() {}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ch
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.period)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
