package lamp

import "time"

// Clock is the time source of the cycle loop.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the real, monotonic clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Gate lets a cycle body run at most once per period. It is polled; a
// missed period is not caught up, the next cycle just runs late.
type Gate struct {
	period time.Duration
	last   time.Time
}

// NewGate returns a gate whose first period starts at start.
func NewGate(period time.Duration, start time.Time) *Gate {
	return &Gate{period: period, last: start}
}

// Ready reports whether more than one period has passed since the last
// accepted call, and if so restarts the period at now.
func (g *Gate) Ready(now time.Time) bool {
	if now.Sub(g.last) > g.period {
		g.last = now
		return true
	}
	return false
}
