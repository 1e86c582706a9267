package loop

import "time"

// Interval fires at most once per Period when polled.
type Interval struct {
	Period time.Duration
	next   time.Time
}

func NewInterval(period time.Duration) *Interval {
	return &Interval{Period: period}
}

// Due reports whether a period has elapsed since the last firing. Missed
// periods are dropped rather than replayed.
func (i *Interval) Due(now time.Time) bool {
	if i.Period <= 0 {
		return true
	}
	if i.next.IsZero() || !now.Before(i.next) {
		i.next = now.Add(i.Period)
		return true
	}
	return false
}

func (i *Interval) Reset() { i.next = time.Time{} }
