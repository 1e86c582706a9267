package loop

import "time"

// DefaultDebounce is the quiet period used for resize bursts.
const DefaultDebounce = 150 * time.Millisecond

// Debouncer runs fn once after Trigger has not been called for Delay.
// Time is passed in by the caller so it can be polled from the frame loop.
type Debouncer struct {
	Delay    time.Duration
	fn       func()
	pending  bool
	deadline time.Time
}

func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{Delay: delay, fn: fn}
}

func (d *Debouncer) Trigger(now time.Time) {
	d.pending = true
	d.deadline = now.Add(d.Delay)
}

func (d *Debouncer) Pending() bool { return d.pending }

func (d *Debouncer) Cancel() { d.pending = false }

// Poll fires the pending call if the quiet period has elapsed.
func (d *Debouncer) Poll(now time.Time) bool {
	if !d.pending || now.Before(d.deadline) {
		return false
	}
	d.pending = false
	if d.fn != nil {
		d.fn()
	}
	return true
}
