package session

import "sync/atomic"

// Clock is a monotonic logical clock for ordering widget events.
//
// Every event persisted to the durable log is stamped with a strictly
// increasing seq from this clock, never a wall-clock timestamp: replaying
// the log must produce the identical committed state regardless of wall
// time.
//
// Thread-safety: safe for concurrent use (atomic operations), though a
// session's single-run-at-a-time model means one goroutine typically
// calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number.
// Used when resuming a session from its persisted event log.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
