// Package testutil provides deterministic fixtures shared across test
// packages.
package testutil

import (
	"sync"
	"time"
)

// Epoch is the starting instant clocks tick from unless told otherwise.
var Epoch = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// Clock yields deterministic wall-clock instants for tests. Each call to
// Now returns the current instant and advances one second, so
// consecutive writes get distinct, strictly increasing timestamps.
//
// Thread-safety: all methods are safe for concurrent use.
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

// NewClock creates a clock starting at Epoch.
func NewClock() *Clock {
	return &Clock{t: Epoch}
}

// NewClockAt creates a clock starting at the given instant.
func NewClockAt(start time.Time) *Clock {
	return &Clock{t: start}
}

// Now returns the current instant and advances the clock one second.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(time.Second)
	return now
}

// Peek returns the instant the next Now call will produce.
func (c *Clock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Reset rewinds the clock to the given instant for test reuse.
func (c *Clock) Reset(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = at
}
