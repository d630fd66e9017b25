package model

import (
	"sync"
	"time"
)

// IDSource hands out action ids.
type IDSource interface {
	Next() int64
	// Observe tells the source an id is already taken.
	Observe(id int64)
}

// ClockIDs issues ids from the wall clock in milliseconds. When the clock
// has not moved past the last issued id it returns last+1, so ids stay
// unique and increasing for the lifetime of the source.
type ClockIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewClockIDs returns a ClockIDs reading time.Now.
func NewClockIDs() *ClockIDs {
	return &ClockIDs{now: time.Now}
}

// NewClockIDsAt is NewClockIDs with an injectable clock.
func NewClockIDsAt(now func() time.Time) *ClockIDs {
	return &ClockIDs{now: now}
}

func (c *ClockIDs) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

func (c *ClockIDs) Observe(id int64) {
	c.mu.Lock()
	if id > c.last {
		c.last = id
	}
	c.mu.Unlock()
}
