package observability

import (
	"context"
	"sync/atomic"
)

// memCounter is a minimal in-memory Counter with no logging backend.
type memCounter struct {
	name  string
	value atomic.Int64
}

// NewCounter returns a plain in-memory [Counter]. It is the default
// successful-calculation counter for calculators constructed without a
// provider; an application that wants one count across several
// calculator instances passes the same counter to each of them.
func NewCounter(name string) Counter {
	return &memCounter{name: name}
}

// Add increments the counter by value. The attributes are accepted for
// interface compatibility and ignored.
func (c *memCounter) Add(_ context.Context, value int64, _ ...Attribute) {
	c.value.Add(value)
}

// Value returns the current count.
func (c *memCounter) Value() int64 {
	return c.value.Load()
}
