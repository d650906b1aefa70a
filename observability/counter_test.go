package observability

import (
	"context"
	"testing"
)

func TestNewCounter_StartsAtZero(t *testing.T) {
	c := NewCounter("test.count")
	if c.Value() != 0 {
		t.Errorf("new counter should read 0, got %d", c.Value())
	}
}

func TestCounter_Add(t *testing.T) {
	c := NewCounter("test.count")
	ctx := context.Background()

	c.Add(ctx, 1)
	c.Add(ctx, 1, String("ignored", "attr"))
	c.Add(ctx, 3)

	if c.Value() != 5 {
		t.Errorf("expected 5, got %d", c.Value())
	}
}

func TestCounter_SharedAcrossCallers(t *testing.T) {
	c := NewCounter("test.count")
	ctx := context.Background()

	// Two holders of the same counter see one running total.
	first, second := c, c
	first.Add(ctx, 2)
	second.Add(ctx, 1)

	if c.Value() != 3 {
		t.Errorf("expected 3, got %d", c.Value())
	}
}
