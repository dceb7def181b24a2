package genesis

import (
	"context"
	"sync"
	"time"
)

// Gate serializes remote calls. At most one task runs at a time across all
// callers sharing the Gate, and consecutive tasks are spaced by at least
// Interval (measured from the end of one task to the start of the next).
//
// The Gate is an explicit object rather than package state so tests can run
// a resolver against a zero-interval gate.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewGate returns a gate pacing tasks by interval. Interval 0 still
// serializes but never delays.
func NewGate(interval time.Duration) *Gate {
	return &Gate{interval: interval}
}

// Do runs fn once the gate is free and the pacing interval has elapsed.
// Waiters acquire the gate in lock order; fn's error is returned unchanged.
func (g *Gate) Do(ctx context.Context, fn func(context.Context) error) error {
	if g == nil {
		return fn(ctx)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.interval > 0 && !g.last.IsZero() {
		if wait := g.interval - time.Since(g.last); wait > 0 {
			if err := sleepWithContext(ctx, wait); err != nil {
				return err
			}
		}
	}
	defer func() { g.last = time.Now() }()
	return fn(ctx)
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
