package genesis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdullah1738/deploytime/offchain/solanarpc"
)

var ErrRetryExhausted = errors.New("rate limit retries exhausted")

const (
	DefaultMaxAttempts = 5
	DefaultBaseDelay   = 1 * time.Second
)

// Retrier re-runs a call after throttling failures, sleeping
// BaseDelay*2^attempt between attempts. Any non-throttling error propagates
// immediately. The schedule has no jitter and no cap: retry timing stays an
// exact function of the attempt count, which is fine for a sequential CLI.
type Retrier struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// sleep is swapped out by tests to observe the delay schedule.
	sleep func(context.Context, time.Duration) error
}

func NewRetrier(maxAttempts int, baseDelay time.Duration) *Retrier {
	return &Retrier{MaxAttempts: maxAttempts, BaseDelay: baseDelay}
}

// Do runs fn until it succeeds, fails with a non-throttling error, or
// MaxAttempts consecutive throttling failures exhaust the budget.
func (r *Retrier) Do(ctx context.Context, fn func(context.Context) error) error {
	maxAttempts := r.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	baseDelay := r.BaseDelay
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	sleep := r.sleep
	if sleep == nil {
		sleep = sleepWithContext
	}

	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, solanarpc.ErrThrottled) {
			return err
		}
		if attempt == maxAttempts-1 {
			return fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, maxAttempts, err)
		}
		if serr := sleep(ctx, baseDelay<<attempt); serr != nil {
			return serr
		}
	}
}
