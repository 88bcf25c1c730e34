package engine

import (
	"context"
	"fmt"
	"time"
)

// DefaultPollInterval is the counter poll interval for WaitForCount.
const DefaultPollInterval = 100 * time.Millisecond

// Waiter lets test code block until a rule has been fulfilled a given
// number of times, bounded by a timeout.
type Waiter struct {
	counter  *CallCounter
	interval time.Duration
}

// NewWaiter creates a Waiter polling the counter at the default interval.
func NewWaiter(counter *CallCounter) *Waiter {
	return &Waiter{
		counter:  counter,
		interval: DefaultPollInterval,
	}
}

// NewWaiterWithInterval creates a Waiter with a custom poll interval.
func NewWaiterWithInterval(counter *CallCounter, interval time.Duration) *Waiter {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Waiter{
		counter:  counter,
		interval: interval,
	}
}

// WaitForCount polls the counter until the rule id reaches the expected
// count or the timeout elapses. On timeout it returns a *TimeoutError
// carrying the last observed count. The wait stops immediately when ctx
// is canceled; the ticker and timer never outlive the call.
func (w *Waiter) WaitForCount(ctx context.Context, id string, expected int, timeout time.Duration) error {
	if expected <= 0 {
		return nil
	}

	if w.counter.Get(id) >= expected {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for rule %q abandoned: %w", id, ctx.Err())
		case <-deadline.C:
			// A fulfillment may land between the last tick and the
			// deadline; re-check before reporting a timeout.
			observed := w.counter.Get(id)
			if observed >= expected {
				return nil
			}
			return &TimeoutError{
				RuleID:   id,
				Expected: expected,
				Observed: observed,
			}
		case <-ticker.C:
			if w.counter.Get(id) >= expected {
				return nil
			}
		}
	}
}
