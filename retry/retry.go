// Package retry provides a bounded polling primitive.
//
// Poll repeatedly evaluates a predicate at a fixed interval until it reports
// success, fails, or the timeout elapses. The interval, timeout, and
// predicate are explicit parameters so polling behavior stays independently
// testable instead of being buried in caller loops.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// ErrTimeout is returned by Poll when the predicate never succeeded within
// the policy timeout.
var ErrTimeout = errors.New("polling timed out")

// Predicate reports whether the awaited condition holds. Returning an error
// aborts polling immediately.
type Predicate func(ctx context.Context) (bool, error)

// Policy describes a bounded poll.
type Policy struct {
	// Interval between predicate evaluations.
	Interval time.Duration
	// Timeout bounds the entire poll, including the first evaluation.
	Timeout time.Duration
}

// Validate checks the policy for usable values.
func (p Policy) Validate() error {
	if p.Interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", p.Interval)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("poll timeout must be positive, got %v", p.Timeout)
	}
	return nil
}

// Poll evaluates predicate at the policy interval until it returns true, an
// error, or the timeout elapses. The predicate is evaluated immediately on
// entry; subsequent evaluations are paced with a rate limiter so slow
// predicates do not cause bursts.
//
// Returns nil when the predicate succeeded, ErrTimeout when the timeout
// elapsed, the predicate's error when it failed, or the context error when
// the caller's context was cancelled first.
func Poll(ctx context.Context, policy Policy, predicate Predicate) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	pollCtx, cancel := context.WithTimeout(ctx, policy.Timeout)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(policy.Interval), 1)

	for {
		ok, err := predicate(pollCtx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		if err := limiter.Wait(pollCtx); err != nil {
			// Distinguish timing out the poll from caller cancellation.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return ErrTimeout
		}
	}
}
