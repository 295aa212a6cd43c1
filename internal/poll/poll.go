package poll

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned when a condition does not hold before the
// configured ceiling. Callers distinguish it with errors.Is.
var ErrTimeout = errors.New("condition not met before timeout")

const (
	// SoftForever is the default ceiling for waits that are effectively
	// unbounded in interactive use (window settle, file completion).
	// A large concrete value keeps pathological cases diagnosable
	// instead of hanging the process.
	SoftForever = 24 * time.Hour

	// DefaultInterval is the recheck cadence used when callers pass zero.
	DefaultInterval = 500 * time.Millisecond
)

// Condition reports whether the awaited state has been reached. An error
// aborts the wait and is returned to the caller unchanged.
type Condition func(ctx context.Context) (bool, error)

// Until evaluates fn repeatedly until it returns true, the timeout
// elapses, or ctx is cancelled. The first check runs without delay.
// Timeouts are reported as ErrTimeout wrapped with the elapsed time.
func Until(ctx context.Context, timeout, interval time.Duration, fn Condition) error {
	if fn == nil {
		return errors.New("poll: nil condition")
	}
	if timeout <= 0 {
		timeout = SoftForever
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	start := time.Now()
	deadline := start.Add(timeout)
	var timer *time.Timer

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := fn(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("%w (waited %s)", ErrTimeout, time.Since(start).Round(time.Millisecond))
		}
		sleep := interval
		if remaining < sleep {
			sleep = remaining
		}
		if timer == nil {
			timer = time.NewTimer(sleep)
			defer timer.Stop()
		} else {
			timer.Reset(sleep)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}
