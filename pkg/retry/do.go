// Package retry provides a small retry helper with configurable backoff and
// context cancellation, used for best-effort calls to external collaborators.
package retry

import (
	"context"
	"time"
)

// Func defines a retryable function.
// The function must respect the provided context.
type Func func(ctx context.Context) error

// Backoff defines how long to wait before the next retry.
// attempt starts from 0 (first retry after the first failure).
type Backoff interface {
	Next(attempt int) time.Duration
}

type fixedBackoff struct {
	interval time.Duration
}

func (b fixedBackoff) Next(int) time.Duration {
	return b.interval
}

// Fixed returns a fixed backoff strategy.
func Fixed(interval time.Duration) Backoff {
	return fixedBackoff{interval: interval}
}

type exponentialBackoff struct {
	base time.Duration
	max  time.Duration
}

func (b exponentialBackoff) Next(attempt int) time.Duration {
	d := b.base * time.Duration(1<<attempt)
	if b.max > 0 && d > b.max {
		return b.max
	}
	return d
}

// Exponential returns an exponential backoff strategy.
func Exponential(base time.Duration, max ...time.Duration) Backoff {
	var m time.Duration
	if len(max) > 0 {
		m = max[0]
	}
	return exponentialBackoff{base: base, max: m}
}

type options struct {
	maxAttempts int
	backoff     Backoff
}

// Option configures Do.
type Option func(*options)

// WithMaxAttempts sets the total number of attempts (including the first one).
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// WithBackoff sets the backoff strategy.
func WithBackoff(b Backoff) Option {
	return func(o *options) {
		o.backoff = b
	}
}

// Do runs fn until it succeeds, the attempts are exhausted, or ctx is done.
// It returns the last error observed.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	o := &options{
		maxAttempts: 3,
		backoff:     Fixed(200 * time.Millisecond),
	}
	for _, opt := range opts {
		opt(o)
	}

	var err error
	for attempt := 0; attempt < o.maxAttempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == o.maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(o.backoff.Next(attempt)):
		}
	}
	return err
}
