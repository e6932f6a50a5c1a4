// Package retry provides bounded retries with exponential backoff for
// operations that fail transiently.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseWait   = 1 * time.Second
)

// RecoverableError marks an error as safe to retry.
type RecoverableError struct {
	err error
}

// NewRecoverableError wraps err so Do will retry after it.
func NewRecoverableError(err error) *RecoverableError {
	return &RecoverableError{err: err}
}

func (e *RecoverableError) Error() string {
	return e.err.Error()
}

func (e *RecoverableError) Unwrap() error {
	return e.err
}

// IsRecoverable reports whether err is marked as recoverable.
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}
	var recoverable *RecoverableError
	return errors.As(err, &recoverable)
}

type config struct {
	maxRetries int
	baseWait   time.Duration
}

// Option configures a call to Do.
type Option func(*config)

// WithMaxRetries sets the total number of attempts.
func WithMaxRetries(n int) Option {
	return func(c *config) {
		c.maxRetries = n
	}
}

// WithBaseWait sets the wait before the first retry. Subsequent waits grow
// exponentially, with jitter.
func WithBaseWait(d time.Duration) Option {
	return func(c *config) {
		c.baseWait = d
	}
}

// Do runs fn, retrying while it returns a recoverable error. A
// non-recoverable error stops the attempts immediately. After the attempts
// are exhausted the last error is returned.
func Do(ctx context.Context, fn func() error, opts ...Option) error {
	cfg := &config{
		maxRetries: DefaultMaxRetries,
		baseWait:   DefaultBaseWait,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var lastErr error
	for attempt := 0; attempt < cfg.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			backoff := time.Duration(float64(cfg.baseWait) * math.Pow(2, float64(attempt-1)))
			jitter := time.Duration(rand.Float64() * float64(backoff) * 0.1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRecoverable(err) {
			return err
		}
	}
	return lastErr
}
