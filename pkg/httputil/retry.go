package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryDelay is the initial backoff of [RetryWithBackoff].
var RetryDelay = time.Second

// RetryableError marks a transient failure for [Retry].
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry executes fn up to attempts times, doubling delay after each
// failure. Only errors wrapped in [RetryableError] are retried. It returns
// the last error, or ctx.Err() if cancelled while waiting.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !errors.As(err, new(*RetryableError)) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff retries fn three times starting at [RetryDelay].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, RetryDelay, fn)
}
