// Package retry provides a bounded fixed-delay retry policy for transport
// calls. The policy is independent of any business logic so it can be tested
// by injecting a failing operation.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrMaxAttempts indicates that all retry attempts have been exhausted.
var ErrMaxAttempts = errors.New("max retry attempts exceeded")

// Policy holds the retry parameters applied uniformly to every attempt.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultPolicy returns the transport defaults: 3 attempts, 2s apart.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, Delay: 2 * time.Second}
}

// PermanentError marks an error that must not be retried, such as an HTTP
// 4xx response.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so Do returns it immediately without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// Do runs op up to p.MaxAttempts times with a fixed delay between attempts.
// It stops early on success, on a permanent error, or when ctx is done.
func Do(ctx context.Context, p Policy, op func() error) error {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}

		var perm *PermanentError
		if errors.As(lastErr, &perm) {
			return perm.Err
		}

		if attempt == p.MaxAttempts {
			break
		}

		slog.WarnContext(ctx, "Operation failed, retrying",
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"delay", p.Delay,
			"error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delay):
		}
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrMaxAttempts, p.MaxAttempts, lastErr)
}
