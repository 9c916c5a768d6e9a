package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/denials/internal/service"
)

// ErrMaxRetries indicates that all retry attempts have been exhausted.
var ErrMaxRetries = errors.New("max retries exceeded")

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// RetryExhaustedError is returned by WithRetry once every attempt has failed.
// Err is the error from the final attempt.
type RetryExhaustedError struct {
	Err      error
	Attempts int
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("%v after %d attempts: %v", ErrMaxRetries, e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrMaxRetries) match.
func (e *RetryExhaustedError) Is(target error) bool {
	return target == ErrMaxRetries
}

// Sleep waits for d or returns ctx.Err() if ctx finishes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// BackoffDelay returns the wait before attempt+1, where attempt counts from 1:
// InitialDelay * Multiplier^(attempt-1), capped at MaxDelay.
func BackoffDelay(attempt int, opts service.RetryOptions) time.Duration {
	opts = applyRetryDefaults(opts)
	delay := opts.InitialDelay
	for i := 1; i < attempt; i++ {
		delay = time.Duration(float64(delay) * opts.Multiplier)
		if delay >= opts.MaxDelay {
			return opts.MaxDelay
		}
	}
	if delay > opts.MaxDelay {
		delay = opts.MaxDelay
	}
	return delay
}

func applyRetryDefaults(opts service.RetryOptions) service.RetryOptions {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 500 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}
	if opts.Sleep == nil {
		opts.Sleep = Sleep
	}
	return opts
}

// WithRetry executes an operation with configurable retry behavior.
// A RetryableError with Retryable=false stops immediately and is returned as is.
// Cancellation of ctx also stops immediately. There is no sleep after the
// final attempt.
func WithRetry(ctx context.Context, operation func(ctx context.Context) error, opts service.RetryOptions) error {
	opts = applyRetryDefaults(opts)

	var lastErr error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		lastErr = operation(ctx)
		if lastErr == nil {
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		var retryableErr *RetryableError
		if errors.As(lastErr, &retryableErr) && !retryableErr.Retryable {
			return retryableErr.Err
		}

		if attempt == opts.MaxAttempts {
			break
		}

		delay := BackoffDelay(attempt, opts)
		if opts.OnRetry != nil {
			opts.OnRetry(attempt, delay, lastErr)
		} else {
			slog.Warn("Operation failed, retrying",
				"attempt", attempt,
				"max_attempts", opts.MaxAttempts,
				"delay", delay,
				"error", lastErr)
		}

		if err := opts.Sleep(ctx, delay); err != nil {
			return err
		}
	}

	return &RetryExhaustedError{Attempts: opts.MaxAttempts, Err: lastErr}
}
