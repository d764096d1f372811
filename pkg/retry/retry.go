package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/jackc/pgerrcode"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 1000 * time.Millisecond
)

// ErrRetriesExhausted marks an error returned after every attempt failed.
var ErrRetriesExhausted = errors.New("retries exhausted")

// Codes that describe a permanent condition. Retrying cannot fix them.
var nonRetryableCodes = []string{
	pgerrcode.UndefinedTable,
	pgerrcode.UndefinedColumn,
	pgerrcode.UniqueViolation,
}

type Backoff func(attempt int) time.Duration

type ShouldRetry func(error) bool

// OnRetry is called after a failed attempt that will be retried.
type OnRetry func(attempt int, err error, wait time.Duration)

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Backoff     Backoff
	ShouldRetry ShouldRetry
	OnRetry     OnRetry
}

func (c *RetryConfig) normalize() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}

	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}

	if c.Backoff == nil {
		c.Backoff = ExponentialBackoff(c.BaseDelay)
	}

	if c.ShouldRetry == nil {
		c.ShouldRetry = Retryable
	}
}

// ExponentialBackoff waits delay, 2*delay, 4*delay... for attempts 1, 2, 3...
func ExponentialBackoff(delay time.Duration) Backoff {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}
		return delay << (attempt - 1)
	}
}

func LinearBackoff(delay time.Duration) Backoff {
	return func(int) time.Duration {
		return delay
	}
}

// ExhaustedError is the last error seen when all attempts failed.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d attempts: %v", ErrRetriesExhausted, e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() []error {
	return []error{ErrRetriesExhausted, e.Err}
}

type sqlStater interface {
	SQLState() string
}

// Code returns the SQLSTATE code carried by err, or "".
func Code(err error) string {
	var s sqlStater
	if errors.As(err, &s) {
		return s.SQLState()
	}
	return ""
}

// NonRetryable reports whether err carries one of the permanent
// schema or constraint codes.
func NonRetryable(err error) bool {
	code := Code(err)
	return code != "" && slices.Contains(nonRetryableCodes, code)
}

// Retryable is the default classification: anything without a
// recognized permanent code is treated as transient.
func Retryable(err error) bool {
	return !NonRetryable(err)
}

func Do(ctx context.Context, c RetryConfig, fn func() error) error {
	_, err := DoWithResult(ctx, c, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func DoWithResult[T any](ctx context.Context, c RetryConfig, fn func() (T, error)) (T, error) {
	var (
		zero, result T
		err          error
	)

	if err = ctx.Err(); err != nil {
		return zero, err
	}

	c.normalize()
	var timer *time.Timer

	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		result, err = fn()
		if err == nil {
			return result, nil
		}

		log := slog.With("attempt", attempt, "maxAttempts", c.MaxAttempts)

		if !c.ShouldRetry(err) {
			log.Warn("non-retryable error, aborting", "code", Code(err), "err", err)
			return zero, err
		}

		if attempt == c.MaxAttempts {
			break
		}

		wait := c.Backoff(attempt)
		log.Warn("attempt failed, retrying", "wait", wait, "err", err)
		if c.OnRetry != nil {
			c.OnRetry(attempt, err, wait)
		}

		if timer == nil {
			timer = time.NewTimer(wait)
			defer timer.Stop()
		} else {
			timer.Reset(wait)
		}

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-timer.C:
		}
	}

	return zero, &ExhaustedError{Attempts: c.MaxAttempts, Err: err}
}
