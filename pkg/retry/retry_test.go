package retry_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codeErr struct {
	code string
}

func (e codeErr) Error() string    { return "db error " + e.code }
func (e codeErr) SQLState() string { return e.code }

var errTransient = errors.New("connection reset")

func fastConfig(maxAttempts int) retry.RetryConfig {
	return retry.RetryConfig{
		MaxAttempts: maxAttempts,
		BaseDelay:   5 * time.Millisecond,
	}
}

func TestDoWithResult(t *testing.T) {
	t.Run("SuccessFirstAttempt", func(t *testing.T) {
		var calls int
		res, err := retry.DoWithResult(t.Context(), retry.RetryConfig{},
			func() (string, error) {
				calls++
				return "ok", nil
			})
		require.NoError(t, err)
		assert.Equal(t, "ok", res)
		assert.Equal(t, 1, calls)
	})

	t.Run("TransientThenSuccess", func(t *testing.T) {
		var (
			calls int
			waits []time.Duration
		)
		cfg := retry.RetryConfig{
			BaseDelay: 20 * time.Millisecond,
			OnRetry: func(_ int, _ error, wait time.Duration) {
				waits = append(waits, wait)
			},
		}

		start := time.Now()
		res, err := retry.DoWithResult(t.Context(), cfg, func() (int, error) {
			calls++
			if calls < 3 {
				return 0, errTransient
			}
			return 42, nil
		})
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Equal(t, 42, res)
		assert.Equal(t, 3, calls)
		assert.Equal(t,
			[]time.Duration{20 * time.Millisecond, 40 * time.Millisecond}, waits)
		assert.GreaterOrEqual(t, elapsed, 60*time.Millisecond)
	})

	t.Run("NonRetryableShortCircuit", func(t *testing.T) {
		for _, code := range []string{
			pgerrcode.UniqueViolation,
			pgerrcode.UndefinedTable,
			pgerrcode.UndefinedColumn,
		} {
			t.Run(code, func(t *testing.T) {
				var calls int
				want := codeErr{code}
				start := time.Now()
				_, err := retry.DoWithResult(t.Context(), retry.RetryConfig{},
					func() (int, error) {
						calls++
						return 0, want
					})
				assert.Equal(t, 1, calls)
				assert.Equal(t, want, err)
				assert.NotErrorIs(t, err, retry.ErrRetriesExhausted)
				assert.Less(t, time.Since(start), 500*time.Millisecond)
			})
		}
	})

	t.Run("PgErrorIsClassified", func(t *testing.T) {
		var calls int
		pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		err := retry.Do(t.Context(), fastConfig(3), func() error {
			calls++
			return pgErr
		})
		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, err, pgErr)
	})

	t.Run("ForeignKeyViolationIsRetried", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(), fastConfig(3), func() error {
			calls++
			return codeErr{pgerrcode.ForeignKeyViolation}
		})
		assert.Equal(t, 3, calls)
		assert.ErrorIs(t, err, retry.ErrRetriesExhausted)
	})

	t.Run("Exhaustion", func(t *testing.T) {
		var calls int
		last := errors.New("third failure")
		_, err := retry.DoWithResult(t.Context(), fastConfig(3),
			func() (int, error) {
				calls++
				if calls == 3 {
					return 0, last
				}
				return 0, errTransient
			})
		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.ErrorIs(t, err, retry.ErrRetriesExhausted)
		assert.ErrorIs(t, err, last)
		assert.NotErrorIs(t, err, errTransient)

		var exhausted *retry.ExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, 3, exhausted.Attempts)
		assert.Equal(t, last, exhausted.Err)
	})

	t.Run("SingleAttempt", func(t *testing.T) {
		var (
			calls   int
			retried bool
		)
		cfg := retry.RetryConfig{
			MaxAttempts: 1,
			OnRetry:     func(int, error, time.Duration) { retried = true },
		}
		start := time.Now()
		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			return errTransient
		})
		assert.Equal(t, 1, calls)
		assert.False(t, retried)
		assert.ErrorIs(t, err, errTransient)
		assert.ErrorIs(t, err, retry.ErrRetriesExhausted)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("ConcurrentInvocations", func(t *testing.T) {
		var (
			wg          sync.WaitGroup
			callsA      atomic.Int32
			callsB      atomic.Int32
			errA, errB  error
			errFailureA = errors.New("a failed")
		)

		wg.Add(2)
		go func() {
			defer wg.Done()
			errA = retry.Do(t.Context(), fastConfig(2), func() error {
				callsA.Add(1)
				return errFailureA
			})
		}()
		go func() {
			defer wg.Done()
			errB = retry.Do(t.Context(), fastConfig(4), func() error {
				if callsB.Add(1) < 4 {
					return errTransient
				}
				return nil
			})
		}()
		wg.Wait()

		assert.EqualValues(t, 2, callsA.Load())
		assert.EqualValues(t, 4, callsB.Load())
		assert.ErrorIs(t, errA, errFailureA)
		assert.ErrorIs(t, errA, retry.ErrRetriesExhausted)
		assert.NoError(t, errB)
	})

	t.Run("CancelledWhileWaiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		var calls int
		err := retry.Do(ctx, retry.RetryConfig{BaseDelay: time.Hour}, func() error {
			calls++
			cancel()
			return errTransient
		})
		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, errTransient)
	})

	t.Run("CancelledBeforeStart", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		var calls int
		err := retry.Do(ctx, retry.RetryConfig{}, func() error {
			calls++
			return nil
		})
		assert.Zero(t, calls)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestExponentialBackoff(t *testing.T) {
	b := retry.ExponentialBackoff(retry.DefaultBaseDelay)
	assert.Equal(t, time.Second, b(1))
	assert.Equal(t, 2*time.Second, b(2))
	assert.Equal(t, 4*time.Second, b(3))
}

func TestNonRetryable(t *testing.T) {
	assert.True(t, retry.NonRetryable(codeErr{"42P01"}))
	assert.True(t, retry.NonRetryable(codeErr{"42703"}))
	assert.True(t, retry.NonRetryable(codeErr{"23505"}))
	assert.False(t, retry.NonRetryable(codeErr{"23503"}))
	assert.False(t, retry.NonRetryable(errTransient))
	assert.False(t, retry.NonRetryable(nil))
}
