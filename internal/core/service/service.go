package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrForbidden          = errors.New("forbidden")
	ErrNotRegistered      = errors.New("customer is not registered")
	ErrUserExists         = fmt.Errorf("user %w", domain.ErrConflict)
	ErrEmptyCart          = errors.New("cart is empty")
)

func invalidArg(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, a...))
}

// read runs a query method under the usual op wrapping.
func read[T any](
	ctx context.Context, op string, fn func(context.Context) (T, error),
) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	v, err := fn(ctx)
	if err != nil {
		return v, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func logPublishErr(op string, err error, args ...any) {
	if err == nil {
		return
	}
	slog.With("op", op).Error("failed to publish event", append(args, "err", err)...)
}
