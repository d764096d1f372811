package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/retry"
)

var (
	ErrNotFound         = domain.ErrNotFound
	ErrConflict         = domain.ErrConflict
	ErrInvalidReference = domain.ErrInvalidReference
)

type SQLDB struct {
	*sqlx.DB
}

func NewSQLDB(ctx context.Context, dsn string) (SQLDB, error) {
	const op = "SQLDB"
	log := slog.With("op", op)

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return SQLDB{}, fmt.Errorf("%s: invalid dsn: %w", op, err)
	}
	connStr := stdlib.RegisterConnConfig(connConfig)
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return SQLDB{}, fmt.Errorf("%s: %w", op, err)
	}

	s := SQLDB{sqlx.NewDb(db, "pgx")}
	if err := s.PingContext(ctx); err != nil {
		_ = db.Close()
		return SQLDB{}, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}
	log.Info("database is available")
	return s, nil
}

func (s SQLDB) Ping(ctx context.Context) error {
	const op = "SQLDB.Ping"
	if err := s.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s SQLDB) Close() {
	const op = "SQLDB.Close"
	log := slog.With("op", op)

	log.Info("closing sql database...")

	if err := s.DB.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sql database is closed")
}

// RetryObserver receives retry wrapper activity per repository op.
type RetryObserver interface {
	ObserveRetry(op string)
	ObserveResult(op string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveRetry(string)         {}
func (nopObserver) ObserveResult(string, error) {}

// Storage is shared by all repositories: a database handle and the retry
// policy every query runs under.
type Storage struct {
	db       *sqlx.DB
	policy   retry.RetryConfig
	observer RetryObserver
}

type Opt func(*Storage)

func WithRetryObserver(o RetryObserver) Opt {
	return func(s *Storage) {
		if o != nil {
			s.observer = o
		}
	}
}

func New(db SQLDB, policy retry.RetryConfig, opts ...Opt) Storage {
	s := Storage{
		db:       db.DB,
		policy:   policy,
		observer: nopObserver{},
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

func (s Storage) retryConfig(op string) retry.RetryConfig {
	c := s.policy
	c.OnRetry = func(int, error, time.Duration) {
		s.observer.ObserveRetry(op)
	}
	return c
}

// call runs fn under the retry policy and maps the final error.
func call[T any](
	ctx context.Context, s Storage, op string, fn func() (T, error),
) (T, error) {
	v, err := retry.DoWithResult(ctx, s.retryConfig(op), fn)
	s.observer.ObserveResult(op, err)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return v, nil
}

type found[T any] struct {
	v  T
	ok bool
}

// getOne selects a single row. Zero rows is a successful attempt that
// yields ErrNotFound, so it is never retried.
func getOne[T any](
	ctx context.Context, s Storage, op, query string, args ...any,
) (T, error) {
	res, err := call(ctx, s, op, func() (found[T], error) {
		var v T
		err := s.db.GetContext(ctx, &v, query, args...)
		if errors.Is(err, sql.ErrNoRows) {
			return found[T]{}, nil
		}
		if err != nil {
			return found[T]{}, err
		}
		return found[T]{v, true}, nil
	})
	if err != nil {
		return res.v, err
	}
	if !res.ok {
		return res.v, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return res.v, nil
}

func selectAll[T any](
	ctx context.Context, s Storage, op, query string, args ...any,
) ([]T, error) {
	return call(ctx, s, op, func() ([]T, error) {
		vs := []T{}
		if err := s.db.SelectContext(ctx, &vs, query, args...); err != nil {
			return nil, err
		}
		return vs, nil
	})
}

func mapErr(err error) error {
	switch retry.Code(err) {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrInvalidReference, err)
	}
	return err
}
