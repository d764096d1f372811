package otp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/redis/go-redis/v9"
)

var (
	_ port.OTPStore  = (*RedisStore)(nil)
	_ port.OTPSender = (*LogSender)(nil)
)

var ErrNoCode = fmt.Errorf("otp code %w", domain.ErrNotFound)

const keyPrefix = "otp:"

type redisClient interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisStore keeps one pending code per mobile number.
type RedisStore struct {
	rdb redisClient
}

func NewRedisStore(ctx context.Context, url string) (RedisStore, error) {
	const op = "otp.NewRedisStore"

	opts, err := redis.ParseURL(url)
	if err != nil {
		return RedisStore{}, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return RedisStore{}, fmt.Errorf("%s: redis is unavailable: %w", op, err)
	}
	slog.Info("redis is available", "op", op)
	return RedisStore{rdb}, nil
}

func (s RedisStore) key(mobile string) string {
	return keyPrefix + mobile
}

// Save replaces any pending code for mobile.
func (s RedisStore) Save(
	ctx context.Context, mobile, code string, ttl time.Duration,
) error {
	const op = "RedisStore.Save"
	if err := s.rdb.Set(ctx, s.key(mobile), code, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Consume returns the pending code and removes it, so a code verifies
// at most once.
func (s RedisStore) Consume(ctx context.Context, mobile string) (string, error) {
	const op = "RedisStore.Consume"
	code, err := s.rdb.GetDel(ctx, s.key(mobile)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%s: %w", op, ErrNoCode)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return code, nil
}

func (s RedisStore) Ping(ctx context.Context) error {
	const op = "RedisStore.Ping"
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s RedisStore) Close() {
	const op = "RedisStore.Close"
	log := slog.With("op", op)

	log.Info("closing redis client...")
	if err := s.rdb.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("redis client is closed")
}

// LogSender writes codes to the log instead of delivering an SMS.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, mobile, code string) error {
	const op = "LogSender.Send"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	slog.Info("otp issued", "op", op, "mobile", mobile, "code", code)
	return nil
}
