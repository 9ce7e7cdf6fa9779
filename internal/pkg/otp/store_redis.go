package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/backlink/internal/pkg/clock"
)

const (
	defaultRedisPrefix = "backlink:"
	defaultRedisGrace  = 5 * time.Minute
	redisMaxRetries    = 9
)

// RedisStore keeps one JSON value per subject with a TTL slightly longer than
// the entry's expiry, so expired codes are still reported as expired for a
// while before Redis evicts them.
type RedisStore[P any] struct {
	client redis.UniversalClient
	prefix string
	grace  time.Duration
	clock  clock.Clocker
}

// RedisOption configures a RedisStore.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix string
	grace  time.Duration
	clock  clock.Clocker
}

// WithRedisPrefix sets the key prefix; keys are "<prefix>otp:<subject>".
func WithRedisPrefix(prefix string) RedisOption {
	return func(o *redisOptions) { o.prefix = prefix }
}

// WithRedisGrace sets how long an expired entry stays in Redis.
func WithRedisGrace(d time.Duration) RedisOption {
	return func(o *redisOptions) { o.grace = d }
}

// WithRedisClock sets the clock used to compute key TTLs.
func WithRedisClock(c clock.Clocker) RedisOption {
	return func(o *redisOptions) { o.clock = c }
}

// NewRedisStore returns a Store backed by client.
func NewRedisStore[P any](client redis.UniversalClient, opts ...RedisOption) *RedisStore[P] {
	o := redisOptions{prefix: defaultRedisPrefix, grace: defaultRedisGrace, clock: clock.New()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.grace <= 0 {
		o.grace = defaultRedisGrace
	}

	return &RedisStore[P]{client: client, prefix: o.prefix, grace: o.grace, clock: o.clock}
}

func (s *RedisStore[P]) key(subject string) string {
	return s.prefix + "otp:" + subject
}

func (s *RedisStore[P]) Get(ctx context.Context, subject string) (*Entry[P], error) {
	return s.read(ctx, s.client, s.key(subject))
}

func (s *RedisStore[P]) read(ctx context.Context, c redis.Cmdable, key string) (*Entry[P], error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("otp: redis get: %w", err)
	}

	var e Entry[P]
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("otp: decode entry: %w", err)
	}
	return &e, nil
}

// Update runs fn inside WATCH/MULTI/EXEC and retries when another client
// changed the key in between.
func (s *RedisStore[P]) Update(ctx context.Context, subject string, fn UpdateFunc[P]) error {
	key := s.key(subject)
	backoff := retry.NewExponential(5 * time.Millisecond)
	backoff = retry.WithCappedDuration(200*time.Millisecond, backoff)
	backoff = retry.WithMaxRetries(redisMaxRetries, backoff)

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			return s.apply(ctx, tx, key, fn)
		}, key)
		if errors.Is(err, redis.TxFailedErr) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (s *RedisStore[P]) apply(ctx context.Context, tx *redis.Tx, key string, fn UpdateFunc[P]) error {
	cur, err := s.read(ctx, tx, key)
	if err != nil && !errors.Is(err, ErrEntryNotFound) {
		return err
	}

	next, err := fn(cur)
	if err != nil {
		return err
	}

	if next == nil {
		if cur == nil {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return pipe.Del(ctx, key).Err()
		})
		return err
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("otp: encode entry: %w", err)
	}

	ttl := max(next.ExpiresAt.Sub(s.clock.Now())+s.grace, time.Second)
	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		return pipe.Set(ctx, key, raw, ttl).Err()
	})
	return err
}

func (s *RedisStore[P]) Delete(ctx context.Context, subject string) error {
	if err := s.client.Del(ctx, s.key(subject)).Err(); err != nil {
		return fmt.Errorf("otp: redis del: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts keys by TTL.
func (s *RedisStore[P]) DeleteExpired(context.Context, time.Time) (int, error) {
	return 0, nil
}
