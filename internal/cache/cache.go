// cache реализует cache-aside чтение поверх key-value хранилища (Redis или память процесса).
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store - минимальный контракт key-value кэша.
type Store interface {
	// Get возвращает значение и признак его наличия в кэше.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set сохраняет значение с TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Close освобождает ресурсы.
	Close() error
}

type redisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой - используется "govjobs:".
func NewRedis(ctx context.Context, redisURL, prefix string) (Store, error) {
	if prefix == "" {
		prefix = "govjobs:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте; в работе недоступность Redis не блокирует чтения.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &redisStore{rdb: rdb, prefix: prefix}, nil
}

func (c *redisStore) key(k string) string { return c.prefix + k }

func (c *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	return b, true, nil
}

func (c *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, c.key(key), value, ttl).Err()
}

func (c *redisStore) Close() error {
	return c.rdb.Close()
}
