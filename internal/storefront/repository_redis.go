package storefront

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps snapshots as plain string values. A non-zero ttl
// expires idle sessions; orders are written without expiry.
type RedisRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisRepository(client *redis.Client, prefix string, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return v, err
}

func (r *RedisRepository) Put(ctx context.Context, key string, value []byte) error {
	ttl := r.ttl
	if isOrderKey(key) {
		ttl = 0
	}
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

func isOrderKey(key string) bool {
	return strings.HasPrefix(key, "order:")
}
