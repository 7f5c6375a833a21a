package otp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore lets codes survive restarts and be shared across instances.
// Keys expire together with the code.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix + "otp:", now: time.Now}
}

func (r *RedisStore) Save(ctx context.Context, phone string, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	ttl := entry.ExpiresAt.Sub(r.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	return r.client.Set(ctx, r.prefix+phone, data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, phone string) (Entry, error) {
	data, err := r.client.Get(ctx, r.prefix+phone).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, ErrCodeNotFound
	}
	if err != nil {
		return Entry{}, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (r *RedisStore) Delete(ctx context.Context, phone string) error {
	return r.client.Del(ctx, r.prefix+phone).Err()
}
