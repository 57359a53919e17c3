package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores the city under a single key without expiry
type RedisBackend struct {
	client *redis.Client
	key    string
}

func NewRedisBackend(client *redis.Client, key string) *RedisBackend {
	return &RedisBackend{
		client: client,
		key:    key,
	}
}

func (b *RedisBackend) Load(ctx context.Context) (string, bool, error) {
	city, err := b.client.Get(ctx, b.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s from Redis: %w", b.key, err)
	}
	return city, true, nil
}

func (b *RedisBackend) Save(ctx context.Context, city string) error {
	if err := b.client.Set(ctx, b.key, city, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s to Redis: %w", b.key, err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
