package secret

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps secret versions in Redis lists, oldest first.
type RedisBackend struct {
	client *redis.Client
}

// NewRedis creates a RedisBackend with its own client.
func NewRedis(ctx context.Context, redisURL string) (*RedisBackend, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Connection pool settings
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &RedisBackend{client: client}, nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

// AccessLatest returns the most recently added version.
func (b *RedisBackend) AccessLatest(ctx context.Context, project, name string) (string, error) {
	key := redisKey(project, name)
	value, err := b.client.LIndex(ctx, key, -1).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("redis lindex %s: %w", key, err)
	}
	return value, nil
}

// AddVersion appends a new version of the secret.
func (b *RedisBackend) AddVersion(ctx context.Context, project, name, value string) error {
	if err := b.client.RPush(ctx, redisKey(project, name), value).Err(); err != nil {
		return fmt.Errorf("redis rpush: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity.
func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}

// Client returns the underlying Redis client.
// Use sparingly - prefer adding methods to RedisBackend.
func (b *RedisBackend) Client() *redis.Client {
	return b.client
}

func redisKey(project, name string) string {
	return "secrets:" + project + ":" + name
}
