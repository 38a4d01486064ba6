package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minn-platform/backend/internal/application/adapter"
)

const loginFailureKeyPrefix = "login:failures:"

// redisLoginGuard counts failed logins in Redis so the counter is shared
// across instances. The key expires after the lockout window: INCR creates
// it, and the expiry is set only on the first failure.
type redisLoginGuard struct {
	client *redis.Client
	window time.Duration
}

// NewRedisLoginGuard creates a login guard backed by Redis.
func NewRedisLoginGuard(client *redis.Client, window time.Duration) adapter.LoginGuard {
	return &redisLoginGuard{
		client: client,
		window: window,
	}
}

// RecordFailure increments the failure count for the key and returns the new count.
func (g *redisLoginGuard) RecordFailure(ctx context.Context, key string) (int, error) {
	redisKey := loginFailureKeyPrefix + key

	count, err := g.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment failure counter: %w", err)
	}

	// First failure opens the window; later failures do not extend it
	if count == 1 {
		if err := g.client.Expire(ctx, redisKey, g.window).Err(); err != nil {
			return int(count), fmt.Errorf("failed to set counter expiry: %w", err)
		}
	}

	return int(count), nil
}

// Reset clears the failure count for the key.
func (g *redisLoginGuard) Reset(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, loginFailureKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset failure counter: %w", err)
	}
	return nil
}

// Failures returns the current failure count for the key.
func (g *redisLoginGuard) Failures(ctx context.Context, key string) (int, error) {
	count, err := g.client.Get(ctx, loginFailureKeyPrefix+key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read failure counter: %w", err)
	}
	return count, nil
}
