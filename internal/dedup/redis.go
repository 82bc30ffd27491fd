package dedup

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const keyPrefix = "withdraw:seen:"

// Redis is the external backend: one key per signature with a fixed
// TTL, so the dedup window survives process restarts.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps an existing client. The caller owns the client's
// lifecycle.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 900 * time.Second
	}
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Seen(ctx context.Context, signature string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+signature).Result()
	if err != nil {
		return false, fmt.Errorf("redis EXISTS %s: %w", signature, err)
	}
	return n > 0, nil
}

// Mark sets the key only if absent, so two near-simultaneous
// deliveries of the same signature cannot both win the write.
func (r *Redis) Mark(ctx context.Context, signature string) error {
	if err := r.client.SetNX(ctx, keyPrefix+signature, "1", r.ttl).Err(); err != nil {
		return fmt.Errorf("redis SETNX %s: %w", signature, err)
	}
	return nil
}
