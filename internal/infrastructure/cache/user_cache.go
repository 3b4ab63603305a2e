// Package cache implements the Redis-backed projection cache and the
// counter/presence keys. Everything here is advisory: callers treat any
// failure as a cold cache and fall back to the credential store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/credkit/webauth/internal/core/domain"
)

const userTTL = 5 * time.Minute

// UserCache holds short-lived user snapshots for the read-through path.
// Key format: user:<id>
type UserCache struct {
	client *redis.Client
}

func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

func (c *UserCache) key(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

// Get returns the cached projection, or (nil, nil) on a miss.
func (c *UserCache) Get(ctx context.Context, id int64) (*domain.Projection, error) {
	payload, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user cache get: %w", err)
	}

	var p domain.Projection
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("user cache decode: %w", err)
	}
	return &p, nil
}

// Put stores the projection with the fixed short expiration.
func (c *UserCache) Put(ctx context.Context, p *domain.Projection) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("user cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(p.ID), payload, userTTL).Err(); err != nil {
		return fmt.Errorf("user cache set: %w", err)
	}
	return nil
}
