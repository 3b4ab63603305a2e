package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyTotalRegistrations = "total_registrations"
	keyTotalLogins        = "total_logins"

	lastAccessTTL = 5 * time.Minute
	lastLoginTTL  = 24 * time.Hour
)

// Stats keeps the monotonic counters and the per-user presence markers.
// Counters are incremented atomically in a single round-trip and never
// expire; markers auto-expire.
type Stats struct {
	client *redis.Client
}

func NewStats(client *redis.Client) *Stats {
	return &Stats{client: client}
}

func (s *Stats) IncrRegistrations(ctx context.Context) error {
	return s.client.Incr(ctx, keyTotalRegistrations).Err()
}

func (s *Stats) IncrLogins(ctx context.Context) error {
	return s.client.Incr(ctx, keyTotalLogins).Err()
}

// Totals reads both counters; an absent key counts as zero.
func (s *Stats) Totals(ctx context.Context) (int64, int64, error) {
	registrations, err := s.counter(ctx, keyTotalRegistrations)
	if err != nil {
		return 0, 0, err
	}
	logins, err := s.counter(ctx, keyTotalLogins)
	if err != nil {
		return 0, 0, err
	}
	return registrations, logins, nil
}

func (s *Stats) counter(ctx context.Context, key string) (int64, error) {
	n, err := s.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("counter %s: %w", key, err)
	}
	return n, nil
}

// SetLastLogin records the user's display name under last_login:<id> for a
// day.
func (s *Stats) SetLastLogin(ctx context.Context, userID int64, name string) error {
	return s.client.Set(ctx, fmt.Sprintf("last_login:%d", userID), name, lastLoginTTL).Err()
}

// TouchLastAccess refreshes the presence sentinel under last_access:<id>.
// The value carries no payload beyond existence.
func (s *Stats) TouchLastAccess(ctx context.Context, userID int64) error {
	return s.client.Set(ctx, fmt.Sprintf("last_access:%d", userID), "1", lastAccessTTL).Err()
}

func (s *Stats) ClearLastAccess(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, fmt.Sprintf("last_access:%d", userID)).Err()
}

// IsActive reports whether the presence sentinel is still alive.
func (s *Stats) IsActive(ctx context.Context, userID int64) (bool, error) {
	n, err := s.client.Exists(ctx, fmt.Sprintf("last_access:%d", userID)).Result()
	if err != nil {
		return false, fmt.Errorf("presence check: %w", err)
	}
	return n > 0, nil
}
