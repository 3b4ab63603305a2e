package ports

import (
	"context"

	"github.com/credkit/webauth/internal/core/domain"
)

// ProjectionCache holds short-lived user snapshots keyed by user id.
// Get returns (nil, nil) on a miss; misses are never cached.
type ProjectionCache interface {
	Get(ctx context.Context, id int64) (*domain.Projection, error)
	Put(ctx context.Context, p *domain.Projection) error
}

// StatsCache covers the counter and presence-marker keys. Increments are
// atomic at the cache level; everything here is advisory and best-effort.
type StatsCache interface {
	IncrRegistrations(ctx context.Context) error
	IncrLogins(ctx context.Context) error
	Totals(ctx context.Context) (registrations, logins int64, err error)

	SetLastLogin(ctx context.Context, userID int64, name string) error
	TouchLastAccess(ctx context.Context, userID int64) error
	ClearLastAccess(ctx context.Context, userID int64) error
	IsActive(ctx context.Context, userID int64) (bool, error)
}
