package ports

import (
	"context"

	"github.com/credkit/webauth/internal/core/domain"
)

// UserService resolves user snapshots, cache-first.
type UserService interface {
	GetUser(ctx context.Context, id int64) (*domain.Projection, error)
}
