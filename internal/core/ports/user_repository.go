package ports

import (
	"context"

	"github.com/credkit/webauth/internal/core/domain"
)

// UserRepository defines the interface for user persistence in the
// credential store.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
