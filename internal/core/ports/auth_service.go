package ports

import (
	"context"

	"github.com/credkit/webauth/internal/core/domain"
)

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Logout(ctx context.Context, userID int64) error
}
