package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/credkit/webauth/internal/core/domain"
	"github.com/credkit/webauth/internal/core/ports"
)

// AuthService implements registration, login and logout against the
// credential store, with best-effort fan-out to the cache (counters,
// user projections, last-login markers). Fan-out failures are logged and
// never fail the request: the store row is the durable fact.
type AuthService struct {
	repo        ports.UserRepository
	projections ports.ProjectionCache
	stats       ports.StatsCache
	logger      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, projections ports.ProjectionCache, stats ports.StatsCache, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, projections: projections, stats: stats, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Password == "" || input.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	email := domain.NormalizeEmail(input.Email)
	if !domain.ValidEmailShape(email) {
		return nil, domain.ErrInvalidEmail
	}

	// Pre-check by email so the common duplicate case never reaches the
	// insert. The store's unique constraint still catches the race.
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.stats.IncrRegistrations(ctx); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", created.ID).Msg("registration counter increment failed")
	}
	if err := s.projections.Put(ctx, created.Project()); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", created.ID).Msg("user projection write failed")
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		// Unknown email and wrong password are indistinguishable.
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.stats.IncrLogins(ctx); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("login counter increment failed")
	}
	if err := s.stats.SetLastLogin(ctx, user.ID, user.Name); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("last-login marker write failed")
	}

	return user, nil
}

// Logout removes the presence marker for the user. Session teardown itself
// (deleting session:<id> and expiring the cookie) is owned by the session
// mediator.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if userID == 0 {
		return nil
	}
	if err := s.stats.ClearLastAccess(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("presence marker delete failed")
	}
	return nil
}
