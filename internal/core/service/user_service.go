package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/credkit/webauth/internal/core/domain"
	"github.com/credkit/webauth/internal/core/ports"
)

// UserService is the read-through path for user snapshots: cache first,
// credential store on miss, cache repopulated with the projection. Negative
// results are not cached; a nonexistent id re-queries the store every time.
type UserService struct {
	repo        ports.UserRepository
	projections ports.ProjectionCache
	logger      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, projections ports.ProjectionCache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, projections: projections, logger: logger}
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.Projection, error) {
	cached, err := s.projections.Get(ctx, id)
	if err != nil {
		// Cache trouble behaves like a cold cache.
		s.logger.Warn().Err(err).Int64("user_id", id).Msg("user projection read failed")
	}
	if cached != nil {
		return cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	p := user.Project()
	if err := s.projections.Put(ctx, p); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", id).Msg("user projection write failed")
	}
	return p, nil
}
