package handler

import (
	"errors"
	"math/rand/v2"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/credkit/webauth/internal/api/middleware"
	"github.com/credkit/webauth/internal/core/domain"
	"github.com/credkit/webauth/internal/core/ports"
)

// HomeHandler serves the authenticated landing and stats pages.
type HomeHandler struct {
	users  ports.UserService
	stats  ports.StatsCache
	logger zerolog.Logger
}

func NewHomeHandler(users ports.UserService, stats ports.StatsCache, logger zerolog.Logger) *HomeHandler {
	return &HomeHandler{users: users, stats: stats, logger: logger}
}

type homeResponse struct {
	UserName    string             `json:"user_name"`
	RandomValue int                `json:"random_value"`
	User        *domain.Projection `json:"user,omitempty"`
}

// Home shows the logged-in user's name and a random value, resolving the
// profile through the read-through cache. A cache or store hiccup degrades
// to the session-held name rather than failing the page.
func (h *HomeHandler) Home(c echo.Context) error {
	sess := middleware.SessionData(c)

	resp := homeResponse{
		UserName:    sess.UserName,
		RandomValue: rand.IntN(101),
	}

	user, err := h.users.GetUser(c.Request().Context(), sess.UserID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		h.logger.Warn().Err(err).Int64("user_id", sess.UserID).Msg("user lookup failed, serving session data only")
	}
	if user != nil {
		resp.User = user
	}

	return c.JSON(http.StatusOK, resp)
}

type statsResponse struct {
	TotalRegistrations int64 `json:"total_registrations"`
	TotalLogins        int64 `json:"total_logins"`
	Active             bool  `json:"active"`
}

// Stats reports the global counters and whether the caller's presence
// marker is still alive. Counter reads degrade to zero when the cache is
// unreachable.
func (h *HomeHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.SessionData(c)

	resp := statsResponse{}

	registrations, logins, err := h.stats.Totals(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("counter read failed, reporting zeros")
	} else {
		resp.TotalRegistrations = registrations
		resp.TotalLogins = logins
	}

	active, err := h.stats.IsActive(ctx, sess.UserID)
	if err != nil {
		h.logger.Warn().Err(err).Int64("user_id", sess.UserID).Msg("presence check failed")
	}
	resp.Active = active

	return c.JSON(http.StatusOK, resp)
}
