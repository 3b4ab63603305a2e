package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/credkit/webauth/internal/core/ports"
)

// RequireLogin gates handlers behind an authenticated session, redirecting
// anonymous requests to the login entry point. Each authenticated pass
// refreshes the caller's presence marker.
func RequireLogin(stats ports.StatsCache, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data := SessionData(c)
			if data == nil || !data.LoggedIn() {
				return c.Redirect(http.StatusFound, "/login")
			}

			if err := stats.TouchLastAccess(c.Request().Context(), data.UserID); err != nil {
				log.Warn().Err(err).Int64("user_id", data.UserID).Msg("presence marker refresh failed")
			}

			return next(c)
		}
	}
}
