package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CookieName is the one cookie this system issues.
const CookieName = "session_id"

// IdentityFromRequest reads the session identity from the inbound cookie.
// An absent or empty cookie yields ("", false).
func IdentityFromRequest(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// WriteCookie attaches the session cookie to the outbound response with a
// max-age matching the cached blob's lifetime. HttpOnly keeps it away from
// client script.
func WriteCookie(c echo.Context, identity string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    identity,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
	})
}

// ExpireCookie instructs the client to drop the session cookie.
func ExpireCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
