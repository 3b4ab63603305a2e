package middleware

import (
	"encoding/json"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/credkit/webauth/internal/api/metrics"
	"github.com/credkit/webauth/internal/session"
)

const sessionContextKey = "webauth.session"

type sessionState struct {
	data      *session.Data
	destroyed bool
}

// SessionData returns the request's working session blob. It is non-nil for
// any handler running inside the Session middleware.
func SessionData(c echo.Context) *session.Data {
	state, _ := c.Get(sessionContextKey).(*sessionState)
	if state == nil {
		return nil
	}
	return state.data
}

// DestroySession marks the session for removal: the mediator deletes the
// cache entry instead of writing the blob back, so a reused cookie cannot
// resurrect state.
func DestroySession(c echo.Context) {
	if state, _ := c.Get(sessionContextKey).(*sessionState); state != nil {
		state.data.Clear()
		state.destroyed = true
	}
}

// Session is the mediator around every request: it resolves the session
// identity from the cookie (minting a fresh token when absent), loads the
// blob from the store, exposes it to the handler, and writes it back with a
// sliding lifetime after the handler runs.
//
// The load path never fails the request. A missing entry is the normal first
// visit; a corrupt entry is logged and discarded; an unreachable store
// degrades to an anonymous session. The save path logs a warning on failure
// and still lets the response reach the client.
func Session(store session.Store, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			identity, ok := session.IdentityFromRequest(c)
			if !ok {
				token, err := session.NewToken()
				if err != nil {
					return err
				}
				identity = token
			}

			data := &session.Data{}
			payload, err := store.Get(ctx, identity)
			switch {
			case err != nil:
				metrics.SessionLoadFailures.WithLabelValues("unavailable").Inc()
				log.Warn().Err(err).Msg("session load failed, starting anonymous")
			case payload != nil:
				var stored session.Data
				if err := json.Unmarshal(payload, &stored); err != nil {
					metrics.SessionLoadFailures.WithLabelValues("corrupt").Inc()
					log.Warn().Err(err).Str("session_id", identity).Msg("corrupt session payload discarded")
				} else {
					data.Merge(&stored)
				}
			}

			state := &sessionState{data: data}
			c.Set(sessionContextKey, state)

			// The cookie must be in the headers before the handler commits
			// the response body.
			session.WriteCookie(c, identity)

			handlerErr := next(c)

			if state.destroyed {
				if err := store.Delete(ctx, identity); err != nil {
					log.Warn().Err(err).Str("session_id", identity).Msg("session delete failed")
				}
				return handlerErr
			}

			// Written back unconditionally, even when empty: an empty
			// session still refreshes the sliding expiration.
			blob, err := json.Marshal(state.data)
			if err == nil {
				err = store.Set(ctx, identity, blob)
			}
			if err != nil {
				metrics.SessionSaveFailures.Inc()
				log.Warn().Err(err).Str("session_id", identity).Msg("session save failed")
			}

			return handlerErr
		}
	}
}
