package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/credkit/webauth/internal/session"
)

type memStore struct {
	entries map[string][]byte
	getErr  error
	setErr  error
	delErr  error
	sets    int
	deletes int
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string][]byte)}
}

func (s *memStore) Get(_ context.Context, id string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.entries[id], nil
}

func (s *memStore) Set(_ context.Context, id string, payload []byte) error {
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.entries[id] = payload
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.deletes++
	if s.delErr != nil {
		return s.delErr
	}
	delete(s.entries, id)
	return nil
}

func runMediated(t *testing.T, store session.Store, cookie string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(store, zerolog.Nop())
	if err := mw(handler)(c); err != nil {
		t.Fatalf("mediated handler returned error: %v", err)
	}
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			return ck
		}
	}
	t.Fatalf("no %s cookie on response", session.CookieName)
	return nil
}

func TestSession_MintsIdentityOnFirstVisit(t *testing.T) {
	store := newMemStore()

	rec := runMediated(t, store, "", func(c echo.Context) error {
		data := SessionData(c)
		if data == nil || data.LoggedIn() {
			t.Fatalf("expected empty anonymous session, got %+v", data)
		}
		return c.NoContent(http.StatusOK)
	})

	ck := sessionCookie(t, rec)
	if ck.Value == "" {
		t.Fatalf("cookie has no identity")
	}
	if ck.MaxAge != 3600 {
		t.Fatalf("expected max-age 3600, got %d", ck.MaxAge)
	}
	if !ck.HttpOnly {
		t.Fatalf("cookie must be http-only")
	}
	// Empty sessions are still written back: they refresh the expiration.
	if store.entries[ck.Value] == nil {
		t.Fatalf("expected blob saved under minted identity")
	}
}

func TestSession_RoundTripsIdentity(t *testing.T) {
	store := newMemStore()
	store.entries["tok-1"] = []byte(`{"user_id":7,"user_name":"Ana"}`)

	rec := runMediated(t, store, "tok-1", func(c echo.Context) error {
		data := SessionData(c)
		if data.UserID != 7 || data.UserName != "Ana" {
			t.Fatalf("stored blob not loaded: %+v", data)
		}
		data.Set("visited", "home")
		return c.NoContent(http.StatusOK)
	})

	if ck := sessionCookie(t, rec); ck.Value != "tok-1" {
		t.Fatalf("identity must be re-issued, got %s", ck.Value)
	}

	var saved session.Data
	if err := json.Unmarshal(store.entries["tok-1"], &saved); err != nil {
		t.Fatalf("saved blob unreadable: %v", err)
	}
	if saved.UserID != 7 || saved.UserName != "Ana" {
		t.Fatalf("identity lost on write-back: %+v", saved)
	}
	if v, _ := saved.Get("visited"); v != "home" {
		t.Fatalf("handler mutation lost on write-back: %+v", saved)
	}
}

func TestSession_CorruptPayloadYieldsEmptyBlob(t *testing.T) {
	store := newMemStore()
	store.entries["tok-1"] = []byte(`{"user_id": not-json`)

	invoked := false
	runMediated(t, store, "tok-1", func(c echo.Context) error {
		invoked = true
		if data := SessionData(c); data.LoggedIn() {
			t.Fatalf("corrupt blob must not leak identity: %+v", data)
		}
		return c.NoContent(http.StatusOK)
	})

	if !invoked {
		t.Fatalf("request must proceed despite corrupt payload")
	}

	var saved session.Data
	if err := json.Unmarshal(store.entries["tok-1"], &saved); err != nil {
		t.Fatalf("corrupt entry must be replaced by a valid blob: %v", err)
	}
}

func TestSession_LoadFailureDegradesToAnonymous(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("cache down")

	invoked := false
	runMediated(t, store, "tok-1", func(c echo.Context) error {
		invoked = true
		if data := SessionData(c); data == nil || data.LoggedIn() {
			t.Fatalf("expected anonymous session, got %+v", data)
		}
		return c.NoContent(http.StatusOK)
	})
	if !invoked {
		t.Fatalf("request must proceed when the store is unreachable")
	}
}

func TestSession_SaveFailureDoesNotFailRequest(t *testing.T) {
	store := newMemStore()
	store.setErr = errors.New("cache down")

	rec := runMediated(t, store, "", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("response must reach the client, got %d", rec.Code)
	}
}

func TestSession_DestroyDeletesEntryInsteadOfSaving(t *testing.T) {
	store := newMemStore()
	store.entries["tok-1"] = []byte(`{"user_id":7,"user_name":"Ana"}`)

	runMediated(t, store, "tok-1", func(c echo.Context) error {
		DestroySession(c)
		return c.NoContent(http.StatusOK)
	})

	if store.entries["tok-1"] != nil {
		t.Fatalf("destroyed session must be removed, found %s", store.entries["tok-1"])
	}
	if store.sets != 0 {
		t.Fatalf("destroyed session must not be written back, sets: %d", store.sets)
	}
	if store.deletes != 1 {
		t.Fatalf("expected one delete, got %d", store.deletes)
	}
}

func TestSession_HandlerErrorStillSavesSession(t *testing.T) {
	store := newMemStore()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(store, zerolog.Nop())
	err := mw(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad input")
	})(c)

	if err == nil {
		t.Fatalf("handler error must propagate")
	}
	if store.sets != 1 {
		t.Fatalf("session must be saved after a recoverable failure, sets: %d", store.sets)
	}
}
