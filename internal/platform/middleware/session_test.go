package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticValidator struct {
	username string
	err      error
	lastSeen string
}

func (v *staticValidator) ValidateSession(token string) (string, error) {
	v.lastSeen = token
	return v.username, v.err
}

func requireSessionHandler(validator *staticValidator) http.Handler {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return RequireSession(validator, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetUsername(r.Context())))
	}))
}

func TestRequireSessionBearerHeader(t *testing.T) {
	validator := &staticValidator{username: "alice"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()

	requireSessionHandler(validator).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token-abc", validator.lastSeen)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestRequireSessionCookieFallback(t *testing.T) {
	validator := &staticValidator{username: "alice"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "cookie-token"})
	rec := httptest.NewRecorder()

	requireSessionHandler(validator).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cookie-token", validator.lastSeen)
}

func TestRequireSessionHeaderWinsOverCookie(t *testing.T) {
	validator := &staticValidator{username: "alice"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: "session", Value: "cookie-token"})
	rec := httptest.NewRecorder()

	requireSessionHandler(validator).ServeHTTP(rec, req)

	assert.Equal(t, "header-token", validator.lastSeen)
}

func TestRequireSessionMissingToken(t *testing.T) {
	validator := &staticValidator{username: "alice"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	requireSessionHandler(validator).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, validator.lastSeen, "no token means the validator is never consulted")
}

func TestRequireSessionInvalidToken(t *testing.T) {
	validator := &staticValidator{err: errors.New("expired")}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()

	requireSessionHandler(validator).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
