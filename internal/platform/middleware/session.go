package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"miigate/pkg/platform/httputil"

	dErrors "miigate/pkg/domain-errors"
)

// SessionValidator validates a session token and returns the username bound
// to it. Session issuance lives outside this service; the gateway only checks
// that an identity is present.
type SessionValidator interface {
	ValidateSession(tokenString string) (username string, err error)
}

type contextKeyUsername struct{}

// GetUsername retrieves the authenticated username from the context.
func GetUsername(ctx context.Context) string {
	username, ok := ctx.Value(contextKeyUsername{}).(string)
	if !ok {
		return ""
	}
	return username
}

// WithUsername binds a username to the context. Exported for handler tests.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, contextKeyUsername{}, username)
}

// RequireSession rejects requests without a valid session identity.
// The token is taken from the Authorization bearer header or, failing that,
// the session cookie.
func RequireSession(validator SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if cookie, err := r.Cookie("session"); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Unauthorized"))
				return
			}

			username, err := validator.ValidateSession(token)
			if err != nil || username == "" {
				logger.WarnContext(r.Context(), "unauthorized access - invalid session",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Unauthorized"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), username)))
		})
	}
}

func bearerToken(r *http.Request) string {
	const bearerPrefix = "Bearer "
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, bearerPrefix) {
		return strings.TrimPrefix(authHeader, bearerPrefix)
	}
	return ""
}
