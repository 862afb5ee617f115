package auth

import (
	"github.com/golang-jwt/jwt/v5"

	dErrors "miigate/pkg/domain-errors"
)

// SessionClaims are the JWT claims the session layer puts on its tokens.
// Only the username matters to the gateway.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionService validates session tokens issued by the external session layer.
type SessionService struct {
	signingKey []byte
}

func NewSessionService(signingKey string) *SessionService {
	return &SessionService{signingKey: []byte(signingKey)}
}

// ValidateSession parses and verifies a session token, returning the username.
func (s *SessionService) ValidateSession(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || claims.Username == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid session claims")
	}

	return claims.Username, nil
}
