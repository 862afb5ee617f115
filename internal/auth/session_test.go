package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "test-signing-key"

func signToken(t *testing.T, key string, claims SessionClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestValidateSession(t *testing.T) {
	service := NewSessionService(testSigningKey)

	token := signToken(t, testSigningKey, SessionClaims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	username, err := service.ValidateSession(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestValidateSessionWrongKey(t *testing.T) {
	service := NewSessionService(testSigningKey)

	token := signToken(t, "some-other-key", SessionClaims{Username: "alice"})

	_, err := service.ValidateSession(token)
	assert.Error(t, err)
}

func TestValidateSessionExpired(t *testing.T) {
	service := NewSessionService(testSigningKey)

	token := signToken(t, testSigningKey, SessionClaims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := service.ValidateSession(token)
	assert.Error(t, err)
}

func TestValidateSessionMissingUsername(t *testing.T) {
	service := NewSessionService(testSigningKey)

	token := signToken(t, testSigningKey, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := service.ValidateSession(token)
	assert.Error(t, err)
}

func TestValidateSessionGarbage(t *testing.T) {
	service := NewSessionService(testSigningKey)

	_, err := service.ValidateSession("not-a-jwt")
	assert.Error(t, err)
}
