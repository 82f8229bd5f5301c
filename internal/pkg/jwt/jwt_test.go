package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAccessToken(t *testing.T) {
	svc, err := NewJWTService("test-secret", "1h")
	require.NoError(t, err)

	token, expiresAt, err := svc.GenerateAccessToken("claude-desktop")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "claude-desktop", claims["sub"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	issuer, err := NewJWTService("secret-a", "1h")
	require.NoError(t, err)
	verifier, err := NewJWTService("secret-b", "1h")
	require.NoError(t, err)

	token, _, err := issuer.GenerateAccessToken("client")
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(verifier.JWTAuth(), token)
	assert.Error(t, err)
}

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService("secret", "forever")
	assert.Error(t, err)
}
