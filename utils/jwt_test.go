package utils

import (
	"testing"
	"time"

	"salonhub/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withJWTSecret(t *testing.T, secret string) {
	t.Helper()
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = secret
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })
}

func TestTokenRoundTrip(t *testing.T) {
	withJWTSecret(t, "round-trip-secret")

	token, err := GenerateToken("cust1", "ada@example.com", "customer", time.Hour)
	require.NoError(t, err)

	parsed, err := ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	sub, role, err := TokenClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "cust1", sub)
	assert.Equal(t, "customer", role)
}

func TestTokenRejectedAfterSecretRotation(t *testing.T) {
	withJWTSecret(t, "old-secret")
	token, err := GenerateToken("cust1", "ada@example.com", "customer", time.Hour)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "new-secret"
	_, _, err = TokenClaims(token)
	assert.Error(t, err, "tokens signed with the old secret stop verifying")
}

func TestTokenClaimsRejectsExpired(t *testing.T) {
	withJWTSecret(t, "expiry-secret")
	token, err := GenerateToken("cust1", "ada@example.com", "customer", -time.Minute)
	require.NoError(t, err)

	_, _, err = TokenClaims(token)
	assert.Error(t, err)
}

func TestHashTokenIsHexSHA256(t *testing.T) {
	h := HashToken("abc")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashToken("abc"))
	assert.NotEqual(t, h, HashToken("abd"))
}
