package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminToken_RoundTrip(t *testing.T) {
	secret := []byte("s3cret")
	tok, err := GenerateAdminToken(secret, "ops@firm", time.Minute)
	require.NoError(t, err)

	sub, err := ValidateAdminToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "ops@firm", sub)
}

func TestAdminToken_Rejections(t *testing.T) {
	secret := []byte("s3cret")

	expired, err := GenerateAdminToken(secret, "ops", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateAdminToken(secret, expired)
	assert.Error(t, err, "expired token")

	good, err := GenerateAdminToken(secret, "ops", time.Minute)
	require.NoError(t, err)
	_, err = ValidateAdminToken([]byte("other"), good)
	assert.Error(t, err, "wrong secret")

	noScope, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ops",
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = ValidateAdminToken(secret, noScope)
	assert.Error(t, err, "missing scope")

	_, err = GenerateAdminToken(nil, "ops", time.Minute)
	assert.Error(t, err, "unconfigured secret")
}
