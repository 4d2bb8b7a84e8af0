package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("password")
	assert.NoError(t, err)
	assert.NotEqual(t, "password", hash)

	assert.True(t, CheckPassword(hash, "password"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42)
	assert.NoError(t, err)

	userID, err := VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestTokenTamperRejected(t *testing.T) {
	token, err := GenerateToken(42)
	assert.NoError(t, err)

	_, err = VerifyToken(token + "x")
	assert.Error(t, err)

	_, err = VerifyToken("not-a-token")
	assert.Error(t, err)
}
