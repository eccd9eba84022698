package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWTToken("user-1", "t@school.example", "Ada", "teacher", "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := VerifyJWTToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "t@school.example", claims.Email)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, "teacher", claims.Role)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWTToken("user-1", "t@school.example", "Ada", "teacher", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = VerifyJWTToken(token, "other-secret")
	assert.Error(t, err)
}

func TestJWTExpiredToken(t *testing.T) {
	token, err := GenerateJWTToken("user-1", "t@school.example", "Ada", "teacher", "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyJWTToken(token, "test-secret")
	assert.Error(t, err)
}
