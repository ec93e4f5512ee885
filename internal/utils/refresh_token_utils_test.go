package utils_test

import (
	"testing"

	"github.com/linkstash/linkstash_backend/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestHashRefreshTokenIsDeterministic(t *testing.T) {
	h1 := utils.HashRefreshToken("raw-token", "secret")
	h2 := utils.HashRefreshToken("raw-token", "secret")
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, "raw-token", h1)
}

func TestHashRefreshTokenIsBoundToSecret(t *testing.T) {
	h1 := utils.HashRefreshToken("raw-token", "secret-a")
	h2 := utils.HashRefreshToken("raw-token", "secret-b")
	assert.NotEqual(t, h1, h2)
}

func TestCompareRefreshTokenHash(t *testing.T) {
	stored := utils.HashRefreshToken("raw-token", "secret")

	assert.True(t, utils.CompareRefreshTokenHash("raw-token", "secret", stored))
	assert.False(t, utils.CompareRefreshTokenHash("other-token", "secret", stored))
	assert.False(t, utils.CompareRefreshTokenHash("raw-token", "other-secret", stored))
}

func TestGenerateSecureRandomString(t *testing.T) {
	s1, err := utils.GenerateSecureRandomString(48)
	assert.NoError(t, err)
	assert.Len(t, s1, 64)

	s2, err := utils.GenerateSecureRandomString(48)
	assert.NoError(t, err)
	assert.NotEqual(t, s1, s2)

	_, err = utils.GenerateSecureRandomString(0)
	assert.Error(t, err)
}
