package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/linkstash/linkstash_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "unit-test-secret"
	testIssuer = "linkstash-test"
)

func TestGenerateAndValidateJWTRoundtrip(t *testing.T) {
	tokenString, err := utils.GenerateJWT("user-123", testSecret, time.Minute, testIssuer)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := utils.ParseAndValidateJWT(tokenString, testSecret, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Equal(t, utils.AccessTokenType, claims.TokenType)
}

func TestParseAndValidateJWTRejectsWrongSecret(t *testing.T) {
	tokenString, err := utils.GenerateJWT("user-123", testSecret, time.Minute, testIssuer)
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(tokenString, "a-different-secret", testIssuer)
	assert.Error(t, err)
}

func TestParseAndValidateJWTRejectsWrongIssuer(t *testing.T) {
	tokenString, err := utils.GenerateJWT("user-123", testSecret, time.Minute, "someone-else")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(tokenString, testSecret, testIssuer)
	assert.Error(t, err)
}

func TestParseAndValidateJWTRejectsExpiredToken(t *testing.T) {
	tokenString, err := utils.GenerateJWT("user-123", testSecret, -time.Minute, testIssuer)
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(tokenString, testSecret, testIssuer)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseAndValidateJWTRejectsWrongTokenType(t *testing.T) {
	now := time.Now()
	claims := utils.AccessTokenClaims{
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(tokenString, testSecret, testIssuer)
	assert.Error(t, err)
}

func TestParseAndValidateJWTRejectsMissingClaims(t *testing.T) {
	// Signed with the right secret but carrying no exp/iss/sub.
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"typ": utils.AccessTokenType}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(tokenString, testSecret, testIssuer)
	assert.Error(t, err)
}

func TestParseAndValidateJWTRejectsUnexpectedAlgorithm(t *testing.T) {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(tokenString, testSecret, testIssuer)
	assert.Error(t, err)
}
