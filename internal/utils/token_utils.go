package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenType is the value of the typ claim on every access token this
// service mints. Verification rejects anything else, so a refresh token or a
// token minted by a different subsystem can never pass as an access token.
const AccessTokenType = "access"

// AccessTokenClaims are the registered claims plus the type discriminator.
type AccessTokenClaims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a signed access token for the given user.
func GenerateJWT(userID string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := AccessTokenClaims{
		TokenType: AccessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string and validates its signature and claims.
// It requires exp, iat, iss and sub to be present, the issuer to match, and
// the typ claim to equal AccessTokenType.
func ParseAndValidateJWT(tokenString string, secretKey string, issuer string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, err // includes expired, signature invalid, wrong issuer, etc.
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.IssuedAt == nil {
		return nil, errors.New("token missing iat claim")
	}
	if claims.Subject == "" {
		return nil, errors.New("token missing sub claim")
	}
	if claims.TokenType != AccessTokenType {
		return nil, errors.New("unexpected token type")
	}

	return claims, nil
}
