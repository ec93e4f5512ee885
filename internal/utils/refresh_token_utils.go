package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashRefreshToken computes a keyed SHA256 hash of a refresh token secret.
// Binding the hash to the server-side secret means a raw dump of the
// refresh_tokens table cannot be turned back into usable tokens without that
// secret.
func HashRefreshToken(token string, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// CompareRefreshTokenHash compares a raw refresh token with a stored hash in
// constant time. The token parameter is the raw secret, not a hash.
func CompareRefreshTokenHash(token string, secret string, storedHash string) bool {
	computed := HashRefreshToken(token, secret)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
