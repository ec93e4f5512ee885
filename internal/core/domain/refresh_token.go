package domain

import "time"

// RefreshToken is a persisted, opaque, single-use-per-rotation credential.
//
// Only the keyed hash of the secret is ever stored; the raw secret is
// returned to the caller exactly once, at issuance. Rotation marks the row
// spent (last_used_at and revoked_at set) and issues a replacement, so a
// replayed token always fails. Rows are never deleted; they are retained for
// audit and replay detection.
type RefreshToken struct {
	TokenID    string     `json:"tokenID"`
	UserID     string     `json:"userID"`
	TokenHash  string     `json:"-"`
	IssuedAt   time.Time  `json:"issuedAt"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	RevokedAt  *time.Time `json:"revokedAt,omitempty"`
}

// IsExpired reports whether the token is past its expiry at the given instant.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// IsRevoked reports whether the token was revoked or already rotated.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// TokenPair is the bearer credential set handed to non-interactive clients.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
