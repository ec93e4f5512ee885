package domain

import "time"

// User is the internal identity anchor. It carries no profile data of its
// own; everything user-visible lives on the linked identities.
type User struct {
	UserID    string    `json:"userID"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity links a User to one external provider account. The
// (provider, provider_subject) pair is globally unique: at most one identity
// per external account. Identities are immutable after creation.
type Identity struct {
	IdentityID      string    `json:"identityID"`
	UserID          string    `json:"userID"`
	Provider        string    `json:"provider"`
	ProviderSubject string    `json:"providerSubject"`
	Email           *string   `json:"email,omitempty"`
	Name            *string   `json:"name,omitempty"`
	AvatarURL       *string   `json:"avatarURL,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ProviderClaims is what the OAuth boundary yields after a successful
// exchange: a provider name, the provider's stable subject identifier, and
// optional profile fields. Subject is the only required field.
type ProviderClaims struct {
	Provider  string
	Subject   string
	Email     *string
	Name      *string
	AvatarURL *string
}
