package domain

import (
	"time"
)

// User represents a registered account as stored by the user record store.
// PasswordProof is the reversible-transform encoding of the account password,
// never the plaintext.
type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordProof string    `json:"-"`
	Active        bool      `json:"active"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TokenGrant holds the issued token pair returned on successful
// authentication. ExpiresOn is the access token expiry.
type TokenGrant struct {
	AccessToken  string    `json:"access_token"`
	UserID       int64     `json:"user_id"`
	ExpiresOn    time.Time `json:"expires_on"`
	RefreshToken string    `json:"refresh_token"`
}
