package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and must
// never appear in API responses.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RevokedToken is a logout denylist entry. JTI is the revoked token's
// JWT ID claim; the row becomes garbage once ExpiresAt passes, since the
// token would be rejected on expiry anyway.
type RevokedToken struct {
	JTI       string    `json:"jti"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	RevokedAt time.Time `json:"revoked_at"`
}
