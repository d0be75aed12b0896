package storage

import (
	"context"

	"github.com/avolkov/taskly/internal/models"
)

// TokenStorage defines interface for the logout denylist. Access tokens
// are stateless JWTs; logout records the token's jti here so it stops
// verifying before its natural expiry.
type TokenStorage interface {
	// RevokeToken stores a revocation entry
	// Revoking an already-revoked token is a no-op, not an error
	RevokeToken(ctx context.Context, token *models.RevokedToken) error

	// IsRevoked reports whether the jti has been revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// DeleteExpired removes entries whose token has expired anyway
	// Returns number of deleted entries
	DeleteExpired(ctx context.Context) (int, error)
}
