package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/taskly/internal/models"
)

// RevokeToken stores a revocation entry. INSERT OR REPLACE makes
// repeated logout with the same token a no-op.
func (s *Storage) RevokeToken(ctx context.Context, token *models.RevokedToken) error {
	query := `
		INSERT OR REPLACE INTO revoked_tokens (jti, user_id, expires_at, revoked_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		token.JTI,
		token.UserID,
		token.ExpiresAt,
		token.RevokedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save revoked token: %w", err)
	}

	return nil
}

// IsRevoked reports whether the jti has been revoked
func (s *Storage) IsRevoked(ctx context.Context, jti string) (bool, error) {
	query := `SELECT 1 FROM revoked_tokens WHERE jti = ?`

	var one int
	err := s.db.QueryRowContext(ctx, query, jti).Scan(&one)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}

	return true, nil
}

// DeleteExpired removes revocation entries whose token has expired anyway
func (s *Storage) DeleteExpired(ctx context.Context) (int, error) {
	query := `DELETE FROM revoked_tokens WHERE expires_at < datetime('now')`

	result, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
