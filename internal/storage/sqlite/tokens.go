package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage/rowcodec"
)

func (s *Store) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	createdAt := token.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (token, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		token.Token, token.UserID, rowcodec.Millis(token.ExpiresAt), rowcodec.Millis(createdAt))
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (s *Store) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT token, user_id, expires_at, created_at FROM refresh_tokens WHERE token = ?`, token)

	var t models.RefreshToken
	var expiresAt, createdAt int64
	if err := row.Scan(&t.Token, &t.UserID, &expiresAt, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		s.log.Error(ctx, "get refresh token failed", "error", err)
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	t.ExpiresAt = rowcodec.FromMillis(expiresAt)
	t.CreatedAt = rowcodec.FromMillis(createdAt)
	return &t, nil
}

// DeleteRefreshToken is idempotent; deleting an absent token is not an error.
func (s *Store) DeleteRefreshToken(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
