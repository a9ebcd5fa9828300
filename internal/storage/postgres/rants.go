package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
)

const rantColumns = `id, anon_token, content, sentiment, support_count, created_at`

func scanRant(row rowScanner) (*models.AnonymousRant, error) {
	var r models.AnonymousRant
	if err := row.Scan(&r.ID, &r.AnonToken, &r.Content, &r.Sentiment, &r.SupportCount, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) insertRant(ctx context.Context, r *models.AnonymousRant) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO anonymous_rants (`+rantColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.AnonToken, r.Content, r.Sentiment, r.SupportCount, r.CreatedAt)
	return err
}

func (s *Store) CreateRant(ctx context.Context, rant *models.AnonymousRant) (*models.AnonymousRant, error) {
	r := *rant
	r.ID = newID()
	r.CreatedAt = time.Now().UTC()
	if r.AnonToken == "" {
		token, err := common.MakeRandHexString(8)
		if err != nil {
			return nil, err
		}
		r.AnonToken = token
	}
	if err := s.insertRant(ctx, &r); err != nil {
		return nil, fmt.Errorf("insert rant: %w", err)
	}
	return &r, nil
}

func (s *Store) ListRants(ctx context.Context) ([]*models.AnonymousRant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+rantColumns+` FROM anonymous_rants ORDER BY created_at DESC`)
	if err != nil {
		s.log.Error(ctx, "list rants failed", "error", err)
		return nil, fmt.Errorf("list rants: %w", err)
	}
	defer rows.Close()

	var out []*models.AnonymousRant
	for rows.Next() {
		r, err := scanRant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SupportRant increments the counter and returns the updated row in one
// round trip so concurrent supporters never lose an increment.
func (s *Store) SupportRant(ctx context.Context, id string) (*models.AnonymousRant, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE anonymous_rants SET support_count = support_count + 1
		 WHERE id = $1
		 RETURNING `+rantColumns, id)
	r, err := scanRant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		s.log.Error(ctx, "support rant failed", "error", err)
		return nil, fmt.Errorf("support rant: %w", err)
	}
	return r, nil
}
