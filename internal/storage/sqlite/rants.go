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

const rantColumns = `id, anon_token, content, sentiment, support_count, created_at`

func scanRant(row rowScanner) (*models.AnonymousRant, error) {
	var r models.AnonymousRant
	var createdAt int64
	if err := row.Scan(&r.ID, &r.AnonToken, &r.Content, &r.Sentiment, &r.SupportCount, &createdAt); err != nil {
		return nil, err
	}
	r.CreatedAt = rowcodec.FromMillis(createdAt)
	return &r, nil
}

func (s *Store) insertRant(ctx context.Context, r *models.AnonymousRant) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO anonymous_rants (`+rantColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.AnonToken, r.Content, r.Sentiment, r.SupportCount, rowcodec.Millis(r.CreatedAt))
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

// SupportRant increments the counter in a single statement so concurrent
// supporters never lose an increment.
func (s *Store) SupportRant(ctx context.Context, id string) (*models.AnonymousRant, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE anonymous_rants SET support_count = support_count + 1 WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("support rant: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, common.ErrNotFound
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+rantColumns+` FROM anonymous_rants WHERE id = ?`, id)
	r, err := scanRant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("get rant: %w", err)
	}
	return r, nil
}
