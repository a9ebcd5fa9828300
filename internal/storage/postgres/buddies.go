package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
)

const matchColumns = `id, user_id, buddy_id, compatibility, status, created_at`

func scanMatch(row rowScanner) (*models.BuddyMatch, error) {
	var m models.BuddyMatch
	if err := row.Scan(&m.ID, &m.UserID, &m.BuddyID, &m.Compatibility, &m.Status, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// SuggestBuddies proposes users with no existing match against the caller,
// ranked by a deterministic compatibility score.
func (s *Store) SuggestBuddies(ctx context.Context, userID string) ([]*models.BuddySuggestion, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.display_name FROM users u
		 WHERE u.id != $1
		   AND NOT EXISTS (
		     SELECT 1 FROM buddy_matches m
		     WHERE (m.user_id = $1 AND m.buddy_id = u.id)
		        OR (m.buddy_id = $1 AND m.user_id = u.id)
		   )
		 ORDER BY u.id`, userID)
	if err != nil {
		s.log.Error(ctx, "suggest buddies failed", "error", err)
		return nil, fmt.Errorf("suggest buddies: %w", err)
	}
	defer rows.Close()

	var out []*models.BuddySuggestion
	for rows.Next() {
		var sug models.BuddySuggestion
		if err := rows.Scan(&sug.UserID, &sug.DisplayName); err != nil {
			return nil, err
		}
		sug.Compatibility = storage.Compatibility(userID, sug.UserID)
		out = append(out, &sug)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	storage.SortSuggestions(out)
	return out, nil
}

func (s *Store) CreateBuddyMatch(ctx context.Context, match *models.BuddyMatch) (*models.BuddyMatch, error) {
	if _, err := s.GetUser(ctx, match.UserID); err != nil {
		return nil, err
	}
	if _, err := s.GetUser(ctx, match.BuddyID); err != nil {
		return nil, err
	}

	m := *match
	m.ID = newID()
	m.CreatedAt = time.Now().UTC()
	if m.Status == "" {
		m.Status = models.BuddyPending
	}
	if m.Compatibility == 0 {
		m.Compatibility = storage.Compatibility(m.UserID, m.BuddyID)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO buddy_matches (`+matchColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.UserID, m.BuddyID, m.Compatibility, m.Status, m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert buddy match: %w", err)
	}
	return &m, nil
}

func (s *Store) UpdateBuddyMatchStatus(ctx context.Context, id, status string) (*models.BuddyMatch, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE buddy_matches SET status = $1 WHERE id = $2 RETURNING `+matchColumns,
		status, id)
	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		s.log.Error(ctx, "update buddy match failed", "error", err)
		return nil, fmt.Errorf("update buddy match: %w", err)
	}
	return m, nil
}

func (s *Store) ListBuddyMatches(ctx context.Context, userID string) ([]*models.BuddyMatch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM buddy_matches
		 WHERE user_id = $1 OR buddy_id = $1
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		s.log.Error(ctx, "list buddy matches failed", "error", err)
		return nil, fmt.Errorf("list buddy matches: %w", err)
	}
	defer rows.Close()

	var out []*models.BuddyMatch
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
