package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage/rowcodec"
)

const journalColumns = `id, user_id, mood, content, tags, is_private, created_at`

func scanJournal(row rowScanner) (*models.Journal, error) {
	var j models.Journal
	var tags string
	var isPrivate int
	var createdAt int64
	if err := row.Scan(&j.ID, &j.UserID, &j.Mood, &j.Content, &tags, &isPrivate, &createdAt); err != nil {
		return nil, err
	}
	j.Tags = rowcodec.DecodeStringSlice(tags)
	j.IsPrivate = rowcodec.IntToBool(isPrivate)
	j.CreatedAt = rowcodec.FromMillis(createdAt)
	return &j, nil
}

func (s *Store) insertJournal(ctx context.Context, j *models.Journal) error {
	tags, err := rowcodec.EncodeJSON(j.Tags, "[]")
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO journals (`+journalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.UserID, j.Mood, j.Content, tags,
		rowcodec.BoolToInt(j.IsPrivate), rowcodec.Millis(j.CreatedAt))
	return err
}

func (s *Store) CreateJournal(ctx context.Context, journal *models.Journal) (*models.Journal, error) {
	j := *journal
	j.ID = newID()
	j.CreatedAt = time.Now().UTC()
	if err := s.insertJournal(ctx, &j); err != nil {
		return nil, fmt.Errorf("insert journal: %w", err)
	}
	return s.GetJournal(ctx, j.ID)
}

func (s *Store) GetJournal(ctx context.Context, id string) (*models.Journal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+journalColumns+` FROM journals WHERE id = ?`, id)
	j, err := scanJournal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		s.log.Error(ctx, "get journal failed", "error", err)
		return nil, fmt.Errorf("get journal: %w", err)
	}
	return j, nil
}

func (s *Store) GetUserJournals(ctx context.Context, userID string) ([]*models.Journal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+journalColumns+` FROM journals WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		s.log.Error(ctx, "list journals failed", "error", err)
		return nil, fmt.Errorf("list journals: %w", err)
	}
	defer rows.Close()

	var out []*models.Journal
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (s *Store) UpdateJournal(ctx context.Context, id string, upd models.JournalUpdate) (*models.Journal, error) {
	var sets []string
	var args []any

	if upd.Mood != nil {
		sets = append(sets, "mood = ?")
		args = append(args, *upd.Mood)
	}
	if upd.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *upd.Content)
	}
	if upd.Tags != nil {
		tags, err := rowcodec.EncodeJSON(upd.Tags, "[]")
		if err != nil {
			return nil, fmt.Errorf("encode tags: %w", err)
		}
		sets = append(sets, "tags = ?")
		args = append(args, tags)
	}
	if upd.IsPrivate != nil {
		sets = append(sets, "is_private = ?")
		args = append(args, rowcodec.BoolToInt(*upd.IsPrivate))
	}
	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.ExecContext(ctx,
			`UPDATE journals SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return nil, fmt.Errorf("update journal: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, common.ErrNotFound
		}
	}
	return s.GetJournal(ctx, id)
}

func (s *Store) DeleteJournal(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM journals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete journal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *Store) insertMoodEntry(ctx context.Context, m *models.MoodEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mood_entries (id, user_id, mood, notes, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.Mood, m.Notes, rowcodec.Millis(m.CreatedAt))
	return err
}

func (s *Store) CreateMoodEntry(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	m := *entry
	m.ID = newID()
	m.CreatedAt = time.Now().UTC()
	if err := s.insertMoodEntry(ctx, &m); err != nil {
		return nil, fmt.Errorf("insert mood entry: %w", err)
	}
	return &m, nil
}

// GetUserMoodEntries compares epoch-millisecond integers directly; the lower
// bound is inclusive.
func (s *Store) GetUserMoodEntries(ctx context.Context, userID string, days int) ([]*models.MoodEntry, error) {
	cutoff := nowMillis() - int64(days)*24*time.Hour.Milliseconds()
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, mood, notes, created_at FROM mood_entries
		 WHERE user_id = ? AND created_at >= ?
		 ORDER BY created_at DESC`, userID, cutoff)
	if err != nil {
		s.log.Error(ctx, "list mood entries failed", "error", err)
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	defer rows.Close()

	var out []*models.MoodEntry
	for rows.Next() {
		var m models.MoodEntry
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.UserID, &m.Mood, &m.Notes, &createdAt); err != nil {
			return nil, err
		}
		m.CreatedAt = rowcodec.FromMillis(createdAt)
		out = append(out, &m)
	}
	return out, rows.Err()
}
