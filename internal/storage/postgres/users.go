package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/dbx"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage/rowcodec"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `id, email, password_hash, display_name, role, avatar, timezone, preferences, created_at`

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var prefs string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Role,
		&u.Avatar, &u.Timezone, &prefs, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Preferences = rowcodec.DecodeMap(prefs)
	return &u, nil
}

func (s *Store) insertUser(ctx context.Context, u *models.User) error {
	prefs, err := rowcodec.EncodeJSON(u.Preferences, "{}")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, strings.ToLower(u.Email), u.PasswordHash, u.DisplayName, u.Role,
		u.Avatar, u.Timezone, prefs, u.CreatedAt)
	return err
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	u := *user
	u.ID = newID()
	u.CreatedAt = time.Now().UTC()

	if err := s.insertUser(ctx, &u); err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return s.GetUser(ctx, u.ID)
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		s.log.Error(ctx, "get user failed", "error", err)
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		s.log.Error(ctx, "get user by email failed", "error", err)
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// UpdateUser writes only the fields present in the partial update.
func (s *Store) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	var sets []string
	var args []any
	next := func() int { return len(args) + 1 }

	if upd.DisplayName != nil {
		sets = append(sets, fmt.Sprintf("display_name = $%d", next()))
		args = append(args, *upd.DisplayName)
	}
	if upd.Avatar != nil {
		sets = append(sets, fmt.Sprintf("avatar = $%d", next()))
		args = append(args, *upd.Avatar)
	}
	if upd.Timezone != nil {
		sets = append(sets, fmt.Sprintf("timezone = $%d", next()))
		args = append(args, *upd.Timezone)
	}
	if upd.Preferences != nil {
		prefs, err := rowcodec.EncodeJSON(upd.Preferences, "{}")
		if err != nil {
			return nil, fmt.Errorf("encode preferences: %w", err)
		}
		sets = append(sets, fmt.Sprintf("preferences = $%d", next()))
		args = append(args, prefs)
	}
	if upd.PasswordHash != nil {
		sets = append(sets, fmt.Sprintf("password_hash = $%d", next()))
		args = append(args, *upd.PasswordHash)
	}
	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.ExecContext(ctx,
			fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args)),
			args...)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, common.ErrNotFound
		}
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes the user and all dependent rows in one transaction,
// in a fixed dependency order; the schema declares no cascading keys.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cascade := []string{
			`DELETE FROM assessment_responses WHERE user_id = $1`,
			`DELETE FROM wellness_assessments WHERE user_id = $1`,
			`DELETE FROM course_progress WHERE user_id = $1`,
			`DELETE FROM appointments WHERE user_id = $1`,
			`DELETE FROM mood_entries WHERE user_id = $1`,
			`DELETE FROM journals WHERE user_id = $1`,
			`DELETE FROM buddy_matches WHERE user_id = $1 OR buddy_id = $1`,
			`DELETE FROM employees WHERE user_id = $1`,
			`DELETE FROM refresh_tokens WHERE user_id = $1`,
			`DELETE FROM users WHERE id = $1`,
		}
		for _, q := range cascade {
			if _, err := tx.ExecContext(ctx, q, id); err != nil {
				return fmt.Errorf("cascade delete: %w", err)
			}
		}
		return nil
	})
}

// VerifyPassword fails identically for an unknown email and a wrong password.
func (s *Store) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, common.ErrNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrNotFound
	}
	return u, nil
}
