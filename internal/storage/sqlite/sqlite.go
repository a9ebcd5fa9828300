// Package sqlite implements the storage contract on a single local database
// file through the pure-Go modernc driver. The schema is created idempotently
// at open time, so pointing the server at a fresh path just works.
//
// Column conventions, shared with nothing else in the system:
//   - JSON-shaped fields are TEXT serialized through rowcodec ("{}"/"[]"
//     defaults, never NULL),
//   - boolean flags are 0/1 INTEGER columns,
//   - timestamps are epoch-millisecond INTEGER columns, and window filters
//     compare integer boundaries directly.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/foryourmind/server/internal/logging"
	"github.com/foryourmind/server/internal/storage"
	"github.com/foryourmind/server/internal/storage/seed"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store is the embedded-file engine.
type Store struct {
	db  *sql.DB
	log logging.Logger
}

var _ storage.Store = (*Store)(nil)

// Open opens (or creates) the database file, applies the schema and seeds
// demo data when the users table is empty. A seeding failure is logged as a
// warning and does not prevent startup.
func Open(ctx context.Context, path string, log logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// modernc/sqlite serializes writers; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, log: log.With("engine", "sqlite")}
	if err := s.createSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	if err := s.seedIfEmpty(ctx); err != nil {
		s.log.Warn(ctx, "demo data seeding failed", "error", err)
	}
	return s, nil
}

// Close closes the underlying database file.
func (s *Store) Close() error { return s.db.Close() }

func newID() string { return uuid.NewString() }

func nowMillis() int64 { return time.Now().UTC().UnixMilli() }

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		display_name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'individual',
		avatar TEXT NOT NULL DEFAULT '',
		timezone TEXT NOT NULL DEFAULT '',
		preferences TEXT NOT NULL DEFAULT '{}',
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS organizations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		admin_id TEXT NOT NULL,
		settings TEXT NOT NULL DEFAULT '{}',
		wellness_score REAL NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		organization_id TEXT NOT NULL,
		job_title TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		anonymous_id TEXT NOT NULL UNIQUE,
		wellness_streak INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS journals (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		mood INTEGER NOT NULL DEFAULT 0,
		content TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		is_private INTEGER NOT NULL DEFAULT 1,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS mood_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		mood INTEGER NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS anonymous_rants (
		id TEXT PRIMARY KEY,
		anon_token TEXT NOT NULL,
		content TEXT NOT NULL,
		sentiment REAL NOT NULL DEFAULT 0,
		support_count INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS therapists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		specialization TEXT NOT NULL DEFAULT '',
		license_number TEXT NOT NULL DEFAULT '',
		profile_url TEXT NOT NULL DEFAULT '',
		rating REAL NOT NULL DEFAULT 0,
		availability TEXT NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id TEXT PRIMARY KEY,
		therapist_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		starts_at INTEGER NOT NULL,
		ends_at INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		duration TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL DEFAULT '',
		thumbnail TEXT NOT NULL DEFAULT '',
		modules TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS course_progress (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		course_id TEXT NOT NULL,
		percent REAL NOT NULL DEFAULT 0,
		modules_done INTEGER NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL,
		UNIQUE (user_id, course_id)
	)`,
	`CREATE TABLE IF NOT EXISTS wellness_assessments (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT 'comprehensive',
		title TEXT NOT NULL DEFAULT '',
		questions TEXT NOT NULL DEFAULT '[]',
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS assessment_responses (
		id TEXT PRIMARY KEY,
		assessment_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		responses TEXT NOT NULL DEFAULT '{}',
		total_score REAL NOT NULL DEFAULT 0,
		category_scores TEXT NOT NULL DEFAULT '{}',
		recommendations TEXT NOT NULL DEFAULT '[]',
		completed_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS buddy_matches (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		buddy_id TEXT NOT NULL,
		compatibility REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		token TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		expires_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	)`,
}

func (s *Store) createSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// seedIfEmpty inserts the demo dataset when the users table has no rows.
// The gate makes seeding idempotent across restarts of a persistent file.
func (s *Store) seedIfEmpty(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	data := seed.NewData(uuid.NewString, time.Now().UTC())
	for _, u := range data.Users {
		if err := s.insertUser(ctx, u); err != nil {
			return err
		}
	}
	if err := s.insertOrganization(ctx, data.Organization); err != nil {
		return err
	}
	for _, e := range data.Employees {
		if err := s.insertEmployee(ctx, e); err != nil {
			return err
		}
	}
	for _, th := range data.Therapists {
		if err := s.insertTherapist(ctx, th); err != nil {
			return err
		}
	}
	for _, c := range data.Courses {
		if err := s.insertCourse(ctx, c); err != nil {
			return err
		}
	}
	for _, r := range data.Rants {
		if err := s.insertRant(ctx, r); err != nil {
			return err
		}
	}
	for _, j := range data.Journals {
		if err := s.insertJournal(ctx, j); err != nil {
			return err
		}
	}
	for _, m := range data.MoodEntries {
		if err := s.insertMoodEntry(ctx, m); err != nil {
			return err
		}
	}
	s.log.Info(ctx, "seeded demo data")
	return nil
}
