// Package postgres implements the storage contract on PostgreSQL through the
// pgx stdlib driver. Schema management goes through goose with embedded
// migrations; JSON-shaped fields live in JSONB columns and timestamps in
// TIMESTAMPTZ, both scanned field by field.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/foryourmind/server/internal/logging"
	"github.com/foryourmind/server/internal/storage"
	"github.com/foryourmind/server/internal/storage/postgres/migrations"
	"github.com/foryourmind/server/internal/storage/seed"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Store is the PostgreSQL engine.
type Store struct {
	db  *sql.DB
	log logging.Logger
}

var _ storage.Store = (*Store)(nil)

// Hosts of managed Postgres providers that require TLS but whose default
// connection strings often omit sslmode.
var tlsHostSuffixes = []string{
	".neon.tech",
	".supabase.co",
	".render.com",
	".amazonaws.com",
}

// NormalizeURL appends sslmode=require to a connection URL that has no
// explicit sslmode, when the host belongs to a known managed provider or
// forceTLS is set. URLs that already carry an sslmode are left alone.
func NormalizeURL(rawURL string, forceTLS bool) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Has("sslmode") {
		return rawURL
	}

	needTLS := forceTLS
	host := u.Hostname()
	for _, suffix := range tlsHostSuffixes {
		if strings.HasSuffix(host, suffix) {
			needTLS = true
			break
		}
	}
	if !needTLS {
		return rawURL
	}
	q.Set("sslmode", "require")
	u.RawQuery = q.Encode()
	return u.String()
}

// Open connects to the database, runs pending migrations and seeds demo data
// when the users table is empty. A seeding failure is logged as a warning and
// does not prevent startup.
func Open(ctx context.Context, databaseURL string, forceTLS bool, log logging.Logger) (*Store, error) {
	db, err := sql.Open("pgx", NormalizeURL(databaseURL, forceTLS))
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres database: %w", err)
	}

	s := &Store{db: db, log: log.With("engine", "postgres")}
	if err := s.runMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if err := s.seedIfEmpty(ctx); err != nil {
		s.log.Warn(ctx, "demo data seeding failed", "error", err)
	}
	return s, nil
}

// Close closes the connection pool.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db, ".")
}

func newID() string { return uuid.NewString() }

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// seedIfEmpty inserts the demo dataset when the users table has no rows,
// keeping seeding idempotent across deploys against the same database.
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
