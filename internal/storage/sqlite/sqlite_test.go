package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/logging"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s, err := Open(context.Background(), path, log)
	require.NoError(t, err)
	return s
}

func TestOpen_SeedsOncePerFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	s := openTestStore(t, path)
	users1, err := countUsers(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 3, users1, "three demo users seeded on first open")
	require.NoError(t, s.Close())

	// Reopening the same file must not duplicate the seed.
	s = openTestStore(t, path)
	defer s.Close()
	users2, err := countUsers(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, users1, users2)

	therapists, err := s.ListTherapists(ctx)
	require.NoError(t, err)
	assert.Len(t, therapists, 3)
}

func countUsers(ctx context.Context, s *Store) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func TestUserRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer s.Close()

	created, err := s.CreateUser(ctx, &models.User{
		Email:        "Mixed.Case@Example.com",
		PasswordHash: "hash",
		DisplayName:  "Round Trip",
		Role:         models.RoleIndividual,
		Preferences:  map[string]any{"theme": "dark"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "mixed.case@example.com", created.Email, "emails are stored lowercase")
	assert.Equal(t, "dark", created.Preferences["theme"])

	// Lookup is case-insensitive via normalization.
	got, err := s.GetUserByEmail(ctx, "MIXED.CASE@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = s.CreateUser(ctx, &models.User{Email: "mixed.case@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestJournalJSONColumns(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer s.Close()

	u, err := s.GetUserByEmail(ctx, seed.DemoIndividualEmail)
	require.NoError(t, err)

	j, err := s.CreateJournal(ctx, &models.Journal{
		UserID:    u.ID,
		Mood:      4,
		Content:   "tags survive the text column",
		Tags:      []string{"work", "sleep"},
		IsPrivate: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "sleep"}, j.Tags)
	assert.True(t, j.IsPrivate)

	private := false
	updated, err := s.UpdateJournal(ctx, j.ID, models.JournalUpdate{IsPrivate: &private})
	require.NoError(t, err)
	assert.False(t, updated.IsPrivate)
	assert.Equal(t, j.Content, updated.Content, "unspecified fields stay put")
}

func TestMoodWindow_BoundaryInclusive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer s.Close()

	u, err := s.CreateUser(ctx, &models.User{Email: "window@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	m, err := s.CreateMoodEntry(ctx, &models.MoodEntry{UserID: u.ID, Mood: 4})
	require.NoError(t, err)

	in, err := s.GetUserMoodEntries(ctx, u.ID, 30)
	require.NoError(t, err)
	require.Len(t, in, 1)

	// Push the entry just past a seven-day window.
	old := time.Now().UTC().Add(-7*24*time.Hour - time.Minute).UnixMilli()
	_, err = s.db.ExecContext(ctx, `UPDATE mood_entries SET created_at = ? WHERE id = ?`, old, m.ID)
	require.NoError(t, err)

	out, err := s.GetUserMoodEntries(ctx, u.ID, 7)
	require.NoError(t, err)
	assert.Empty(t, out)

	none, err := s.GetUserMoodEntries(ctx, u.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteUser_CascadesAcrossTables(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer s.Close()

	u, err := s.CreateUser(ctx, &models.User{Email: "gone@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	buddy, err := s.CreateUser(ctx, &models.User{Email: "stays@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	j, err := s.CreateJournal(ctx, &models.Journal{UserID: u.ID, Mood: 3, Content: "bye"})
	require.NoError(t, err)
	_, err = s.CreateBuddyMatch(ctx, &models.BuddyMatch{UserID: u.ID, BuddyID: buddy.ID})
	require.NoError(t, err)
	require.NoError(t, s.CreateRefreshToken(ctx, &models.RefreshToken{
		Token: "cascade-tok", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour),
	}))
	a, err := s.EnsureDefaultAssessment(ctx, u.ID)
	require.NoError(t, err)
	_, err = s.SubmitAssessmentResponse(ctx, &models.AssessmentResponse{
		AssessmentID: a.ID, UserID: u.ID, Responses: map[string]int{"q1": 5},
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, u.ID))

	_, err = s.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = s.GetJournal(ctx, j.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = s.GetRefreshToken(ctx, "cascade-tok")
	assert.ErrorIs(t, err, common.ErrNotFound)

	matches, err := s.ListBuddyMatches(ctx, buddy.ID)
	require.NoError(t, err)
	assert.Empty(t, matches, "matches die with either participant")

	_, err = s.GetUser(ctx, buddy.ID)
	require.NoError(t, err, "the other participant survives")
}

func TestAssessmentScoringPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer s.Close()

	u, err := s.CreateUser(ctx, &models.User{Email: "score@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	a, err := s.EnsureDefaultAssessment(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, a.Questions, 10)

	again, err := s.EnsureDefaultAssessment(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, again.ID)

	answers := map[string]int{}
	for _, q := range a.Questions {
		answers[q.ID] = 5
	}
	resp, err := s.SubmitAssessmentResponse(ctx, &models.AssessmentResponse{
		AssessmentID: a.ID, UserID: u.ID, Responses: answers,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, resp.TotalScore)
	assert.Equal(t, answers, resp.Responses, "answers survive the JSON column")
	assert.Len(t, resp.CategoryScores, 5)

	latest, err := s.GetLatestAssessmentResponse(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, latest.ID)
}

func TestSupportRant_Persists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer s.Close()

	r, err := s.CreateRant(ctx, &models.AnonymousRant{Content: "venting"})
	require.NoError(t, err)

	got, err := s.SupportRant(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.SupportCount)

	_, err = s.SupportRant(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
