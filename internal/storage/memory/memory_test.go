package memory

import (
	"context"
	"testing"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), &models.User{
		Email:        email,
		PasswordHash: "$2a$10$invalidhashforthistest.....................",
		DisplayName:  "Test User",
		Role:         models.RoleIndividual,
	})
	require.NoError(t, err)
	return u
}

func TestNew_SeedsDemoData(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	emails := []string{seed.DemoAdminEmail, seed.DemoManagerEmail, seed.DemoIndividualEmail}
	for _, email := range emails {
		u, err := s.GetUserByEmail(ctx, email)
		require.NoError(t, err)

		_, err = s.VerifyPassword(ctx, email, seed.DemoPassword)
		require.NoError(t, err, "demo user %s must accept the demo password", u.Email)
	}

	therapists, err := s.ListTherapists(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, therapists)

	courses, err := s.ListCourses(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, courses)

	rants, err := s.ListRants(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, rants)
}

func TestCreateUser_MaterializesAndRejectsDuplicates(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	u := newTestUser(t, s, "dup@example.com")
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = s.CreateUser(ctx, &models.User{Email: "DUP@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestVerifyPassword_UniformFailure(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	_, unknownErr := s.VerifyPassword(ctx, "nobody@example.com", "whatever")
	_, wrongErr := s.VerifyPassword(ctx, seed.DemoAdminEmail, "wrong-password")

	assert.ErrorIs(t, unknownErr, common.ErrNotFound)
	assert.Equal(t, unknownErr, wrongErr, "unknown email and wrong password must be indistinguishable")
}

func TestUpdateUser_PartialOnly(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	u := newTestUser(t, s, "partial@example.com")

	name := "Renamed"
	got, err := s.UpdateUser(ctx, u.ID, models.UserUpdate{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.DisplayName)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.Role, got.Role)

	_, err = s.UpdateUser(ctx, "missing", models.UserUpdate{DisplayName: &name})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteUser_Cascades(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	u := newTestUser(t, s, "cascade@example.com")

	j, err := s.CreateJournal(ctx, &models.Journal{UserID: u.ID, Mood: 3, Content: "hello"})
	require.NoError(t, err)
	_, err = s.CreateMoodEntry(ctx, &models.MoodEntry{UserID: u.ID, Mood: 4})
	require.NoError(t, err)
	require.NoError(t, s.CreateRefreshToken(ctx, &models.RefreshToken{
		Token: "tok-cascade", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, s.DeleteUser(ctx, u.ID))

	_, err = s.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = s.GetJournal(ctx, j.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = s.GetRefreshToken(ctx, "tok-cascade")
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, s.DeleteUser(ctx, u.ID), common.ErrNotFound)
}

func TestGetUserJournals_NewestFirst(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	u := newTestUser(t, s, "journals@example.com")
	first, err := s.CreateJournal(ctx, &models.Journal{UserID: u.ID, Mood: 2, Content: "first"})
	require.NoError(t, err)
	second, err := s.CreateJournal(ctx, &models.Journal{UserID: u.ID, Mood: 3, Content: "second"})
	require.NoError(t, err)

	// Force distinct timestamps; map writes share a clock granularity.
	s.mu.Lock()
	s.journals[first.ID].CreatedAt = time.Now().Add(-time.Hour)
	s.mu.Unlock()

	journals, err := s.GetUserJournals(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, journals, 2)
	assert.Equal(t, second.ID, journals[0].ID)
	assert.Equal(t, first.ID, journals[1].ID)
}

func TestGetUserMoodEntries_Window(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	u := newTestUser(t, s, "moods@example.com")
	m, err := s.CreateMoodEntry(ctx, &models.MoodEntry{UserID: u.ID, Mood: 4})
	require.NoError(t, err)

	recent, err := s.GetUserMoodEntries(ctx, u.ID, 30)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, m.ID, recent[0].ID)

	// A zero-day window starts "now"; an entry created a moment ago is
	// already behind the cutoff.
	s.mu.Lock()
	s.moods[m.ID].CreatedAt = time.Now().Add(-time.Second)
	s.mu.Unlock()
	none, err := s.GetUserMoodEntries(ctx, u.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	// Exactly eight days old falls outside a seven-day window; six days
	// old falls inside. The boundary itself is inclusive.
	s.mu.Lock()
	s.moods[m.ID].CreatedAt = time.Now().Add(-8 * 24 * time.Hour)
	s.mu.Unlock()
	old, err := s.GetUserMoodEntries(ctx, u.ID, 7)
	require.NoError(t, err)
	assert.Empty(t, old)

	s.mu.Lock()
	s.moods[m.ID].CreatedAt = time.Now().Add(-6 * 24 * time.Hour)
	s.mu.Unlock()
	in, err := s.GetUserMoodEntries(ctx, u.ID, 7)
	require.NoError(t, err)
	assert.Len(t, in, 1)
}

func TestSupportRant_Increments(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	r, err := s.CreateRant(ctx, &models.AnonymousRant{Content: "ugh"})
	require.NoError(t, err)
	assert.NotEmpty(t, r.AnonToken)
	assert.Equal(t, 0, r.SupportCount)

	got, err := s.SupportRant(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.SupportCount)

	got, err = s.SupportRant(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.SupportCount)

	_, err = s.SupportRant(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAppointments_EarliestFirst(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	u := newTestUser(t, s, "appts@example.com")
	therapists, err := s.ListTherapists(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, therapists)

	later, err := s.CreateAppointment(ctx, &models.Appointment{
		TherapistID: therapists[0].ID, UserID: u.ID,
		StartsAt: time.Now().Add(48 * time.Hour), EndsAt: time.Now().Add(49 * time.Hour),
	})
	require.NoError(t, err)
	sooner, err := s.CreateAppointment(ctx, &models.Appointment{
		TherapistID: therapists[0].ID, UserID: u.ID,
		StartsAt: time.Now().Add(24 * time.Hour), EndsAt: time.Now().Add(25 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentPending, sooner.Status)

	appts, err := s.GetUserAppointments(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, appts, 2)
	assert.Equal(t, sooner.ID, appts[0].ID)
	assert.Equal(t, later.ID, appts[1].ID)

	_, err = s.CreateAppointment(ctx, &models.Appointment{TherapistID: "missing", UserID: u.ID})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveCourseProgress_Upserts(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	u := newTestUser(t, s, "progress@example.com")
	courses, err := s.ListCourses(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, courses)

	p1, err := s.SaveCourseProgress(ctx, &models.CourseProgress{
		UserID: u.ID, CourseID: courses[0].ID, Percent: 25, ModulesDone: 1,
	})
	require.NoError(t, err)

	p2, err := s.SaveCourseProgress(ctx, &models.CourseProgress{
		UserID: u.ID, CourseID: courses[0].ID, Percent: 50, ModulesDone: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, p2.Percent)

	all, err := s.GetUserCourseProgress(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, all, 1, "one row per user/course pair, replaced on save")
	assert.Equal(t, 2, all[0].ModulesDone)
	_ = p1
}

func TestBuddyFlow(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	a := newTestUser(t, s, "buddy-a@example.com")
	b := newTestUser(t, s, "buddy-b@example.com")

	suggestions, err := s.SuggestBuddies(ctx, a.ID)
	require.NoError(t, err)
	var found bool
	for _, sug := range suggestions {
		assert.NotEqual(t, a.ID, sug.UserID)
		assert.GreaterOrEqual(t, sug.Compatibility, 0.5)
		assert.Less(t, sug.Compatibility, 1.0)
		if sug.UserID == b.ID {
			found = true
		}
	}
	assert.True(t, found)

	match, err := s.CreateBuddyMatch(ctx, &models.BuddyMatch{UserID: a.ID, BuddyID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, models.BuddyPending, match.Status)
	assert.NotZero(t, match.Compatibility)

	// Matched users drop out of suggestions, seen from both sides.
	suggestions, err = s.SuggestBuddies(ctx, b.ID)
	require.NoError(t, err)
	for _, sug := range suggestions {
		assert.NotEqual(t, a.ID, sug.UserID)
	}

	updated, err := s.UpdateBuddyMatchStatus(ctx, match.ID, models.BuddyAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.BuddyAccepted, updated.Status)

	mine, err := s.ListBuddyMatches(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, match.ID, mine[0].ID)
}

func TestAssessmentLifecycle(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	u := newTestUser(t, s, "assess@example.com")

	a1, err := s.EnsureDefaultAssessment(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, a1.Questions, 10)

	a2, err := s.EnsureDefaultAssessment(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, a1.ID, a2.ID, "provisioning must be idempotent")

	answers := map[string]int{}
	for _, q := range a1.Questions {
		answers[q.ID] = 5
	}
	resp, err := s.SubmitAssessmentResponse(ctx, &models.AssessmentResponse{
		AssessmentID: a1.ID, UserID: u.ID, Responses: answers,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, resp.TotalScore)
	assert.NotEmpty(t, resp.Recommendations)

	latest, err := s.GetLatestAssessmentResponse(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, latest.ID)

	history, err := s.GetAssessmentHistory(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)

	_, err = s.GetLatestAssessmentResponse(ctx, "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestWellnessMetrics_Anonymized(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	admin := newTestUser(t, s, "metrics-admin@example.com")
	worker := newTestUser(t, s, "metrics-worker@example.com")

	org, err := s.CreateOrganization(ctx, &models.Organization{Name: "Acme", AdminID: admin.ID})
	require.NoError(t, err)

	emp, err := s.AddEmployee(ctx, &models.Employee{
		UserID: worker.ID, OrganizationID: org.ID, Department: "Eng", WellnessStreak: 4,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, emp.AnonymousID)

	_, err = s.CreateMoodEntry(ctx, &models.MoodEntry{UserID: worker.ID, Mood: 4})
	require.NoError(t, err)
	_, err = s.CreateMoodEntry(ctx, &models.MoodEntry{UserID: worker.ID, Mood: 2})
	require.NoError(t, err)

	metrics, err := s.GetWellnessMetrics(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.EmployeeCount)
	assert.Equal(t, 3.0, metrics.AverageMood)
	assert.Equal(t, 100.0, metrics.Participation)
	require.Len(t, metrics.Departments, 1)
	assert.Equal(t, "Eng", metrics.Departments[0].Department)

	_, err = s.GetWellnessMetrics(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRefreshTokens(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	u := newTestUser(t, s, "tokens@example.com")
	require.NoError(t, s.CreateRefreshToken(ctx, &models.RefreshToken{
		Token: "tok-1", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour),
	}))

	got, err := s.GetRefreshToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)

	require.NoError(t, s.DeleteRefreshToken(ctx, "tok-1"))
	_, err = s.GetRefreshToken(ctx, "tok-1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Idempotent delete.
	require.NoError(t, s.DeleteRefreshToken(ctx, "tok-1"))
}
