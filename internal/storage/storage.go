// Package storage declares the persistence contract shared by the three
// interchangeable engines (in-memory, SQLite file, Postgres). Every engine
// satisfies Store; callers receive the concrete engine through Open and never
// branch on the backend type.
//
// Contract guarantees common to all engines:
//   - Create operations return the fully materialized entity (generated id
//     and timestamps filled in), never a partial echo of the input.
//   - Get operations return common.ErrNotFound when the id is absent; a
//     driver failure is returned as a distinct wrapped error.
//   - List operations return newest-first, except appointments which are
//     ordered earliest-first.
//   - Windowed queries use an inclusive lower bound:
//     createdAt >= now − days·24h.
package storage

import (
	"context"

	"github.com/foryourmind/server/internal/models"
)

// UserStore covers account persistence. VerifyPassword returns
// common.ErrNotFound uniformly whether the email is unknown or the password
// is wrong, so callers cannot distinguish the two.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
}

// JournalStore covers diary entries. GetJournal is ownership-free; the caller
// enforces owner-only access.
type JournalStore interface {
	CreateJournal(ctx context.Context, journal *models.Journal) (*models.Journal, error)
	GetJournal(ctx context.Context, id string) (*models.Journal, error)
	GetUserJournals(ctx context.Context, userID string) ([]*models.Journal, error)
	UpdateJournal(ctx context.Context, id string, upd models.JournalUpdate) (*models.Journal, error)
	DeleteJournal(ctx context.Context, id string) error
}

// MoodStore covers append-only mood tracking.
type MoodStore interface {
	CreateMoodEntry(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error)
	// GetUserMoodEntries returns entries created within the last days×24h,
	// boundary inclusive, newest first.
	GetUserMoodEntries(ctx context.Context, userID string, days int) ([]*models.MoodEntry, error)
}

// RantStore covers anonymous venting. Rants are intentionally unlinked to
// any user; SupportRant increments the support counter atomically.
type RantStore interface {
	CreateRant(ctx context.Context, rant *models.AnonymousRant) (*models.AnonymousRant, error)
	ListRants(ctx context.Context) ([]*models.AnonymousRant, error)
	SupportRant(ctx context.Context, id string) (*models.AnonymousRant, error)
}

// TherapistStore covers the read-mostly therapist directory.
type TherapistStore interface {
	ListTherapists(ctx context.Context) ([]*models.Therapist, error)
	GetTherapist(ctx context.Context, id string) (*models.Therapist, error)
}

// AppointmentStore covers therapist bookings, ordered earliest-first.
type AppointmentStore interface {
	CreateAppointment(ctx context.Context, appt *models.Appointment) (*models.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	GetUserAppointments(ctx context.Context, userID string) ([]*models.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, upd models.AppointmentUpdate) (*models.Appointment, error)
}

// CourseStore covers static seeded course content and per-user progress.
// SaveCourseProgress replaces any previous row for the same user/course pair.
type CourseStore interface {
	ListCourses(ctx context.Context) ([]*models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	SaveCourseProgress(ctx context.Context, progress *models.CourseProgress) (*models.CourseProgress, error)
	GetUserCourseProgress(ctx context.Context, userID string) ([]*models.CourseProgress, error)
}

// OrganizationStore covers organizations, enrollment and anonymized
// analytics. GetWellnessMetrics must expose anonymized identifiers only.
type OrganizationStore interface {
	CreateOrganization(ctx context.Context, org *models.Organization) (*models.Organization, error)
	GetOrganization(ctx context.Context, id string) (*models.Organization, error)
	UpdateOrganization(ctx context.Context, id string, upd models.OrganizationUpdate) (*models.Organization, error)
	AddEmployee(ctx context.Context, emp *models.Employee) (*models.Employee, error)
	ListEmployeesByOrganization(ctx context.Context, orgID string) ([]*models.Employee, error)
	GetWellnessMetrics(ctx context.Context, orgID string) (*models.WellnessMetrics, error)
}

// BuddyStore covers peer-support matching.
type BuddyStore interface {
	SuggestBuddies(ctx context.Context, userID string) ([]*models.BuddySuggestion, error)
	CreateBuddyMatch(ctx context.Context, match *models.BuddyMatch) (*models.BuddyMatch, error)
	UpdateBuddyMatchStatus(ctx context.Context, id, status string) (*models.BuddyMatch, error)
	ListBuddyMatches(ctx context.Context, userID string) ([]*models.BuddyMatch, error)
}

// AssessmentStore covers wellness assessments. EnsureDefaultAssessment is an
// explicit provisioning step invoked at registration; reads have no write
// side effects.
type AssessmentStore interface {
	EnsureDefaultAssessment(ctx context.Context, userID string) (*models.WellnessAssessment, error)
	GetUserAssessments(ctx context.Context, userID string) ([]*models.WellnessAssessment, error)
	GetAssessment(ctx context.Context, id string) (*models.WellnessAssessment, error)
	SubmitAssessmentResponse(ctx context.Context, resp *models.AssessmentResponse) (*models.AssessmentResponse, error)
	GetAssessmentHistory(ctx context.Context, userID string) ([]*models.AssessmentResponse, error)
	GetLatestAssessmentResponse(ctx context.Context, userID string) (*models.AssessmentResponse, error)
}

// TokenStore covers server-side refresh-token state. Tokens are single-use:
// the auth service deletes a token as part of rotating it.
type TokenStore interface {
	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}

// Store is the single persistence interface the rest of the application
// depends on. All three engines implement it in full.
type Store interface {
	UserStore
	JournalStore
	MoodStore
	RantStore
	TherapistStore
	AppointmentStore
	CourseStore
	OrganizationStore
	BuddyStore
	AssessmentStore
	TokenStore

	// Close releases the engine's underlying resources.
	Close() error
}
