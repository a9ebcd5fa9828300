// Package seed holds the demo fixtures inserted by every engine at first
// start: the therapist directory, a starter course, sample rants, one
// organization and three demo accounts. Engines decide when to seed (the
// in-memory engine always, the SQL engines only into an empty database);
// the content lives here so it is identical across backends.
package seed

import (
	"time"

	"github.com/foryourmind/server/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Fixed demo credentials. The password is the same for all three accounts.
const (
	DemoPassword        = "demo1234"
	DemoAdminEmail      = "admin@foryourmind.demo"
	DemoManagerEmail    = "manager@foryourmind.demo"
	DemoIndividualEmail = "taylor@foryourmind.demo"
)

// demoHash is computed once; bcrypt at interactive cost is too slow to run
// per fixture row.
var demoHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

// Data is one complete demo dataset with fresh ids. Relationships
// (organization admin, employee links, journal/mood owners) are already
// wired together.
type Data struct {
	Users        []*models.User
	Organization *models.Organization
	Employees    []*models.Employee
	Therapists   []*models.Therapist
	Courses      []*models.Course
	Rants        []*models.AnonymousRant
	Journals     []*models.Journal
	MoodEntries  []*models.MoodEntry
}

// NewData builds a demo dataset. ids must yield unique identifiers; engines
// pass their usual id generator so seeded rows look like organic ones.
func NewData(ids func() string, now time.Time) *Data {
	admin := &models.User{
		ID:           ids(),
		Email:        DemoAdminEmail,
		PasswordHash: demoHash,
		DisplayName:  "Avery Admin",
		Role:         models.RoleAdmin,
		Timezone:     "UTC",
		Preferences:  map[string]any{},
		CreatedAt:    now,
	}
	manager := &models.User{
		ID:           ids(),
		Email:        DemoManagerEmail,
		PasswordHash: demoHash,
		DisplayName:  "Morgan Manager",
		Role:         models.RoleManager,
		Timezone:     "UTC",
		Preferences:  map[string]any{},
		CreatedAt:    now,
	}
	individual := &models.User{
		ID:           ids(),
		Email:        DemoIndividualEmail,
		PasswordHash: demoHash,
		DisplayName:  "Taylor Reyes",
		Role:         models.RoleIndividual,
		Timezone:     "Europe/Riga",
		Preferences:  map[string]any{"theme": "calm"},
		CreatedAt:    now,
	}

	org := &models.Organization{
		ID:            ids(),
		Name:          "Brightside Labs",
		AdminID:       admin.ID,
		Settings:      map[string]any{"checkInDay": "monday"},
		WellnessScore: 7.2,
		CreatedAt:     now,
	}

	employees := []*models.Employee{
		{
			ID:             ids(),
			UserID:         manager.ID,
			OrganizationID: org.ID,
			JobTitle:       "Engineering Manager",
			Department:     "Engineering",
			AnonymousID:    "anon-" + ids(),
			WellnessStreak: 12,
		},
		{
			ID:             ids(),
			UserID:         individual.ID,
			OrganizationID: org.ID,
			JobTitle:       "Product Designer",
			Department:     "Design",
			AnonymousID:    "anon-" + ids(),
			WellnessStreak: 4,
		},
	}

	therapists := []*models.Therapist{
		{
			ID:             ids(),
			Name:           "Dr. Sofia Andersson",
			Specialization: "Cognitive behavioural therapy",
			LicenseNumber:  "LV-CBT-2041",
			Rating:         4.9,
			Availability:   map[string]any{"mon": []any{"09:00", "11:00"}, "thu": []any{"14:00"}},
		},
		{
			ID:             ids(),
			Name:           "Dr. Priya Nair",
			Specialization: "Workplace burnout",
			LicenseNumber:  "LV-PSY-1188",
			Rating:         4.7,
			Availability:   map[string]any{"tue": []any{"10:00", "16:00"}},
		},
		{
			ID:             ids(),
			Name:           "Jonas Keller",
			Specialization: "Mindfulness and stress reduction",
			LicenseNumber:  "LV-MBSR-0907",
			Rating:         4.5,
			Availability:   map[string]any{"wed": []any{"08:00"}, "fri": []any{"13:00", "15:00"}},
		},
	}

	courses := []*models.Course{
		{
			ID:          ids(),
			Title:       "Foundations of Everyday Calm",
			Description: "A two-week introduction to breathing, grounding and short meditations.",
			Duration:    "2 weeks",
			Difficulty:  "beginner",
			Modules: []any{
				map[string]any{"title": "Why breath matters", "minutes": 10},
				map[string]any{"title": "Box breathing", "minutes": 8},
				map[string]any{"title": "A three-minute reset", "minutes": 5},
			},
		},
	}

	rants := []*models.AnonymousRant{
		{
			ID:           ids(),
			AnonToken:    "seed-rant-1",
			Content:      "Third reorg this year and nobody tells us anything until the all-hands.",
			Sentiment:    -0.6,
			SupportCount: 14,
			CreatedAt:    now.Add(-48 * time.Hour),
		},
		{
			ID:           ids(),
			AnonToken:    "seed-rant-2",
			Content:      "Finally slept a full night after weeks. Small win but I'll take it.",
			Sentiment:    0.5,
			SupportCount: 31,
			CreatedAt:    now.Add(-20 * time.Hour),
		},
	}

	journals := []*models.Journal{
		{
			ID:        ids(),
			UserID:    individual.ID,
			Mood:      3,
			Content:   "Long sprint review. Drained, but the feedback was kinder than expected.",
			Tags:      []string{"work", "sprint"},
			IsPrivate: true,
			CreatedAt: now.Add(-72 * time.Hour),
		},
		{
			ID:        ids(),
			UserID:    individual.ID,
			Mood:      4,
			Content:   "Walked home instead of taking the tram. Helped more than I thought.",
			Tags:      []string{"habits"},
			IsPrivate: true,
			CreatedAt: now.Add(-24 * time.Hour),
		},
	}

	moods := []*models.MoodEntry{
		{ID: ids(), UserID: individual.ID, Mood: 2, Notes: "rough morning", CreatedAt: now.Add(-96 * time.Hour)},
		{ID: ids(), UserID: individual.ID, Mood: 3, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: ids(), UserID: individual.ID, Mood: 4, Notes: "good walk", CreatedAt: now.Add(-6 * time.Hour)},
	}

	return &Data{
		Users:        []*models.User{admin, manager, individual},
		Organization: org,
		Employees:    employees,
		Therapists:   therapists,
		Courses:      courses,
		Rants:        rants,
		Journals:     journals,
		MoodEntries:  moods,
	}
}
