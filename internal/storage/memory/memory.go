// Package memory implements the storage contract with plain maps, scoped to
// the process lifetime. It backs dev and test runs and is the fallback when
// no database is configured. Unlike the original runtime, Go serves requests
// on concurrent goroutines, so every operation takes the engine mutex.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
	"github.com/foryourmind/server/internal/storage/seed"
	"github.com/google/uuid"
)

// Store is the in-memory engine. All maps are keyed by entity id except
// tokens, which are keyed by the token string.
type Store struct {
	mu sync.RWMutex

	users         map[string]*models.User
	organizations map[string]*models.Organization
	employees     map[string]*models.Employee
	journals      map[string]*models.Journal
	moods         map[string]*models.MoodEntry
	rants         map[string]*models.AnonymousRant
	therapists    map[string]*models.Therapist
	appointments  map[string]*models.Appointment
	courses       map[string]*models.Course
	progress      map[string]*models.CourseProgress
	assessments   map[string]*models.WellnessAssessment
	responses     map[string]*models.AssessmentResponse
	matches       map[string]*models.BuddyMatch
	tokens        map[string]*models.RefreshToken
}

var _ storage.Store = (*Store)(nil)

// New constructs the engine and seeds the demo dataset. Seeding runs exactly
// once per process start by construction; nothing can pre-exist in memory.
func New() *Store {
	s := &Store{
		users:         map[string]*models.User{},
		organizations: map[string]*models.Organization{},
		employees:     map[string]*models.Employee{},
		journals:      map[string]*models.Journal{},
		moods:         map[string]*models.MoodEntry{},
		rants:         map[string]*models.AnonymousRant{},
		therapists:    map[string]*models.Therapist{},
		appointments:  map[string]*models.Appointment{},
		courses:       map[string]*models.Course{},
		progress:      map[string]*models.CourseProgress{},
		assessments:   map[string]*models.WellnessAssessment{},
		responses:     map[string]*models.AssessmentResponse{},
		matches:       map[string]*models.BuddyMatch{},
		tokens:        map[string]*models.RefreshToken{},
	}
	s.seedDemoData()
	return s
}

func (s *Store) seedDemoData() {
	data := seed.NewData(uuid.NewString, time.Now().UTC())
	for _, u := range data.Users {
		s.users[u.ID] = u
	}
	s.organizations[data.Organization.ID] = data.Organization
	for _, e := range data.Employees {
		s.employees[e.ID] = e
	}
	for _, th := range data.Therapists {
		s.therapists[th.ID] = th
	}
	for _, c := range data.Courses {
		s.courses[c.ID] = c
	}
	for _, r := range data.Rants {
		s.rants[r.ID] = r
	}
	for _, j := range data.Journals {
		s.journals[j.ID] = j
	}
	for _, m := range data.MoodEntries {
		s.moods[m.ID] = m
	}
}

// Close is a no-op for the in-memory engine.
func (s *Store) Close() error { return nil }

func newID() string { return uuid.NewString() }

// sortNewestFirst orders by creation time, newest first. Ties keep input
// order, which matters for entries created in the same millisecond in tests.
func sortNewestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}
