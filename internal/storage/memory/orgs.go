package memory

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
)

func (s *Store) CreateOrganization(ctx context.Context, org *models.Organization) (*models.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := *org
	o.ID = newID()
	o.CreatedAt = time.Now().UTC()
	if o.Settings == nil {
		o.Settings = map[string]any{}
	}
	s.organizations[o.ID] = &o

	out := o
	return &out, nil
}

func (s *Store) GetOrganization(ctx context.Context, id string) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.organizations[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *o
	return &out, nil
}

func (s *Store) UpdateOrganization(ctx context.Context, id string, upd models.OrganizationUpdate) (*models.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.organizations[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if upd.Name != nil {
		o.Name = *upd.Name
	}
	if upd.Settings != nil {
		o.Settings = upd.Settings
	}
	if upd.WellnessScore != nil {
		o.WellnessScore = *upd.WellnessScore
	}
	out := *o
	return &out, nil
}

func (s *Store) AddEmployee(ctx context.Context, emp *models.Employee) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.organizations[emp.OrganizationID]; !ok {
		return nil, common.ErrNotFound
	}
	if _, ok := s.users[emp.UserID]; !ok {
		return nil, common.ErrNotFound
	}

	e := *emp
	e.ID = newID()
	if e.AnonymousID == "" {
		anon, err := common.MakeRandHexString(8)
		if err != nil {
			return nil, err
		}
		e.AnonymousID = "anon-" + anon
	}
	s.employees[e.ID] = &e

	out := e
	return &out, nil
}

func (s *Store) ListEmployeesByOrganization(ctx context.Context, orgID string) ([]*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Employee
	for _, e := range s.employees {
		if e.OrganizationID == orgID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AnonymousID < out[j].AnonymousID })
	return out, nil
}

// GetWellnessMetrics aggregates the last 30 days of employee mood data.
// Results only carry departments and anonymized identifiers; user ids never
// leave this method.
func (s *Store) GetWellnessMetrics(ctx context.Context, orgID string) (*models.WellnessMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.organizations[orgID]; !ok {
		return nil, common.ErrNotFound
	}

	cutoff := time.Now().UTC().Add(-30 * 24 * time.Hour)
	metrics := &models.WellnessMetrics{OrganizationID: orgID}

	type bucket struct {
		headcount    int
		participants int
		moodSum      float64
		moodCount    int
	}
	departments := map[string]*bucket{}

	var streakSum, moodSum float64
	var moodCount, participants int

	for _, e := range s.employees {
		if e.OrganizationID != orgID {
			continue
		}
		metrics.EmployeeCount++
		streakSum += float64(e.WellnessStreak)

		b := departments[e.Department]
		if b == nil {
			b = &bucket{}
			departments[e.Department] = b
		}
		b.headcount++

		participated := false
		for _, m := range s.moods {
			if m.UserID != e.UserID || m.CreatedAt.Before(cutoff) {
				continue
			}
			participated = true
			moodSum += float64(m.Mood)
			moodCount++
			b.moodSum += float64(m.Mood)
			b.moodCount++
		}
		if participated {
			participants++
			b.participants++
		}
	}

	if moodCount > 0 {
		metrics.AverageMood = round1(moodSum / float64(moodCount))
	}
	if metrics.EmployeeCount > 0 {
		metrics.Participation = round1(float64(participants) / float64(metrics.EmployeeCount) * 100)
		metrics.AverageStreak = round1(streakSum / float64(metrics.EmployeeCount))
	}

	names := make([]string, 0, len(departments))
	for name := range departments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b := departments[name]
		dm := models.DepartmentMetrics{
			Department:   name,
			Headcount:    b.headcount,
			Participants: b.participants,
		}
		if b.moodCount > 0 {
			dm.AverageMood = round1(b.moodSum / float64(b.moodCount))
		}
		metrics.Departments = append(metrics.Departments, dm)
	}

	return metrics, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
