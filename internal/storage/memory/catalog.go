package memory

import (
	"context"
	"sort"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
)

func (s *Store) ListTherapists(ctx context.Context) ([]*models.Therapist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Therapist, 0, len(s.therapists))
	for _, t := range s.therapists {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetTherapist(ctx context.Context, id string) (*models.Therapist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.therapists[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *t
	return &out, nil
}

func (s *Store) CreateAppointment(ctx context.Context, appt *models.Appointment) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.therapists[appt.TherapistID]; !ok {
		return nil, common.ErrNotFound
	}
	a := *appt
	a.ID = newID()
	if a.Status == "" {
		a.Status = models.AppointmentPending
	}
	s.appointments[a.ID] = &a

	out := a
	return &out, nil
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.appointments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (s *Store) GetUserAppointments(ctx context.Context, userID string) ([]*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Appointment
	for _, a := range s.appointments {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	// Appointments are the one list ordered earliest-first.
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, id string, upd models.AppointmentUpdate) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.appointments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if upd.StartsAt != nil {
		a.StartsAt = *upd.StartsAt
	}
	if upd.EndsAt != nil {
		a.EndsAt = *upd.EndsAt
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	if upd.Notes != nil {
		a.Notes = *upd.Notes
	}
	out := *a
	return &out, nil
}

func (s *Store) ListCourses(ctx context.Context) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *Store) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (s *Store) SaveCourseProgress(ctx context.Context, progress *models.CourseProgress) (*models.CourseProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[progress.CourseID]; !ok {
		return nil, common.ErrNotFound
	}

	p := *progress
	p.UpdatedAt = time.Now().UTC()
	for k, existing := range s.progress {
		if existing.UserID == p.UserID && existing.CourseID == p.CourseID {
			p.ID = existing.ID
			delete(s.progress, k)
		}
	}
	if p.ID == "" {
		p.ID = newID()
	}
	s.progress[p.ID] = &p

	out := p
	return &out, nil
}

func (s *Store) GetUserCourseProgress(ctx context.Context, userID string) ([]*models.CourseProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.CourseProgress
	for _, p := range s.progress {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out, func(p *models.CourseProgress) time.Time { return p.UpdatedAt })
	return out, nil
}
