package memory

import (
	"context"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
)

func (s *Store) CreateJournal(ctx context.Context, journal *models.Journal) (*models.Journal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j := *journal
	j.ID = newID()
	j.CreatedAt = time.Now().UTC()
	if j.Tags == nil {
		j.Tags = []string{}
	}
	s.journals[j.ID] = &j

	out := j
	return &out, nil
}

func (s *Store) GetJournal(ctx context.Context, id string) (*models.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.journals[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *j
	return &out, nil
}

func (s *Store) GetUserJournals(ctx context.Context, userID string) ([]*models.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Journal
	for _, j := range s.journals {
		if j.UserID == userID {
			cp := *j
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out, func(j *models.Journal) time.Time { return j.CreatedAt })
	return out, nil
}

func (s *Store) UpdateJournal(ctx context.Context, id string, upd models.JournalUpdate) (*models.Journal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.journals[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if upd.Mood != nil {
		j.Mood = *upd.Mood
	}
	if upd.Content != nil {
		j.Content = *upd.Content
	}
	if upd.Tags != nil {
		j.Tags = upd.Tags
	}
	if upd.IsPrivate != nil {
		j.IsPrivate = *upd.IsPrivate
	}
	out := *j
	return &out, nil
}

func (s *Store) DeleteJournal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.journals[id]; !ok {
		return common.ErrNotFound
	}
	delete(s.journals, id)
	return nil
}

func (s *Store) CreateMoodEntry(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := *entry
	m.ID = newID()
	m.CreatedAt = time.Now().UTC()
	s.moods[m.ID] = &m

	out := m
	return &out, nil
}

func (s *Store) GetUserMoodEntries(ctx context.Context, userID string, days int) ([]*models.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	var out []*models.MoodEntry
	for _, m := range s.moods {
		if m.UserID != userID {
			continue
		}
		// Boundary inclusive: an entry created exactly at the cutoff counts.
		if m.CreatedAt.Before(cutoff) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sortNewestFirst(out, func(m *models.MoodEntry) time.Time { return m.CreatedAt })
	return out, nil
}
