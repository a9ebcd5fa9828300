package memory

import (
	"context"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
)

// SuggestBuddies proposes users who are not already matched with the caller.
// Compatibility is a deterministic score derived from the id pair so repeated
// calls return stable suggestions.
func (s *Store) SuggestBuddies(ctx context.Context, userID string) ([]*models.BuddySuggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, common.ErrNotFound
	}

	matched := map[string]bool{}
	for _, m := range s.matches {
		if m.UserID == userID {
			matched[m.BuddyID] = true
		}
		if m.BuddyID == userID {
			matched[m.UserID] = true
		}
	}

	var out []*models.BuddySuggestion
	for id, u := range s.users {
		if id == userID || matched[id] {
			continue
		}
		out = append(out, &models.BuddySuggestion{
			UserID:        id,
			DisplayName:   u.DisplayName,
			Compatibility: storage.Compatibility(userID, id),
		})
	}
	storage.SortSuggestions(out)
	return out, nil
}

func (s *Store) CreateBuddyMatch(ctx context.Context, match *models.BuddyMatch) (*models.BuddyMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[match.UserID]; !ok {
		return nil, common.ErrNotFound
	}
	if _, ok := s.users[match.BuddyID]; !ok {
		return nil, common.ErrNotFound
	}

	m := *match
	m.ID = newID()
	m.CreatedAt = time.Now().UTC()
	if m.Status == "" {
		m.Status = models.BuddyPending
	}
	if m.Compatibility == 0 {
		m.Compatibility = storage.Compatibility(m.UserID, m.BuddyID)
	}
	s.matches[m.ID] = &m

	out := m
	return &out, nil
}

func (s *Store) UpdateBuddyMatchStatus(ctx context.Context, id, status string) (*models.BuddyMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	m.Status = status
	out := *m
	return &out, nil
}

func (s *Store) ListBuddyMatches(ctx context.Context, userID string) ([]*models.BuddyMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.BuddyMatch
	for _, m := range s.matches {
		if m.UserID == userID || m.BuddyID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out, func(m *models.BuddyMatch) time.Time { return m.CreatedAt })
	return out, nil
}

