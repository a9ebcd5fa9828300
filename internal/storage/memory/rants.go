package memory

import (
	"context"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
)

func (s *Store) CreateRant(ctx context.Context, rant *models.AnonymousRant) (*models.AnonymousRant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := *rant
	r.ID = newID()
	r.CreatedAt = time.Now().UTC()
	if r.AnonToken == "" {
		token, err := common.MakeRandHexString(8)
		if err != nil {
			return nil, err
		}
		r.AnonToken = token
	}
	s.rants[r.ID] = &r

	out := r
	return &out, nil
}

func (s *Store) ListRants(ctx context.Context) ([]*models.AnonymousRant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.AnonymousRant, 0, len(s.rants))
	for _, r := range s.rants {
		cp := *r
		out = append(out, &cp)
	}
	sortNewestFirst(out, func(r *models.AnonymousRant) time.Time { return r.CreatedAt })
	return out, nil
}

func (s *Store) SupportRant(ctx context.Context, id string) (*models.AnonymousRant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rants[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	r.SupportCount++
	out := *r
	return &out, nil
}
