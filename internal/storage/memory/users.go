package memory

import (
	"context"
	"strings"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, existing := range s.users {
		if strings.ToLower(existing.Email) == email {
			return nil, common.ErrAlreadyExists
		}
	}

	u := *user
	u.ID = newID()
	u.CreatedAt = time.Now().UTC()
	if u.Preferences == nil {
		u.Preferences = map[string]any{}
	}
	s.users[u.ID] = &u

	out := u
	return &out, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range s.users {
		if strings.ToLower(u.Email) == email {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *Store) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}
	if upd.Timezone != nil {
		u.Timezone = *upd.Timezone
	}
	if upd.Preferences != nil {
		u.Preferences = upd.Preferences
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	out := *u
	return &out, nil
}

// DeleteUser removes the user and every dependent row, mirroring the manual
// cascade the SQL engines perform.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return common.ErrNotFound
	}
	for k, v := range s.responses {
		if v.UserID == id {
			delete(s.responses, k)
		}
	}
	for k, v := range s.assessments {
		if v.UserID == id {
			delete(s.assessments, k)
		}
	}
	for k, v := range s.progress {
		if v.UserID == id {
			delete(s.progress, k)
		}
	}
	for k, v := range s.appointments {
		if v.UserID == id {
			delete(s.appointments, k)
		}
	}
	for k, v := range s.moods {
		if v.UserID == id {
			delete(s.moods, k)
		}
	}
	for k, v := range s.journals {
		if v.UserID == id {
			delete(s.journals, k)
		}
	}
	for k, v := range s.matches {
		if v.UserID == id || v.BuddyID == id {
			delete(s.matches, k)
		}
	}
	for k, v := range s.employees {
		if v.UserID == id {
			delete(s.employees, k)
		}
	}
	for k, v := range s.tokens {
		if v.UserID == id {
			delete(s.tokens, k)
		}
	}
	delete(s.users, id)
	return nil
}

// VerifyPassword returns ErrNotFound for an unknown email and for a wrong
// password alike; callers must not be able to tell which failed.
func (s *Store) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range s.users {
		if strings.ToLower(u.Email) == email {
			if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
				return nil, common.ErrNotFound
			}
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}
