package memory

import (
	"context"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
)

// EnsureDefaultAssessment provisions the comprehensive assessment for a user
// if they have none yet. Called at registration; idempotent.
func (s *Store) EnsureDefaultAssessment(ctx context.Context, userID string) (*models.WellnessAssessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.assessments {
		if a.UserID == userID {
			out := *a
			return &out, nil
		}
	}

	a := &models.WellnessAssessment{
		ID:        newID(),
		UserID:    userID,
		Type:      "comprehensive",
		Title:     "Comprehensive Wellness Check-in",
		Questions: storage.DefaultQuestions(),
		CreatedAt: time.Now().UTC(),
	}
	s.assessments[a.ID] = a

	out := *a
	return &out, nil
}

func (s *Store) GetUserAssessments(ctx context.Context, userID string) ([]*models.WellnessAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.WellnessAssessment
	for _, a := range s.assessments {
		if a.UserID == userID || a.UserID == "" {
			cp := *a
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out, func(a *models.WellnessAssessment) time.Time { return a.CreatedAt })
	return out, nil
}

func (s *Store) GetAssessment(ctx context.Context, id string) (*models.WellnessAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.assessments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *a
	return &out, nil
}

// SubmitAssessmentResponse scores the raw answers and persists the result.
// Scores and recommendations are computed server-side; anything the client
// sends in those fields is ignored.
func (s *Store) SubmitAssessmentResponse(ctx context.Context, resp *models.AssessmentResponse) (*models.AssessmentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assessments[resp.AssessmentID]
	if !ok {
		return nil, common.ErrNotFound
	}

	r := *resp
	r.ID = newID()
	r.CompletedAt = time.Now().UTC()
	r.TotalScore, r.CategoryScores, r.Recommendations = storage.ScoreAssessment(a, r.Responses)
	if r.Responses == nil {
		r.Responses = map[string]int{}
	}
	s.responses[r.ID] = &r

	out := r
	return &out, nil
}

func (s *Store) GetAssessmentHistory(ctx context.Context, userID string) ([]*models.AssessmentResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.AssessmentResponse
	for _, r := range s.responses {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out, func(r *models.AssessmentResponse) time.Time { return r.CompletedAt })
	return out, nil
}

func (s *Store) GetLatestAssessmentResponse(ctx context.Context, userID string) (*models.AssessmentResponse, error) {
	history, err := s.GetAssessmentHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, common.ErrNotFound
	}
	return history[0], nil
}
