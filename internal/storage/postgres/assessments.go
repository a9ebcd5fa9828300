package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
	"github.com/foryourmind/server/internal/storage/rowcodec"
)

const assessmentColumns = `id, user_id, type, title, questions, created_at`

func scanAssessment(row rowScanner) (*models.WellnessAssessment, error) {
	var a models.WellnessAssessment
	var questions string
	if err := row.Scan(&a.ID, &a.UserID, &a.Type, &a.Title, &questions, &a.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(questions), &a.Questions); err != nil {
		a.Questions = []models.AssessmentQuestion{}
	}
	return &a, nil
}

// EnsureDefaultAssessment provisions the comprehensive assessment for a user
// who has none. Called at registration; idempotent across calls.
func (s *Store) EnsureDefaultAssessment(ctx context.Context, userID string) (*models.WellnessAssessment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+assessmentColumns+` FROM wellness_assessments WHERE user_id = $1 LIMIT 1`, userID)
	a, err := scanAssessment(row)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get assessment: %w", err)
	}

	a = &models.WellnessAssessment{
		ID:        newID(),
		UserID:    userID,
		Type:      "comprehensive",
		Title:     "Comprehensive Wellness Check-in",
		Questions: storage.DefaultQuestions(),
		CreatedAt: time.Now().UTC(),
	}
	questions, err := rowcodec.EncodeJSON(a.Questions, "[]")
	if err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO wellness_assessments (`+assessmentColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.UserID, a.Type, a.Title, questions, a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert assessment: %w", err)
	}
	return a, nil
}

func (s *Store) GetUserAssessments(ctx context.Context, userID string) ([]*models.WellnessAssessment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+assessmentColumns+` FROM wellness_assessments
		 WHERE user_id = $1 OR user_id = ''
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		s.log.Error(ctx, "list assessments failed", "error", err)
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []*models.WellnessAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) GetAssessment(ctx context.Context, id string) (*models.WellnessAssessment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+assessmentColumns+` FROM wellness_assessments WHERE id = $1`, id)
	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		s.log.Error(ctx, "get assessment failed", "error", err)
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	return a, nil
}

const responseColumns = `id, assessment_id, user_id, responses, total_score, category_scores, recommendations, completed_at`

func scanResponse(row rowScanner) (*models.AssessmentResponse, error) {
	var r models.AssessmentResponse
	var responses, categoryScores, recommendations string
	if err := row.Scan(&r.ID, &r.AssessmentID, &r.UserID, &responses,
		&r.TotalScore, &categoryScores, &recommendations, &r.CompletedAt); err != nil {
		return nil, err
	}
	r.Responses = rowcodec.DecodeIntMap(responses)
	r.CategoryScores = rowcodec.DecodeFloatMap(categoryScores)
	r.Recommendations = rowcodec.DecodeStringSlice(recommendations)
	return &r, nil
}

// SubmitAssessmentResponse scores the answers server-side and persists the
// result; score fields supplied by the caller are ignored.
func (s *Store) SubmitAssessmentResponse(ctx context.Context, resp *models.AssessmentResponse) (*models.AssessmentResponse, error) {
	a, err := s.GetAssessment(ctx, resp.AssessmentID)
	if err != nil {
		return nil, err
	}

	r := *resp
	r.ID = newID()
	r.CompletedAt = time.Now().UTC()
	r.TotalScore, r.CategoryScores, r.Recommendations = storage.ScoreAssessment(a, r.Responses)

	responses, err := rowcodec.EncodeJSON(r.Responses, "{}")
	if err != nil {
		return nil, fmt.Errorf("encode responses: %w", err)
	}
	categoryScores, err := rowcodec.EncodeJSON(r.CategoryScores, "{}")
	if err != nil {
		return nil, fmt.Errorf("encode category scores: %w", err)
	}
	recommendations, err := rowcodec.EncodeJSON(r.Recommendations, "[]")
	if err != nil {
		return nil, fmt.Errorf("encode recommendations: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		`INSERT INTO assessment_responses (`+responseColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+responseColumns,
		r.ID, r.AssessmentID, r.UserID, responses, r.TotalScore,
		categoryScores, recommendations, r.CompletedAt)
	out, err := scanResponse(row)
	if err != nil {
		return nil, fmt.Errorf("insert assessment response: %w", err)
	}
	return out, nil
}

func (s *Store) GetAssessmentHistory(ctx context.Context, userID string) ([]*models.AssessmentResponse, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+responseColumns+` FROM assessment_responses
		 WHERE user_id = $1 ORDER BY completed_at DESC`, userID)
	if err != nil {
		s.log.Error(ctx, "list assessment history failed", "error", err)
		return nil, fmt.Errorf("list assessment history: %w", err)
	}
	defer rows.Close()

	var out []*models.AssessmentResponse
	for rows.Next() {
		r, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) GetLatestAssessmentResponse(ctx context.Context, userID string) (*models.AssessmentResponse, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+responseColumns+` FROM assessment_responses
		 WHERE user_id = $1 ORDER BY completed_at DESC LIMIT 1`, userID)
	r, err := scanResponse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		s.log.Error(ctx, "get latest assessment response failed", "error", err)
		return nil, fmt.Errorf("get latest assessment response: %w", err)
	}
	return r, nil
}
