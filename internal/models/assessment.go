package models

import "time"

// Assessment question categories used by the default comprehensive
// assessment. Category scores and recommendations are keyed by these.
const (
	CategorySleep  = "sleep"
	CategoryStress = "stress"
	CategoryMood   = "mood"
	CategoryEnergy = "energy"
	CategorySocial = "social"
)

// AssessmentQuestion is one item on a wellness assessment. Options are the
// selectable scale labels; the submitted answer is the 1-based option index.
type AssessmentQuestion struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Category string   `json:"category"`
	Options  []string `json:"options"`
}

// WellnessAssessment is a questionnaire owned by a user (or org-wide when
// UserID is empty). Provisioned once per user and immutable afterwards.
type WellnessAssessment struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId,omitempty"`
	Type      string               `json:"type"`
	Title     string               `json:"title"`
	Questions []AssessmentQuestion `json:"questions"`
	CreatedAt time.Time            `json:"createdAt"`
}

// AssessmentResponse is one submission against an assessment. Responses maps
// question id to the chosen option index; CategoryScores holds per-category
// averages on the option scale; TotalScore is normalized to 0..10.
type AssessmentResponse struct {
	ID              string             `json:"id"`
	AssessmentID    string             `json:"assessmentId"`
	UserID          string             `json:"userId"`
	Responses       map[string]int     `json:"responses"`
	TotalScore      float64            `json:"totalScore"`
	CategoryScores  map[string]float64 `json:"categoryScores"`
	Recommendations []string           `json:"recommendations"`
	CompletedAt     time.Time          `json:"completedAt"`
}
