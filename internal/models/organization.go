package models

import "time"

// Organization groups employees under an administrating user. Settings is an
// opaque key-value bag; WellnessScore is the last computed aggregate for the
// org (0 when never computed).
type Organization struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	AdminID       string         `json:"adminId"`
	Settings      map[string]any `json:"settings,omitempty"`
	WellnessScore float64        `json:"wellnessScore"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// OrganizationUpdate carries a partial organization update.
type OrganizationUpdate struct {
	Name          *string
	Settings      map[string]any
	WellnessScore *float64
}

// Employee links a user to an organization. AnonymousID stands in for the
// user id inside analytics so aggregates cannot be joined back to a person.
type Employee struct {
	ID             string `json:"id"`
	UserID         string `json:"userId"`
	OrganizationID string `json:"organizationId"`
	JobTitle       string `json:"jobTitle,omitempty"`
	Department     string `json:"department,omitempty"`
	AnonymousID    string `json:"anonymousId"`
	WellnessStreak int    `json:"wellnessStreak"`
}
