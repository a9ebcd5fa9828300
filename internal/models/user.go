// Package models defines the domain entities shared by the storage engines
// and the HTTP layer. Fields that must never reach a client (password hashes)
// are excluded from JSON serialization here rather than in every handler.
package models

import "time"

// Roles a user account can hold. Role checks happen server-side; the value a
// client claims is never trusted.
const (
	RoleIndividual = "individual"
	RoleManager    = "manager"
	RoleAdmin      = "admin"
)

// User is an account holder. Preferences is an opaque key-value bag owned by
// the client (theme, notification settings and the like).
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	DisplayName  string         `json:"displayName"`
	Role         string         `json:"role"`
	Avatar       string         `json:"avatar,omitempty"`
	Timezone     string         `json:"timezone,omitempty"`
	Preferences  map[string]any `json:"preferences,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// UserUpdate carries a partial profile update. Nil fields are left untouched
// by the storage engines.
type UserUpdate struct {
	DisplayName  *string
	Avatar       *string
	Timezone     *string
	Preferences  map[string]any
	PasswordHash *string
}
