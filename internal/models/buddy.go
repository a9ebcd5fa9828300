package models

import "time"

// Buddy match statuses.
const (
	BuddyPending  = "pending"
	BuddyAccepted = "accepted"
	BuddyDeclined = "declined"
)

// BuddyMatch pairs two users for peer support. Either party may accept or
// decline a pending match.
type BuddyMatch struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	BuddyID       string    `json:"buddyId"`
	Compatibility float64   `json:"compatibility"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BuddySuggestion is a candidate buddy with a computed compatibility score.
// Only public profile fields are exposed.
type BuddySuggestion struct {
	UserID        string  `json:"userId"`
	DisplayName   string  `json:"displayName"`
	Compatibility float64 `json:"compatibility"`
}
