package models

import "time"

// Journal is a private diary entry. Only the owner may read or mutate it;
// the API reports foreign journals as not found.
type Journal struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Mood      int       `json:"mood"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	IsPrivate bool      `json:"isPrivate"`
	CreatedAt time.Time `json:"createdAt"`
}

// JournalUpdate carries a partial journal update.
type JournalUpdate struct {
	Mood      *int
	Content   *string
	Tags      []string
	IsPrivate *bool
}

// MoodEntry is an append-only mood data point. There is no update endpoint;
// corrections are new entries.
type MoodEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Mood      int       `json:"mood"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
