package models

import "time"

// AnonymousRant is a vent post created without authentication. It carries an
// anonymous token instead of a user reference; nothing in the system may join
// a rant back to an account.
type AnonymousRant struct {
	ID           string    `json:"id"`
	AnonToken    string    `json:"anonToken"`
	Content      string    `json:"content"`
	Sentiment    float64   `json:"sentiment"`
	SupportCount int       `json:"supportCount"`
	CreatedAt    time.Time `json:"createdAt"`
}
