package models

import "time"

// RefreshToken is a server-stored opaque session credential. The token string
// itself is the primary key; rotation deletes the row and issues a new one.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
