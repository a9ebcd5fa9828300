package models

import "time"

// Course is static seeded wellness content. Modules is an opaque structure
// (ordered lessons) rendered by the client.
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Modules     []any  `json:"modules,omitempty"`
}

// CourseProgress tracks how far a user is through a course. One row per
// user/course pair, replaced on every save.
type CourseProgress struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CourseID    string    `json:"courseId"`
	Percent     float64   `json:"percent"`
	ModulesDone int       `json:"modulesDone"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
