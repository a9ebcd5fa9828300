package dto

import "time"

// Mood scores run 1 (lowest) through 5 (highest) everywhere they appear.
const (
	MoodMin = 1
	MoodMax = 5
)

type CreateJournalRequest struct {
	Mood      int      `json:"mood"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags,omitempty"`
	IsPrivate *bool    `json:"isPrivate,omitempty"`
}

func (r CreateJournalRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Content == "" {
		errors["content"] = "Content is required"
	}
	if r.Mood < MoodMin || r.Mood > MoodMax {
		errors["mood"] = "Mood must be between 1 and 5"
	}

	return errors
}

type UpdateJournalRequest struct {
	Mood      *int     `json:"mood,omitempty"`
	Content   *string  `json:"content,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	IsPrivate *bool    `json:"isPrivate,omitempty"`
}

func (r UpdateJournalRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Mood != nil && (*r.Mood < MoodMin || *r.Mood > MoodMax) {
		errors["mood"] = "Mood must be between 1 and 5"
	}
	if r.Content != nil && *r.Content == "" {
		errors["content"] = "Content must not be empty"
	}

	return errors
}

type CreateMoodEntryRequest struct {
	Mood  int    `json:"mood"`
	Notes string `json:"notes,omitempty"`
}

func (r CreateMoodEntryRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Mood < MoodMin || r.Mood > MoodMax {
		errors["mood"] = "Mood must be between 1 and 5"
	}

	return errors
}

type CreateRantRequest struct {
	Content string `json:"content"`
}

func (r CreateRantRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Content == "" {
		errors["content"] = "Content is required"
	}

	return errors
}

type CreateAppointmentRequest struct {
	TherapistID string    `json:"therapistId"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	Notes       string    `json:"notes,omitempty"`
}

func (r CreateAppointmentRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.TherapistID == "" {
		errors["therapistId"] = "Therapist is required"
	}
	if r.StartsAt.IsZero() {
		errors["startsAt"] = "Start time is required"
	}
	if r.EndsAt.IsZero() {
		errors["endsAt"] = "End time is required"
	} else if !r.StartsAt.IsZero() && !r.EndsAt.After(r.StartsAt) {
		errors["endsAt"] = "End time must be after start time"
	}

	return errors
}

type UpdateAppointmentRequest struct {
	StartsAt *time.Time `json:"startsAt,omitempty"`
	EndsAt   *time.Time `json:"endsAt,omitempty"`
	Status   *string    `json:"status,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

func (r UpdateAppointmentRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Status != nil {
		switch *r.Status {
		case "pending", "confirmed", "completed", "cancelled":
		default:
			errors["status"] = "Status is invalid"
		}
	}
	if r.StartsAt != nil && r.EndsAt != nil && !r.EndsAt.After(*r.StartsAt) {
		errors["endsAt"] = "End time must be after start time"
	}

	return errors
}

type SaveCourseProgressRequest struct {
	Percent     float64 `json:"percent"`
	ModulesDone int     `json:"modulesDone"`
}

func (r SaveCourseProgressRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Percent < 0 || r.Percent > 100 {
		errors["percent"] = "Percent must be between 0 and 100"
	}
	if r.ModulesDone < 0 {
		errors["modulesDone"] = "Modules done must not be negative"
	}

	return errors
}

type CreateOrganizationRequest struct {
	Name     string         `json:"name"`
	Settings map[string]any `json:"settings,omitempty"`
}

func (r CreateOrganizationRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name is required"
	}

	return errors
}

type UpdateOrganizationRequest struct {
	Name     *string        `json:"name,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
}

func (r UpdateOrganizationRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name != nil && *r.Name == "" {
		errors["name"] = "Name must not be empty"
	}

	return errors
}

type AddEmployeeRequest struct {
	UserID     string `json:"userId"`
	JobTitle   string `json:"jobTitle,omitempty"`
	Department string `json:"department,omitempty"`
}

func (r AddEmployeeRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.UserID == "" {
		errors["userId"] = "User is required"
	}

	return errors
}

type CreateBuddyMatchRequest struct {
	BuddyID string `json:"buddyId"`
}

func (r CreateBuddyMatchRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.BuddyID == "" {
		errors["buddyId"] = "Buddy is required"
	}

	return errors
}

type UpdateBuddyMatchRequest struct {
	Status string `json:"status"`
}

func (r UpdateBuddyMatchRequest) Validate() map[string]string {
	errors := make(map[string]string)

	switch r.Status {
	case "accepted", "declined":
	default:
		errors["status"] = "Status must be accepted or declined"
	}

	return errors
}

type SubmitAssessmentRequest struct {
	Responses map[string]int `json:"responses"`
}

func (r SubmitAssessmentRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if len(r.Responses) == 0 {
		errors["responses"] = "Responses are required"
	}
	for q, v := range r.Responses {
		if v < 1 || v > 5 {
			errors["responses"] = "Answer for " + q + " must be between 1 and 5"
			break
		}
	}

	return errors
}
