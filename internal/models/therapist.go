package models

import "time"

// Therapist is a bookable practitioner. Availability is an opaque structure
// (weekday -> slots) rendered by the client.
type Therapist struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Specialization string         `json:"specialization"`
	LicenseNumber  string         `json:"licenseNumber"`
	ProfileURL     string         `json:"profileUrl,omitempty"`
	Rating         float64        `json:"rating"`
	Availability   map[string]any `json:"availability,omitempty"`
}

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment links a user to a therapist for a time slot. Owner-only access;
// status transitions go through the update endpoint.
type Appointment struct {
	ID          string    `json:"id"`
	TherapistID string    `json:"therapistId"`
	UserID      string    `json:"userId"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
}

// AppointmentUpdate carries a partial appointment update.
type AppointmentUpdate struct {
	StartsAt *time.Time
	EndsAt   *time.Time
	Status   *string
	Notes    *string
}
