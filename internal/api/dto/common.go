// Package dto defines the request and response shapes of the HTTP API.
// Requests carry a Validate method returning per-field messages; an empty
// map means the request is well formed.
package dto

// ErrorResponse is the uniform error body. Details carries per-field
// validation messages on 400 responses.
type ErrorResponse struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse acknowledges operations with no other payload.
type SuccessResponse struct {
	Message string `json:"message"`
}
