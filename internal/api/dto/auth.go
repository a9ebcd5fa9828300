package dto

import (
	"strings"

	"github.com/foryourmind/server/internal/models"
)

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role,omitempty"`
}

func (r RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !strings.Contains(r.Email, "@") {
		errors["email"] = "Email is invalid"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	} else if len(r.Password) < 8 {
		errors["password"] = "Password must be at least 8 characters"
	}
	if r.DisplayName == "" {
		errors["displayName"] = "Display name is required"
	}
	switch r.Role {
	case "", models.RoleIndividual, models.RoleManager, models.RoleAdmin:
	default:
		errors["role"] = "Role is invalid"
	}

	return errors
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

// AuthResponse is returned by register, login and refresh. The refresh token
// travels in an http-only cookie, never in the body.
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

type UserDTO struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
	}
}

type UpdateProfileRequest struct {
	DisplayName *string        `json:"displayName,omitempty"`
	Avatar      *string        `json:"avatar,omitempty"`
	Timezone    *string        `json:"timezone,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

func (r UpdateProfileRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.DisplayName != nil && *r.DisplayName == "" {
		errors["displayName"] = "Display name must not be empty"
	}

	return errors
}
