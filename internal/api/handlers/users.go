package handlers

import (
	"net/http"

	"github.com/foryourmind/server/internal/api/dto"
	"github.com/foryourmind/server/internal/api/middleware"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
)

type UserHandler struct {
	store storage.Store
}

func NewUserHandler(store storage.Store) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.store.UpdateUser(r.Context(), middleware.GetUserID(r.Context()), models.UserUpdate{
		DisplayName: req.DisplayName,
		Avatar:      req.Avatar,
		Timezone:    req.Timezone,
		Preferences: req.Preferences,
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteMe removes the account and everything attached to it.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteUser(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "account deleted"})
}
