package handlers

import (
	"net/http"

	"github.com/foryourmind/server/internal/api/dto"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
	"github.com/go-chi/chi/v5"
)

// RantHandler serves the anonymous venting wall. No authentication on any of
// these routes; a rant is never joined back to an account.
type RantHandler struct {
	store storage.Store
}

func NewRantHandler(store storage.Store) *RantHandler {
	return &RantHandler{store: store}
}

func (h *RantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRantRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	rant, err := h.store.CreateRant(r.Context(), &models.AnonymousRant{Content: req.Content})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rant)
}

func (h *RantHandler) List(w http.ResponseWriter, r *http.Request) {
	rants, err := h.store.ListRants(r.Context())
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if rants == nil {
		rants = []*models.AnonymousRant{}
	}
	writeJSON(w, http.StatusOK, rants)
}

func (h *RantHandler) Support(w http.ResponseWriter, r *http.Request) {
	rant, err := h.store.SupportRant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rant)
}
