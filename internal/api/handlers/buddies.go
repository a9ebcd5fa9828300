package handlers

import (
	"net/http"

	"github.com/foryourmind/server/internal/api/dto"
	"github.com/foryourmind/server/internal/api/middleware"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
	"github.com/go-chi/chi/v5"
)

type BuddyHandler struct {
	store storage.Store
}

func NewBuddyHandler(store storage.Store) *BuddyHandler {
	return &BuddyHandler{store: store}
}

func (h *BuddyHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.store.SuggestBuddies(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if suggestions == nil {
		suggestions = []*models.BuddySuggestion{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (h *BuddyHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBuddyMatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	match, err := h.store.CreateBuddyMatch(r.Context(), &models.BuddyMatch{
		UserID:  middleware.GetUserID(r.Context()),
		BuddyID: req.BuddyID,
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, match)
}

// UpdateMatchStatus accepts or declines a match. Only a participant may act
// on it; outsiders see 404.
func (h *BuddyHandler) UpdateMatchStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateBuddyMatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())
	matches, err := h.store.ListBuddyMatches(r.Context(), userID)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	var participant bool
	for _, m := range matches {
		if m.ID == id {
			participant = true
			break
		}
	}
	if !participant {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	match, err := h.store.UpdateBuddyMatchStatus(r.Context(), id, req.Status)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (h *BuddyHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.store.ListBuddyMatches(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if matches == nil {
		matches = []*models.BuddyMatch{}
	}
	writeJSON(w, http.StatusOK, matches)
}
