package handlers

import (
	"net/http"
	"strconv"

	"github.com/foryourmind/server/internal/api/dto"
	"github.com/foryourmind/server/internal/api/middleware"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
)

type MoodHandler struct {
	store storage.Store
}

func NewMoodHandler(store storage.Store) *MoodHandler {
	return &MoodHandler{store: store}
}

func (h *MoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMoodEntryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	entry, err := h.store.CreateMoodEntry(r.Context(), &models.MoodEntry{
		UserID: middleware.GetUserID(r.Context()),
		Mood:   req.Mood,
		Notes:  req.Notes,
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// List returns the trailing mood window; ?days defaults to 7.
func (h *MoodHandler) List(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "days must be a non-negative integer")
			return
		}
		days = n
	}

	entries, err := h.store.GetUserMoodEntries(r.Context(), middleware.GetUserID(r.Context()), days)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if entries == nil {
		entries = []*models.MoodEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
