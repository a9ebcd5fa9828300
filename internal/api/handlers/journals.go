package handlers

import (
	"net/http"

	"github.com/foryourmind/server/internal/api/dto"
	"github.com/foryourmind/server/internal/api/middleware"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
	"github.com/go-chi/chi/v5"
)

type JournalHandler struct {
	store storage.Store
}

func NewJournalHandler(store storage.Store) *JournalHandler {
	return &JournalHandler{store: store}
}

// getOwned fetches a journal and hides its existence from non-owners.
func (h *JournalHandler) getOwned(w http.ResponseWriter, r *http.Request) *models.Journal {
	journal, err := h.store.GetJournal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStorageError(w, err)
		return nil
	}
	if journal.UserID != middleware.GetUserID(r.Context()) {
		writeError(w, http.StatusNotFound, "not found")
		return nil
	}
	return journal
}

func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateJournalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	isPrivate := true
	if req.IsPrivate != nil {
		isPrivate = *req.IsPrivate
	}
	journal, err := h.store.CreateJournal(r.Context(), &models.Journal{
		UserID:    middleware.GetUserID(r.Context()),
		Mood:      req.Mood,
		Content:   req.Content,
		Tags:      req.Tags,
		IsPrivate: isPrivate,
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, journal)
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	journals, err := h.store.GetUserJournals(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if journals == nil {
		journals = []*models.Journal{}
	}
	writeJSON(w, http.StatusOK, journals)
}

func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	journal := h.getOwned(w, r)
	if journal == nil {
		return
	}
	writeJSON(w, http.StatusOK, journal)
}

func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	journal := h.getOwned(w, r)
	if journal == nil {
		return
	}

	var req dto.UpdateJournalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	updated, err := h.store.UpdateJournal(r.Context(), journal.ID, models.JournalUpdate{
		Mood:      req.Mood,
		Content:   req.Content,
		Tags:      req.Tags,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	journal := h.getOwned(w, r)
	if journal == nil {
		return
	}

	if err := h.store.DeleteJournal(r.Context(), journal.ID); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "journal deleted"})
}
