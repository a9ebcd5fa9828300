package handlers

import (
	"net/http"

	"github.com/foryourmind/server/internal/api/dto"
	"github.com/foryourmind/server/internal/api/middleware"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
	"github.com/go-chi/chi/v5"
)

type AssessmentHandler struct {
	store storage.Store
}

func NewAssessmentHandler(store storage.Store) *AssessmentHandler {
	return &AssessmentHandler{store: store}
}

// List ensures the caller's default assessment exists before listing, so an
// account predating the feature still sees one.
func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if _, err := h.store.EnsureDefaultAssessment(r.Context(), userID); err != nil {
		writeStorageError(w, err)
		return
	}

	assessments, err := h.store.GetUserAssessments(r.Context(), userID)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if assessments == nil {
		assessments = []*models.WellnessAssessment{}
	}
	writeJSON(w, http.StatusOK, assessments)
}

func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.store.GetAssessment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

// Submit scores the answers server-side; any scores in the request body are
// ignored.
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitAssessmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	resp, err := h.store.SubmitAssessmentResponse(r.Context(), &models.AssessmentResponse{
		AssessmentID: chi.URLParam(r, "id"),
		UserID:       middleware.GetUserID(r.Context()),
		Responses:    req.Responses,
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AssessmentHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.store.GetAssessmentHistory(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if history == nil {
		history = []*models.AssessmentResponse{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *AssessmentHandler) Latest(w http.ResponseWriter, r *http.Request) {
	latest, err := h.store.GetLatestAssessmentResponse(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, latest)
}
