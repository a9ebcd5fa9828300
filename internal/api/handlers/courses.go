package handlers

import (
	"net/http"

	"github.com/foryourmind/server/internal/api/dto"
	"github.com/foryourmind/server/internal/api/middleware"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
	"github.com/go-chi/chi/v5"
)

type CourseHandler struct {
	store storage.Store
}

func NewCourseHandler(store storage.Store) *CourseHandler {
	return &CourseHandler{store: store}
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.store.ListCourses(r.Context())
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	course, err := h.store.GetCourse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// SaveProgress upserts the caller's progress for the course in the path.
func (h *CourseHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveCourseProgressRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	progress, err := h.store.SaveCourseProgress(r.Context(), &models.CourseProgress{
		UserID:      middleware.GetUserID(r.Context()),
		CourseID:    chi.URLParam(r, "id"),
		Percent:     req.Percent,
		ModulesDone: req.ModulesDone,
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (h *CourseHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.store.GetUserCourseProgress(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if progress == nil {
		progress = []*models.CourseProgress{}
	}
	writeJSON(w, http.StatusOK, progress)
}
