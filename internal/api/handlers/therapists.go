package handlers

import (
	"net/http"

	"github.com/foryourmind/server/internal/api/dto"
	"github.com/foryourmind/server/internal/api/middleware"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
	"github.com/go-chi/chi/v5"
)

type TherapistHandler struct {
	store storage.Store
}

func NewTherapistHandler(store storage.Store) *TherapistHandler {
	return &TherapistHandler{store: store}
}

func (h *TherapistHandler) List(w http.ResponseWriter, r *http.Request) {
	therapists, err := h.store.ListTherapists(r.Context())
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if therapists == nil {
		therapists = []*models.Therapist{}
	}
	writeJSON(w, http.StatusOK, therapists)
}

func (h *TherapistHandler) Get(w http.ResponseWriter, r *http.Request) {
	therapist, err := h.store.GetTherapist(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, therapist)
}

type AppointmentHandler struct {
	store storage.Store
}

func NewAppointmentHandler(store storage.Store) *AppointmentHandler {
	return &AppointmentHandler{store: store}
}

// getOwned fetches an appointment and hides its existence from non-owners.
func (h *AppointmentHandler) getOwned(w http.ResponseWriter, r *http.Request) *models.Appointment {
	appt, err := h.store.GetAppointment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStorageError(w, err)
		return nil
	}
	if appt.UserID != middleware.GetUserID(r.Context()) {
		writeError(w, http.StatusNotFound, "not found")
		return nil
	}
	return appt
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	appt, err := h.store.CreateAppointment(r.Context(), &models.Appointment{
		TherapistID: req.TherapistID,
		UserID:      middleware.GetUserID(r.Context()),
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Notes:       req.Notes,
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appts, err := h.store.GetUserAppointments(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if appts == nil {
		appts = []*models.Appointment{}
	}
	writeJSON(w, http.StatusOK, appts)
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	appt := h.getOwned(w, r)
	if appt == nil {
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	appt := h.getOwned(w, r)
	if appt == nil {
		return
	}

	var req dto.UpdateAppointmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	updated, err := h.store.UpdateAppointment(r.Context(), appt.ID, models.AppointmentUpdate{
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Status:   req.Status,
		Notes:    req.Notes,
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
