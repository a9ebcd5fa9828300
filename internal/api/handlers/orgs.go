package handlers

import (
	"net/http"

	"github.com/foryourmind/server/internal/api/dto"
	"github.com/foryourmind/server/internal/api/middleware"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
	"github.com/go-chi/chi/v5"
)

type OrganizationHandler struct {
	store storage.Store
}

func NewOrganizationHandler(store storage.Store) *OrganizationHandler {
	return &OrganizationHandler{store: store}
}

func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrganizationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	org, err := h.store.CreateOrganization(r.Context(), &models.Organization{
		Name:     req.Name,
		AdminID:  middleware.GetUserID(r.Context()),
		Settings: req.Settings,
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.store.GetOrganization(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateOrganizationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	org, err := h.store.UpdateOrganization(r.Context(), chi.URLParam(r, "id"), models.OrganizationUpdate{
		Name:     req.Name,
		Settings: req.Settings,
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) AddEmployee(w http.ResponseWriter, r *http.Request) {
	var req dto.AddEmployeeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	employee, err := h.store.AddEmployee(r.Context(), &models.Employee{
		UserID:         req.UserID,
		OrganizationID: chi.URLParam(r, "id"),
		JobTitle:       req.JobTitle,
		Department:     req.Department,
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, employee)
}

func (h *OrganizationHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.store.ListEmployeesByOrganization(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if employees == nil {
		employees = []*models.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}

// Metrics returns the anonymized wellness aggregate for the organization.
func (h *OrganizationHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.store.GetWellnessMetrics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}
