package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/adesao-api/internal/application/registration"
	"github.com/adesao-api/internal/domain"
	"github.com/adesao-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// RegistrationHandler exposes the proxy submission endpoint and the admin
// read endpoints.
type RegistrationHandler struct {
	svc registration.Service
}

func NewRegistrationHandler(svc registration.Service) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

// Submit handles POST /v1/registrations.
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Submit(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateRegistration):
			writeJSON(w, http.StatusBadRequest, SubmitEnvelope{
				Message:           result.Message,
				AlreadyRegistered: true,
			})
		case errors.Is(err, domain.ErrBadRequest):
			writeError(w, http.StatusBadRequest, "invalid cpf")
		case errors.Is(err, domain.ErrUpstreamFailure):
			writeJSON(w, http.StatusBadGateway, SubmitEnvelope{
				Error: "Não foi possível completar o cadastro. Tente novamente.",
			})
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	writeJSON(w, http.StatusOK, SubmitEnvelope{Success: true, Message: result.Message})
}

// List handles GET /v1/registrations (admin).
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := int64(20)
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			limit = n
		}
	}
	cursor := r.URL.Query().Get("cursor")

	recs, next, err := h.svc.List(r.Context(), int32(limit), cursor)
	if err != nil {
		if errors.Is(err, domain.ErrBadRequest) {
			writeError(w, http.StatusBadRequest, "invalid cursor")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if recs == nil {
		recs = []domain.RegistrationRecord{}
	}
	writeJSON(w, http.StatusOK, PaginatedRegistrationsEnvelope{Data: recs, NextCursor: next})
}

// Get handles GET /v1/registrations/{id} (admin).
func (h *RegistrationHandler) Get(w http.ResponseWriter, r *http.Request) {
	registrationID := chi.URLParam(r, "id")
	rec, err := h.svc.Get(r.Context(), registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "registration not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
