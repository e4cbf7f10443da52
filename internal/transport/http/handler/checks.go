package handler

import (
	"errors"
	"net/http"

	"github.com/adesao-api/internal/application/verification"
	"github.com/adesao-api/internal/domain"
)

// CheckHandler exposes the advisory field-verification endpoints fired as the
// user fills in the form. All of them answer 200 with a result body; a check
// that could not run (malformed input) answers 200 with verified=false and no
// warning so the client leaves the field flag unknown.
type CheckHandler struct {
	svc verification.Service
}

func NewCheckHandler(svc verification.Service) *CheckHandler {
	return &CheckHandler{svc: svc}
}

type taxIDCheckResponse struct {
	Verified bool   `json:"verified"`
	Name     string `json:"name,omitempty"`
	Warning  string `json:"warning,omitempty"`
}

// TaxID handles GET /v1/checks/registry?cpf=...&birth=DD/MM/YYYY.
func (h *CheckHandler) TaxID(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.svc.LookupTaxID(r.Context(), q.Get("cpf"), q.Get("birth"))
	if err != nil {
		writeError(w, http.StatusBadGateway, "registry lookup failed")
		return
	}
	if result == nil {
		writeJSON(w, http.StatusOK, taxIDCheckResponse{})
		return
	}
	writeJSON(w, http.StatusOK, taxIDCheckResponse{
		Verified: result.Verified,
		Name:     result.Name,
		Warning:  result.Warning,
	})
}

type emailCheckResponse struct {
	Verified bool   `json:"verified"`
	Warning  string `json:"warning,omitempty"`
}

// Email handles GET /v1/checks/email?email=...
func (h *CheckHandler) Email(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.CheckEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, http.StatusBadGateway, "email check failed")
		return
	}
	if result == nil {
		writeJSON(w, http.StatusOK, emailCheckResponse{})
		return
	}
	writeJSON(w, http.StatusOK, emailCheckResponse{Verified: result.Verified, Warning: result.Warning})
}

type postalCheckResponse struct {
	Found    bool   `json:"found"`
	Street   string `json:"street,omitempty"`
	District string `json:"district,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
}

// Postal handles GET /v1/checks/postal?cep=...
func (h *CheckHandler) Postal(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ResolvePostal(r.Context(), r.URL.Query().Get("cep"))
	if err != nil {
		writeError(w, http.StatusBadGateway, "postal lookup failed")
		return
	}
	if result == nil {
		writeError(w, http.StatusBadRequest, "cep must have 8 digits")
		return
	}
	resp := postalCheckResponse{Found: result.Found}
	if result.Address != nil {
		resp.Street = result.Address.Street
		resp.District = result.Address.District
		resp.City = result.Address.City
		resp.State = result.Address.State
	}
	writeJSON(w, http.StatusOK, resp)
}

type couponCheckResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Coupon handles GET /v1/checks/coupon?code=...
func (h *CheckHandler) Coupon(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.CheckCoupon(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		writeError(w, http.StatusBadGateway, "coupon check failed")
		return
	}
	if result == nil {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}
	writeJSON(w, http.StatusOK, couponCheckResponse{Valid: result.Valid, Message: result.Message})
}

type cpfExistsResponse struct {
	Exists  bool   `json:"exists"`
	Message string `json:"message,omitempty"`
}

// CPFExists handles GET /v1/checks/cpf?cpf=...
func (h *CheckHandler) CPFExists(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.CheckCPFExists(r.Context(), r.URL.Query().Get("cpf"))
	if err != nil {
		if errors.Is(err, domain.ErrBadRequest) {
			writeError(w, http.StatusBadRequest, "cpf is required")
			return
		}
		writeError(w, http.StatusBadGateway, "cpf existence check failed")
		return
	}
	writeJSON(w, http.StatusOK, cpfExistsResponse{Exists: result.Exists, Message: result.Message})
}
