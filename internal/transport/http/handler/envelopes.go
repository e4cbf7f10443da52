package handler

import (
	"encoding/json"
	"net/http"

	"github.com/adesao-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// AuthEnvelope wraps login responses.
type AuthEnvelope struct {
	Bearer  string `json:"Bearer,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SubmitEnvelope wraps proxy submission responses. AlreadyRegistered is set
// on the duplicate path so clients can distinguish it from other failures.
type SubmitEnvelope struct {
	Success           bool   `json:"success"`
	Message           string `json:"message,omitempty"`
	AlreadyRegistered bool   `json:"alreadyRegistered,omitempty"`
	Error             string `json:"error,omitempty"`
}

// PaginatedRegistrationsEnvelope wraps the admin registration listing.
type PaginatedRegistrationsEnvelope struct {
	Data       []domain.RegistrationRecord `json:"data"`
	NextCursor string                      `json:"next_cursor,omitempty"`
	Error      string                      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
