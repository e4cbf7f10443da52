package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// ErrDuplicateRegistration marks a CPF that already has a successful
	// registration. Handlers surface it distinctly so the client can show
	// an "already registered" message instead of a generic failure.
	ErrDuplicateRegistration = errors.New("cpf already registered")

	// ErrUpstreamFailure marks a registration the partner system rejected
	// or that failed classification. The underlying detail is persisted and
	// logged, never returned to the caller.
	ErrUpstreamFailure = errors.New("upstream registration failed")
)
