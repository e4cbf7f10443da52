// Package verification runs the advisory field checks fired when a user
// finishes entering a field. Each check is independent and non-blocking:
// a failed check surfaces a warning (or, for postal codes, an invalid flag)
// but never interrupts input of other fields.
package verification

import (
	"context"
	"errors"
	"fmt"

	"github.com/adesao-api/internal/domain"
	"github.com/adesao-api/internal/infrastructure/partner"
	"github.com/adesao-api/internal/infrastructure/registry"
	"github.com/adesao-api/internal/infrastructure/viacep"
	"github.com/adesao-api/internal/pkg/cpf"
	"github.com/adesao-api/internal/pkg/format"
)

// TaxIDResult is the outcome of a registry lookup. A nil result means the
// preconditions were not met and no call was made.
type TaxIDResult struct {
	Verified bool
	Name     string // registered display name, auto-filled on a match
	Warning  string
}

// EmailResult is the outcome of an email uniqueness check.
type EmailResult struct {
	Verified bool
	Warning  string
}

// PostalResult is the outcome of a postal-code resolution. A nil result
// means the code was malformed and no call was made. Found=false is the one
// advisory outcome that blocks submission.
type PostalResult struct {
	Found   bool
	Address *viacep.Address
}

// CouponResult is the outcome of a coupon check. Advisory only.
type CouponResult struct {
	Valid   bool
	Message string
}

// CPFExistsResult is the outcome of the partner's CPF existence pre-check.
type CPFExistsResult struct {
	Exists  bool
	Message string
}

type registryClient interface {
	Search(ctx context.Context, cpf, birthISO string) (*registry.Match, error)
}

type partnerChecker interface {
	CheckEmail(ctx context.Context, email string) (*partner.StatusResponse, error)
	CheckCoupon(ctx context.Context, code string) (*partner.StatusResponse, error)
	CheckCPFExists(ctx context.Context, cpf string) (*partner.ExistsResponse, error)
}

type postalClient interface {
	Lookup(ctx context.Context, cep string) (*viacep.Address, error)
}

type Service interface {
	LookupTaxID(ctx context.Context, taxID, birthDisplay string) (*TaxIDResult, error)
	CheckEmail(ctx context.Context, email string) (*EmailResult, error)
	ResolvePostal(ctx context.Context, postalCode string) (*PostalResult, error)
	CheckCoupon(ctx context.Context, code string) (*CouponResult, error)
	CheckCPFExists(ctx context.Context, taxID string) (*CPFExistsResult, error)
}

type service struct {
	registry registryClient
	partner  partnerChecker
	postal   postalClient
}

type ServiceDeps struct {
	Registry registryClient
	Partner  partnerChecker
	Postal   postalClient
}

func NewService(deps ServiceDeps) Service {
	return &service{
		registry: deps.Registry,
		partner:  deps.Partner,
		postal:   deps.Postal,
	}
}

// LookupTaxID queries the CPF registry once the identifier is checksum-valid
// and the birth date is fully entered. Returns (nil, nil) when either
// precondition is unmet; no call is made in that case.
func (s *service) LookupTaxID(ctx context.Context, taxID, birthDisplay string) (*TaxIDResult, error) {
	digits := cpf.Normalize(taxID)
	birthISO := format.DateToISO(birthDisplay)
	if !cpf.Valid(digits) || birthISO == "" {
		return nil, nil
	}
	match, err := s.registry.Search(ctx, digits, birthISO)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return &TaxIDResult{Warning: "CPF não encontrado. Verifique o CPF e data de nascimento."}, nil
	}
	return &TaxIDResult{Verified: true, Name: match.Name}, nil
}

// CheckEmail asks the partner whether the email is free. A reported conflict
// is a non-blocking warning.
func (s *service) CheckEmail(ctx context.Context, email string) (*EmailResult, error) {
	if email == "" {
		return nil, nil
	}
	resp, err := s.partner.CheckEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if resp.Status == "success" {
		return &EmailResult{Verified: true}, nil
	}
	warning := resp.Msg
	if warning == "" {
		warning = "Email já cadastrado ou inválido."
	}
	return &EmailResult{Warning: warning}, nil
}

// ResolvePostal resolves an 8-digit postal code to an address. A code with
// the wrong digit count returns (nil, nil) without calling the service, so
// the postal flag stays unknown.
func (s *service) ResolvePostal(ctx context.Context, postalCode string) (*PostalResult, error) {
	digits := format.Digits(postalCode)
	if len(digits) != 8 {
		return nil, nil
	}
	addr, err := s.postal.Lookup(ctx, digits)
	if err != nil {
		if isNotFound(err) {
			return &PostalResult{Found: false}, nil
		}
		return nil, err
	}
	return &PostalResult{Found: true, Address: addr}, nil
}

// CheckCoupon validates a coupon code. Advisory only; never blocks.
func (s *service) CheckCoupon(ctx context.Context, code string) (*CouponResult, error) {
	if code == "" {
		return nil, nil
	}
	resp, err := s.partner.CheckCoupon(ctx, code)
	if err != nil {
		return nil, err
	}
	if resp.Status == "success" {
		msg := resp.Msg
		if msg == "" {
			msg = "Cupom aplicado com sucesso."
		}
		return &CouponResult{Valid: true, Message: msg}, nil
	}
	msg := resp.Msg
	if msg == "" {
		msg = "Verifique o código do cupom."
	}
	return &CouponResult{Valid: false, Message: msg}, nil
}

// CheckCPFExists asks the partner whether the CPF already has a
// registration. An upstream error status counts as "exists" so callers fail
// closed on ambiguous answers.
func (s *service) CheckCPFExists(ctx context.Context, taxID string) (*CPFExistsResult, error) {
	digits := cpf.Normalize(taxID)
	if digits == "" {
		return nil, fmt.Errorf("cpf is required: %w", domain.ErrBadRequest)
	}
	resp, err := s.partner.CheckCPFExists(ctx, digits)
	if err != nil {
		return nil, err
	}
	if resp.Exists || resp.Status == "error" {
		return &CPFExistsResult{
			Exists:  true,
			Message: "CPF já cadastrado. Não é possível realizar o cadastro.",
		}, nil
	}
	return &CPFExistsResult{Exists: false}, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
