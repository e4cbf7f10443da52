// Package registration implements the server-side registration proxy. It
// forwards submissions to the partner on the caller's behalf, classifies the
// partner's textual response, and persists an idempotency record so a CPF
// that has already registered successfully is never submitted again.
package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/adesao-api/internal/domain"
	"github.com/adesao-api/internal/infrastructure/partner"
	"github.com/adesao-api/internal/pkg/cpf"
	"github.com/adesao-api/internal/pkg/id"
)

const (
	msgSuccess           = "Cadastro realizado com sucesso!"
	msgAlreadyRegistered = "CPF já cadastrado anteriormente"
	msgUpstreamFailed    = "Não foi possível completar o cadastro. Tente novamente."
)

type registrationStore interface {
	Put(ctx context.Context, rec *domain.RegistrationRecord) error
	Get(ctx context.Context, registrationID string) (*domain.RegistrationRecord, error)
	FindSuccessByCPF(ctx context.Context, cpf string) (*domain.RegistrationRecord, error)
	UpdateOutcome(ctx context.Context, registrationID string, updates map[string]interface{}) error
	ClaimSuccess(ctx context.Context, cpf, registrationID string) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.RegistrationRecord, string, error)
}

type upstreamClient interface {
	SubmitRegistration(ctx context.Context, name, cpf, email, phone, referralID string) (*partner.UpstreamResult, error)
}

// ResponseArchive stores raw upstream response bodies for later inspection.
type ResponseArchive interface {
	Store(ctx context.Context, key, body string) (string, error)
}

// OpsNotifier publishes short operational notices.
type OpsNotifier interface {
	Notify(ctx context.Context, subject, message string) error
}

// Mailer sends the confirmation email.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type Service interface {
	Submit(ctx context.Context, req *domain.SubmitRegistrationRequest) (*domain.SubmitResult, error)
	List(ctx context.Context, limit int32, cursor string) ([]domain.RegistrationRecord, string, error)
	Get(ctx context.Context, registrationID string) (*domain.RegistrationRecord, error)
}

type service struct {
	store             registrationStore
	upstream          upstreamClient
	archive           ResponseArchive
	notifier          OpsNotifier
	mailer            Mailer
	defaultReferralID string
}

// ServiceDeps carries the service dependencies. Archive, Notifier and Mailer
// are optional; nil disables the corresponding side effect.
type ServiceDeps struct {
	Store             registrationStore
	Upstream          upstreamClient
	Archive           ResponseArchive
	Notifier          OpsNotifier
	Mailer            Mailer
	DefaultReferralID string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		store:             deps.Store,
		upstream:          deps.Upstream,
		archive:           deps.Archive,
		notifier:          deps.Notifier,
		mailer:            deps.Mailer,
		defaultReferralID: deps.DefaultReferralID,
	}
}

// Submit proxies one registration attempt. A CPF with a prior successful
// record short-circuits with domain.ErrDuplicateRegistration before any
// upstream traffic; otherwise a pending record is written, the partner is
// called, and the record is finalized exactly once.
func (s *service) Submit(ctx context.Context, req *domain.SubmitRegistrationRequest) (*domain.SubmitResult, error) {
	taxID := cpf.Normalize(req.TaxID)
	if !cpf.Valid(taxID) {
		return nil, fmt.Errorf("invalid cpf: %w", domain.ErrBadRequest)
	}

	if _, err := s.store.FindSuccessByCPF(ctx, taxID); err == nil {
		return &domain.SubmitResult{
			Message:           msgAlreadyRegistered,
			AlreadyRegistered: true,
		}, fmt.Errorf("%s: %w", taxID, domain.ErrDuplicateRegistration)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup prior registration: %w", err)
	}

	referralID := req.ReferralID
	if referralID == "" {
		referralID = s.defaultReferralID
	}

	now := time.Now().UTC()
	rec := &domain.RegistrationRecord{
		RegistrationID: id.New(),
		CPF:            taxID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		ReferralID:     referralID,
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist pending registration: %w", err)
	}

	result, err := s.upstream.SubmitRegistration(ctx, req.Name, taxID, req.Email, req.Phone, referralID)
	if err != nil {
		s.finalize(ctx, rec.RegistrationID, map[string]interface{}{
			"status":        domain.StatusError,
			"error_message": err.Error(),
		})
		return nil, fmt.Errorf("%s: %w", msgUpstreamFailed, domain.ErrUpstreamFailure)
	}

	if !classifyUpstream(result.StatusCode, result.Body) {
		s.finalize(ctx, rec.RegistrationID, map[string]interface{}{
			"status":            domain.StatusError,
			"upstream_response": truncate(result.Body, 4000),
			"error_message":     "upstream rejected registration",
		})
		return nil, fmt.Errorf("%s: %w", msgUpstreamFailed, domain.ErrUpstreamFailure)
	}

	// Claim the per-CPF success marker before finalizing, so a concurrent
	// submission for the same CPF cannot also reach success.
	if err := s.store.ClaimSuccess(ctx, taxID, rec.RegistrationID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.finalize(ctx, rec.RegistrationID, map[string]interface{}{
				"status":        domain.StatusError,
				"error_message": "success already recorded for cpf",
			})
			return &domain.SubmitResult{
				Message:           msgAlreadyRegistered,
				AlreadyRegistered: true,
			}, fmt.Errorf("%s: %w", taxID, domain.ErrDuplicateRegistration)
		}
		return nil, fmt.Errorf("claim registration success: %w", err)
	}

	updates := map[string]interface{}{
		"status":            domain.StatusSuccess,
		"upstream_response": truncate(result.Body, 4000),
	}
	if s.archive != nil {
		key := fmt.Sprintf("responses/%s.html", rec.RegistrationID)
		if stored, aerr := s.archive.Store(ctx, key, result.Body); aerr != nil {
			slog.Warn("archive upstream response failed", "registration_id", rec.RegistrationID, "error", aerr)
		} else {
			updates["response_archive_key"] = stored
		}
	}
	s.finalize(ctx, rec.RegistrationID, updates)

	s.notifySuccess(rec)

	return &domain.SubmitResult{Success: true, Message: msgSuccess}, nil
}

func (s *service) List(ctx context.Context, limit int32, cursor string) ([]domain.RegistrationRecord, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.ScanPage(ctx, limit, cursor)
}

func (s *service) Get(ctx context.Context, registrationID string) (*domain.RegistrationRecord, error) {
	return s.store.Get(ctx, registrationID)
}

func (s *service) finalize(ctx context.Context, registrationID string, updates map[string]interface{}) {
	if err := s.store.UpdateOutcome(ctx, registrationID, updates); err != nil {
		slog.Error("finalize registration failed", "registration_id", registrationID, "error", err)
	}
}

// notifySuccess fires the operational notice and the confirmation email.
// Both are best effort and must not delay or fail the response.
func (s *service) notifySuccess(rec *domain.RegistrationRecord) {
	if s.notifier != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			msg := fmt.Sprintf("registration %s confirmed for referral %s", rec.RegistrationID, rec.ReferralID)
			if err := s.notifier.Notify(ctx, "registration confirmed", msg); err != nil {
				slog.Warn("ops notification failed", "registration_id", rec.RegistrationID, "error", err)
			}
		}()
	}
	if s.mailer != nil {
		go func() {
			body := fmt.Sprintf("Olá %s,\n\nSeu cadastro foi realizado com sucesso!\n", rec.Name)
			if err := s.mailer.SendEmail(rec.Email, "Cadastro confirmado", body); err != nil {
				slog.Warn("confirmation email failed", "registration_id", rec.RegistrationID, "error", err)
			}
		}()
	}
}

// classifyUpstream decides whether the partner accepted the registration.
// Token-free bodies on a 2xx count as success; an explicit error token
// always loses to nothing, and an explicit success token always wins.
func classifyUpstream(statusCode int, body string) bool {
	if statusCode < 200 || statusCode >= 300 {
		return false
	}
	lower := strings.ToLower(body)
	if strings.Contains(lower, "sucesso") || strings.Contains(lower, "success") {
		return true
	}
	if strings.Contains(lower, "erro") || strings.Contains(lower, "error") {
		return false
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
