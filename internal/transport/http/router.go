package http

import (
	"net/http"

	"github.com/adesao-api/internal/application/registration"
	"github.com/adesao-api/internal/application/session"
	"github.com/adesao-api/internal/application/verification"
	"github.com/adesao-api/internal/config"
	"github.com/adesao-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/adesao-api/internal/infrastructure/jwt"
	"github.com/adesao-api/internal/infrastructure/partner"
	"github.com/adesao-api/internal/infrastructure/registry"
	s3infra "github.com/adesao-api/internal/infrastructure/s3"
	"github.com/adesao-api/internal/infrastructure/smtp"
	"github.com/adesao-api/internal/infrastructure/sns"
	"github.com/adesao-api/internal/infrastructure/viacep"
	"github.com/adesao-api/internal/transport/http/handler"
	appmiddleware "github.com/adesao-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router. Archive,
// Notifier, Mailer and JWTProvider may be nil; the corresponding feature is
// disabled.
type Deps struct {
	RegistrationRepo *dynamo.RegistrationRepo
	Partner          *partner.Client
	Registry         *registry.Client
	ViaCEP           *viacep.Client
	Archive          *s3infra.Archive
	Notifier         sns.OpsNotifier
	Mailer           smtp.Mailer
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10. Applied to the submission and login
	// endpoints so a single client cannot hammer the upstream partner.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	registrationSvc := registration.NewService(registration.ServiceDeps{
		Store:             deps.RegistrationRepo,
		Upstream:          deps.Partner,
		Archive:           archiveOrNil(deps.Archive),
		Notifier:          notifierOrNil(deps.Notifier),
		Mailer:            mailerOrNil(deps.Mailer),
		DefaultReferralID: cfg.DefaultReferralID,
	})
	verificationSvc := verification.NewService(verification.ServiceDeps{
		Registry: deps.Registry,
		Partner:  deps.Partner,
		Postal:   deps.ViaCEP,
	})
	sessionSvc := session.NewService(session.ServiceDeps{
		Signer:       signerOrNil(deps.JWTProvider),
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
	})

	healthH := handler.NewHealthHandler()
	registrationH := handler.NewRegistrationHandler(registrationSvc)
	checkH := handler.NewCheckHandler(verificationSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/registrations", registrationH.Submit)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)

		r.Get("/checks/cpf", checkH.CPFExists)
		r.Get("/checks/email", checkH.Email)
		r.Get("/checks/postal", checkH.Postal)
		r.Get("/checks/coupon", checkH.Coupon)
		r.Get("/checks/registry", checkH.TaxID)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/registrations", registrationH.List)
			r.Get("/registrations/{id}", registrationH.Get)
		})
	})

	return r
}

// Typed-nil guards: a nil concrete pointer stored in an interface field is
// not a nil interface, so optional deps are converted explicitly.

func archiveOrNil(a *s3infra.Archive) registration.ResponseArchive {
	if a == nil {
		return nil
	}
	return a
}

func notifierOrNil(n sns.OpsNotifier) registration.OpsNotifier {
	if n == nil {
		return nil
	}
	return n
}

func mailerOrNil(m smtp.Mailer) registration.Mailer {
	if m == nil {
		return nil
	}
	return m
}

func signerOrNil(p *jwtinfra.Provider) session.TokenSigner {
	if p == nil {
		return nil
	}
	return p
}
