// Command enroll runs one enrollment from the terminal: it fires the
// advisory field checks, fills the form, submits through the form-post
// bridge, and on success dispatches the representative's webhook.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/adesao-api/internal/application/enrollment"
	"github.com/adesao-api/internal/application/verification"
	"github.com/adesao-api/internal/config"
	"github.com/adesao-api/internal/infrastructure/partner"
	"github.com/adesao-api/internal/infrastructure/registry"
	"github.com/adesao-api/internal/infrastructure/upstream"
	"github.com/adesao-api/internal/infrastructure/viacep"
	"github.com/adesao-api/internal/infrastructure/webhook"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}
	cfg := config.Load()

	var form enrollment.FormState
	referral := flag.String("referral", cfg.DefaultReferralID, "representative id")
	flag.StringVar(&form.CPF, "cpf", "", "CPF (digits or masked)")
	flag.StringVar(&form.Birth, "birth", "", "birth date DD/MM/YYYY")
	flag.StringVar(&form.Name, "name", "", "full name")
	flag.StringVar(&form.Email, "email", "", "email address")
	flag.StringVar(&form.Cell, "cell", "", "cell phone")
	flag.StringVar(&form.CEP, "cep", "", "postal code")
	flag.StringVar(&form.Number, "number", "", "street number")
	flag.StringVar(&form.Complement, "complement", "", "address complement")
	flag.StringVar(&form.ChipType, "chip", "fisico", "chip type: fisico or eSim")
	flag.StringVar(&form.Coupon, "coupon", "", "coupon code")
	flag.StringVar(&form.PlanID, "plan", "", "plan id")
	flag.StringVar(&form.FreightType, "freight", "", "shipping: Carta, semFrete or eSim")
	flag.Parse()

	ctx := context.Background()

	partnerClient := partner.NewClient(cfg.UpstreamBaseURL)
	checks := verification.NewService(verification.ServiceDeps{
		Registry: registry.NewClient(cfg.RegistryAPIURL, cfg.RegistryAPIToken),
		Partner:  partnerClient,
		Postal:   viacep.NewClient(cfg.ViaCEPBaseURL),
	})

	bridge := upstream.NewBridge(cfg.UpstreamBaseURL, cfg.UpstreamFormToken, cfg.SettlementWindow)
	orch := enrollment.NewOrchestrator(bridge, *referral)
	orch.SetForm(form)

	runChecks(ctx, checks, orch)

	state, reason := orch.Submit(ctx)
	if state != enrollment.StateSuccess {
		fmt.Fprintln(os.Stderr, reason)
		os.Exit(1)
	}
	fmt.Println("Cadastro realizado com sucesso!")

	dispatcher := webhook.NewDispatcher(cfg.ReferralWebhooks)
	if err := dispatcher.Dispatch(ctx, orch.Summary()); err != nil {
		log.Printf("WARN: webhook dispatch failed: %v", err)
	}
}

// runChecks fires the advisory verifications and folds the results into the
// form. Check failures are warnings only; a lookup error never aborts the
// enrollment.
func runChecks(ctx context.Context, checks verification.Service, orch *enrollment.Orchestrator) {
	form := orch.Form()

	if res, err := checks.LookupTaxID(ctx, form.CPF, form.Birth); err != nil {
		log.Printf("WARN: registry lookup failed: %v", err)
	} else if res != nil {
		if res.Verified {
			orch.ApplyRegistryMatch(res.Name)
		} else {
			fmt.Fprintln(os.Stderr, res.Warning)
		}
	}

	if res, err := checks.CheckEmail(ctx, form.Email); err != nil {
		log.Printf("WARN: email check failed: %v", err)
	} else if res != nil {
		if res.Verified {
			orch.MarkEmailVerified()
		} else {
			fmt.Fprintln(os.Stderr, res.Warning)
		}
	}

	if res, err := checks.ResolvePostal(ctx, form.CEP); err != nil {
		log.Printf("WARN: postal lookup failed: %v", err)
	} else if res != nil {
		if res.Found {
			orch.ApplyPostalResult(true, res.Address.Street, res.Address.District, res.Address.City, res.Address.State)
		} else {
			orch.ApplyPostalResult(false, "", "", "", "")
		}
	}

	if form.Coupon != "" {
		if res, err := checks.CheckCoupon(ctx, form.Coupon); err != nil {
			log.Printf("WARN: coupon check failed: %v", err)
		} else if res != nil {
			fmt.Fprintln(os.Stderr, res.Message)
		}
	}
}
