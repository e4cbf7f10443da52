// Package upstream submits enrollments to the partner's legacy registration
// endpoint. The endpoint only accepts a browser-style form post and renders
// an HTML page, so the outcome is decided by waiting a fixed settlement
// window and then inspecting the body for literal error markers. This is an
// approximate, best-effort mechanism, not a strict contract: when the body
// cannot be inspected the bridge reports an optimistic unknown outcome.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adesao-api/internal/domain"
)

// Literal substrings the partner renders when a CPF is already registered.
var duplicateMarkers = []string{
	"cpf já está sendo utilizado",
}

// Bridge performs the form-post submission.
type Bridge struct {
	baseURL    string
	formToken  string
	settle     time.Duration
	httpClient *http.Client
}

// NewBridge builds a bridge against the partner base URL. settle is the
// settlement window waited after every submission before the outcome is
// decided; it is not cancellable once started.
func NewBridge(baseURL, formToken string, settle time.Duration) *Bridge {
	return &Bridge{
		baseURL:    strings.TrimRight(baseURL, "/"),
		formToken:  formToken,
		settle:     settle,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Submit posts the payload and reports the best-effort outcome. A transport
// failure is the only error path; an uninspectable response body degrades to
// domain.OutcomeUnknown instead of failing.
func (b *Bridge) Submit(ctx context.Context, p domain.EnrollmentPayload) (domain.SubmissionOutcome, error) {
	form := url.Values{}
	form.Set("_token", b.formToken)
	form.Set("status", "0")
	form.Set("father", p.ReferralID)
	form.Set("type", domain.RegistrationTypeRecurring)
	form.Set("cpf", p.CPF)
	form.Set("birth", p.BirthISO)
	form.Set("name", p.Name)
	form.Set("email", p.Email)
	form.Set("phone", "")
	form.Set("cell", p.Cell)
	form.Set("cep", p.CEP)
	form.Set("district", p.District)
	form.Set("city", p.City)
	form.Set("state", p.State)
	form.Set("street", p.Street)
	form.Set("number", p.Number)
	form.Set("complement", p.Complement)
	form.Set("typeChip", p.ChipType)
	form.Set("coupon", p.Coupon)
	form.Set("plan_id", p.PlanID)
	form.Set("typeFrete", p.FreightType)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/registroSave", strings.NewReader(form.Encode()))
	if err != nil {
		return domain.OutcomeUnknown, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return domain.OutcomeUnknown, fmt.Errorf("submit enrollment: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)

	// Give the partner system time to finish processing before deciding.
	time.Sleep(b.settle)

	if readErr != nil || len(body) == 0 {
		// Cannot inspect the result; assume it went through.
		return domain.OutcomeUnknown, nil
	}
	text := strings.ToLower(string(body))
	for _, marker := range duplicateMarkers {
		if strings.Contains(text, marker) {
			return domain.OutcomeDuplicate, nil
		}
	}
	return domain.OutcomeSuccess, nil
}
