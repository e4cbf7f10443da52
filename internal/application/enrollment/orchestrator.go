// Package enrollment drives a single enrollment attempt from field entry to
// upstream submission. The orchestrator owns the form state and gates
// submission on local validation plus whatever advisory verification results
// have arrived; it never blocks waiting for an advisory check.
package enrollment

import (
	"context"
	"sync"

	"github.com/adesao-api/internal/domain"
	"github.com/adesao-api/internal/pkg/cpf"
	"github.com/adesao-api/internal/pkg/format"
)

// State is the orchestrator's lifecycle position.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateAwaitingUpstream
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateAwaitingUpstream:
		return "awaiting_upstream"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Flag is a tri-state verification flag.
type Flag int

const (
	FlagUnknown Flag = iota
	FlagValid
	FlagInvalid
)

// FormState holds the masked display values plus the advisory verification
// flags. Displayed values are always a formatted projection of canonical
// digit/date values; canonical values are recovered by stripping non-digits
// or reparsing the date before any outbound call.
type FormState struct {
	CPF        string // 000.000.000-00
	Birth      string // DD/MM/YYYY
	Name       string
	Email      string
	Cell       string // (00) 00000-0000
	CEP        string // 00000-000
	District   string
	City       string
	StateUF    string
	Street     string
	Number     string
	Complement string

	ChipType    string
	Coupon      string
	PlanID      string
	FreightType string

	TaxIDVerified Flag
	EmailVerified Flag
	PostalValid   Flag
}

// SubmissionBridge submits an assembled payload to the upstream partner and
// reports a best-effort outcome.
type SubmissionBridge interface {
	Submit(ctx context.Context, p domain.EnrollmentPayload) (domain.SubmissionOutcome, error)
}

// User-facing guard and outcome messages.
const (
	MsgInvalidCPF       = "CPF inválido! Por favor, verifique o CPF informado."
	MsgInvalidCEP       = "CEP inválido! Por favor, verifique o CEP informado e corrija antes de continuar."
	MsgMissingPlan      = "Por favor, selecione um plano antes de continuar."
	MsgMissingFreight   = "Por favor, selecione a forma de envio antes de continuar."
	MsgDuplicateCPF     = "CPF já cadastrado. Não é possível realizar o cadastro."
	MsgConnectionFailed = "Não foi possível completar o cadastro. Verifique sua conexão e tente novamente."
)

// Orchestrator serializes submission of one enrollment form. Exactly one
// submission may be in flight; re-entrant submit attempts are ignored.
// StateSuccess is terminal; StateError is recoverable — the caller may fix
// fields and submit again.
type Orchestrator struct {
	mu         sync.Mutex
	state      State
	reason     string
	inFlight   bool
	form       FormState
	bridge     SubmissionBridge
	referralID string
}

func NewOrchestrator(bridge SubmissionBridge, referralID string) *Orchestrator {
	return &Orchestrator{state: StateIdle, bridge: bridge, referralID: referralID}
}

// State returns the current state and, for StateError, the reason.
func (o *Orchestrator) State() (State, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state, o.reason
}

// Form returns a copy of the current form state.
func (o *Orchestrator) Form() FormState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.form
}

// SetForm replaces the form state. Masks are applied to the digit/date
// fields so the stored values are always the displayed projection.
func (o *Orchestrator) SetForm(f FormState) {
	o.mu.Lock()
	defer o.mu.Unlock()
	f.CPF = format.CPF(f.CPF)
	f.Cell = format.Phone(f.Cell)
	f.CEP = format.CEP(f.CEP)
	f.Birth = format.Date(f.Birth)
	o.form = f
}

// ApplyRegistryMatch records a positive registry lookup: the registered name
// is auto-filled and the identifier flag set.
func (o *Orchestrator) ApplyRegistryMatch(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if name != "" {
		o.form.Name = name
	}
	o.form.TaxIDVerified = FlagValid
}

// MarkEmailVerified records a passed email uniqueness check.
func (o *Orchestrator) MarkEmailVerified() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.form.EmailVerified = FlagValid
}

// ApplyPostalResult records a postal resolution. On success the address
// fields are auto-filled; on a not-found the invalid flag blocks submission
// until the code is corrected.
func (o *Orchestrator) ApplyPostalResult(found bool, street, district, city, stateUF string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !found {
		o.form.PostalValid = FlagInvalid
		return
	}
	o.form.PostalValid = FlagValid
	o.form.Street = street
	o.form.District = district
	o.form.City = city
	o.form.StateUF = stateUF
}

// ResetPostalFlag returns the postal flag to unknown, e.g. when the user
// edits the code again.
func (o *Orchestrator) ResetPostalFlag() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.form.PostalValid = FlagUnknown
}

// Submit runs the submission guards and, when they pass, delegates the
// canonical payload to the bridge. Returns the resulting state and, for
// StateError, the user-facing reason.
func (o *Orchestrator) Submit(ctx context.Context) (State, string) {
	o.mu.Lock()
	if o.inFlight || o.state == StateSuccess {
		// One submission at a time; success is terminal.
		st, reason := o.state, o.reason
		o.mu.Unlock()
		return st, reason
	}
	o.state = StateValidating
	o.reason = ""

	if msg, ok := o.checkGuards(); !ok {
		o.state = StateError
		o.reason = msg
		o.mu.Unlock()
		return StateError, msg
	}

	payload := o.buildPayload()
	o.state = StateAwaitingUpstream
	o.inFlight = true
	o.mu.Unlock()

	outcome, err := o.bridge.Submit(ctx, payload)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.inFlight = false
	switch {
	case err != nil:
		o.state = StateError
		o.reason = MsgConnectionFailed
	case outcome == domain.OutcomeDuplicate:
		o.state = StateError
		o.reason = MsgDuplicateCPF
	default:
		// Success, or an uninspectable response treated optimistically.
		o.state = StateSuccess
		o.reason = ""
	}
	return o.state, o.reason
}

// checkGuards applies the blocking submission rules, in order. Advisory
// flags (registry, email, coupon) never block; an unknown postal flag is
// accepted because resolution may not have completed.
func (o *Orchestrator) checkGuards() (string, bool) {
	if !cpf.Valid(o.form.CPF) {
		return MsgInvalidCPF, false
	}
	if o.form.PostalValid == FlagInvalid {
		return MsgInvalidCEP, false
	}
	if o.form.PlanID == "" {
		return MsgMissingPlan, false
	}
	if o.form.FreightType == "" {
		return MsgMissingFreight, false
	}
	return "", true
}

// buildPayload assembles the canonical (unmasked) field set.
func (o *Orchestrator) buildPayload() domain.EnrollmentPayload {
	return domain.EnrollmentPayload{
		ReferralID:  o.referralID,
		CPF:         cpf.Normalize(o.form.CPF),
		BirthISO:    format.DateToISO(o.form.Birth),
		Name:        o.form.Name,
		Email:       o.form.Email,
		Cell:        format.Digits(o.form.Cell),
		CEP:         format.Digits(o.form.CEP),
		District:    o.form.District,
		City:        o.form.City,
		State:       o.form.StateUF,
		Street:      o.form.Street,
		Number:      o.form.Number,
		Complement:  o.form.Complement,
		ChipType:    o.form.ChipType,
		Coupon:      o.form.Coupon,
		PlanID:      o.form.PlanID,
		FreightType: o.form.FreightType,
	}
}

// Summary builds the notification payload for a confirmed enrollment, with
// display-formatted contact fields and catalog labels resolved.
func (o *Orchestrator) Summary() domain.NotificationSummary {
	o.mu.Lock()
	defer o.mu.Unlock()
	return domain.NotificationSummary{
		Name:       o.form.Name,
		CPF:        o.form.CPF,
		BirthDate:  o.form.Birth,
		Email:      o.form.Email,
		WhatsApp:   o.form.Cell,
		Landline:   "",
		Plan:       domain.PlanLabel(o.form.PlanID),
		ChipType:   domain.ChipLabel(o.form.ChipType),
		Shipping:   domain.FreightLabel(o.form.FreightType),
		CEP:        o.form.CEP,
		Street:     o.form.Street,
		Number:     o.form.Number,
		Complement: o.form.Complement,
		District:   o.form.District,
		City:       o.form.City,
		State:      o.form.StateUF,
		ReferralID: o.referralID,
	}
}
