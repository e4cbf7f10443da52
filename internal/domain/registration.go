package domain

import "time"

// Registration status lifecycle: created as pending immediately before the
// upstream call, mutated exactly once to success or error afterwards.
// Records are never deleted.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusError   = "error"
)

// RegistrationRecord is the persisted outcome of one proxy submission.
// CPF is stored as normalized digits and is the business key: at most one
// record per CPF may ever reach StatusSuccess.
type RegistrationRecord struct {
	RegistrationID     string    `json:"id" dynamodbav:"registration_id"`
	CPF                string    `json:"cpf" dynamodbav:"cpf"`
	Name               string    `json:"name" dynamodbav:"name"`
	Email              string    `json:"email" dynamodbav:"email"`
	Phone              string    `json:"phone" dynamodbav:"phone"`
	ReferralID         string    `json:"referral_id" dynamodbav:"referral_id"`
	Status             string    `json:"status" dynamodbav:"status"`
	UpstreamResponse   string    `json:"upstream_response,omitempty" dynamodbav:"upstream_response"`
	ResponseArchiveKey string    `json:"response_archive_key,omitempty" dynamodbav:"response_archive_key"`
	ErrorMessage       string    `json:"error_message,omitempty" dynamodbav:"error_message"`
	CreatedAt          time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// SubmitRegistrationRequest is the proxy endpoint's JSON body.
type SubmitRegistrationRequest struct {
	Name       string `json:"name" validate:"required"`
	TaxID      string `json:"taxId" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	ReferralID string `json:"referralId"`
}

// SubmitResult is what the proxy returns to its caller.
type SubmitResult struct {
	Success           bool
	Message           string
	AlreadyRegistered bool
}

// EnrollmentPayload is the canonical (unmasked) field set forwarded to the
// partner's legacy registration endpoint.
type EnrollmentPayload struct {
	ReferralID  string
	CPF         string // digits only
	BirthISO    string // YYYY-MM-DD
	Name        string
	Email       string
	Cell        string // digits only
	CEP         string // digits only
	District    string
	City        string
	State       string
	Street      string
	Number      string
	Complement  string
	ChipType    string
	Coupon      string
	PlanID      string
	FreightType string
}

// NotificationSummary is the payload dispatched to the representative's
// webhook after a confirmed registration. Field names follow the receiving
// system's contract.
type NotificationSummary struct {
	Name       string `json:"nome"`
	CPF        string `json:"cpf"`
	BirthDate  string `json:"data_nascimento"`
	Email      string `json:"email"`
	WhatsApp   string `json:"whatsapp"`
	Landline   string `json:"telefone_fixo"`
	Plan       string `json:"plano"`
	ChipType   string `json:"tipo_chip"`
	Shipping   string `json:"forma_envio"`
	CEP        string `json:"cep"`
	Street     string `json:"endereco"`
	Number     string `json:"numero"`
	Complement string `json:"complemento"`
	District   string `json:"bairro"`
	City       string `json:"cidade"`
	State      string `json:"estado"`
	ReferralID string `json:"referral_id"`
}
