package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	// S3 bucket for archiving raw upstream response bodies. Empty disables archiving.
	S3ResponseBucket string

	// SNS topic for operational notices on confirmed registrations. Empty disables.
	SNSTopicARN string
	SNSRegion   string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	AdminUsername     string
	AdminPasswordHash string // bcrypt hash of the admin password

	// Upstream partner — the legacy form-post registration system.
	UpstreamBaseURL   string
	UpstreamFormToken string

	// CPF registry lookup service.
	RegistryAPIURL   string
	RegistryAPIToken string

	// Postal code resolution service.
	ViaCEPBaseURL string

	// How long to wait after a form submission before deciding the outcome.
	SettlementWindow time.Duration

	DefaultReferralID string
	// ReferralWebhooks maps a representative id to its notification webhook URL.
	ReferralWebhooks map[string]string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Registrations      string
	RegistrationClaims string
}

// Known representative webhook endpoints. Overridable via REFERRAL_WEBHOOKS
// as comma-separated id=url pairs.
var defaultReferralWebhooks = map[string]string{
	"110956": "https://webhook.fiqon.app/webhook/a0265c1b-d832-483e-af57-8096334a57a8/e167dea4-079e-4af4-9b3f-4acaf711f432",
	"110403": "https://webhook.fiqon.app/webhook/019a82d0-9018-73a8-9702-405595187191/15c6ef7c-a0c0-4b0a-b6cf-f873564be560",
	"88389":  "https://webhook.fiqon.app/webhook/a02ccd6f-0d2f-401d-8d9b-c9e161d5330e/0624b4b1-d658-44d1-8291-ed8f0b5b3bf9",
	"159726": "https://webhook.fiqon.app/webhook/019a87ed-830f-7073-af20-cc44131112f4/2dba1f6c-82cc-4625-87a1-a08888dd1d63",
	"131966": "https://webhook.fiqon.app/webhook/a0436edd-0f48-454c-9fc2-f916fee56e34/ffc2252d-f738-4870-8287-81ea51a89542",
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Registrations:      getEnv("DYNAMO_TABLE_REGISTRATIONS", "registrations"),
			RegistrationClaims: getEnv("DYNAMO_TABLE_REGISTRATION_CLAIMS", "registration_claims"),
		},

		S3ResponseBucket: getEnv("S3_RESPONSE_BUCKET", ""),

		SNSTopicARN: getEnv("SNS_TOPIC_ARN", ""),
		SNSRegion:   getEnv("SNS_REGION", "us-east-1"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 12)) * time.Hour,

		AdminUsername:     getEnv("ADMIN_USERNAME", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		UpstreamBaseURL:   getEnv("UPSTREAM_BASE_URL", "https://federalassociados.com.br"),
		UpstreamFormToken: getEnv("UPSTREAM_FORM_TOKEN", "oCqwAglu4VySDRcwWNqj81UMfbKHCS2vWQfARkzu"),

		RegistryAPIURL:   getEnv("REGISTRY_API_URL", "https://apicpf.whatsgps.com.br"),
		RegistryAPIToken: getEnv("REGISTRY_API_TOKEN", ""),

		ViaCEPBaseURL: getEnv("VIACEP_BASE_URL", "https://viacep.com.br"),

		SettlementWindow: time.Duration(getEnvInt("SETTLEMENT_WINDOW_MS", 3000)) * time.Millisecond,

		DefaultReferralID: getEnv("DEFAULT_REFERRAL_ID", "110956"),
		ReferralWebhooks:  parseReferralWebhooks(getEnv("REFERRAL_WEBHOOKS", "")),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// parseReferralWebhooks parses comma-separated id=url pairs. An empty value
// keeps the built-in table.
func parseReferralWebhooks(raw string) map[string]string {
	if raw == "" {
		return defaultReferralWebhooks
	}
	m := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		id, url, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || id == "" || url == "" {
			continue
		}
		m[id] = url
	}
	return m
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
