// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	authDomain "github.com/paylink/terminal/internal/auth/domain"
	cryptoDomain "github.com/paylink/terminal/internal/crypto/domain"
	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
	customValidation "github.com/paylink/terminal/internal/validation"
)

// Config holds all application configuration. It is loaded once at startup
// and passed explicitly; nothing reads the environment afterwards.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// BaseURL is the public origin every issued link is rooted at.
	BaseURL string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// SigningSecret keys the HMAC link signatures.
	SigningSecret string
	// EncryptionSecret keys the PII token cipher.
	EncryptionSecret string
	// AllowSharedSecret permits identical signing and encryption secrets. The
	// encryption key is then derived with HKDF.
	AllowSharedSecret bool
	// SecretsKMSKeyURI, when set, marks both secrets as base64 ciphertexts to be
	// opened with this KMS key (e.g., "awskms://...", "base64key://...").
	SecretsKMSKeyURI string
	// TokenAlgorithm is the PII token cipher ("aes-gcm" or "chacha20-poly1305").
	TokenAlgorithm string

	// PayLinkLifetime bounds the validity of a payment link.
	PayLinkLifetime time.Duration
	// ReceiptLifetime bounds the validity of receipt and webhook links.
	ReceiptLifetime time.Duration
	// SessionLifetime bounds an operator login.
	SessionLifetime time.Duration
	// ClockSkew is how far in the future a link timestamp may lie.
	ClockSkew time.Duration

	// TerminalPassword is the operator password.
	TerminalPassword string
	// TerminalPasswordHash is an Argon2id hash of the operator password. It
	// takes precedence over TerminalPassword.
	TerminalPasswordHash string
	// SessionMode selects the session cookie format ("token" or "legacy").
	SessionMode string

	// WebhookAuthMode selects how gateway callbacks are authenticated ("signed" or "secret").
	WebhookAuthMode string
	// WebhookSecret is the static callback secret used in "secret" mode.
	WebhookSecret string

	// GatewayBaseURL is the payment gateway API origin.
	GatewayBaseURL string
	// GatewayAPIKey is sent as X-API-Key on every gateway call.
	GatewayAPIKey string
	// GatewayTimeout bounds a single outbound call.
	GatewayTimeout time.Duration
	// GatewayUserAgent identifies the terminal to the gateway.
	GatewayUserAgent string

	// Currency is the ISO currency code of every payment.
	Currency string
	// DefaultTitle is the payment title when the operator gives none.
	DefaultTitle string
	// MerchantName is shown on every screen and in notifications.
	MerchantName string

	// NotifierURL is the chat webhook for transaction updates. Empty disables notifications.
	NotifierURL string
	// QRCodeBaseURL is the QR code image service.
	QRCodeBaseURL string
	// SupportEmail and SupportWhatsApp are offered on error screens.
	SupportEmail    string
	SupportWhatsApp string

	// RateLimitLoginEnabled indicates whether the per-IP login rate limit is enabled.
	RateLimitLoginEnabled bool
	// RateLimitLoginRequestsPerSec is the number of login attempts allowed per second per IP.
	RateLimitLoginRequestsPerSec float64
	// RateLimitLoginBurst is the burst size of the login rate limit.
	RateLimitLoginBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// OTelEnabled indicates whether traces are exported.
	OTelEnabled bool
	// OTelEndpoint is the OTLP gRPC collector endpoint.
	OTelEndpoint string
	// OTelServiceName is the service.name resource attribute.
	OTelServiceName string
	// OTelSamplingRate is the fraction of traces sampled (0 to 1).
	OTelSamplingRate float64
	// OTelInsecure disables TLS towards the collector.
	OTelInsecure bool
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),
		BaseURL:    env.GetString("BASE_URL", "http://localhost:8080"),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Link security
		SigningSecret:     env.GetString("SIGNING_SECRET", ""),
		EncryptionSecret:  env.GetString("ENCRYPTION_SECRET", ""),
		AllowSharedSecret: env.GetBool("ALLOW_SHARED_SECRET", false),
		SecretsKMSKeyURI:  env.GetString("SECRETS_KMS_KEY_URI", ""),
		TokenAlgorithm:    env.GetString("TOKEN_ALGORITHM", string(cryptoDomain.AESGCM)),

		// Lifetimes
		PayLinkLifetime: env.GetDuration("PAY_LINK_LIFETIME_MINUTES", 30, time.Minute),
		ReceiptLifetime: env.GetDuration("RECEIPT_LIFETIME_HOURS", 48, time.Hour),
		SessionLifetime: env.GetDuration("SESSION_LIFETIME_SECONDS", 120, time.Second),
		ClockSkew:       env.GetDuration("CLOCK_SKEW_SECONDS", 300, time.Second),

		// Operator session
		TerminalPassword:     env.GetString("TERMINAL_PASSWORD", ""),
		TerminalPasswordHash: env.GetString("TERMINAL_PASSWORD_HASH", ""),
		SessionMode:          env.GetString("SESSION_MODE", string(authDomain.SessionModeToken)),

		// Webhook
		WebhookAuthMode: env.GetString("WEBHOOK_AUTH_MODE", string(linksecDomain.WebhookAuthSigned)),
		WebhookSecret:   env.GetString("WEBHOOK_SECRET", ""),

		// Payment gateway
		GatewayBaseURL:   env.GetString("GATEWAY_BASE_URL", "https://sindipay.com"),
		GatewayAPIKey:    env.GetString("GATEWAY_API_KEY", ""),
		GatewayTimeout:   env.GetDuration("GATEWAY_TIMEOUT_SECONDS", 15, time.Second),
		GatewayUserAgent: env.GetString("GATEWAY_USER_AGENT", "PayLink-POS/Terminal"),

		// Merchant
		Currency:     env.GetString("CURRENCY", "IQD"),
		DefaultTitle: env.GetString("DEFAULT_TITLE", "POS Terminal Payment"),
		MerchantName: env.GetString("MERCHANT_NAME", "POS Terminal"),

		// Notifications and support
		NotifierURL:     env.GetString("NOTIFIER_URL", ""),
		QRCodeBaseURL:   env.GetString("QR_CODE_BASE_URL", "https://api.qrserver.com/v1/create-qr-code/"),
		SupportEmail:    env.GetString("SUPPORT_EMAIL", ""),
		SupportWhatsApp: env.GetString("SUPPORT_WHATSAPP", ""),

		// Rate Limiting for the login endpoint (IP-based, unauthenticated)
		RateLimitLoginEnabled:        env.GetBool("RATE_LIMIT_LOGIN_ENABLED", true),
		RateLimitLoginRequestsPerSec: env.GetFloat64("RATE_LIMIT_LOGIN_REQUESTS_PER_SEC", 1.0),
		RateLimitLoginBurst:          env.GetInt("RATE_LIMIT_LOGIN_BURST", 5),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "paylink"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),

		// Tracing
		OTelEnabled:      env.GetBool("OTEL_ENABLED", false),
		OTelEndpoint:     env.GetString("OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:  env.GetString("OTEL_SERVICE_NAME", "paylink-terminal"),
		OTelSamplingRate: env.GetFloat64("OTEL_SAMPLING_RATE", 1.0),
		OTelInsecure:     env.GetBool("OTEL_INSECURE", false),
	}
}

// Validate checks the settings every command needs: the link secrets, the
// public origin, lifetimes and modes.
func (c *Config) Validate() error {
	kms := c.SecretsKMSKeyURI != ""

	err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, customValidation.HTTPURL),
		validation.Field(&c.SigningSecret,
			validation.Required,
			validation.When(kms, customValidation.Base64),
		),
		validation.Field(&c.EncryptionSecret,
			validation.Required,
			validation.When(kms, customValidation.Base64),
		),
		validation.Field(&c.TokenAlgorithm,
			validation.Required,
			validation.In(string(cryptoDomain.AESGCM), string(cryptoDomain.ChaCha20)),
		),
		validation.Field(&c.PayLinkLifetime, customValidation.PositiveDuration),
		validation.Field(&c.ReceiptLifetime, customValidation.PositiveDuration),
		validation.Field(&c.SessionLifetime, customValidation.PositiveDuration),
		validation.Field(&c.ClockSkew, customValidation.PositiveDuration),
		validation.Field(&c.SessionMode,
			validation.Required,
			validation.In(string(authDomain.SessionModeToken), string(authDomain.SessionModeLegacy)),
		),
		validation.Field(&c.WebhookAuthMode,
			validation.Required,
			validation.In(string(linksecDomain.WebhookAuthSigned), string(linksecDomain.WebhookAuthSecret)),
		),
		validation.Field(&c.WebhookSecret,
			validation.When(c.WebhookAuthMode == string(linksecDomain.WebhookAuthSecret), validation.Required),
		),
	)
	return customValidation.WrapValidationError(err)
}

// ValidateServer checks everything Validate does plus the settings only the
// HTTP server needs: operator credentials, the gateway, and the outer surfaces.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}

	err := validation.ValidateStruct(c,
		validation.Field(&c.TerminalPassword,
			validation.When(c.TerminalPasswordHash == "", validation.Required),
		),
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.GatewayBaseURL, validation.Required, customValidation.HTTPURL),
		validation.Field(&c.GatewayAPIKey, validation.Required, customValidation.NoWhitespace),
		validation.Field(&c.GatewayTimeout, customValidation.PositiveDuration),
		validation.Field(&c.Currency, validation.Required, validation.Length(3, 3)),
		validation.Field(&c.NotifierURL, customValidation.HTTPURL),
		validation.Field(&c.QRCodeBaseURL, validation.Required, customValidation.HTTPURL),
		validation.Field(&c.SupportEmail, customValidation.Email),
		validation.Field(&c.SupportWhatsApp, customValidation.HTTPURL),
		validation.Field(&c.RateLimitLoginRequestsPerSec,
			validation.When(c.RateLimitLoginEnabled, validation.Required, validation.Min(0.001)),
		),
		validation.Field(&c.RateLimitLoginBurst,
			validation.When(c.RateLimitLoginEnabled, validation.Required, validation.Min(1)),
		),
		validation.Field(&c.MetricsPort,
			validation.When(c.MetricsEnabled, validation.Required, validation.Min(1), validation.Max(65535)),
		),
		validation.Field(&c.OTelEndpoint, validation.When(c.OTelEnabled, validation.Required)),
		validation.Field(&c.OTelSamplingRate, validation.Min(0.0), validation.Max(1.0)),
	)
	return customValidation.WrapValidationError(err)
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
