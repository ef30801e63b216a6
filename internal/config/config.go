package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string `env:"ENV" envDefault:"development"`
	Port           string `env:"API_PORT" envDefault:"5000"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile        string `env:"LOG_FILE"`
	LogRequests    bool   `env:"LOG_REQUESTS" envDefault:"false"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`
	RateLimitRPS   int    `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int    `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// Storage Configuration
	StoreDriver   string `env:"STORE_DRIVER" envDefault:"memory"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DBAutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	Sheets    SheetsConfig
	WhatsApp  WhatsAppConfig
	Telegram  TelegramConfig
	Recaptcha RecaptchaConfig
	Sentry    SentryConfig
	RabbitMQ  RabbitMQConfig
	Telemetry TelemetryConfig
}

// SheetsConfig configures the spreadsheet mirror. Delivery mode priority is
// web app URL, then API key, then service-account credentials.
type SheetsConfig struct {
	WebAppURL     string        `env:"GOOGLE_SHEETS_WEB_APP_URL"`
	APIKey        string        `env:"GOOGLE_SHEETS_API_KEY"`
	SpreadsheetID string        `env:"GOOGLE_SHEETS_SPREADSHEET_ID"`
	Credentials   string        `env:"GOOGLE_SHEETS_CREDENTIALS"`
	Range         string        `env:"GOOGLE_SHEETS_RANGE" envDefault:"Sheet1"`
	Timeout       time.Duration `env:"SHEETS_TIMEOUT" envDefault:"10s"`
}

// WhatsAppConfig configures the chat deep link returned to the browser.
type WhatsAppConfig struct {
	BaseURL      string `env:"WHATSAPP_BASE_URL" envDefault:"https://wa.me"`
	ContactPhone string `env:"WHATSAPP_CONTACT_PHONE"`
	InquiryPhone string `env:"WHATSAPP_INQUIRY_PHONE"`
}

type TelegramConfig struct {
	BotToken string `env:"TELEGRAM_BOT_TOKEN"`
	ChatID   string `env:"TELEGRAM_CHAT_ID"`
}

type RecaptchaConfig struct {
	SecretKey string  `env:"RECAPTCHA_SECRET_KEY"`
	MinScore  float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`
}

type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT"`
}

type RabbitMQConfig struct {
	URL        string `env:"RABBITMQ_URL"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"portfolio.submissions"`
	RoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"submission.created"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"portfolio-api"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// Try multiple locations for .env file
	envLocations := []string{
		"internal/config/env/.env.development",
		".env",
	}

	// If ENV is set, try to load that specific file first
	envName := os.Getenv("ENV")
	if envName != "" {
		envLocations = append([]string{fmt.Sprintf("internal/config/env/.env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv.Load never overrides variables that are already set
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}

// Parse reads the configuration from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if cfg.WhatsApp.InquiryPhone == "" {
		cfg.WhatsApp.InquiryPhone = cfg.WhatsApp.ContactPhone
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.IsProduction() {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	s := c.Sheets
	hasCredential := s.APIKey != "" || s.Credentials != ""
	if s.SpreadsheetID != "" && !hasCredential && s.WebAppURL == "" {
		return fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID needs GOOGLE_SHEETS_API_KEY or GOOGLE_SHEETS_CREDENTIALS")
	}
	if hasCredential && s.SpreadsheetID == "" && s.WebAppURL == "" {
		return fmt.Errorf("google sheets credentials need GOOGLE_SHEETS_SPREADSHEET_ID")
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("SHEETS_TIMEOUT must be positive")
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return nil
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
