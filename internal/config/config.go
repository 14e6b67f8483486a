package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Mail provider names accepted in MAIL_PROVIDER.
const (
	ProviderSMTP     = "smtp"
	ProviderSendGrid = "sendgrid"
)

// Config holds all process configuration, sourced from the environment.
type Config struct {
	// Server
	Port       string
	AdminToken string

	// Database (DATABASE_URL wins; otherwise the discrete DB_* vars are required)
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string

	// Google Sheets roster
	ServiceAccountJSON string
	SheetID            string
	SheetRange         string

	// Mail
	MailProvider      string
	SMTPHost          string
	SMTPPort          int
	SenderEmail       string
	SenderPassword    string
	SenderName        string
	SendGridAPIKey    string
	SendGridFromEmail string

	// Workshop
	WorkshopTitle string
	WorkshopLink  string
	Timezone      *time.Location

	// Worker
	PollInterval time.Duration
	ReminderLead time.Duration
}

// Load reads configuration from the environment. Missing required variables
// are a fatal startup error, per the error handling design: the process must
// not start half-configured.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnvDefault("PORT", "8080"),
		AdminToken:         os.Getenv("ADMIN_TOKEN"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBSSLMode:          getEnvDefault("DB_SSL_MODE", "disable"),
		ServiceAccountJSON: os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
		SheetID:            os.Getenv("SHEET_ID"),
		SheetRange:         getEnvDefault("SHEET_RANGE", "New Responses!A2:D"),
		MailProvider:       getEnvDefault("MAIL_PROVIDER", ProviderSMTP),
		SMTPHost:           getEnvDefault("SMTP_HOST", "smtp.gmail.com"),
		SenderEmail:        os.Getenv("SENDER_EMAIL"),
		SenderPassword:     os.Getenv("SENDER_PASSWORD"),
		SenderName:         getEnvDefault("SENDER_NAME", "Workshop Team"),
		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail:  os.Getenv("SENDGRID_FROM_EMAIL"),
		WorkshopTitle:      getEnvDefault("WORKSHOP_TITLE", "Agentic AI Workshop"),
		WorkshopLink:       os.Getenv("WORKSHOP_LINK"),
	}

	if cfg.ServiceAccountJSON == "" {
		return nil, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is not set")
	}
	if cfg.SheetID == "" {
		return nil, fmt.Errorf("SHEET_ID is not set")
	}

	if cfg.DatabaseURL == "" {
		for _, key := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PORT"} {
			if os.Getenv(key) == "" {
				return nil, fmt.Errorf("either DATABASE_URL or %s must be set", key)
			}
		}
		cfg.DBHost = os.Getenv("DB_HOST")
		cfg.DBUser = os.Getenv("DB_USER")
		cfg.DBPassword = os.Getenv("DB_PASSWORD")
		cfg.DBName = os.Getenv("DB_NAME")
		cfg.DBPort = os.Getenv("DB_PORT")
	}

	switch cfg.MailProvider {
	case ProviderSMTP:
		if cfg.SenderEmail == "" || cfg.SenderPassword == "" {
			return nil, fmt.Errorf("SENDER_EMAIL and SENDER_PASSWORD must be set for the smtp provider")
		}
		port, err := strconv.Atoi(getEnvDefault("SMTP_PORT", "587"))
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
		}
		cfg.SMTPPort = port
	case ProviderSendGrid:
		if cfg.SendGridAPIKey == "" || cfg.SendGridFromEmail == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY and SENDGRID_FROM_EMAIL must be set for the sendgrid provider")
		}
	default:
		return nil, fmt.Errorf("unknown MAIL_PROVIDER %q", cfg.MailProvider)
	}

	tz, err := time.LoadLocation(getEnvDefault("WORKSHOP_TIMEZONE", "Asia/Kolkata"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKSHOP_TIMEZONE: %w", err)
	}
	cfg.Timezone = tz

	cfg.PollInterval, err = parseDurationDefault("POLL_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.ReminderLead, err = parseDurationDefault("REMINDER_LEAD", time.Hour)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvDefault returns the environment variable value or a fallback
func getEnvDefault(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func parseDurationDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
