package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config captures all runtime configuration for the campaign mailer. Values
// come from the environment, optionally seeded from a .env file, and every
// validation failure is reported in a single error.
type Config struct {
	App      AppConfig
	SMTP     SMTPConfig
	Admin    AdminConfig
	Campaign CampaignConfig
	Timeouts TimeoutConfig
}

// AppConfig contains generic application level settings.
type AppConfig struct {
	Env      string
	LogLevel string
}

// SMTPConfig stores SMTP server details and credentials for email delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
}

// AdminConfig identifies the operator who receives the run log.
type AdminConfig struct {
	Email string
}

// CampaignConfig points at the campaign inputs and outputs on disk and selects
// the delivery backend.
type CampaignConfig struct {
	RecipientsFile string
	TemplateFile   string
	LogFile        string
	Provider       string
}

// TimeoutConfig contains timeout thresholds for outbound delivery.
type TimeoutConfig struct {
	SendTimeoutSeconds int
}

// Load reads environment variables, applies defaults, validates required
// values and returns a populated Config instance.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ldr := &envLoader{}

	cfg := &Config{}
	cfg.App.Env = ldr.getString("APP_ENV", "development", false)
	cfg.App.LogLevel = ldr.getString("LOG_LEVEL", "info", false)

	cfg.SMTP.Host = ldr.getString("SMTP_HOST", "", true)
	cfg.SMTP.Port = ldr.getInt("SMTP_PORT", 0, true)
	cfg.SMTP.User = ldr.getString("SMTP_USER", "", true)
	cfg.SMTP.Pass = ldr.getString("SMTP_PASS", "", true)
	cfg.SMTP.From = ldr.getString("SMTP_FROM", "", true)
	cfg.SMTP.FromName = ldr.getString("SMTP_FROM_NAME", "All Packers Expeditions", false)

	cfg.Admin.Email = ldr.getString("ADMIN_EMAIL", "", true)

	cfg.Campaign.RecipientsFile = ldr.getString("RECIPIENTS_FILE", "recipients.json", false)
	cfg.Campaign.TemplateFile = ldr.getString("TEMPLATE_FILE", "campaign_template.html", false)
	cfg.Campaign.LogFile = ldr.getString("LOG_FILE", "email_campaign.log", false)
	cfg.Campaign.Provider = ldr.getString("EMAIL_PROVIDER", "smtp", false)

	cfg.Timeouts.SendTimeoutSeconds = ldr.getInt("SEND_TIMEOUT_SECONDS", 30, false)

	if err := ldr.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

type envLoader struct {
	errs []string
}

func (l *envLoader) validate() error {
	if len(l.errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(l.errs, "; "))
}

func (l *envLoader) getString(key, def string, required bool) string {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val == "" {
			if required {
				l.addError(fmt.Sprintf("%s is required", key))
			}
			return def
		}
		return val
	}
	if required {
		l.addError(fmt.Sprintf("%s is required", key))
	}
	return def
}

func (l *envLoader) getInt(key string, def int, required bool) int {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val == "" {
			if required {
				l.addError(fmt.Sprintf("%s is required", key))
			}
			return def
		}
		i, err := strconv.Atoi(val)
		if err != nil {
			l.addError(fmt.Sprintf("%s must be a valid integer", key))
			return def
		}
		return i
	}
	if required {
		l.addError(fmt.Sprintf("%s is required", key))
	}
	return def
}

func (l *envLoader) addError(err string) {
	l.errs = append(l.errs, err)
}
