package email

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/allpackers/campaign/internal/config"
)

// New constructs the configured email provider. The real SMTP backend is the
// default; the mock backend supports dry runs without a mail server.
func New(backend string, cfg config.SMTPConfig, logger zerolog.Logger) (Provider, error) {
	switch normalizeBackend(backend) {
	case "smtp":
		provider, err := NewSMTPProvider(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("email: smtp provider init: %w", err)
		}
		logger.Info().
			Str("backend", "smtp").
			Msg("email provider initialised")
		return provider, nil
	case "mock":
		provider := NewMockProvider(logger)
		logger.Info().
			Str("backend", "mock").
			Msg("email provider initialised")
		return provider, nil
	default:
		return nil, fmt.Errorf("email: unsupported provider backend %q", backend)
	}
}

func normalizeBackend(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "smtp"
	}
	return value
}
