// Package notify mails the accumulated run log to the campaign administrator
// once a run finishes. Failures here are reported to the caller but must never
// abort the process; the campaign outcome already stands.
package notify

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/allpackers/campaign/internal/config"
)

const (
	logEmailSubject = "All Packers Expeditions - Email Campaign Logs"

	logEmailBody = "Hello,\n\n" +
		"Please find attached the log file for the latest email campaign execution.\n\n" +
		"Best regards,\nAll Packers Expeditions Automated System\n"
)

// Dialer sends assembled messages. gomail's Dialer satisfies it; tests swap
// in a capturing fake.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Option configures optional notifier behaviour.
type Option func(*Notifier)

// WithDialer replaces the SMTP dialer used to submit the log email.
func WithDialer(d Dialer) Option {
	return func(n *Notifier) {
		n.dialer = d
	}
}

// Notifier delivers the run log to the admin mailbox over SMTP.
type Notifier struct {
	dialer     Dialer
	from       string
	fromName   string
	adminEmail string
	logger     zerolog.Logger
}

// New builds a notifier from SMTP settings. The default dialer negotiates
// STARTTLS against the configured host.
func New(cfg config.SMTPConfig, adminEmail string, logger zerolog.Logger, opts ...Option) (*Notifier, error) {
	if cfg.Host == "" {
		return nil, errors.New("notify: smtp host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("notify: invalid smtp port %d", cfg.Port)
	}
	if cfg.From == "" {
		return nil, errors.New("notify: sender address is required")
	}
	if adminEmail == "" {
		return nil, errors.New("notify: admin email is required")
	}

	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	n := &Notifier{
		from:       cfg.From,
		fromName:   cfg.FromName,
		adminEmail: adminEmail,
		logger:     logger.With().Str("component", "notifier").Logger(),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.dialer == nil {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
		d.TLSConfig = &tls.Config{
			ServerName: cfg.Host,
			MinVersion: tls.VersionTLS12,
		}
		n.dialer = d
	}

	return n, nil
}

// SendRunLog emails the log file at path to the admin address. A missing or
// unreadable log file downgrades to a notification without attachment so the
// admin still learns the run happened.
func (n *Notifier) SendRunLog(path string) error {
	msg := gomail.NewMessage()
	if n.fromName != "" {
		msg.SetAddressHeader("From", n.from, n.fromName)
	} else {
		msg.SetHeader("From", n.from)
	}
	msg.SetHeader("To", n.adminEmail)
	msg.SetHeader("Subject", logEmailSubject)
	msg.SetBody("text/plain", logEmailBody)

	attached := n.attachLog(msg, path)

	if err := n.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("notify: send run log: %w", err)
	}

	n.logger.Info().
		Str("to", n.adminEmail).
		Bool("attachment", attached).
		Msg("log email sent successfully to admin")
	return nil
}

// attachLog reads the log file into memory and attaches it. The bytes are
// captured up front so the message body does not depend on the file still
// existing when the dialer streams it.
func (n *Notifier) attachLog(msg *gomail.Message, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		n.logger.Error().
			Str("path", path).
			Err(err).
			Msg("log file not found, cannot attach to log email")
		return false
	}

	msg.Attach(filepath.Base(path), gomail.SetCopyFunc(func(w io.Writer) error {
		_, werr := w.Write(data)
		return werr
	}))
	return true
}
