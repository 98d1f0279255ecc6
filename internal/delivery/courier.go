// Package delivery submits rendered campaign emails through an email provider
// and normalizes the result into receipts the pipeline can account.
package delivery

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	emailprovider "github.com/allpackers/campaign/internal/providers/email"
)

// DefaultRawDetailLimit caps the characters retained from a provider response
// body when attaching it to a receipt.
const DefaultRawDetailLimit = 1024

var smtpErrPattern = regexp.MustCompile(`smtp\s+(\d{3})`)

// Message is one fully rendered campaign email ready for submission.
type Message struct {
	MessageID string
	To        string
	Subject   string
	HTML      string
}

// Receipt normalizes the provider response for run-log reporting.
type Receipt struct {
	MessageID string
	Code      int
	Detail    string
	Duration  time.Duration
}

// Option customises courier behaviour.
type Option func(*Courier)

// WithSendTimeout bounds each submission attempt. Zero disables the per-send
// deadline.
func WithSendTimeout(d time.Duration) Option {
	return func(c *Courier) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

// WithClock replaces the clock used for duration measurement.
func WithClock(now func() time.Time) Option {
	return func(c *Courier) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRawDetailLimit overrides the maximum number of characters retained from
// the provider raw response.
func WithRawDetailLimit(limit int) Option {
	return func(c *Courier) {
		if limit > 0 {
			c.maxDetailChars = limit
		}
	}
}

// Courier submits rendered messages through the configured provider, scoping
// one timeout to each send. Every provider failure comes back wrapped as a
// TransportError so callers can separate transport trouble from surprises.
type Courier struct {
	logger         zerolog.Logger
	provider       emailprovider.Provider
	from           string
	timeout        time.Duration
	now            func() time.Time
	maxDetailChars int
}

// NewCourier constructs a courier using the provided dependencies.
func NewCourier(provider emailprovider.Provider, from string, logger zerolog.Logger, opts ...Option) (*Courier, error) {
	if provider == nil {
		return nil, errors.New("delivery: provider dependency is required")
	}
	if from == "" {
		return nil, errors.New("delivery: from address is required")
	}
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	c := &Courier{
		logger:         logger,
		provider:       provider,
		from:           from,
		timeout:        30 * time.Second,
		now:            time.Now,
		maxDetailChars: DefaultRawDetailLimit,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c, nil
}

// Send submits one message and returns the delivery receipt. The receipt is
// populated even when the provider fails, so the caller can log the SMTP code
// alongside the failure reason.
func (c *Courier) Send(ctx context.Context, msg *Message) (*Receipt, error) {
	if msg == nil {
		return nil, errors.New("delivery: message is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload := &emailprovider.Payload{
		MessageID: msg.MessageID,
		From:      c.from,
		To:        msg.To,
		Subject:   msg.Subject,
		BodyType:  "html",
		Body:      msg.HTML,
		Headers: map[string]string{
			"Message-ID": msg.MessageID,
		},
	}

	start := c.now()
	raw, err := c.provider.Send(ctx, payload)
	duration := c.now().Sub(start)

	receipt := &Receipt{
		MessageID: msg.MessageID,
		Duration:  duration,
	}
	if raw != nil {
		receipt.Code = raw.Code
		receipt.Detail = truncateDetail(raw.Body, c.maxDetailChars)
	}

	if err != nil {
		if receipt.Code == 0 {
			if code, ok := extractSMTPCode(err); ok {
				receipt.Code = code
			}
		}
		c.logger.Info().
			Str("message_id", msg.MessageID).
			Str("to", msg.To).
			Int("smtp_code", receipt.Code).
			Dur("duration", duration).
			Err(err).
			Msg("email send failed")
		return receipt, WrapTransport(err)
	}

	c.logger.Debug().
		Str("message_id", msg.MessageID).
		Str("to", msg.To).
		Int("smtp_code", receipt.Code).
		Dur("duration", duration).
		Msg("email send succeeded")
	return receipt, nil
}

func extractSMTPCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	matches := smtpErrPattern.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0, false
	}
	code, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0, false
	}
	return code, true
}

func truncateDetail(raw string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(raw) <= limit {
		return raw
	}
	return string([]rune(raw)[:limit])
}
