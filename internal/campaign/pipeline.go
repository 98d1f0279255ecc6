// Package campaign walks a recipient roster through validation, rendering and
// delivery, producing exactly one outcome per record. Per-recipient failures
// never stop the run; only a broken template does.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/allpackers/campaign/internal/delivery"
	"github.com/allpackers/campaign/internal/models"
)

// Renderer produces the subject and HTML body for a validated recipient.
type Renderer interface {
	RenderEmail(r models.Recipient) (subject, body string, err error)
}

// Courier submits one rendered message through the mail transport.
type Courier interface {
	Send(ctx context.Context, msg *delivery.Message) (*delivery.Receipt, error)
}

// Dependencies collects the runtime collaborators required by the pipeline.
type Dependencies struct {
	Renderer     Renderer
	Courier      Courier
	Logger       zerolog.Logger
	Now          func() time.Time
	NewMessageID func() string
}

// Pipeline drives one campaign execution in roster order.
type Pipeline struct {
	renderer     Renderer
	courier      Courier
	logger       zerolog.Logger
	now          func() time.Time
	newMessageID func() string
}

// New constructs a pipeline using the supplied collaborators. The
// dependencies are validated to prevent misconfiguration at startup.
func New(deps Dependencies) (*Pipeline, error) {
	if deps.Renderer == nil {
		return nil, errors.New("campaign: renderer dependency is required")
	}
	if deps.Courier == nil {
		return nil, errors.New("campaign: courier dependency is required")
	}

	logger := deps.Logger
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	logger = logger.With().Str("component", "campaign_pipeline").Logger()

	nowFunc := deps.Now
	if nowFunc == nil {
		nowFunc = time.Now
	}

	idFunc := deps.NewMessageID
	if idFunc == nil {
		idFunc = uuid.NewString
	}

	return &Pipeline{
		renderer:     deps.Renderer,
		courier:      deps.Courier,
		logger:       logger,
		now:          nowFunc,
		newMessageID: idFunc,
	}, nil
}

// Run processes every recipient in input order and returns the run summary.
// Validation and delivery failures are recorded per recipient and the run
// continues; a renderer failure aborts because it would repeat identically
// for every remaining recipient.
func (p *Pipeline) Run(ctx context.Context, recipients []models.RawRecipient) (*models.RunSummary, error) {
	summary := &models.RunSummary{StartedAt: p.now()}

	if len(recipients) == 0 {
		p.logger.Warn().Msg("no recipients found to send emails")
		summary.FinishedAt = p.now()
		return summary, nil
	}

	p.logger.Info().Int("count", len(recipients)).Msg("campaign run started")

	for _, raw := range recipients {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("campaign: interrupted: %w", err)
		}

		outcome, err := p.process(ctx, raw)
		if err != nil {
			return summary, err
		}
		summary.Record(outcome)
	}

	summary.FinishedAt = p.now()
	return summary, nil
}

func (p *Pipeline) process(ctx context.Context, raw models.RawRecipient) (models.DeliveryOutcome, error) {
	rcpt, err := ValidateRecipient(raw)
	if err != nil {
		name, email := RecipientLabels(raw)
		p.logger.Error().
			Str("name", name).
			Str("email", email).
			Err(err).
			Msg("recipient rejected during validation")
		return models.FailedOutcome(name, email, err.Error()), nil
	}

	subject, body, err := p.renderer.RenderEmail(rcpt)
	if err != nil {
		p.logger.Error().
			Str("email", rcpt.Email).
			Err(err).
			Msg("template rendering failed, aborting run")
		return models.DeliveryOutcome{}, fmt.Errorf("campaign: render for %s: %w", rcpt.Email, err)
	}

	msg := &delivery.Message{
		MessageID: p.newMessageID(),
		To:        rcpt.Email,
		Subject:   subject,
		HTML:      body,
	}

	receipt, err := p.send(ctx, msg)
	if err != nil {
		event := p.logger.Error().
			Str("name", rcpt.Name).
			Str("email", rcpt.Email).
			Str("message_id", msg.MessageID)
		if receipt != nil && receipt.Code != 0 {
			event = event.Int("smtp_code", receipt.Code)
		}
		event.Err(err).Msg("failed to send promotional email")
		return models.FailedOutcome(rcpt.Name, rcpt.Email, failureReason(err)), nil
	}

	event := p.logger.Info().
		Str("name", rcpt.Name).
		Str("email", rcpt.Email).
		Str("message_id", msg.MessageID)
	if receipt != nil {
		event = event.Dur("duration", receipt.Duration)
	}
	event.Msg("promotional email sent successfully")
	return models.SentOutcome(rcpt), nil
}

// send guards the courier call so a panic inside the transport surfaces as a
// per-recipient failure instead of killing the run.
func (p *Pipeline) send(ctx context.Context, msg *delivery.Message) (receipt *delivery.Receipt, err error) {
	defer func() {
		if r := recover(); r != nil {
			receipt = nil
			err = fmt.Errorf("panic during send: %v", r)
		}
	}()

	return p.courier.Send(ctx, msg)
}

// failureReason renders the reason recorded for a failed delivery. Transport
// failures keep the SMTP prefix; anything else is reported as unexpected.
func failureReason(err error) string {
	if errors.Is(err, delivery.ErrTransport) {
		return "SMTP error: " + err.Error()
	}
	return "Unexpected error: " + err.Error()
}
