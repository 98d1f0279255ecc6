package email

import (
	"context"
	"time"
)

// Payload is the canonical representation of one outbound email handed to a
// provider. Delivery is single recipient: the campaign submits exactly one To
// address per send.
type Payload struct {
	MessageID string
	From      string
	To        string
	Subject   string
	BodyType  string
	Body      string
	Headers   map[string]string
}

// RawResponse mirrors the low level provider response that the courier
// inspects to derive delivery receipts.
type RawResponse struct {
	ID        string
	Code      int
	Body      string
	Timestamp time.Time
}

// Provider is the contract shared by the SMTP and mock implementations.
type Provider interface {
	Send(ctx context.Context, payload *Payload) (*RawResponse, error)
}
