package delivery_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/allpackers/campaign/internal/delivery"
	emailprovider "github.com/allpackers/campaign/internal/providers/email"
)

type stubProvider struct {
	lastPayload *emailprovider.Payload
	resp        *emailprovider.RawResponse
	err         error
}

func (s *stubProvider) Send(ctx context.Context, payload *emailprovider.Payload) (*emailprovider.RawResponse, error) {
	s.lastPayload = payload
	return s.resp, s.err
}

func fixedClock(moments ...time.Time) func() time.Time {
	idx := 0
	return func() time.Time {
		if idx >= len(moments) {
			return moments[len(moments)-1]
		}
		m := moments[idx]
		idx++
		return m
	}
}

func TestNewCourierValidation(t *testing.T) {
	if _, err := delivery.NewCourier(nil, "noreply@example.com", zerolog.Nop()); err == nil {
		t.Fatalf("expected error for nil provider")
	}
	if _, err := delivery.NewCourier(&stubProvider{}, "", zerolog.Nop()); err == nil {
		t.Fatalf("expected error for empty from address")
	}
}

func TestSendBuildsPayloadAndReceipt(t *testing.T) {
	base := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
	provider := &stubProvider{
		resp: &emailprovider.RawResponse{ID: "msg-1", Code: 250, Body: "smtp: message accepted"},
	}

	courier, err := delivery.NewCourier(provider, "noreply@example.com", zerolog.Nop(),
		delivery.WithClock(fixedClock(base, base.Add(120*time.Millisecond))),
	)
	if err != nil {
		t.Fatalf("NewCourier returned error: %v", err)
	}

	receipt, err := courier.Send(context.Background(), &delivery.Message{
		MessageID: "msg-1",
		To:        "asha@example.com",
		Subject:   "Join Our Bali Adventure – Your Adventure Awaits!",
		HTML:      "<p>Hi Asha</p>",
	})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	payload := provider.lastPayload
	if payload == nil {
		t.Fatalf("expected provider to receive a payload")
	}
	if payload.From != "noreply@example.com" {
		t.Fatalf("unexpected payload from %q", payload.From)
	}
	if payload.To != "asha@example.com" {
		t.Fatalf("unexpected payload to %q", payload.To)
	}
	if payload.BodyType != "html" {
		t.Fatalf("expected html body type, got %q", payload.BodyType)
	}
	if payload.Headers["Message-ID"] != "msg-1" {
		t.Fatalf("expected Message-ID header, got %v", payload.Headers)
	}

	if receipt.Code != 250 {
		t.Fatalf("expected receipt code 250, got %d", receipt.Code)
	}
	if receipt.Detail != "smtp: message accepted" {
		t.Fatalf("unexpected receipt detail %q", receipt.Detail)
	}
	if receipt.Duration != 120*time.Millisecond {
		t.Fatalf("expected measured duration 120ms, got %v", receipt.Duration)
	}
}

func TestSendWrapsProviderErrors(t *testing.T) {
	provider := &stubProvider{
		resp: &emailprovider.RawResponse{ID: "msg-2", Code: 535, Body: "authentication failed"},
		err:  errors.New("smtp provider: auth: smtp 535: authentication failed"),
	}

	courier, err := delivery.NewCourier(provider, "noreply@example.com", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewCourier returned error: %v", err)
	}

	receipt, sendErr := courier.Send(context.Background(), &delivery.Message{
		MessageID: "msg-2",
		To:        "ben@example.com",
		Subject:   "subject",
		HTML:      "<p>body</p>",
	})
	if sendErr == nil {
		t.Fatalf("expected error from provider failure")
	}
	if !errors.Is(sendErr, delivery.ErrTransport) {
		t.Fatalf("expected transport error, got %v", sendErr)
	}
	if strings.Contains(sendErr.Error(), delivery.ErrTransport.Error()) {
		t.Fatalf("expected bare cause in message, got %q", sendErr.Error())
	}
	if receipt == nil || receipt.Code != 535 {
		t.Fatalf("expected receipt with code 535, got %+v", receipt)
	}
}

func TestSendExtractsCodeFromErrorText(t *testing.T) {
	provider := &stubProvider{
		err: errors.New("smtp 451: mock: requested action aborted, try again later"),
	}

	courier, err := delivery.NewCourier(provider, "noreply@example.com", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewCourier returned error: %v", err)
	}

	receipt, sendErr := courier.Send(context.Background(), &delivery.Message{
		MessageID: "msg-3",
		To:        "cara@example.com",
	})
	if sendErr == nil {
		t.Fatalf("expected error from provider failure")
	}
	if receipt == nil || receipt.Code != 451 {
		t.Fatalf("expected code 451 recovered from error text, got %+v", receipt)
	}
}

func TestSendTruncatesDetail(t *testing.T) {
	provider := &stubProvider{
		resp: &emailprovider.RawResponse{Code: 250, Body: strings.Repeat("x", 100)},
	}

	courier, err := delivery.NewCourier(provider, "noreply@example.com", zerolog.Nop(),
		delivery.WithRawDetailLimit(10),
	)
	if err != nil {
		t.Fatalf("NewCourier returned error: %v", err)
	}

	receipt, sendErr := courier.Send(context.Background(), &delivery.Message{MessageID: "msg-4", To: "d@example.com"})
	if sendErr != nil {
		t.Fatalf("Send returned error: %v", sendErr)
	}
	if receipt.Detail != strings.Repeat("x", 10) {
		t.Fatalf("expected detail truncated to 10 chars, got %q", receipt.Detail)
	}
}

func TestSendNilMessage(t *testing.T) {
	courier, err := delivery.NewCourier(&stubProvider{}, "noreply@example.com", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewCourier returned error: %v", err)
	}

	if _, err := courier.Send(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil message")
	}
}

func TestSendHonoursCancelledContext(t *testing.T) {
	provider := &stubProvider{}
	courier, err := delivery.NewCourier(provider, "noreply@example.com", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewCourier returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, sendErr := courier.Send(ctx, &delivery.Message{MessageID: "msg-5", To: "e@example.com"})
	if !errors.Is(sendErr, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", sendErr)
	}
	if errors.Is(sendErr, delivery.ErrTransport) {
		t.Fatalf("cancellation must not classify as transport failure")
	}
	if provider.lastPayload != nil {
		t.Fatalf("expected provider not to be invoked after cancellation")
	}
}
