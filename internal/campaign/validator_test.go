package campaign_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/allpackers/campaign/internal/campaign"
	"github.com/allpackers/campaign/internal/models"
)

func fullRecord() models.RawRecipient {
	return models.RawRecipient{
		"email":            "asha@example.com",
		"name":             "Asha",
		"trip_name":        "Bali Adventure",
		"trip_date":        "12 March 2026",
		"trip_cost":        json.Number("1500"),
		"trip_description": "Ten days of surfing and temples.",
	}
}

func TestValidateRecipientSuccess(t *testing.T) {
	rcpt, err := campaign.ValidateRecipient(fullRecord())
	if err != nil {
		t.Fatalf("ValidateRecipient returned error: %v", err)
	}

	if rcpt.Email != "asha@example.com" || rcpt.Name != "Asha" {
		t.Fatalf("unexpected recipient identity: %+v", rcpt)
	}
	if rcpt.TripName != "Bali Adventure" || rcpt.TripDate != "12 March 2026" {
		t.Fatalf("unexpected trip fields: %+v", rcpt)
	}
	if rcpt.TripCost != 1500 {
		t.Fatalf("expected cost 1500, got %v", rcpt.TripCost)
	}
}

func TestValidateRecipientStringCost(t *testing.T) {
	record := fullRecord()
	record["trip_cost"] = "499.99"

	rcpt, err := campaign.ValidateRecipient(record)
	if err != nil {
		t.Fatalf("ValidateRecipient returned error: %v", err)
	}
	if rcpt.TripCost != 499.99 {
		t.Fatalf("expected cost 499.99, got %v", rcpt.TripCost)
	}
}

func TestValidateRecipientMissingFieldsInOrder(t *testing.T) {
	record := models.RawRecipient{"email": "asha@example.com", "trip_date": "12 March 2026"}

	_, err := campaign.ValidateRecipient(record)
	if err == nil {
		t.Fatalf("expected error for missing fields")
	}

	var missing *campaign.MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %T", err)
	}

	want := "Missing fields: name, trip_name, trip_cost, trip_description"
	if err.Error() != want {
		t.Fatalf("unexpected reason %q, want %q", err.Error(), want)
	}
}

func TestValidateRecipientInvalidCost(t *testing.T) {
	record := fullRecord()
	record["trip_cost"] = "somewhere around a grand"

	_, err := campaign.ValidateRecipient(record)
	if err == nil {
		t.Fatalf("expected error for invalid cost")
	}

	var invalid *campaign.InvalidCostError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidCostError, got %T", err)
	}
	if err.Error() != "Invalid trip_cost: somewhere around a grand" {
		t.Fatalf("unexpected reason %q", err.Error())
	}
}

func TestValidateRecipientNegativeCost(t *testing.T) {
	record := fullRecord()
	record["trip_cost"] = json.Number("-100")

	_, err := campaign.ValidateRecipient(record)
	var invalid *campaign.InvalidCostError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidCostError for negative cost, got %v", err)
	}
	if invalid.Value != "-100" {
		t.Fatalf("expected raw value -100, got %q", invalid.Value)
	}
}

func TestValidateRecipientEmptyStringsPass(t *testing.T) {
	record := fullRecord()
	record["email"] = ""
	record["name"] = ""

	rcpt, err := campaign.ValidateRecipient(record)
	if err != nil {
		t.Fatalf("presence-only validation should accept empty strings, got %v", err)
	}
	if rcpt.Email != "" || rcpt.Name != "" {
		t.Fatalf("expected empty identity fields, got %+v", rcpt)
	}
}

func TestRecipientLabels(t *testing.T) {
	name, email := campaign.RecipientLabels(models.RawRecipient{})
	if name != "Unknown" || email != "Unknown" {
		t.Fatalf("expected Unknown fallbacks, got %q %q", name, email)
	}

	name, email = campaign.RecipientLabels(models.RawRecipient{
		"name":  "",
		"email": "asha@example.com",
	})
	if name != "" {
		t.Fatalf("present empty name must stay empty, got %q", name)
	}
	if email != "asha@example.com" {
		t.Fatalf("unexpected email label %q", email)
	}

	name, _ = campaign.RecipientLabels(models.RawRecipient{"name": json.Number("42")})
	if name != "42" {
		t.Fatalf("expected numeric name coerced to string, got %q", name)
	}
}
