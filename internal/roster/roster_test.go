package roster_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/allpackers/campaign/internal/models"
	"github.com/allpackers/campaign/internal/roster"
)

func TestParseKeepsOrderAndNumberShape(t *testing.T) {
	data := []byte(`[
		{"email": "a@example.com", "name": "Asha", "trip_cost": 1500},
		{"email": "b@example.com", "name": "Ben", "trip_cost": "499.99"}
	]`)

	recipients, err := roster.Parse(data)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(recipients) != 2 {
		t.Fatalf("expected 2 recipients, got %d", len(recipients))
	}
	if recipients[0][models.FieldEmail] != "a@example.com" {
		t.Fatalf("expected first entry a@example.com, got %v", recipients[0][models.FieldEmail])
	}

	if _, ok := recipients[0][models.FieldTripCost].(json.Number); !ok {
		t.Fatalf("expected numeric trip_cost to decode as json.Number, got %T", recipients[0][models.FieldTripCost])
	}
	if _, ok := recipients[1][models.FieldTripCost].(string); !ok {
		t.Fatalf("expected string trip_cost to stay a string, got %T", recipients[1][models.FieldTripCost])
	}
}

func TestParseRejectsNonArray(t *testing.T) {
	if _, err := roster.Parse([]byte(`{"email": "a@example.com"}`)); !errors.Is(err, roster.ErrNotArray) {
		t.Fatalf("expected ErrNotArray for object root, got %v", err)
	}
}

func TestParseRejectsNonObjectEntry(t *testing.T) {
	if _, err := roster.Parse([]byte(`["just-a-string"]`)); err == nil {
		t.Fatalf("expected error for non-object entry")
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := roster.Parse([]byte(`[{"email": ]`)); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestLoadMissingFileReturnsEmptyRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	recipients := roster.Load(path, zerolog.Nop())
	if len(recipients) != 0 {
		t.Fatalf("expected empty roster for missing file, got %d entries", len(recipients))
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipients.json")
	content := `[{"email": "a@example.com", "name": "Asha"}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	recipients := roster.Load(path, zerolog.Nop())
	if len(recipients) != 1 {
		t.Fatalf("expected 1 recipient, got %d", len(recipients))
	}
	if !recipients[0].Has(models.FieldName) {
		t.Fatalf("expected name field present")
	}
}

func TestLoadMalformedFileReturnsEmptyRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipients.json")
	if err := os.WriteFile(path, []byte(`{"not": "an array"}`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	recipients := roster.Load(path, zerolog.Nop())
	if len(recipients) != 0 {
		t.Fatalf("expected empty roster for malformed file, got %d entries", len(recipients))
	}
}
