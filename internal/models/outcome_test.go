package models_test

import (
	"testing"

	"github.com/allpackers/campaign/internal/models"
)

func TestRunSummaryRecordKeepsCountersBalanced(t *testing.T) {
	summary := &models.RunSummary{}

	summary.Record(models.SentOutcome(models.Recipient{Name: "Asha", Email: "asha@example.com"}))
	summary.Record(models.FailedOutcome("Unknown", "Unknown", "Missing fields: email"))
	summary.Record(models.SentOutcome(models.Recipient{Name: "Ben", Email: "ben@example.com"}))
	summary.Record(models.FailedOutcome("Cara", "cara@example.com", "SMTP error: smtp 550: mailbox unavailable"))

	if summary.SuccessCount != 2 {
		t.Fatalf("expected 2 successes, got %d", summary.SuccessCount)
	}
	if summary.FailureCount != 2 {
		t.Fatalf("expected 2 failures, got %d", summary.FailureCount)
	}
	if summary.SuccessCount+summary.FailureCount != summary.Total() {
		t.Fatalf("counters do not add up to %d outcomes", summary.Total())
	}
}

func TestRunSummaryFailedPreservesOrder(t *testing.T) {
	summary := &models.RunSummary{}
	summary.Record(models.FailedOutcome("First", "first@example.com", "Missing fields: trip_date"))
	summary.Record(models.SentOutcome(models.Recipient{Name: "Mid", Email: "mid@example.com"}))
	summary.Record(models.FailedOutcome("Second", "second@example.com", "Invalid trip_cost: soon"))

	failed := summary.Failed()
	if len(failed) != 2 {
		t.Fatalf("expected 2 failed outcomes, got %d", len(failed))
	}
	if failed[0].Email != "first@example.com" || failed[1].Email != "second@example.com" {
		t.Fatalf("failed outcomes out of order: %+v", failed)
	}
}

func TestOutcomeConstructors(t *testing.T) {
	sent := models.SentOutcome(models.Recipient{Name: "Asha", Email: "asha@example.com"})
	if !sent.Sent() || sent.Status != models.OutcomeSent {
		t.Fatalf("expected sent outcome, got %+v", sent)
	}
	if sent.Reason != "" {
		t.Fatalf("sent outcome must not carry a reason, got %q", sent.Reason)
	}

	failed := models.FailedOutcome("Unknown", "Unknown", "Missing fields: email, name")
	if failed.Sent() || failed.Status != models.OutcomeFailed {
		t.Fatalf("expected failed outcome, got %+v", failed)
	}
	if failed.Reason != "Missing fields: email, name" {
		t.Fatalf("unexpected reason %q", failed.Reason)
	}
}
