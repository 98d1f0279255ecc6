package models

import "time"

// Delivery outcome states.
const (
	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

// DeliveryOutcome records the terminal state reached for a single recipient.
// Failed outcomes carry the human-readable reason that also lands in the run
// log mailed to the admin.
type DeliveryOutcome struct {
	Status string `json:"status"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Reason string `json:"reason,omitempty"`
}

// SentOutcome builds the success outcome for a validated recipient.
func SentOutcome(r Recipient) DeliveryOutcome {
	return DeliveryOutcome{
		Status: OutcomeSent,
		Name:   r.Name,
		Email:  r.Email,
	}
}

// FailedOutcome builds a failure outcome. Name and email may be the "Unknown"
// placeholders when the raw record never yielded them.
func FailedOutcome(name, email, reason string) DeliveryOutcome {
	return DeliveryOutcome{
		Status: OutcomeFailed,
		Name:   name,
		Email:  email,
		Reason: reason,
	}
}

// Sent reports whether the outcome is a success.
func (o DeliveryOutcome) Sent() bool {
	return o.Status == OutcomeSent
}

// RunSummary aggregates one campaign execution. Outcomes preserves roster
// order and SuccessCount+FailureCount always equals len(Outcomes).
type RunSummary struct {
	StartedAt    time.Time         `json:"started_at"`
	FinishedAt   time.Time         `json:"finished_at"`
	SuccessCount int               `json:"success_count"`
	FailureCount int               `json:"failure_count"`
	Outcomes     []DeliveryOutcome `json:"outcomes"`
}

// Record appends an outcome and bumps the matching counter.
func (s *RunSummary) Record(o DeliveryOutcome) {
	s.Outcomes = append(s.Outcomes, o)
	if o.Sent() {
		s.SuccessCount++
		return
	}
	s.FailureCount++
}

// Total returns the number of recipients processed.
func (s *RunSummary) Total() int {
	return len(s.Outcomes)
}

// Failed returns the failure outcomes in the order they occurred.
func (s *RunSummary) Failed() []DeliveryOutcome {
	failed := make([]DeliveryOutcome, 0, s.FailureCount)
	for _, o := range s.Outcomes {
		if !o.Sent() {
			failed = append(failed, o)
		}
	}
	return failed
}
