package entities

import (
	"time"
)

// Flow is one patient's journey through the orchestration state machine.
//
// Storage model:
//   - PK: id
//   - version is incremented on every committed mutation (optimistic concurrency).
//   - audit_sequence is the sequence number of the last audit entry written for the flow.
//
// Optional references (patient, product, duration, order, ...) use the empty string for "not set".
// PricingSnapshot is frozen at product selection; the only replacement is the explicit re-price
// performed when a subscription duration is configured, which keeps the replaced snapshot in
// PricingHistory.
type Flow struct {
	ID                     string                    `json:"id"`
	PatientID              string                    `json:"patient_id,omitempty"`
	CategoryID             string                    `json:"category_id"`
	ProductID              string                    `json:"product_id,omitempty"`
	SubscriptionDurationID string                    `json:"subscription_duration_id,omitempty"`
	Status                 FlowStatus                `json:"status"`
	PricingSnapshot        *PricingSnapshot          `json:"pricing_snapshot,omitempty"`
	PricingHistory         []RepricedSnapshot        `json:"pricing_history,omitempty"`
	FormRequirement        *FormRequirement          `json:"form_requirement,omitempty"`
	FormSubmissionID       string                    `json:"form_submission_id,omitempty"`
	OrderID                string                    `json:"order_id,omitempty"`
	ConsultationID         string                    `json:"consultation_id,omitempty"`
	InvoiceID              string                    `json:"invoice_id,omitempty"`
	Recommendations        []RecommendationCandidate `json:"recommendations,omitempty"`
	CancellationReason     string                    `json:"cancellation_reason,omitempty"`
	StartedAt              time.Time                 `json:"started_at"`
	UpdatedAt              time.Time                 `json:"updated_at"`
	CompletedAt            *time.Time                `json:"completed_at,omitempty"`
	Metadata               map[string]string         `json:"metadata,omitempty"`
	Version                int64                     `json:"version"`
	AuditSequence          int64                     `json:"audit_sequence"`
}

// IsOneTime reports whether the flow was configured without a subscription duration.
func (f Flow) IsOneTime() bool {
	return f.SubscriptionDurationID == ""
}

// FindRecommendation returns the index of the candidate with the given id, or -1.
func (f Flow) FindRecommendation(candidateID string) int {
	for i, c := range f.Recommendations {
		if c.ID == candidateID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can mutate it without touching the stored value.
func (f Flow) Clone() Flow {
	out := f
	if f.PricingSnapshot != nil {
		s := f.PricingSnapshot.Clone()
		out.PricingSnapshot = &s
	}
	if f.PricingHistory != nil {
		out.PricingHistory = make([]RepricedSnapshot, len(f.PricingHistory))
		for i, h := range f.PricingHistory {
			h.Snapshot = h.Snapshot.Clone()
			out.PricingHistory[i] = h
		}
	}
	if f.FormRequirement != nil {
		r := f.FormRequirement.Clone()
		out.FormRequirement = &r
	}
	if f.Recommendations != nil {
		out.Recommendations = make([]RecommendationCandidate, len(f.Recommendations))
		for i, c := range f.Recommendations {
			out.Recommendations[i] = c.Clone()
		}
	}
	if f.CompletedAt != nil {
		t := *f.CompletedAt
		out.CompletedAt = &t
	}
	if f.Metadata != nil {
		out.Metadata = make(map[string]string, len(f.Metadata))
		for k, v := range f.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// FlowSnapshot is the read-only view returned by status queries.
type FlowSnapshot struct {
	Flow              Flow         `json:"flow"`
	CompletionPercent float64      `json:"completion_percent"`
	Terminal          bool         `json:"terminal"`
	NextStatuses      []FlowStatus `json:"next_statuses,omitempty"`
}

func NewFlowSnapshot(f Flow) FlowSnapshot {
	return FlowSnapshot{
		Flow:              f,
		CompletionPercent: CompletionPercent(f.Status),
		Terminal:          f.Status.IsTerminal(),
		NextStatuses:      NextStatuses(f.Status),
	}
}

// ConsultationOutcome is the clinician decision recorded for a pending consultation.
type ConsultationOutcome string

const (
	ConsultationOutcomeApproved ConsultationOutcome = "approved"
	ConsultationOutcomeRejected ConsultationOutcome = "rejected"
)

func (o ConsultationOutcome) Valid() bool {
	return o == ConsultationOutcomeApproved || o == ConsultationOutcomeRejected
}
