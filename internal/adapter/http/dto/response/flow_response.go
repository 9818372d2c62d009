package response

import (
	"time"

	"telehealth_flow/internal/domain/entities"
)

// Money amounts are decimal strings so no precision is lost on the wire.
type PricingSnapshotResponse struct {
	ProductID              string    `json:"product_id"`
	SubscriptionDurationID string    `json:"subscription_duration_id,omitempty"`
	Currency               string    `json:"currency"`
	BasePrice              string    `json:"base_price"`
	DiscountAmount         string    `json:"discount_amount"`
	FinalPrice             string    `json:"final_price"`
	AppliedRuleIDs         []string  `json:"applied_rule_ids"`
	ClampedToZero          bool      `json:"clamped_to_zero"`
	ComputedAt             time.Time `json:"computed_at"`
}

type RecommendationResponse struct {
	ID          string     `json:"id"`
	ProductID   string     `json:"product_id"`
	Score       float64    `json:"score"`
	ReasonCodes []string   `json:"reason_codes"`
	PresentedAt time.Time  `json:"presented_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
}

type FormRequirementResponse struct {
	FormTemplateID   string                     `json:"form_template_id,omitempty"`
	RequiredFieldIDs []string                   `json:"required_field_ids"`
	ConditionalRules []entities.ConditionalRule `json:"conditional_rules,omitempty"`
}

type FlowResponse struct {
	FlowID                 string                   `json:"flow_id"`
	Status                 string                   `json:"status"`
	CategoryID             string                   `json:"category_id"`
	PatientID              string                   `json:"patient_id,omitempty"`
	ProductID              string                   `json:"product_id,omitempty"`
	SubscriptionDurationID string                   `json:"subscription_duration_id,omitempty"`
	PricingSnapshot        *PricingSnapshotResponse `json:"pricing_snapshot,omitempty"`
	FormRequirement        *FormRequirementResponse `json:"form_requirement,omitempty"`
	FormSubmissionID       string                   `json:"form_submission_id,omitempty"`
	OrderID                string                   `json:"order_id,omitempty"`
	ConsultationID         string                   `json:"consultation_id,omitempty"`
	InvoiceID              string                   `json:"invoice_id,omitempty"`
	Recommendations        []RecommendationResponse `json:"recommendations,omitempty"`
	CancellationReason     string                   `json:"cancellation_reason,omitempty"`
	Version                int64                    `json:"version"`
	StartedAt              time.Time                `json:"started_at"`
	UpdatedAt              time.Time                `json:"updated_at"`
	CompletedAt            *time.Time               `json:"completed_at,omitempty"`
}

type FlowStatusResponse struct {
	FlowResponse
	CompletionPercent float64  `json:"completion_percent"`
	Terminal          bool     `json:"terminal"`
	NextStatuses      []string `json:"next_statuses"`
}

type AuditEntryResponse struct {
	EntryID         string    `json:"entry_id"`
	Sequence        int64     `json:"sequence"`
	FromStatus      string    `json:"from_status"`
	ToStatus        string    `json:"to_status"`
	Action          string    `json:"action"`
	Actor           string    `json:"actor"`
	Timestamp       time.Time `json:"timestamp"`
	PayloadDigest   string    `json:"payload_digest"`
	DigestAlgorithm string    `json:"digest_algorithm"`
}

type AuditTrailResponse struct {
	FlowID  string               `json:"flow_id"`
	Entries []AuditEntryResponse `json:"entries"`
}

func FromPricingSnapshot(s entities.PricingSnapshot) PricingSnapshotResponse {
	return PricingSnapshotResponse{
		ProductID:              s.ProductID,
		SubscriptionDurationID: s.SubscriptionDurationID,
		Currency:               s.Currency,
		BasePrice:              s.BasePrice.StringFixed(2),
		DiscountAmount:         s.DiscountAmount.StringFixed(2),
		FinalPrice:             s.FinalPrice.StringFixed(2),
		AppliedRuleIDs:         append([]string{}, s.AppliedRuleIDs...),
		ClampedToZero:          s.ClampedToZero,
		ComputedAt:             s.ComputedAt,
	}
}

func FromFlow(f entities.Flow) FlowResponse {
	res := FlowResponse{
		FlowID:                 f.ID,
		Status:                 string(f.Status),
		CategoryID:             f.CategoryID,
		PatientID:              f.PatientID,
		ProductID:              f.ProductID,
		SubscriptionDurationID: f.SubscriptionDurationID,
		FormSubmissionID:       f.FormSubmissionID,
		OrderID:                f.OrderID,
		ConsultationID:         f.ConsultationID,
		InvoiceID:              f.InvoiceID,
		CancellationReason:     f.CancellationReason,
		Version:                f.Version,
		StartedAt:              f.StartedAt,
		UpdatedAt:              f.UpdatedAt,
		CompletedAt:            f.CompletedAt,
	}
	if f.PricingSnapshot != nil {
		s := FromPricingSnapshot(*f.PricingSnapshot)
		res.PricingSnapshot = &s
	}
	if f.FormRequirement != nil {
		res.FormRequirement = &FormRequirementResponse{
			FormTemplateID:   f.FormRequirement.FormTemplateID,
			RequiredFieldIDs: append([]string{}, f.FormRequirement.RequiredFieldIDs...),
			ConditionalRules: f.FormRequirement.ConditionalRules,
		}
	}
	for _, c := range f.Recommendations {
		res.Recommendations = append(res.Recommendations, RecommendationResponse{
			ID:          c.ID,
			ProductID:   c.ProductID,
			Score:       c.Score,
			ReasonCodes: c.ReasonCodes,
			PresentedAt: c.PresentedAt,
			AcceptedAt:  c.AcceptedAt,
			RejectedAt:  c.RejectedAt,
		})
	}
	return res
}

func FromFlowSnapshot(s entities.FlowSnapshot) FlowStatusResponse {
	next := make([]string, 0, len(s.NextStatuses))
	for _, st := range s.NextStatuses {
		next = append(next, string(st))
	}
	return FlowStatusResponse{
		FlowResponse:      FromFlow(s.Flow),
		CompletionPercent: s.CompletionPercent,
		Terminal:          s.Terminal,
		NextStatuses:      next,
	}
}

func FromAuditEntries(flowID string, entries []entities.AuditEntry) AuditTrailResponse {
	out := AuditTrailResponse{FlowID: flowID, Entries: make([]AuditEntryResponse, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, AuditEntryResponse{
			EntryID:         e.ID,
			Sequence:        e.Sequence,
			FromStatus:      string(e.FromStatus),
			ToStatus:        string(e.ToStatus),
			Action:          string(e.Action),
			Actor:           e.TriggeredBy,
			Timestamp:       e.Timestamp,
			PayloadDigest:   e.PayloadDigest,
			DigestAlgorithm: e.DigestAlgorithm,
		})
	}
	return out
}
