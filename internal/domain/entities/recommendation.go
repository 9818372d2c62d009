package entities

import "time"

// RecommendationCandidate is a scored suggestion presented during product selection.
//
// A candidate is resolved at most once: AcceptedAt and RejectedAt are never both set.
type RecommendationCandidate struct {
	ID          string     `json:"id"`
	FlowID      string     `json:"flow_id"`
	ProductID   string     `json:"product_id"`
	Score       float64    `json:"score"`
	ReasonCodes []string   `json:"reason_codes"`
	PresentedAt time.Time  `json:"presented_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
}

func (c RecommendationCandidate) Resolved() bool {
	return c.AcceptedAt != nil || c.RejectedAt != nil
}

func (c RecommendationCandidate) Clone() RecommendationCandidate {
	out := c
	out.ReasonCodes = append([]string(nil), c.ReasonCodes...)
	if c.AcceptedAt != nil {
		t := *c.AcceptedAt
		out.AcceptedAt = &t
	}
	if c.RejectedAt != nil {
		t := *c.RejectedAt
		out.RejectedAt = &t
	}
	return out
}
