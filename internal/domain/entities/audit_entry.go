package entities

import "time"

// AuditAction distinguishes status transitions from other audited flow mutations.
type AuditAction string

const (
	AuditActionTransition             AuditAction = "transition"
	AuditActionRecommendationAccepted AuditAction = "recommendation_accepted"
	AuditActionRecommendationRejected AuditAction = "recommendation_rejected"
)

// AuditEntry is an immutable record of one flow mutation.
//
// Storage model:
//   - PK: flow_id, SK: sequence (strictly increasing per flow, starting at 1)
//   - entry_id and (flow_id, idempotency_key) are unique
//   - entries are never updated or deleted
//
// PayloadDigest is a one-way hash of the mutation input; the raw payload is never stored.
// FromStatus is empty for the entry that creates the flow.
type AuditEntry struct {
	ID              string      `json:"entry_id"`
	FlowID          string      `json:"flow_id"`
	Sequence        int64       `json:"sequence"`
	FromStatus      FlowStatus  `json:"from_status"`
	ToStatus        FlowStatus  `json:"to_status"`
	Action          AuditAction `json:"action"`
	TriggeredBy     string      `json:"actor"`
	Timestamp       time.Time   `json:"timestamp"`
	PayloadDigest   string      `json:"payload_digest"`
	DigestAlgorithm string      `json:"digest_algorithm"`
	IdempotencyKey  string      `json:"idempotency_key"`
}

// IsTransition reports whether the entry changed the flow status.
func (e AuditEntry) IsTransition() bool {
	return e.Action == AuditActionTransition || e.Action == ""
}
