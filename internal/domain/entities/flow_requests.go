package entities

// Requests sent to the collaborators that own patients, orders, consultations and invoices.
// IdempotencyKey is "<flow id>:<target status>" so a retried call after a partial failure maps
// to the same downstream record.

type PatientLinkRequest struct {
	FlowID    string
	PatientID string
	FormData  map[string]string
}

// OrderRequest is the "order requested" event emitted when intake completes.
type OrderRequest struct {
	IdempotencyKey         string          `json:"idempotency_key"`
	FlowID                 string          `json:"flow_id"`
	PatientID              string          `json:"patient_id"`
	ProductID              string          `json:"product_id"`
	SubscriptionDurationID string          `json:"subscription_duration_id,omitempty"`
	PricingSnapshot        PricingSnapshot `json:"pricing_snapshot"`
}

type ConsultationRequest struct {
	IdempotencyKey   string `json:"idempotency_key"`
	FlowID           string `json:"flow_id"`
	PatientID        string `json:"patient_id"`
	ProductID        string `json:"product_id"`
	OrderID          string `json:"order_id"`
	FormSubmissionID string `json:"form_submission_id"`
}

// InvoiceRequest is the "invoice requested" event emitted on consultation approval. It always
// carries the frozen snapshot stored on the flow.
type InvoiceRequest struct {
	IdempotencyKey  string          `json:"idempotency_key"`
	FlowID          string          `json:"flow_id"`
	OrderID         string          `json:"order_id"`
	PatientID       string          `json:"patient_id"`
	PricingSnapshot PricingSnapshot `json:"pricing_snapshot"`
}
