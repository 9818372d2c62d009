package interfaces

import (
	"context"

	"telehealth_flow/internal/domain/entities"
)

// Downstream subsystems. Each call is fire-and-confirm: the orchestrator only keeps the returned id.
// Implementations must treat IdempotencyKey as the dedup key so a retried call returns the same id.

type IPatientLinker interface {
	LinkPatient(ctx context.Context, req entities.PatientLinkRequest) (patientID string, err error)
}

type IOrderRequester interface {
	RequestOrder(ctx context.Context, req entities.OrderRequest) (orderID string, err error)
}

type IConsultationRequester interface {
	RequestConsultation(ctx context.Context, req entities.ConsultationRequest) (consultationID string, err error)
}

// IInvoiceRequester abstracts the billing provider (e.g. Mercado Pago).
type IInvoiceRequester interface {
	RequestInvoice(ctx context.Context, req entities.InvoiceRequest) (invoiceID string, err error)
}
