package interfaces

import (
	"context"
	"errors"

	"telehealth_flow/internal/domain/entities"
)

var (
	// ErrVersionConflict is returned when the stored flow version differs from the expected one.
	ErrVersionConflict = errors.New("flow version conflict")
	// ErrAuditEntryExists is returned when an entry with the same sequence or idempotency key is already stored.
	ErrAuditEntryExists = errors.New("audit entry already exists")
	ErrFlowExists       = errors.New("flow already exists")
)

// IFlowRepository abstracts persistence of the Flow aggregate together with its audit trail.
//
// Every write stores the flow state and its audit entries in one transaction:
//   - Create inserts a new flow (version 1) and its creation entry
//   - SaveTransition replaces the flow only if the stored version equals expectedVersion,
//     and appends entries in the same transaction
//
// GetByID returns a zero-value Flow (empty ID) when nothing is stored.
type IFlowRepository interface {
	Create(ctx context.Context, f entities.Flow, entry entities.AuditEntry) (entities.Flow, error)
	GetByID(ctx context.Context, id string) (entities.Flow, error)
	SaveTransition(ctx context.Context, f entities.Flow, expectedVersion int64, entries []entities.AuditEntry) (entities.Flow, error)
}
