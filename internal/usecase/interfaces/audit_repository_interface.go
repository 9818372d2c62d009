package interfaces

import (
	"context"

	"telehealth_flow/internal/domain/entities"
)

// IAuditRepository is the write-once audit log. There is no update or delete.
type IAuditRepository interface {
	Append(ctx context.Context, entry entities.AuditEntry) error
	// ListByFlowID returns entries ordered by sequence.
	ListByFlowID(ctx context.Context, flowID string) ([]entities.AuditEntry, error)
}
