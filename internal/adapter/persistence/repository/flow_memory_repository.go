package repository

import (
	"context"
	"fmt"
	"sync"

	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/usecase/interfaces"
)

// FlowMemoryRepository keeps flows and their audit trail in process memory.
//
// It applies the same rules as the durable stores: version-checked saves, audit sequences without
// gaps, unique idempotency keys, and no way to change an entry once written. Used for local
// development (STORE_DRIVER=memory) and tests.
type FlowMemoryRepository struct {
	mu      sync.Mutex
	flows   map[string]entities.Flow
	entries map[string][]entities.AuditEntry
}

var (
	_ interfaces.IFlowRepository  = (*FlowMemoryRepository)(nil)
	_ interfaces.IAuditRepository = (*FlowMemoryRepository)(nil)
)

func NewFlowMemoryRepository() *FlowMemoryRepository {
	return &FlowMemoryRepository{
		flows:   make(map[string]entities.Flow),
		entries: make(map[string][]entities.AuditEntry),
	}
}

func (r *FlowMemoryRepository) Create(_ context.Context, f entities.Flow, entry entities.AuditEntry) (entities.Flow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.flows[f.ID]; ok {
		return entities.Flow{}, interfaces.ErrFlowExists
	}
	if err := r.checkEntries(f.ID, []entities.AuditEntry{entry}); err != nil {
		return entities.Flow{}, err
	}

	r.flows[f.ID] = f.Clone()
	r.entries[f.ID] = append(r.entries[f.ID], entry)
	return f, nil
}

func (r *FlowMemoryRepository) GetByID(_ context.Context, id string) (entities.Flow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flows[id]
	if !ok {
		return entities.Flow{}, nil
	}
	return f.Clone(), nil
}

func (r *FlowMemoryRepository) SaveTransition(_ context.Context, f entities.Flow, expectedVersion int64, entries []entities.AuditEntry) (entities.Flow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.flows[f.ID]
	if !ok || stored.Version != expectedVersion {
		return entities.Flow{}, interfaces.ErrVersionConflict
	}
	if err := r.checkEntries(f.ID, entries); err != nil {
		return entities.Flow{}, err
	}

	r.flows[f.ID] = f.Clone()
	r.entries[f.ID] = append(r.entries[f.ID], entries...)
	return f, nil
}

func (r *FlowMemoryRepository) Append(_ context.Context, entry entities.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkEntries(entry.FlowID, []entities.AuditEntry{entry}); err != nil {
		return err
	}
	r.entries[entry.FlowID] = append(r.entries[entry.FlowID], entry)
	return nil
}

func (r *FlowMemoryRepository) ListByFlowID(_ context.Context, flowID string) ([]entities.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entities.AuditEntry, len(r.entries[flowID]))
	copy(out, r.entries[flowID])
	return out, nil
}

// checkEntries must be called with mu held.
func (r *FlowMemoryRepository) checkEntries(flowID string, entries []entities.AuditEntry) error {
	existing := r.entries[flowID]
	next := int64(len(existing)) + 1
	keys := make(map[string]struct{}, len(existing)+len(entries))
	for _, e := range existing {
		keys[e.IdempotencyKey] = struct{}{}
	}
	for _, e := range entries {
		if e.FlowID != flowID {
			return fmt.Errorf("audit entry %s belongs to flow %s, not %s", e.ID, e.FlowID, flowID)
		}
		if e.Sequence != next {
			return fmt.Errorf("%w: flow %s sequence %d", interfaces.ErrAuditEntryExists, flowID, e.Sequence)
		}
		if _, dup := keys[e.IdempotencyKey]; dup {
			return fmt.Errorf("%w: flow %s key %s", interfaces.ErrAuditEntryExists, flowID, e.IdempotencyKey)
		}
		keys[e.IdempotencyKey] = struct{}{}
		next++
	}
	return nil
}
