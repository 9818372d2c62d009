package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"telehealth_flow/internal/domain/audit"
	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// IAuditTrail is the append-only log of flow mutations.
//
//   - NewEntry builds an entry for the orchestrator, which stores it with the flow state
//   - Append stores a standalone entry after checking it continues the recorded path. Flows held
//     by the flow store are refused: their entries are written with the flow state in SaveTransition
//   - List returns the per-flow stream ordered by sequence
//   - Verify replays the stream against the transition graph
type IAuditTrail interface {
	NewEntry(flowID string, sequence int64, from, to entities.FlowStatus, action entities.AuditAction, actor string, payload any) (entities.AuditEntry, error)
	Append(ctx context.Context, flowID string, from, to entities.FlowStatus, actor string, payload any) (entities.AuditEntry, error)
	List(ctx context.Context, flowID string) ([]entities.AuditEntry, error)
	Verify(ctx context.Context, flowID string) error
}

type AuditTrail struct {
	repo     interfaces.IAuditRepository
	flows    interfaces.IFlowRepository
	digester *audit.Digester
	now      func() time.Time
}

var _ IAuditTrail = (*AuditTrail)(nil)

// NewAuditTrail builds the trail over repo. flows may be nil when no flow store backs the trail.
func NewAuditTrail(repo interfaces.IAuditRepository, flows interfaces.IFlowRepository, digester *audit.Digester) *AuditTrail {
	return &AuditTrail{repo: repo, flows: flows, digester: digester, now: func() time.Time { return time.Now().UTC() }}
}

// IdempotencyKey is the dedup key of a status-changing entry: a flow reaches each status at most once.
func IdempotencyKey(flowID string, to entities.FlowStatus) string {
	return flowID + ":" + string(to)
}

func (a *AuditTrail) NewEntry(flowID string, sequence int64, from, to entities.FlowStatus, action entities.AuditAction, actor string, payload any) (entities.AuditEntry, error) {
	if action == "" {
		action = entities.AuditActionTransition
	}
	digest, err := a.digester.Digest(payload)
	if err != nil {
		return entities.AuditEntry{}, err
	}

	key := IdempotencyKey(flowID, to)
	if action != entities.AuditActionTransition {
		key = fmt.Sprintf("%s:%s:%d", flowID, action, sequence)
	}

	return entities.AuditEntry{
		ID:              uuid.NewString(),
		FlowID:          flowID,
		Sequence:        sequence,
		FromStatus:      from,
		ToStatus:        to,
		Action:          action,
		TriggeredBy:     actor,
		Timestamp:       a.now(),
		PayloadDigest:   digest,
		DigestAlgorithm: a.digester.Algorithm(),
		IdempotencyKey:  key,
	}, nil
}

func (a *AuditTrail) Append(ctx context.Context, flowID string, from, to entities.FlowStatus, actor string, payload any) (entities.AuditEntry, error) {
	flowID = strings.TrimSpace(flowID)
	if flowID == "" {
		return entities.AuditEntry{}, ErrInvalidFlowID
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return entities.AuditEntry{}, ErrInvalidActor
	}

	if a.flows != nil {
		f, err := a.flows.GetByID(ctx, flowID)
		if err != nil {
			return entities.AuditEntry{}, wrapPersistence(err)
		}
		if f.ID != "" {
			return entities.AuditEntry{}, ErrFlowManaged
		}
	}

	existing, err := a.repo.ListByFlowID(ctx, flowID)
	if err != nil {
		return entities.AuditEntry{}, wrapPersistence(err)
	}

	if len(existing) == 0 {
		if from != "" || to != entities.FlowStatusCategorySelected {
			return entities.AuditEntry{}, &InvalidTransitionError{From: from, To: to}
		}
	} else {
		last := existing[len(existing)-1]
		if from != last.ToStatus || !entities.CanTransition(from, to) {
			return entities.AuditEntry{}, &InvalidTransitionError{From: from, To: to}
		}
	}

	e, err := a.NewEntry(flowID, int64(len(existing))+1, from, to, entities.AuditActionTransition, actor, payload)
	if err != nil {
		return entities.AuditEntry{}, wrapPersistence(err)
	}
	if err := a.repo.Append(ctx, e); err != nil {
		return entities.AuditEntry{}, wrapPersistence(err)
	}
	return e, nil
}

func (a *AuditTrail) List(ctx context.Context, flowID string) ([]entities.AuditEntry, error) {
	flowID = strings.TrimSpace(flowID)
	if flowID == "" {
		return nil, ErrInvalidFlowID
	}
	entries, err := a.repo.ListByFlowID(ctx, flowID)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	return entries, nil
}

func (a *AuditTrail) Verify(ctx context.Context, flowID string) error {
	entries, err := a.List(ctx, flowID)
	if err != nil {
		return err
	}
	return audit.VerifyHistory(entries)
}
