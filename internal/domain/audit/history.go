package audit

import (
	"errors"
	"fmt"

	"telehealth_flow/internal/domain/entities"
)

var ErrBrokenHistory = errors.New("audit history is not a valid flow path")

// VerifyHistory checks that entries, in sequence order, describe a legal walk through the flow
// graph: sequences start at 1 without gaps, the first entry creates the flow in
// CATEGORY_SELECTED, each transition starts where the previous one ended, and non-transition
// entries leave the status unchanged.
func VerifyHistory(entries []entities.AuditEntry) error {
	var current entities.FlowStatus
	for i, e := range entries {
		if e.Sequence != int64(i+1) {
			return fmt.Errorf("%w: entry %s has sequence %d, expected %d", ErrBrokenHistory, e.ID, e.Sequence, i+1)
		}
		if i == 0 {
			if e.FromStatus != "" || e.ToStatus != entities.FlowStatusCategorySelected {
				return fmt.Errorf("%w: flow must start in %s", ErrBrokenHistory, entities.FlowStatusCategorySelected)
			}
			current = e.ToStatus
			continue
		}
		if e.FromStatus != current {
			return fmt.Errorf("%w: entry %d starts at %s but flow was %s", ErrBrokenHistory, e.Sequence, e.FromStatus, current)
		}
		if !e.IsTransition() {
			if e.ToStatus != e.FromStatus {
				return fmt.Errorf("%w: %s entry %d changed status", ErrBrokenHistory, e.Action, e.Sequence)
			}
			continue
		}
		if !entities.CanTransition(e.FromStatus, e.ToStatus) {
			return fmt.Errorf("%w: %s -> %s at entry %d", ErrBrokenHistory, e.FromStatus, e.ToStatus, e.Sequence)
		}
		current = e.ToStatus
	}
	return nil
}
