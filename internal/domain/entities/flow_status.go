package entities

// FlowStatus represents the position of a patient flow in the journey state machine.
//
// Domain notes:
//   - Statuses only move forward through the transition graph below.
//   - Any non-terminal status may move to CANCELLED.
//   - COMPLETED and CANCELLED are terminal.

type FlowStatus string

const (
	FlowStatusCategorySelected       FlowStatus = "CATEGORY_SELECTED"
	FlowStatusProductSelected        FlowStatus = "PRODUCT_SELECTED"
	FlowStatusSubscriptionConfigured FlowStatus = "SUBSCRIPTION_CONFIGURED"
	FlowStatusIntakeStarted          FlowStatus = "INTAKE_STARTED"
	FlowStatusIntakeCompleted        FlowStatus = "INTAKE_COMPLETED"
	FlowStatusOrderCreated           FlowStatus = "ORDER_CREATED"
	FlowStatusConsultationPending    FlowStatus = "CONSULTATION_PENDING"
	FlowStatusConsultationApproved   FlowStatus = "CONSULTATION_APPROVED"
	FlowStatusConsultationRejected   FlowStatus = "CONSULTATION_REJECTED"
	FlowStatusInvoiceGenerated       FlowStatus = "INVOICE_GENERATED"
	FlowStatusSubscriptionActive     FlowStatus = "SUBSCRIPTION_ACTIVE"
	FlowStatusOrderFulfilled         FlowStatus = "ORDER_FULFILLED"
	FlowStatusCompleted              FlowStatus = "COMPLETED"
	FlowStatusCancelled              FlowStatus = "CANCELLED"
)

// CanonicalPath is the happy path used for completion percentage.
var CanonicalPath = []FlowStatus{
	FlowStatusCategorySelected,
	FlowStatusProductSelected,
	FlowStatusSubscriptionConfigured,
	FlowStatusIntakeStarted,
	FlowStatusIntakeCompleted,
	FlowStatusOrderCreated,
	FlowStatusConsultationPending,
	FlowStatusConsultationApproved,
	FlowStatusInvoiceGenerated,
	FlowStatusSubscriptionActive,
	FlowStatusOrderFulfilled,
	FlowStatusCompleted,
}

// forward edges; CANCELLED is reachable from every non-terminal status and is not listed here.
var forwardTransitions = map[FlowStatus][]FlowStatus{
	FlowStatusCategorySelected:       {FlowStatusProductSelected},
	FlowStatusProductSelected:        {FlowStatusSubscriptionConfigured},
	FlowStatusSubscriptionConfigured: {FlowStatusIntakeStarted},
	FlowStatusIntakeStarted:          {FlowStatusIntakeCompleted},
	FlowStatusIntakeCompleted:        {FlowStatusOrderCreated},
	FlowStatusOrderCreated:           {FlowStatusConsultationPending},
	FlowStatusConsultationPending:    {FlowStatusConsultationApproved, FlowStatusConsultationRejected},
	FlowStatusConsultationApproved:   {FlowStatusInvoiceGenerated},
	FlowStatusInvoiceGenerated:       {FlowStatusSubscriptionActive, FlowStatusOrderFulfilled},
	FlowStatusSubscriptionActive:     {FlowStatusOrderFulfilled},
	FlowStatusOrderFulfilled:         {FlowStatusCompleted},
}

func (s FlowStatus) String() string {
	return string(s)
}

func (s FlowStatus) IsTerminal() bool {
	return s == FlowStatusCompleted || s == FlowStatusCancelled
}

func (s FlowStatus) Valid() bool {
	if s == FlowStatusCancelled || s == FlowStatusConsultationRejected {
		return true
	}
	for _, st := range CanonicalPath {
		if st == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether from -> to is an edge of the flow graph.
func CanTransition(from, to FlowStatus) bool {
	if from.IsTerminal() || !from.Valid() {
		return false
	}
	if to == FlowStatusCancelled {
		return true
	}
	for _, next := range forwardTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses reachable in one step, CANCELLED last.
func NextStatuses(from FlowStatus) []FlowStatus {
	if from.IsTerminal() || !from.Valid() {
		return nil
	}
	out := make([]FlowStatus, 0, len(forwardTransitions[from])+1)
	out = append(out, forwardTransitions[from]...)
	return append(out, FlowStatusCancelled)
}

// CompletionPercent returns the 1-based position of s in CanonicalPath over its length, as a percentage.
// Statuses off the canonical path report 0.
func CompletionPercent(s FlowStatus) float64 {
	for i, st := range CanonicalPath {
		if st == s {
			return float64(i+1) / float64(len(CanonicalPath)) * 100
		}
	}
	return 0
}
