package usecase

import (
	"errors"
	"fmt"
	"strings"

	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/domain/forms"
	"telehealth_flow/internal/usecase/interfaces"
)

var (
	// validation
	ErrInvalidFlowID               = errors.New("invalid flow id")
	ErrInvalidActor                = errors.New("invalid actor")
	ErrInvalidCategory             = errors.New("category does not resolve to an active category")
	ErrProductNotFound             = errors.New("product not found")
	ErrProductNotInCategory        = errors.New("product does not belong to the flow category")
	ErrProductInactive             = errors.New("product is inactive")
	ErrInvalidSubscriptionDuration = errors.New("invalid subscription duration")
	ErrIncompleteForm              = errors.New("incomplete intake form")
	ErrInvalidOutcome              = errors.New("invalid consultation outcome")
	ErrInvalidCancellationReason   = errors.New("cancellation reason is required")

	// state
	ErrInvalidTransition             = errors.New("invalid flow transition")
	ErrFlowNotReady                  = errors.New("flow is not ready for this operation")
	ErrFlowNotPending                = errors.New("flow is not pending a consultation outcome")
	ErrFlowTerminal                  = errors.New("flow is in a terminal state")
	ErrRecommendationAlreadyResolved = errors.New("recommendation already resolved")
	ErrFlowManaged                   = errors.New("flow transitions must go through the orchestrator")

	ErrFlowNotFound           = errors.New("flow not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")

	ErrConcurrentModification = errors.New("flow was modified concurrently, re-read and retry")

	ErrMalformedFormMapping = forms.ErrMalformedFormMapping

	// computation
	ErrPricingUnavailable = errors.New("pricing computation unavailable")

	// infrastructure
	ErrPersistenceUnavailable  = errors.New("persistence unavailable")
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

// IncompleteFormError lists the required fields missing from an intake submission.
type IncompleteFormError struct {
	MissingFieldIDs []string
}

func (e *IncompleteFormError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrIncompleteForm, strings.Join(e.MissingFieldIDs, ", "))
}

func (e *IncompleteFormError) Unwrap() error {
	return ErrIncompleteForm
}

type InvalidTransitionError struct {
	From entities.FlowStatus
	To   entities.FlowStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

const (
	ErrorKindNone           = ""
	ErrorKindValidation     = "validation"
	ErrorKindState          = "state"
	ErrorKindNotFound       = "not_found"
	ErrorKindConcurrency    = "concurrency"
	ErrorKindConfiguration  = "configuration"
	ErrorKindComputation    = "computation"
	ErrorKindInfrastructure = "infrastructure"
)

// ErrorKind classifies err into the orchestrator error taxonomy.
// Unknown errors are reported as infrastructure.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, ErrInvalidFlowID),
		errors.Is(err, ErrInvalidActor),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrProductNotInCategory),
		errors.Is(err, ErrProductInactive),
		errors.Is(err, ErrInvalidSubscriptionDuration),
		errors.Is(err, ErrIncompleteForm),
		errors.Is(err, ErrInvalidOutcome),
		errors.Is(err, ErrInvalidCancellationReason):
		return ErrorKindValidation
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrFlowNotReady),
		errors.Is(err, ErrFlowNotPending),
		errors.Is(err, ErrFlowTerminal),
		errors.Is(err, ErrRecommendationAlreadyResolved),
		errors.Is(err, ErrFlowManaged):
		return ErrorKindState
	case errors.Is(err, ErrFlowNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrRecommendationNotFound):
		return ErrorKindNotFound
	case errors.Is(err, ErrConcurrentModification):
		return ErrorKindConcurrency
	case errors.Is(err, ErrMalformedFormMapping):
		return ErrorKindConfiguration
	case errors.Is(err, ErrPricingUnavailable):
		return ErrorKindComputation
	default:
		return ErrorKindInfrastructure
	}
}

// wrapPersistence translates repository errors into the taxonomy. The driver error text is kept
// for logs, its type is not.
func wrapPersistence(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, interfaces.ErrVersionConflict),
		errors.Is(err, interfaces.ErrAuditEntryExists),
		errors.Is(err, interfaces.ErrLockHeld):
		return ErrConcurrentModification
	default:
		return fmt.Errorf("%w: %s", ErrPersistenceUnavailable, err.Error())
	}
}

func wrapCollaborator(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", ErrCollaboratorUnavailable, name, err.Error())
}

func wrapPricing(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrPricingUnavailable, err.Error())
}
