package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/domain/forms"
	"telehealth_flow/internal/domain/pricing"
	"telehealth_flow/internal/domain/recommendation"
	"telehealth_flow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	CancellationReasonConsultationRejected = "consultation_rejected"
	RepriceReasonSubscriptionConfigured    = "subscription_configured"

	DefaultRecommendationMaxResults = 3
)

// IFlowOrchestrator drives a patient flow through the journey state machine.
//
// Every mutation:
//   - takes the per-flow lock (ConcurrentModification when already held)
//   - loads the flow and checks the requested transition against its current status
//   - runs pricing, recommendation and form resolution as pure computations
//   - commits the new state and its audit entries in one repository call
//
// Collaborator calls (patients, orders, consultations, invoices) happen before the commit and carry
// an idempotency key of "<flow id>:<target status>", so retrying after a failed commit reuses the same
// downstream records.
type IFlowOrchestrator interface {
	InitializeFlow(ctx context.Context, categoryID string, metadata map[string]string, actor string) (entities.Flow, error)
	SelectProduct(ctx context.Context, flowID string, in SelectProductInput, actor string) (entities.Flow, error)
	ConfigureSubscription(ctx context.Context, flowID, subscriptionDurationID, actor string) (entities.Flow, error)
	StartIntake(ctx context.Context, flowID, actor string) (entities.Flow, error)
	SubmitIntake(ctx context.Context, flowID string, in IntakeSubmission, actor string) (entities.Flow, error)
	RequestConsultation(ctx context.Context, flowID, actor string) (entities.Flow, error)
	RecordConsultationOutcome(ctx context.Context, flowID string, outcome entities.ConsultationOutcome, actor string) (entities.Flow, error)
	ActivateSubscription(ctx context.Context, flowID, actor string) (entities.Flow, error)
	MarkFulfilled(ctx context.Context, flowID, actor string) (entities.Flow, error)
	Complete(ctx context.Context, flowID, actor string) (entities.Flow, error)
	Cancel(ctx context.Context, flowID, reason, actor string) (entities.Flow, error)
	RespondToRecommendation(ctx context.Context, flowID, candidateID string, accepted bool, actor string) (entities.Flow, error)
	GetStatus(ctx context.Context, flowID string) (entities.FlowSnapshot, error)
	ListAudit(ctx context.Context, flowID string) ([]entities.AuditEntry, error)
}

type SelectProductInput struct {
	ProductID              string
	SubscriptionDurationID string
	Profile                entities.PatientProfile
}

type IntakeSubmission struct {
	// PatientID links an existing patient record; empty lets the patient directory resolve one.
	PatientID string
	FormData  map[string]string
}

type FlowOrchestratorConfig struct {
	Currency                 string
	MinorUnits               int32
	RecommendationMaxResults int
	RecommendationWeights    recommendation.Weights
}

// FlowOrchestratorDeps groups the ports the orchestrator talks to. Metrics and Clock are optional.
type FlowOrchestratorDeps struct {
	Flows         interfaces.IFlowRepository
	Audit         IAuditTrail
	Catalog       interfaces.ICatalogReader
	Locker        interfaces.IFlowLocker
	Patients      interfaces.IPatientLinker
	Orders        interfaces.IOrderRequester
	Consultations interfaces.IConsultationRequester
	Invoices      interfaces.IInvoiceRequester
	Metrics       interfaces.IFlowMetrics
	Logger        zerolog.Logger
	Clock         func() time.Time
}

type FlowOrchestrator struct {
	deps     FlowOrchestratorDeps
	cfg      FlowOrchestratorConfig
	pricing  *pricing.Engine
	recs     *recommendation.Engine
	tracer   trace.Tracer
	log      zerolog.Logger
	now      func() time.Time
	maxRecos int
}

var _ IFlowOrchestrator = (*FlowOrchestrator)(nil)

func NewFlowOrchestrator(deps FlowOrchestratorDeps, cfg FlowOrchestratorConfig) *FlowOrchestrator {
	now := deps.Clock
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	if deps.Metrics == nil {
		deps.Metrics = noopMetrics{}
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	maxRecos := cfg.RecommendationMaxResults
	if maxRecos <= 0 {
		maxRecos = DefaultRecommendationMaxResults
	}
	return &FlowOrchestrator{
		deps:     deps,
		cfg:      cfg,
		pricing:  pricing.NewEngine(cfg.MinorUnits),
		recs:     recommendation.NewEngine(cfg.RecommendationWeights),
		tracer:   otel.Tracer("telehealth_flow/usecase"),
		log:      deps.Logger.With().Str("component", "flow_orchestrator").Logger(),
		now:      now,
		maxRecos: maxRecos,
	}
}

// step is one audited change produced by an operation. Non-transition actions keep the status.
type step struct {
	to      entities.FlowStatus
	action  entities.AuditAction
	payload any
}

func transitionTo(to entities.FlowStatus, payload any) step {
	return step{to: to, action: entities.AuditActionTransition, payload: payload}
}

type mutation func(ctx context.Context, f *entities.Flow) ([]step, error)

func (u *FlowOrchestrator) InitializeFlow(ctx context.Context, categoryID string, metadata map[string]string, actor string) (entities.Flow, error) {
	ctx, span := u.tracer.Start(ctx, "FlowOrchestrator.InitializeFlow")
	defer span.End()
	start := u.now()

	f, err := u.initializeFlow(ctx, categoryID, metadata, actor)
	u.finish(span, "initialize_flow", f.ID, start, err)
	return f, err
}

func (u *FlowOrchestrator) initializeFlow(ctx context.Context, categoryID string, metadata map[string]string, actor string) (entities.Flow, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return entities.Flow{}, ErrInvalidCategory
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return entities.Flow{}, ErrInvalidActor
	}

	category, err := u.deps.Catalog.GetCategory(ctx, categoryID)
	if err != nil {
		return entities.Flow{}, wrapPersistence(err)
	}
	if category.ID == "" || !category.Active {
		return entities.Flow{}, ErrInvalidCategory
	}

	now := u.now()
	f := entities.Flow{
		ID:            uuid.NewString(),
		CategoryID:    categoryID,
		Status:        entities.FlowStatusCategorySelected,
		StartedAt:     now,
		UpdatedAt:     now,
		Metadata:      metadata,
		Version:       1,
		AuditSequence: 1,
	}
	entry, err := u.deps.Audit.NewEntry(f.ID, 1, "", f.Status, entities.AuditActionTransition, actor, map[string]any{"category_id": categoryID})
	if err != nil {
		return entities.Flow{}, wrapPersistence(err)
	}

	created, err := u.deps.Flows.Create(ctx, f, entry)
	if err != nil {
		return entities.Flow{}, wrapPersistence(err)
	}
	u.deps.Metrics.TransitionRecorded("", f.Status)
	return created, nil
}

func (u *FlowOrchestrator) SelectProduct(ctx context.Context, flowID string, in SelectProductInput, actor string) (entities.Flow, error) {
	return u.mutate(ctx, "select_product", flowID, actor, func(ctx context.Context, f *entities.Flow) ([]step, error) {
		if f.Status != entities.FlowStatusCategorySelected {
			return nil, &InvalidTransitionError{From: f.Status, To: entities.FlowStatusProductSelected}
		}

		product, err := u.loadProduct(ctx, f.CategoryID, in.ProductID)
		if err != nil {
			return nil, err
		}
		durationID := strings.TrimSpace(in.SubscriptionDurationID)
		if err := u.checkDuration(ctx, product, durationID); err != nil {
			return nil, err
		}

		snapshot, err := u.price(ctx, product, durationID)
		if err != nil {
			return nil, err
		}
		requirement, err := u.resolveForm(ctx, f.CategoryID, product.ID)
		if err != nil {
			return nil, err
		}
		candidates, err := u.recommend(ctx, f, product, in.Profile)
		if err != nil {
			return nil, err
		}

		f.ProductID = product.ID
		f.SubscriptionDurationID = durationID
		f.PricingSnapshot = &snapshot
		f.FormRequirement = &requirement
		f.Recommendations = candidates

		steps := []step{transitionTo(entities.FlowStatusProductSelected, map[string]any{
			"product_id":               product.ID,
			"subscription_duration_id": durationID,
			"final_price":              snapshot.FinalPrice.String(),
			"applied_rule_ids":         snapshot.AppliedRuleIDs,
		})}
		if durationID != "" || !product.HasSubscriptionOptions() {
			steps = append(steps, transitionTo(entities.FlowStatusSubscriptionConfigured, map[string]any{
				"subscription_duration_id": durationID,
			}))
		}
		return steps, nil
	})
}

// ConfigureSubscription settles the billing period after a product with subscription options was
// selected without one. A duration re-prices the flow; the replaced snapshot is kept in PricingHistory.
func (u *FlowOrchestrator) ConfigureSubscription(ctx context.Context, flowID, subscriptionDurationID, actor string) (entities.Flow, error) {
	return u.mutate(ctx, "configure_subscription", flowID, actor, func(ctx context.Context, f *entities.Flow) ([]step, error) {
		if f.Status != entities.FlowStatusProductSelected {
			return nil, &InvalidTransitionError{From: f.Status, To: entities.FlowStatusSubscriptionConfigured}
		}

		durationID := strings.TrimSpace(subscriptionDurationID)
		if durationID != "" {
			product, err := u.loadProduct(ctx, f.CategoryID, f.ProductID)
			if err != nil {
				return nil, err
			}
			if err := u.checkDuration(ctx, product, durationID); err != nil {
				return nil, err
			}
			snapshot, err := u.price(ctx, product, durationID)
			if err != nil {
				return nil, err
			}
			if f.PricingSnapshot != nil {
				f.PricingHistory = append(f.PricingHistory, entities.RepricedSnapshot{
					Snapshot:   *f.PricingSnapshot,
					Reason:     RepriceReasonSubscriptionConfigured,
					ReplacedAt: u.now(),
				})
			}
			f.PricingSnapshot = &snapshot
			f.SubscriptionDurationID = durationID
		}

		return []step{transitionTo(entities.FlowStatusSubscriptionConfigured, map[string]any{
			"subscription_duration_id": durationID,
		})}, nil
	})
}

func (u *FlowOrchestrator) StartIntake(ctx context.Context, flowID, actor string) (entities.Flow, error) {
	return u.mutate(ctx, "start_intake", flowID, actor, func(_ context.Context, f *entities.Flow) ([]step, error) {
		if f.Status != entities.FlowStatusSubscriptionConfigured {
			return nil, &InvalidTransitionError{From: f.Status, To: entities.FlowStatusIntakeStarted}
		}
		return []step{transitionTo(entities.FlowStatusIntakeStarted, formPayload(f))}, nil
	})
}

func (u *FlowOrchestrator) SubmitIntake(ctx context.Context, flowID string, in IntakeSubmission, actor string) (entities.Flow, error) {
	return u.mutate(ctx, "submit_intake", flowID, actor, func(ctx context.Context, f *entities.Flow) ([]step, error) {
		if f.Status != entities.FlowStatusSubscriptionConfigured && f.Status != entities.FlowStatusIntakeStarted {
			return nil, ErrFlowNotReady
		}

		var requirement entities.FormRequirement
		if f.FormRequirement != nil {
			requirement = *f.FormRequirement
		}
		if missing := forms.MissingFields(requirement, in.FormData); len(missing) > 0 {
			return nil, &IncompleteFormError{MissingFieldIDs: missing}
		}

		patientID := strings.TrimSpace(in.PatientID)
		if patientID == "" {
			patientID = f.PatientID
		}
		patientID, err := u.deps.Patients.LinkPatient(ctx, entities.PatientLinkRequest{
			FlowID:    f.ID,
			PatientID: patientID,
			FormData:  in.FormData,
		})
		if err != nil {
			return nil, wrapCollaborator("patients", err)
		}

		var snapshot entities.PricingSnapshot
		if f.PricingSnapshot != nil {
			snapshot = f.PricingSnapshot.Clone()
		}
		orderID, err := u.deps.Orders.RequestOrder(ctx, entities.OrderRequest{
			IdempotencyKey:         IdempotencyKey(f.ID, entities.FlowStatusOrderCreated),
			FlowID:                 f.ID,
			PatientID:              patientID,
			ProductID:              f.ProductID,
			SubscriptionDurationID: f.SubscriptionDurationID,
			PricingSnapshot:        snapshot,
		})
		if err != nil {
			return nil, wrapCollaborator("orders", err)
		}

		f.PatientID = patientID
		f.FormSubmissionID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(IdempotencyKey(f.ID, entities.FlowStatusIntakeCompleted))).String()
		f.OrderID = orderID

		var steps []step
		if f.Status == entities.FlowStatusSubscriptionConfigured {
			steps = append(steps, transitionTo(entities.FlowStatusIntakeStarted, formPayload(f)))
		}
		return append(steps,
			transitionTo(entities.FlowStatusIntakeCompleted, map[string]any{
				"form_submission_id": f.FormSubmissionID,
				"field_ids":          submittedFieldIDs(in.FormData),
			}),
			transitionTo(entities.FlowStatusOrderCreated, map[string]any{
				"order_id":    orderID,
				"patient_id":  patientID,
				"final_price": snapshot.FinalPrice.String(),
			}),
		), nil
	})
}

func (u *FlowOrchestrator) RequestConsultation(ctx context.Context, flowID, actor string) (entities.Flow, error) {
	return u.mutate(ctx, "request_consultation", flowID, actor, func(ctx context.Context, f *entities.Flow) ([]step, error) {
		if f.Status != entities.FlowStatusOrderCreated {
			return nil, &InvalidTransitionError{From: f.Status, To: entities.FlowStatusConsultationPending}
		}

		consultationID, err := u.deps.Consultations.RequestConsultation(ctx, entities.ConsultationRequest{
			IdempotencyKey:   IdempotencyKey(f.ID, entities.FlowStatusConsultationPending),
			FlowID:           f.ID,
			PatientID:        f.PatientID,
			ProductID:        f.ProductID,
			OrderID:          f.OrderID,
			FormSubmissionID: f.FormSubmissionID,
		})
		if err != nil {
			return nil, wrapCollaborator("consultations", err)
		}
		f.ConsultationID = consultationID

		return []step{transitionTo(entities.FlowStatusConsultationPending, map[string]any{"consultation_id": consultationID})}, nil
	})
}

// RecordConsultationOutcome applies the clinician decision. Approval requests the invoice with the
// snapshot frozen on the flow; rejection cancels the flow and never reaches billing.
func (u *FlowOrchestrator) RecordConsultationOutcome(ctx context.Context, flowID string, outcome entities.ConsultationOutcome, actor string) (entities.Flow, error) {
	return u.mutate(ctx, "record_consultation_outcome", flowID, actor, func(ctx context.Context, f *entities.Flow) ([]step, error) {
		if !outcome.Valid() {
			return nil, ErrInvalidOutcome
		}
		if f.Status != entities.FlowStatusConsultationPending {
			return nil, ErrFlowNotPending
		}

		if outcome == entities.ConsultationOutcomeRejected {
			f.CancellationReason = CancellationReasonConsultationRejected
			return []step{
				transitionTo(entities.FlowStatusConsultationRejected, map[string]any{"outcome": outcome}),
				transitionTo(entities.FlowStatusCancelled, map[string]any{"reason": CancellationReasonConsultationRejected}),
			}, nil
		}

		var snapshot entities.PricingSnapshot
		if f.PricingSnapshot != nil {
			snapshot = f.PricingSnapshot.Clone()
		}
		invoiceID, err := u.deps.Invoices.RequestInvoice(ctx, entities.InvoiceRequest{
			IdempotencyKey:  IdempotencyKey(f.ID, entities.FlowStatusInvoiceGenerated),
			FlowID:          f.ID,
			OrderID:         f.OrderID,
			PatientID:       f.PatientID,
			PricingSnapshot: snapshot,
		})
		if err != nil {
			return nil, wrapCollaborator("invoices", err)
		}
		f.InvoiceID = invoiceID

		return []step{
			transitionTo(entities.FlowStatusConsultationApproved, map[string]any{"outcome": outcome}),
			transitionTo(entities.FlowStatusInvoiceGenerated, map[string]any{
				"invoice_id":  invoiceID,
				"final_price": snapshot.FinalPrice.String(),
			}),
		}, nil
	})
}

func (u *FlowOrchestrator) ActivateSubscription(ctx context.Context, flowID, actor string) (entities.Flow, error) {
	return u.mutate(ctx, "activate_subscription", flowID, actor, func(_ context.Context, f *entities.Flow) ([]step, error) {
		if f.Status != entities.FlowStatusInvoiceGenerated || f.IsOneTime() {
			return nil, &InvalidTransitionError{From: f.Status, To: entities.FlowStatusSubscriptionActive}
		}
		return []step{transitionTo(entities.FlowStatusSubscriptionActive, map[string]any{
			"subscription_duration_id": f.SubscriptionDurationID,
			"invoice_id":               f.InvoiceID,
		})}, nil
	})
}

// MarkFulfilled requires SUBSCRIPTION_ACTIVE, except for one-time purchases which go straight from
// INVOICE_GENERATED.
func (u *FlowOrchestrator) MarkFulfilled(ctx context.Context, flowID, actor string) (entities.Flow, error) {
	return u.mutate(ctx, "mark_fulfilled", flowID, actor, func(_ context.Context, f *entities.Flow) ([]step, error) {
		ok := f.Status == entities.FlowStatusSubscriptionActive ||
			(f.Status == entities.FlowStatusInvoiceGenerated && f.IsOneTime())
		if !ok {
			return nil, &InvalidTransitionError{From: f.Status, To: entities.FlowStatusOrderFulfilled}
		}
		return []step{transitionTo(entities.FlowStatusOrderFulfilled, map[string]any{"order_id": f.OrderID})}, nil
	})
}

func (u *FlowOrchestrator) Complete(ctx context.Context, flowID, actor string) (entities.Flow, error) {
	return u.mutate(ctx, "complete", flowID, actor, func(_ context.Context, f *entities.Flow) ([]step, error) {
		if f.Status != entities.FlowStatusOrderFulfilled {
			return nil, &InvalidTransitionError{From: f.Status, To: entities.FlowStatusCompleted}
		}
		return []step{transitionTo(entities.FlowStatusCompleted, map[string]any{"order_id": f.OrderID})}, nil
	})
}

// Cancel is idempotent: an already cancelled flow is returned unchanged.
func (u *FlowOrchestrator) Cancel(ctx context.Context, flowID, reason, actor string) (entities.Flow, error) {
	return u.mutate(ctx, "cancel", flowID, actor, func(_ context.Context, f *entities.Flow) ([]step, error) {
		if f.Status == entities.FlowStatusCancelled {
			return nil, nil
		}
		if f.Status.IsTerminal() {
			return nil, &InvalidTransitionError{From: f.Status, To: entities.FlowStatusCancelled}
		}
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return nil, ErrInvalidCancellationReason
		}
		f.CancellationReason = reason
		return []step{transitionTo(entities.FlowStatusCancelled, map[string]any{"reason": reason})}, nil
	})
}

func (u *FlowOrchestrator) RespondToRecommendation(ctx context.Context, flowID, candidateID string, accepted bool, actor string) (entities.Flow, error) {
	return u.mutate(ctx, "respond_to_recommendation", flowID, actor, func(_ context.Context, f *entities.Flow) ([]step, error) {
		if f.Status.IsTerminal() {
			return nil, ErrFlowTerminal
		}
		i := f.FindRecommendation(strings.TrimSpace(candidateID))
		if i < 0 {
			return nil, ErrRecommendationNotFound
		}
		c := &f.Recommendations[i]
		if c.Resolved() {
			return nil, ErrRecommendationAlreadyResolved
		}

		now := u.now()
		action := entities.AuditActionRecommendationRejected
		if accepted {
			c.AcceptedAt = &now
			action = entities.AuditActionRecommendationAccepted
		} else {
			c.RejectedAt = &now
		}
		return []step{{to: f.Status, action: action, payload: map[string]any{
			"candidate_id": c.ID,
			"product_id":   c.ProductID,
			"accepted":     accepted,
		}}}, nil
	})
}

func (u *FlowOrchestrator) GetStatus(ctx context.Context, flowID string) (entities.FlowSnapshot, error) {
	f, err := u.load(ctx, flowID)
	if err != nil {
		return entities.FlowSnapshot{}, err
	}
	return entities.NewFlowSnapshot(f), nil
}

func (u *FlowOrchestrator) ListAudit(ctx context.Context, flowID string) ([]entities.AuditEntry, error) {
	f, err := u.load(ctx, flowID)
	if err != nil {
		return nil, err
	}
	return u.deps.Audit.List(ctx, f.ID)
}

func (u *FlowOrchestrator) load(ctx context.Context, flowID string) (entities.Flow, error) {
	flowID = strings.TrimSpace(flowID)
	if flowID == "" {
		return entities.Flow{}, ErrInvalidFlowID
	}
	f, err := u.deps.Flows.GetByID(ctx, flowID)
	if err != nil {
		return entities.Flow{}, wrapPersistence(err)
	}
	if f.ID == "" {
		return entities.Flow{}, ErrFlowNotFound
	}
	return f, nil
}

// mutate runs fn against a private copy of the locked flow and commits the resulting steps.
// fn returning no steps leaves the flow untouched.
func (u *FlowOrchestrator) mutate(ctx context.Context, op, flowID, actor string, fn mutation) (entities.Flow, error) {
	flowID = strings.TrimSpace(flowID)
	ctx, span := u.tracer.Start(ctx, "FlowOrchestrator."+op, trace.WithAttributes(attribute.String("flow.id", flowID)))
	defer span.End()
	start := u.now()

	f, err := u.apply(ctx, op, flowID, strings.TrimSpace(actor), fn)
	u.finish(span, op, flowID, start, err)
	return f, err
}

func (u *FlowOrchestrator) apply(ctx context.Context, op, flowID, actor string, fn mutation) (entities.Flow, error) {
	if flowID == "" {
		return entities.Flow{}, ErrInvalidFlowID
	}
	if actor == "" {
		return entities.Flow{}, ErrInvalidActor
	}

	release, err := u.deps.Locker.TryLock(ctx, flowID)
	if err != nil {
		return entities.Flow{}, wrapPersistence(err)
	}
	defer release()

	current, err := u.load(ctx, flowID)
	if err != nil {
		return entities.Flow{}, err
	}

	next := current.Clone()
	steps, err := fn(ctx, &next)
	if err != nil {
		return entities.Flow{}, err
	}
	if len(steps) == 0 {
		return current, nil
	}

	status := current.Status
	seq := current.AuditSequence
	entries := make([]entities.AuditEntry, 0, len(steps))
	for _, s := range steps {
		if s.action == entities.AuditActionTransition {
			if !entities.CanTransition(status, s.to) {
				return entities.Flow{}, &InvalidTransitionError{From: status, To: s.to}
			}
		} else {
			s.to = status
		}
		seq++
		e, err := u.deps.Audit.NewEntry(flowID, seq, status, s.to, s.action, actor, s.payload)
		if err != nil {
			return entities.Flow{}, wrapPersistence(err)
		}
		entries = append(entries, e)
		status = s.to
	}

	now := u.now()
	next.Status = status
	next.AuditSequence = seq
	next.Version = current.Version + 1
	next.UpdatedAt = now
	if status == entities.FlowStatusCompleted {
		next.CompletedAt = &now
	}

	saved, err := u.deps.Flows.SaveTransition(ctx, next, current.Version, entries)
	if err != nil {
		return entities.Flow{}, wrapPersistence(err)
	}

	for _, e := range entries {
		if e.IsTransition() {
			u.deps.Metrics.TransitionRecorded(e.FromStatus, e.ToStatus)
		}
	}
	u.log.Info().
		Str("op", op).
		Str("flow_id", flowID).
		Str("from", string(current.Status)).
		Str("to", string(status)).
		Int64("version", saved.Version).
		Msg("flow mutation committed")
	return saved, nil
}

func (u *FlowOrchestrator) finish(span trace.Span, op, flowID string, start time.Time, err error) {
	kind := ErrorKind(err)
	u.deps.Metrics.ObserveOperation(op, u.now().Sub(start), kind)
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, kind)

	ev := u.log.Warn()
	if kind == ErrorKindInfrastructure || kind == ErrorKindConfiguration || kind == ErrorKindComputation {
		ev = u.log.Error()
	}
	ev.Str("op", op).Str("flow_id", flowID).Str("error_kind", kind).Err(err).Msg("flow operation failed")
}

func (u *FlowOrchestrator) loadProduct(ctx context.Context, categoryID, productID string) (entities.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return entities.Product{}, ErrProductNotFound
	}
	p, err := u.deps.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return entities.Product{}, wrapPersistence(err)
	}
	if p.ID == "" {
		return entities.Product{}, ErrProductNotFound
	}
	if p.CategoryID != categoryID {
		return entities.Product{}, ErrProductNotInCategory
	}
	if !p.Active {
		return entities.Product{}, ErrProductInactive
	}
	return p, nil
}

func (u *FlowOrchestrator) checkDuration(ctx context.Context, p entities.Product, durationID string) error {
	if durationID == "" {
		return nil
	}
	if !p.OffersDuration(durationID) {
		return ErrInvalidSubscriptionDuration
	}
	d, err := u.deps.Catalog.GetSubscriptionDuration(ctx, durationID)
	if err != nil {
		return wrapPersistence(err)
	}
	if d.ID == "" {
		return ErrInvalidSubscriptionDuration
	}
	return nil
}

func (u *FlowOrchestrator) price(ctx context.Context, p entities.Product, durationID string) (entities.PricingSnapshot, error) {
	rules, err := u.deps.Catalog.ListPricingRules(ctx)
	if err != nil {
		return entities.PricingSnapshot{}, wrapPersistence(err)
	}
	in := pricing.Input{
		ProductID:              p.ID,
		CategoryID:             p.CategoryID,
		BasePrice:              p.BasePrice,
		SubscriptionDurationID: durationID,
		Rules:                  rules,
		At:                     u.now(),
	}
	res, err := u.pricing.ComputePrice(in)
	if err != nil {
		return entities.PricingSnapshot{}, wrapPricing(err)
	}
	return res.Snapshot(in, u.cfg.Currency), nil
}

func (u *FlowOrchestrator) resolveForm(ctx context.Context, categoryID, productID string) (entities.FormRequirement, error) {
	templates, err := u.deps.Catalog.ListFormTemplates(ctx)
	if err != nil {
		return entities.FormRequirement{}, wrapPersistence(err)
	}
	mappings, err := u.deps.Catalog.ListFormMappings(ctx)
	if err != nil {
		return entities.FormRequirement{}, wrapPersistence(err)
	}
	return forms.NewResolver(templates, mappings).Resolve(categoryID, productID)
}

func (u *FlowOrchestrator) recommend(ctx context.Context, f *entities.Flow, selected entities.Product, profile entities.PatientProfile) ([]entities.RecommendationCandidate, error) {
	products, err := u.deps.Catalog.ListProducts(ctx)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	scored := u.recs.Recommend(recommendation.Request{
		CategoryID:        f.CategoryID,
		Profile:           profile,
		Catalog:           products,
		MaxResults:        u.maxRecos,
		ExcludeProductIDs: []string{selected.ID},
	})

	now := u.now()
	out := make([]entities.RecommendationCandidate, 0, len(scored))
	for _, s := range scored {
		out = append(out, entities.RecommendationCandidate{
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(f.ID+":recommendation:"+s.ProductID)).String(),
			FlowID:      f.ID,
			ProductID:   s.ProductID,
			Score:       s.Score,
			ReasonCodes: s.ReasonCodes,
			PresentedAt: now,
		})
	}
	return out, nil
}

func formPayload(f *entities.Flow) map[string]any {
	if f.FormRequirement == nil {
		return map[string]any{"form_template_id": ""}
	}
	return map[string]any{"form_template_id": f.FormRequirement.FormTemplateID}
}

type noopMetrics struct{}

func (noopMetrics) ObserveOperation(string, time.Duration, string)              {}
func (noopMetrics) TransitionRecorded(entities.FlowStatus, entities.FlowStatus) {}

// submittedFieldIDs lists the non-blank fields of a submission, sorted. Audit digests cover these ids
// and never the values.
func submittedFieldIDs(data map[string]string) []string {
	ids := make([]string, 0, len(data))
	for id, v := range data {
		if strings.TrimSpace(v) != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
