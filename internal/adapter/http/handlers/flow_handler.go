package handlers

import (
	"context"
	"errors"
	"net/http"

	request "telehealth_flow/internal/adapter/http/dto/request"
	response "telehealth_flow/internal/adapter/http/dto/response"
	"telehealth_flow/internal/adapter/http/middleware"
	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/usecase"
	"telehealth_flow/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidFlowPayload = pkg.NewDomainErrorSimple("INVALID_FLOW_INPUT", "Invalid flow payload", http.StatusBadRequest)
)

// FlowHandler exposes the flow orchestrator over HTTP.
type FlowHandler struct {
	usecase usecase.IFlowOrchestrator
}

func NewFlowHandler(uc usecase.IFlowOrchestrator) *FlowHandler {
	return &FlowHandler{usecase: uc}
}

// CreateFlow godoc
// @Summary      Start a patient flow
// @Tags         flows
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID  header  string                     true  "Actor"
// @Param        payload     body    request.CreateFlowRequest  true  "Category"
// @Success      201  {object}  response.FlowResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /flows [post]
func (h *FlowHandler) CreateFlow(c *gin.Context) {
	var payload request.CreateFlowRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidFlowPayload.HTTPStatus, errInvalidFlowPayload.ToHTTPError())
		return
	}

	f, err := h.usecase.InitializeFlow(c.Request.Context(), payload.CategoryID, payload.Metadata, middleware.Actor(c))
	h.respond(c, http.StatusCreated, f, err)
}

// GetFlow godoc
// @Summary      Flow status with completion percentage
// @Tags         flows
// @Produce      json
// @Param        flow_id  path  string  true  "Flow ID"
// @Success      200  {object}  response.FlowStatusResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /flows/{flow_id} [get]
func (h *FlowHandler) GetFlow(c *gin.Context) {
	snapshot, err := h.usecase.GetStatus(c.Request.Context(), c.Param("flow_id"))
	if err != nil {
		writeFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromFlowSnapshot(snapshot))
}

// SelectProduct godoc
// @Summary      Select a product and freeze its price
// @Tags         flows
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID  header  string                        true  "Actor"
// @Param        flow_id     path    string                        true  "Flow ID"
// @Param        payload     body    request.SelectProductRequest  true  "Product"
// @Success      200  {object}  response.FlowResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /flows/{flow_id}/product [post]
func (h *FlowHandler) SelectProduct(c *gin.Context) {
	var payload request.SelectProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidFlowPayload.HTTPStatus, errInvalidFlowPayload.ToHTTPError())
		return
	}

	f, err := h.usecase.SelectProduct(c.Request.Context(), c.Param("flow_id"), payload.ToInput(), middleware.Actor(c))
	h.respond(c, http.StatusOK, f, err)
}

// ConfigureSubscription godoc
// @Summary      Choose a subscription duration, or none for a one-time purchase
// @Tags         flows
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID  header  string                                true  "Actor"
// @Param        flow_id     path    string                                true  "Flow ID"
// @Param        payload     body    request.ConfigureSubscriptionRequest  false "Duration"
// @Success      200  {object}  response.FlowResponse
// @Router       /flows/{flow_id}/subscription [post]
func (h *FlowHandler) ConfigureSubscription(c *gin.Context) {
	var payload request.ConfigureSubscriptionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidFlowPayload.HTTPStatus, errInvalidFlowPayload.ToHTTPError())
			return
		}
	}

	f, err := h.usecase.ConfigureSubscription(c.Request.Context(), c.Param("flow_id"), payload.SubscriptionDurationID, middleware.Actor(c))
	h.respond(c, http.StatusOK, f, err)
}

// StartIntake godoc
// @Summary      Start the intake form
// @Tags         flows
// @Produce      json
// @Param        X-Actor-ID  header  string  true  "Actor"
// @Param        flow_id     path    string  true  "Flow ID"
// @Success      200  {object}  response.FlowResponse
// @Router       /flows/{flow_id}/intake/start [post]
func (h *FlowHandler) StartIntake(c *gin.Context) {
	h.simpleTransition(c, h.usecase.StartIntake)
}

// SubmitIntake godoc
// @Summary      Submit intake form data
// @Tags         flows
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID  header  string                       true  "Actor"
// @Param        flow_id     path    string                       true  "Flow ID"
// @Param        payload     body    request.SubmitIntakeRequest  true  "Form data"
// @Success      200  {object}  response.FlowResponse
// @Failure      422  {object}  pkg.HTTPError
// @Router       /flows/{flow_id}/intake [post]
func (h *FlowHandler) SubmitIntake(c *gin.Context) {
	var payload request.SubmitIntakeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidFlowPayload.HTTPStatus, errInvalidFlowPayload.ToHTTPError())
		return
	}

	f, err := h.usecase.SubmitIntake(c.Request.Context(), c.Param("flow_id"), payload.ToSubmission(), middleware.Actor(c))
	h.respond(c, http.StatusOK, f, err)
}

// RequestConsultation godoc
// @Summary      Request a clinician consultation
// @Tags         flows
// @Produce      json
// @Param        X-Actor-ID  header  string  true  "Actor"
// @Param        flow_id     path    string  true  "Flow ID"
// @Success      200  {object}  response.FlowResponse
// @Router       /flows/{flow_id}/consultation [post]
func (h *FlowHandler) RequestConsultation(c *gin.Context) {
	h.simpleTransition(c, h.usecase.RequestConsultation)
}

// RecordConsultationOutcome godoc
// @Summary      Record the clinician decision
// @Tags         flows
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID  header  string                              true  "Actor"
// @Param        flow_id     path    string                              true  "Flow ID"
// @Param        payload     body    request.ConsultationOutcomeRequest  true  "approved or rejected"
// @Success      200  {object}  response.FlowResponse
// @Router       /flows/{flow_id}/consultation/outcome [post]
func (h *FlowHandler) RecordConsultationOutcome(c *gin.Context) {
	var payload request.ConsultationOutcomeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidFlowPayload.HTTPStatus, errInvalidFlowPayload.ToHTTPError())
		return
	}

	f, err := h.usecase.RecordConsultationOutcome(c.Request.Context(), c.Param("flow_id"), payload.ResolveOutcome(), middleware.Actor(c))
	h.respond(c, http.StatusOK, f, err)
}

// ActivateSubscription godoc
// @Summary      Activate the subscription after invoicing
// @Tags         flows
// @Produce      json
// @Param        X-Actor-ID  header  string  true  "Actor"
// @Param        flow_id     path    string  true  "Flow ID"
// @Success      200  {object}  response.FlowResponse
// @Router       /flows/{flow_id}/subscription/activate [post]
func (h *FlowHandler) ActivateSubscription(c *gin.Context) {
	h.simpleTransition(c, h.usecase.ActivateSubscription)
}

// MarkFulfilled godoc
// @Summary      Mark the order fulfilled
// @Tags         flows
// @Produce      json
// @Param        X-Actor-ID  header  string  true  "Actor"
// @Param        flow_id     path    string  true  "Flow ID"
// @Success      200  {object}  response.FlowResponse
// @Router       /flows/{flow_id}/fulfill [post]
func (h *FlowHandler) MarkFulfilled(c *gin.Context) {
	h.simpleTransition(c, h.usecase.MarkFulfilled)
}

// Complete godoc
// @Summary      Complete the flow
// @Tags         flows
// @Produce      json
// @Param        X-Actor-ID  header  string  true  "Actor"
// @Param        flow_id     path    string  true  "Flow ID"
// @Success      200  {object}  response.FlowResponse
// @Router       /flows/{flow_id}/complete [post]
func (h *FlowHandler) Complete(c *gin.Context) {
	h.simpleTransition(c, h.usecase.Complete)
}

// CancelFlow godoc
// @Summary      Cancel a flow
// @Tags         flows
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID  header  string                     true  "Actor"
// @Param        flow_id     path    string                     true  "Flow ID"
// @Param        payload     body    request.CancelFlowRequest  true  "Reason"
// @Success      200  {object}  response.FlowResponse
// @Router       /flows/{flow_id}/cancel [post]
func (h *FlowHandler) CancelFlow(c *gin.Context) {
	var payload request.CancelFlowRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidFlowPayload.HTTPStatus, errInvalidFlowPayload.ToHTTPError())
		return
	}

	f, err := h.usecase.Cancel(c.Request.Context(), c.Param("flow_id"), payload.Reason, middleware.Actor(c))
	h.respond(c, http.StatusOK, f, err)
}

// AcceptRecommendation godoc
// @Summary      Accept a recommended product
// @Tags         flows
// @Produce      json
// @Param        X-Actor-ID    header  string  true  "Actor"
// @Param        flow_id       path    string  true  "Flow ID"
// @Param        candidate_id  path    string  true  "Candidate ID"
// @Success      200  {object}  response.FlowResponse
// @Router       /flows/{flow_id}/recommendations/{candidate_id}/accept [post]
func (h *FlowHandler) AcceptRecommendation(c *gin.Context) {
	h.respondToRecommendation(c, true)
}

// RejectRecommendation godoc
// @Summary      Reject a recommended product
// @Tags         flows
// @Produce      json
// @Param        X-Actor-ID    header  string  true  "Actor"
// @Param        flow_id       path    string  true  "Flow ID"
// @Param        candidate_id  path    string  true  "Candidate ID"
// @Success      200  {object}  response.FlowResponse
// @Router       /flows/{flow_id}/recommendations/{candidate_id}/reject [post]
func (h *FlowHandler) RejectRecommendation(c *gin.Context) {
	h.respondToRecommendation(c, false)
}

// ListAudit godoc
// @Summary      Audit trail of a flow in sequence order
// @Tags         flows
// @Produce      json
// @Param        flow_id  path  string  true  "Flow ID"
// @Success      200  {object}  response.AuditTrailResponse
// @Router       /flows/{flow_id}/audit [get]
func (h *FlowHandler) ListAudit(c *gin.Context) {
	flowID := c.Param("flow_id")
	entries, err := h.usecase.ListAudit(c.Request.Context(), flowID)
	if err != nil {
		writeFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAuditEntries(flowID, entries))
}

func (h *FlowHandler) respondToRecommendation(c *gin.Context, accepted bool) {
	f, err := h.usecase.RespondToRecommendation(c.Request.Context(), c.Param("flow_id"), c.Param("candidate_id"), accepted, middleware.Actor(c))
	h.respond(c, http.StatusOK, f, err)
}

func (h *FlowHandler) simpleTransition(
	c *gin.Context,
	op func(ctx context.Context, flowID, actor string) (entities.Flow, error),
) {
	f, err := op(c.Request.Context(), c.Param("flow_id"), middleware.Actor(c))
	h.respond(c, http.StatusOK, f, err)
}

func (h *FlowHandler) respond(c *gin.Context, status int, f entities.Flow, err error) {
	if err != nil {
		writeFlowError(c, err)
		return
	}
	c.JSON(status, response.FromFlow(f))
}

func writeFlowError(c *gin.Context, err error) {
	appErr := mapFlowError(err)
	_ = c.Error(err)

	var incomplete *usecase.IncompleteFormError
	if errors.As(err, &incomplete) {
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPErrorWithDetails(gin.H{"missing_field_ids": incomplete.MissingFieldIDs}))
		return
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapFlowError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrIncompleteForm):
		return pkg.NewDomainErrorSimple("INCOMPLETE_FORM", "Required intake fields are missing", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrInvalidFlowID), errors.Is(err, usecase.ErrInvalidActor):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCategory):
		return pkg.NewDomainErrorSimple("INVALID_CATEGORY", "Category is unknown or inactive", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProductNotInCategory):
		return pkg.NewDomainErrorSimple("PRODUCT_NOT_IN_CATEGORY", "Product does not belong to the flow category", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProductInactive):
		return pkg.NewDomainErrorSimple("PRODUCT_INACTIVE", "Product is inactive", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidSubscriptionDuration):
		return pkg.NewDomainErrorSimple("INVALID_SUBSCRIPTION_DURATION", "Subscription duration is not offered for this product", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidOutcome):
		return pkg.NewDomainErrorSimple("INVALID_OUTCOME", "Outcome must be approved or rejected", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCancellationReason):
		return pkg.NewDomainErrorSimple("INVALID_CANCELLATION_REASON", "Cancellation reason is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrFlowNotFound):
		return pkg.NewDomainErrorSimple("FLOW_NOT_FOUND", "Flow not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProductNotFound):
		return pkg.NewDomainErrorSimple("PRODUCT_NOT_FOUND", "Product not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRecommendationNotFound):
		return pkg.NewDomainErrorSimple("RECOMMENDATION_NOT_FOUND", "Recommendation not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Operation not allowed in the current flow status", http.StatusConflict)
	case errors.Is(err, usecase.ErrFlowNotReady):
		return pkg.NewDomainErrorSimple("FLOW_NOT_READY", "Flow is not ready for this operation", http.StatusConflict)
	case errors.Is(err, usecase.ErrFlowNotPending):
		return pkg.NewDomainErrorSimple("FLOW_NOT_PENDING", "Flow is not waiting for a consultation outcome", http.StatusConflict)
	case errors.Is(err, usecase.ErrFlowTerminal):
		return pkg.NewDomainErrorSimple("FLOW_TERMINAL", "Flow is already finished", http.StatusConflict)
	case errors.Is(err, usecase.ErrRecommendationAlreadyResolved):
		return pkg.NewDomainErrorSimple("RECOMMENDATION_ALREADY_RESOLVED", "Recommendation was already answered", http.StatusConflict)
	case errors.Is(err, usecase.ErrFlowManaged):
		return pkg.NewDomainErrorSimple("FLOW_MANAGED", "Flow entries are written by flow operations only", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentModification):
		return pkg.NewDomainErrorSimple("CONCURRENT_MODIFICATION", "Flow was modified concurrently, re-read and retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrPersistenceUnavailable), errors.Is(err, usecase.ErrCollaboratorUnavailable):
		return pkg.NewDomainError("SERVICE_UNAVAILABLE", "Temporarily unavailable, please retry", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
