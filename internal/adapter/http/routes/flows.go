package routes

import (
	"telehealth_flow/internal/adapter/http/handlers"
	"telehealth_flow/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathFlows = "/flows"
)

func addFlowRoutes(rg *gin.RouterGroup, flowHandler *handlers.FlowHandler) {
	flows := rg.Group(PathFlows)
	flows.Use(middleware.RequireActor())
	{
		flows.POST("", flowHandler.CreateFlow)
		flows.GET("/:flow_id", flowHandler.GetFlow)
		flows.GET("/:flow_id/audit", flowHandler.ListAudit)

		flows.POST("/:flow_id/product", flowHandler.SelectProduct)
		flows.POST("/:flow_id/subscription", flowHandler.ConfigureSubscription)
		flows.POST("/:flow_id/intake/start", flowHandler.StartIntake)
		flows.POST("/:flow_id/intake", flowHandler.SubmitIntake)
		flows.POST("/:flow_id/consultation", flowHandler.RequestConsultation)
		flows.POST("/:flow_id/consultation/outcome", flowHandler.RecordConsultationOutcome)
		flows.POST("/:flow_id/subscription/activate", flowHandler.ActivateSubscription)
		flows.POST("/:flow_id/fulfill", flowHandler.MarkFulfilled)
		flows.POST("/:flow_id/complete", flowHandler.Complete)
		flows.POST("/:flow_id/cancel", flowHandler.CancelFlow)

		flows.POST("/:flow_id/recommendations/:candidate_id/accept", flowHandler.AcceptRecommendation)
		flows.POST("/:flow_id/recommendations/:candidate_id/reject", flowHandler.RejectRecommendation)
	}
}
