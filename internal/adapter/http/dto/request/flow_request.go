package request

import (
	"strings"

	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/usecase"
)

type CreateFlowRequest struct {
	CategoryID string            `json:"category_id" binding:"required"`
	Metadata   map[string]string `json:"metadata"`
}

type PatientProfileRequest struct {
	Segment         string   `json:"segment"`
	AgeBand         string   `json:"age_band"`
	Sex             string   `json:"sex"`
	Interests       []string `json:"interests"`
	OwnedProductIDs []string `json:"owned_product_ids"`
}

type SelectProductRequest struct {
	ProductID              string                `json:"product_id" binding:"required"`
	SubscriptionDurationID string                `json:"subscription_duration_id"`
	Profile                PatientProfileRequest `json:"profile"`
}

func (r SelectProductRequest) ToInput() usecase.SelectProductInput {
	return usecase.SelectProductInput{
		ProductID:              strings.TrimSpace(r.ProductID),
		SubscriptionDurationID: strings.TrimSpace(r.SubscriptionDurationID),
		Profile: entities.PatientProfile{
			Segment:         r.Profile.Segment,
			AgeBand:         r.Profile.AgeBand,
			Sex:             r.Profile.Sex,
			Interests:       r.Profile.Interests,
			OwnedProductIDs: r.Profile.OwnedProductIDs,
		},
	}
}

// ConfigureSubscriptionRequest with an empty duration configures a one-time purchase.
type ConfigureSubscriptionRequest struct {
	SubscriptionDurationID string `json:"subscription_duration_id"`
}

type SubmitIntakeRequest struct {
	PatientID string            `json:"patient_id"`
	FormData  map[string]string `json:"form_data" binding:"required"`
}

func (r SubmitIntakeRequest) ToSubmission() usecase.IntakeSubmission {
	return usecase.IntakeSubmission{PatientID: strings.TrimSpace(r.PatientID), FormData: r.FormData}
}

type ConsultationOutcomeRequest struct {
	Outcome string `json:"outcome" binding:"required"`
}

func (r ConsultationOutcomeRequest) ResolveOutcome() entities.ConsultationOutcome {
	return entities.ConsultationOutcome(strings.ToLower(strings.TrimSpace(r.Outcome)))
}

type CancelFlowRequest struct {
	Reason string `json:"reason" binding:"required"`
}
