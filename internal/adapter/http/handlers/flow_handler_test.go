package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"telehealth_flow/internal/adapter/http/handlers/mocks"
	"telehealth_flow/internal/adapter/http/middleware"
	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newFlowRouter(h *FlowHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequireActor())
	r.POST("/v1/flows", h.CreateFlow)
	r.GET("/v1/flows/:flow_id", h.GetFlow)
	r.POST("/v1/flows/:flow_id/product", h.SelectProduct)
	r.POST("/v1/flows/:flow_id/subscription", h.ConfigureSubscription)
	r.POST("/v1/flows/:flow_id/intake/start", h.StartIntake)
	r.POST("/v1/flows/:flow_id/intake", h.SubmitIntake)
	r.POST("/v1/flows/:flow_id/consultation", h.RequestConsultation)
	r.POST("/v1/flows/:flow_id/consultation/outcome", h.RecordConsultationOutcome)
	r.POST("/v1/flows/:flow_id/cancel", h.CancelFlow)
	r.POST("/v1/flows/:flow_id/recommendations/:candidate_id/accept", h.AcceptRecommendation)
	r.POST("/v1/flows/:flow_id/recommendations/:candidate_id/reject", h.RejectRecommendation)
	r.GET("/v1/flows/:flow_id/audit", h.ListAudit)
	return r
}

func doFlowRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.HeaderActorID, "patient-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFlowHandler_CreateFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		w := doFlowRequest(r, http.MethodPost, "/v1/flows", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		w := doFlowRequest(r, http.MethodPost, "/v1/flows", `{"metadata":{"utm":"ad"}}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		uc.EXPECT().InitializeFlow(gomock.Any(), "nope", gomock.Any(), "patient-1").Return(entities.Flow{}, usecase.ErrInvalidCategory)

		w := doFlowRequest(r, http.MethodPost, "/v1/flows", `{"category_id":"nope"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "INVALID_CATEGORY" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		uc.EXPECT().InitializeFlow(gomock.Any(), "weight-mgmt", map[string]string{"utm": "ad"}, "patient-1").
			Return(entities.Flow{ID: "flow-1", CategoryID: "weight-mgmt", Status: entities.FlowStatusCategorySelected, Version: 1}, nil)

		w := doFlowRequest(r, http.MethodPost, "/v1/flows", `{"category_id":"weight-mgmt","metadata":{"utm":"ad"}}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if body["flow_id"] != "flow-1" || body["status"] != "CATEGORY_SELECTED" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestFlowHandler_GetFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		uc.EXPECT().GetStatus(gomock.Any(), "missing").Return(entities.FlowSnapshot{}, usecase.ErrFlowNotFound)

		w := doFlowRequest(r, http.MethodGet, "/v1/flows/missing", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		snapshot := entities.NewFlowSnapshot(entities.Flow{ID: "flow-1", Status: entities.FlowStatusOrderCreated})
		uc.EXPECT().GetStatus(gomock.Any(), "flow-1").Return(snapshot, nil)

		w := doFlowRequest(r, http.MethodGet, "/v1/flows/flow-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["completion_percent"] != float64(50) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestFlowHandler_SelectProduct(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		w := doFlowRequest(r, http.MethodPost, "/v1/flows/flow-1/product", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("wrong status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		uc.EXPECT().SelectProduct(gomock.Any(), "flow-1", gomock.Any(), "patient-1").
			Return(entities.Flow{}, &usecase.InvalidTransitionError{From: entities.FlowStatusCompleted, To: entities.FlowStatusProductSelected})

		w := doFlowRequest(r, http.MethodPost, "/v1/flows/flow-1/product", `{"product_id":"semaglutide-1"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		want := usecase.SelectProductInput{
			ProductID:              "semaglutide-1",
			SubscriptionDurationID: "monthly",
			Profile:                entities.PatientProfile{Segment: "adult"},
		}
		uc.EXPECT().SelectProduct(gomock.Any(), "flow-1", gomock.Any(), "patient-1").
			DoAndReturn(func(_ any, _ string, in usecase.SelectProductInput, _ string) (entities.Flow, error) {
				if in.ProductID != want.ProductID || in.SubscriptionDurationID != want.SubscriptionDurationID || in.Profile.Segment != "adult" {
					return entities.Flow{}, fmt.Errorf("unexpected input %+v", in)
				}
				return entities.Flow{ID: "flow-1", Status: entities.FlowStatusProductSelected, ProductID: in.ProductID}, nil
			})

		w := doFlowRequest(r, http.MethodPost, "/v1/flows/flow-1/product", `{"product_id":"semaglutide-1","subscription_duration_id":"monthly","profile":{"segment":"adult"}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestFlowHandler_ConfigureSubscription(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("empty body means one-time purchase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		uc.EXPECT().ConfigureSubscription(gomock.Any(), "flow-1", "", "patient-1").
			Return(entities.Flow{ID: "flow-1", Status: entities.FlowStatusSubscriptionConfigured}, nil)

		w := doFlowRequest(r, http.MethodPost, "/v1/flows/flow-1/subscription", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid duration", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		uc.EXPECT().ConfigureSubscription(gomock.Any(), "flow-1", "weekly", "patient-1").
			Return(entities.Flow{}, usecase.ErrInvalidSubscriptionDuration)

		w := doFlowRequest(r, http.MethodPost, "/v1/flows/flow-1/subscription", `{"subscription_duration_id":"weekly"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestFlowHandler_SubmitIntake(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("incomplete form lists missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		uc.EXPECT().SubmitIntake(gomock.Any(), "flow-1", gomock.Any(), "patient-1").
			Return(entities.Flow{}, &usecase.IncompleteFormError{MissingFieldIDs: []string{"weight", "height"}})

		w := doFlowRequest(r, http.MethodPost, "/v1/flows/flow-1/intake", `{"form_data":{"email":"a@b.c"}}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		var body struct {
			Code    string `json:"code"`
			Details struct {
				MissingFieldIDs []string `json:"missing_field_ids"`
			} `json:"details"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if body.Code != "INCOMPLETE_FORM" || len(body.Details.MissingFieldIDs) != 2 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("store unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		uc.EXPECT().SubmitIntake(gomock.Any(), "flow-1", gomock.Any(), "patient-1").
			Return(entities.Flow{}, fmt.Errorf("%w: timeout", usecase.ErrPersistenceUnavailable))

		w := doFlowRequest(r, http.MethodPost, "/v1/flows/flow-1/intake", `{"form_data":{"email":"a@b.c"}}`)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})
}

func TestFlowHandler_Transitions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("start intake", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		uc.EXPECT().StartIntake(gomock.Any(), "flow-1", "patient-1").
			Return(entities.Flow{ID: "flow-1", Status: entities.FlowStatusIntakeStarted}, nil)

		w := doFlowRequest(r, http.MethodPost, "/v1/flows/flow-1/intake/start", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("consultation concurrent modification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		uc.EXPECT().RequestConsultation(gomock.Any(), "flow-1", "patient-1").
			Return(entities.Flow{}, usecase.ErrConcurrentModification)

		w := doFlowRequest(r, http.MethodPost, "/v1/flows/flow-1/consultation", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("outcome is normalized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		uc.EXPECT().RecordConsultationOutcome(gomock.Any(), "flow-1", entities.ConsultationOutcomeApproved, "patient-1").
			Return(entities.Flow{ID: "flow-1", Status: entities.FlowStatusConsultationApproved}, nil)

		w := doFlowRequest(r, http.MethodPost, "/v1/flows/flow-1/consultation/outcome", `{"outcome":" Approved "}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("cancel terminal flow", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		uc.EXPECT().Cancel(gomock.Any(), "flow-1", "changed my mind", "patient-1").
			Return(entities.Flow{}, usecase.ErrFlowTerminal)

		w := doFlowRequest(r, http.MethodPost, "/v1/flows/flow-1/cancel", `{"reason":"changed my mind"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("missing actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlowOrchestrator(ctrl)
		r := newFlowRouter(NewFlowHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/flows/flow-1/intake/start", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestFlowHandler_Recommendations(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIFlowOrchestrator(ctrl)
	r := newFlowRouter(NewFlowHandler(uc))

	uc.EXPECT().RespondToRecommendation(gomock.Any(), "flow-1", "c1", true, "patient-1").
		Return(entities.Flow{ID: "flow-1", Status: entities.FlowStatusProductSelected}, nil)
	uc.EXPECT().RespondToRecommendation(gomock.Any(), "flow-1", "c1", false, "patient-1").
		Return(entities.Flow{}, usecase.ErrRecommendationAlreadyResolved)
	uc.EXPECT().RespondToRecommendation(gomock.Any(), "flow-1", "zz", true, "patient-1").
		Return(entities.Flow{}, usecase.ErrRecommendationNotFound)

	if w := doFlowRequest(r, http.MethodPost, "/v1/flows/flow-1/recommendations/c1/accept", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := doFlowRequest(r, http.MethodPost, "/v1/flows/flow-1/recommendations/c1/reject", ""); w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if w := doFlowRequest(r, http.MethodPost, "/v1/flows/flow-1/recommendations/zz/accept", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestFlowHandler_ListAudit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIFlowOrchestrator(ctrl)
	r := newFlowRouter(NewFlowHandler(uc))

	uc.EXPECT().ListAudit(gomock.Any(), "flow-1").Return([]entities.AuditEntry{
		{ID: "e1", Sequence: 1, ToStatus: entities.FlowStatusCategorySelected, Action: entities.AuditActionTransition, TriggeredBy: "patient-1"},
	}, nil)

	w := doFlowRequest(r, http.MethodGet, "/v1/flows/flow-1/audit", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		FlowID  string `json:"flow_id"`
		Entries []struct {
			Sequence int64  `json:"sequence"`
			Actor    string `json:"actor"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.FlowID != "flow-1" || len(body.Entries) != 1 || body.Entries[0].Actor != "patient-1" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestMapFlowError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{usecase.ErrInvalidActor, http.StatusBadRequest},
		{usecase.ErrProductNotInCategory, http.StatusBadRequest},
		{usecase.ErrProductNotFound, http.StatusNotFound},
		{usecase.ErrFlowNotReady, http.StatusConflict},
		{usecase.ErrFlowNotPending, http.StatusConflict},
		{fmt.Errorf("%w: orders: down", usecase.ErrCollaboratorUnavailable), http.StatusServiceUnavailable},
		{usecase.ErrMalformedFormMapping, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := mapFlowError(tt.err).HTTPStatus; got != tt.want {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.want, got)
		}
	}
}
