package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"telehealth_flow/internal/adapter/http/handlers/mocks"
	"telehealth_flow/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIFlowOrchestrator(ctrl)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("flow_operations_total 1\n"))
	})
	router := NewRouter(Options{Orchestrator: uc, Logger: zerolog.Nop(), MetricsHandler: metrics, Debug: true})

	t.Run("ping", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "pong") {
			t.Fatalf("unexpected ping response: %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "flow_operations_total") {
			t.Fatalf("unexpected metrics response: %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("flow routes are wired", func(t *testing.T) {
		uc.EXPECT().MarkFulfilled(gomock.Any(), "flow-1", "ops").
			Return(entities.Flow{ID: "flow-1", Status: entities.FlowStatusOrderFulfilled}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/flows/flow-1/fulfill", nil)
		req.Header.Set("X-Actor-ID", "ops")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
