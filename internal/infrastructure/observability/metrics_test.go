package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"telehealth_flow/internal/domain/entities"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestFlowMetrics(t *testing.T) {
	m := NewFlowMetrics()

	m.ObserveOperation("submit_intake", 20*time.Millisecond, "")
	m.ObserveOperation("submit_intake", 5*time.Millisecond, "validation")
	m.TransitionRecorded("", entities.FlowStatusCategorySelected)
	m.TransitionRecorded(entities.FlowStatusIntakeCompleted, entities.FlowStatusOrderCreated)

	if got := testutil.ToFloat64(m.operations.WithLabelValues("submit_intake", "none")); got != 1 {
		t.Fatalf("expected 1 ok operation, got %v", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("submit_intake", "validation")); got != 1 {
		t.Fatalf("expected 1 failed operation, got %v", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues("NONE", "CATEGORY_SELECTED")); got != 1 {
		t.Fatalf("expected creation transition, got %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "telehealth_flow_transitions_total") {
		t.Fatalf("metrics output missing transitions counter")
	}
}
