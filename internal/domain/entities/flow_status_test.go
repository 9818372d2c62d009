package entities

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to FlowStatus
		want     bool
	}{
		{FlowStatusCategorySelected, FlowStatusProductSelected, true},
		{FlowStatusCategorySelected, FlowStatusSubscriptionConfigured, false},
		{FlowStatusProductSelected, FlowStatusCategorySelected, false},
		{FlowStatusConsultationPending, FlowStatusConsultationRejected, true},
		{FlowStatusConsultationRejected, FlowStatusCancelled, true},
		{FlowStatusInvoiceGenerated, FlowStatusOrderFulfilled, true},
		{FlowStatusInvoiceGenerated, FlowStatusSubscriptionActive, true},
		{FlowStatusOrderFulfilled, FlowStatusCompleted, true},
		{FlowStatusIntakeStarted, FlowStatusCancelled, true},
		{FlowStatusCompleted, FlowStatusCancelled, false},
		{FlowStatusCancelled, FlowStatusCancelled, false},
		{FlowStatus("BOGUS"), FlowStatusCancelled, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestCanonicalPathIsWalkable(t *testing.T) {
	for i := 1; i < len(CanonicalPath); i++ {
		if !CanTransition(CanonicalPath[i-1], CanonicalPath[i]) {
			t.Fatalf("canonical path broken at %s -> %s", CanonicalPath[i-1], CanonicalPath[i])
		}
	}
}

func TestCompletionPercent(t *testing.T) {
	if got := CompletionPercent(FlowStatusCategorySelected); got <= 0 || got >= 10 {
		t.Fatalf("unexpected first-step percentage %v", got)
	}
	if got := CompletionPercent(FlowStatusCompleted); got != 100 {
		t.Fatalf("expected 100 got %v", got)
	}
	if got := CompletionPercent(FlowStatusOrderCreated); got != 50 {
		t.Fatalf("expected 50 got %v", got)
	}
	if got := CompletionPercent(FlowStatusCancelled); got != 0 {
		t.Fatalf("expected 0 got %v", got)
	}
}

func TestNextStatuses(t *testing.T) {
	next := NextStatuses(FlowStatusConsultationPending)
	if len(next) != 3 || next[len(next)-1] != FlowStatusCancelled {
		t.Fatalf("unexpected next statuses: %v", next)
	}
	if NextStatuses(FlowStatusCompleted) != nil {
		t.Fatalf("terminal statuses have no successors")
	}
}

func TestFlowClone(t *testing.T) {
	f := Flow{
		ID:              "f",
		Metadata:        map[string]string{"k": "v"},
		PricingSnapshot: &PricingSnapshot{AppliedRuleIDs: []string{"r1"}},
		Recommendations: []RecommendationCandidate{{ID: "c1", ReasonCodes: []string{"a"}}},
	}
	c := f.Clone()
	c.Metadata["k"] = "changed"
	c.PricingSnapshot.AppliedRuleIDs[0] = "changed"
	c.Recommendations[0].ReasonCodes[0] = "changed"

	if f.Metadata["k"] != "v" || f.PricingSnapshot.AppliedRuleIDs[0] != "r1" || f.Recommendations[0].ReasonCodes[0] != "a" {
		t.Fatalf("clone shares state with original: %+v", f)
	}
}
