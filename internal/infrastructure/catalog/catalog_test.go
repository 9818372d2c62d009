package catalog

import (
	"context"
	"errors"
	"testing"

	"telehealth_flow/internal/domain/forms"
	"telehealth_flow/internal/domain/pricing"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("sample catalog should be valid: %v", err)
	}

	ctx := context.Background()
	cat, _ := c.GetCategory(ctx, "weight-mgmt")
	if !cat.Active {
		t.Fatalf("expected active weight-mgmt category, got %+v", cat)
	}
	p, _ := c.GetProduct(ctx, "semaglutide-1")
	if p.BasePrice.StringFixed(2) != "200.00" || !p.OffersDuration("monthly") {
		t.Fatalf("unexpected product: %+v", p)
	}
	if missing, _ := c.GetProduct(ctx, "nope"); missing.ID != "" {
		t.Fatalf("expected zero value for unknown product")
	}
	rules, _ := c.ListPricingRules(ctx)
	if len(rules) != 3 || rules[0].DiscountValue.String() != "0.1" {
		t.Fatalf("unexpected rules: %+v", rules)
	}
}

func TestParseRejectsBadMoney(t *testing.T) {
	_, err := Parse([]byte(`
products:
  - id: p1
    category_id: c1
    base_price: "twelve"
`))
	if err == nil {
		t.Fatalf("expected error for non-numeric price")
	}
}

func TestValidate(t *testing.T) {
	d, err := Parse([]byte(`
categories:
  - {id: c1, name: C1, active: true}
products:
  - {id: p1, category_id: missing, base_price: "10", subscription_duration_ids: [weekly]}
pricing_rules:
  - {id: d1, scope_type: category, scope_id: c1, discount_type: percentage, discount_value: "0.1", default: true}
  - {id: d2, scope_type: category, scope_id: c1, discount_type: percentage, discount_value: "0.2", default: true}
form_templates:
  - id: t1
    fields: [{id: a}]
form_mappings:
  - {category_id: c1, form_template_id: t1, required_field_ids: [b]}
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = New(d).Validate()
	if !errors.Is(err, pricing.ErrInvalidRule) {
		t.Fatalf("expected duplicate default rule error, got %v", err)
	}
	if !errors.Is(err, forms.ErrMalformedFormMapping) {
		t.Fatalf("expected malformed mapping error, got %v", err)
	}
}

func TestSetPricingRules(t *testing.T) {
	c := New(Data{})
	c.SetPricingRules(nil)
	rules, _ := c.ListPricingRules(context.Background())
	if len(rules) != 0 {
		t.Fatalf("expected no rules, got %v", rules)
	}
}
