package payments

import (
	"context"
	"errors"
	"testing"

	"telehealth_flow/internal/domain/entities"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func TestNewMercadoPagoGateway_RequiresToken(t *testing.T) {
	if _, err := NewMercadoPagoGateway("", false, zerolog.Nop()); !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
}

func TestMercadoPagoGateway_MockIsIdempotent(t *testing.T) {
	g, err := NewMercadoPagoGateway("", true, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	req := entities.InvoiceRequest{
		IdempotencyKey:  "f1:INVOICE_GENERATED",
		FlowID:          "f1",
		PricingSnapshot: entities.PricingSnapshot{ProductID: "semaglutide-1", Currency: "USD", FinalPrice: decimal.RequireFromString("180.00")},
	}
	a, err := g.RequestInvoice(context.Background(), req)
	if err != nil || a == "" {
		t.Fatalf("unexpected result %q err=%v", a, err)
	}
	b, _ := g.RequestInvoice(context.Background(), req)
	if a != b {
		t.Fatalf("retry must return the same invoice: %s vs %s", a, b)
	}

	req.IdempotencyKey = "f2:INVOICE_GENERATED"
	c, _ := g.RequestInvoice(context.Background(), req)
	if c == a {
		t.Fatalf("different keys must give different invoices")
	}
}

func TestMercadoPagoGateway_NilNotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	if _, err := g.RequestInvoice(context.Background(), entities.InvoiceRequest{}); !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
		t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
	}
}

func TestToPreferenceRequest(t *testing.T) {
	req := entities.InvoiceRequest{
		IdempotencyKey: "f1:INVOICE_GENERATED",
		FlowID:         "f1",
		OrderID:        "o1",
		PricingSnapshot: entities.PricingSnapshot{
			ProductID:              "semaglutide-1",
			SubscriptionDurationID: "monthly",
			Currency:               "USD",
			FinalPrice:             decimal.RequireFromString("180.00"),
		},
	}
	p := toPreferenceRequest(req)
	if p.ExternalReference != req.IdempotencyKey || len(p.Items) != 1 {
		t.Fatalf("unexpected preference: %+v", p)
	}
	item := p.Items[0]
	if item.UnitPrice != 180 || item.Quantity != 1 || item.CurrencyID != "USD" || item.Title != "semaglutide-1 (monthly)" {
		t.Fatalf("unexpected item: %+v", item)
	}
}
