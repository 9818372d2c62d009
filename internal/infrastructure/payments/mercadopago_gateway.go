package payments

import (
	"context"
	"errors"
	"sync"

	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/rs/zerolog"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway requests invoices as Mercado Pago checkout preferences.
//
// The flow's idempotency key is sent as external_reference. Invoice ids already issued by this
// process are cached by key, so a retried request returns the same invoice.
type MercadoPagoGateway struct {
	client   preference.Client
	mockMode bool
	log      zerolog.Logger

	mu     sync.Mutex
	issued map[string]string
}

var _ interfaces.IInvoiceRequester = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, mock bool, log zerolog.Logger) (*MercadoPagoGateway, error) {
	log = log.With().Str("component", "mercadopago_gateway").Logger()
	if mock {
		log.Info().Msg("mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, log: log, issued: make(map[string]string)}, nil
	}

	if accessToken == "" {
		log.Error().Msg("missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Error().Err(err).Msg("failed creating sdk config")
		return nil, err
	}
	log.Info().Msg("Mercado Pago client initialized")

	return &MercadoPagoGateway{client: preference.NewClient(cfg), log: log, issued: make(map[string]string)}, nil
}

func (g *MercadoPagoGateway) RequestInvoice(ctx context.Context, req entities.InvoiceRequest) (string, error) {
	if g == nil || (!g.mockMode && g.client == nil) {
		return "", ErrMercadoPagoGatewayNotConfigured
	}

	g.mu.Lock()
	if id, ok := g.issued[req.IdempotencyKey]; ok {
		g.mu.Unlock()
		return id, nil
	}
	g.mu.Unlock()

	var id string
	if g.mockMode {
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte("invoice|"+req.IdempotencyKey)).String()
		g.log.Info().Str("flow_id", req.FlowID).Str("invoice_id", id).Str("amount", req.PricingSnapshot.FinalPrice.String()).Msg("mock invoice created")
	} else {
		resp, err := g.client.Create(ctx, toPreferenceRequest(req))
		if err != nil {
			g.log.Error().Err(err).Str("flow_id", req.FlowID).Msg("sdk create preference failed")
			return "", err
		}
		id = resp.ID
		g.log.Info().Str("flow_id", req.FlowID).Str("invoice_id", id).Msg("invoice created")
	}

	g.mu.Lock()
	g.issued[req.IdempotencyKey] = id
	g.mu.Unlock()
	return id, nil
}

func toPreferenceRequest(req entities.InvoiceRequest) preference.Request {
	s := req.PricingSnapshot
	title := s.ProductID
	if s.SubscriptionDurationID != "" {
		title += " (" + s.SubscriptionDurationID + ")"
	}
	return preference.Request{
		ExternalReference: req.IdempotencyKey,
		Items: []preference.ItemRequest{{
			ID:         s.ProductID,
			Title:      title,
			CurrencyID: s.Currency,
			Quantity:   1,
			UnitPrice:  s.FinalPrice.InexactFloat64(),
		}},
		Metadata: map[string]any{
			"flow_id":    req.FlowID,
			"order_id":   req.OrderID,
			"patient_id": req.PatientID,
		},
	}
}
