package events

import (
	"context"
	"sync"

	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	StreamOrderRequested        = "telehealth.order.requested"
	StreamConsultationRequested = "telehealth.consultation.requested"
)

// DownstreamID derives the id a collaborator assigns to a request. Equal keys give equal ids.
func DownstreamID(stream, idempotencyKey string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(stream+"|"+idempotencyKey)).String()
}

// Event is one published request as seen by consumers.
type Event struct {
	Stream         string
	ID             string
	IdempotencyKey string
	FlowID         string
}

// LocalPublisher records order and consultation requests in process memory. Used when no broker
// is configured.
type LocalPublisher struct {
	mu     sync.Mutex
	seen   map[string]string
	events []Event
	log    zerolog.Logger
}

var (
	_ interfaces.IOrderRequester        = (*LocalPublisher)(nil)
	_ interfaces.IConsultationRequester = (*LocalPublisher)(nil)
)

func NewLocalPublisher(log zerolog.Logger) *LocalPublisher {
	return &LocalPublisher{
		seen: make(map[string]string),
		log:  log.With().Str("component", "local_publisher").Logger(),
	}
}

func (p *LocalPublisher) RequestOrder(_ context.Context, req entities.OrderRequest) (string, error) {
	return p.publish(StreamOrderRequested, req.IdempotencyKey, req.FlowID), nil
}

func (p *LocalPublisher) RequestConsultation(_ context.Context, req entities.ConsultationRequest) (string, error) {
	return p.publish(StreamConsultationRequested, req.IdempotencyKey, req.FlowID), nil
}

// Events returns the published events in order, one per idempotency key.
func (p *LocalPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

func (p *LocalPublisher) publish(stream, key, flowID string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	dedup := stream + "|" + key
	if id, ok := p.seen[dedup]; ok {
		return id
	}
	id := DownstreamID(stream, key)
	p.seen[dedup] = id
	p.events = append(p.events, Event{Stream: stream, ID: id, IdempotencyKey: key, FlowID: flowID})
	p.log.Info().Str("stream", stream).Str("flow_id", flowID).Str("id", id).Msg("request published")
	return id
}
