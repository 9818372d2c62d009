package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	sentKeyPrefix = "telehealth:sent:"
	sentKeyTTL    = 7 * 24 * time.Hour
	streamMaxLen  = 100000
)

// RedisStreamPublisher appends order and consultation requests to Redis streams.
//
// Each message carries the idempotency key; a marker key per request stops a retry from appending
// it twice. Consumers must still dedup on idempotency_key since a crash between XADD and the marker
// write replays the message.
type RedisStreamPublisher struct {
	rdb *redis.Client
	log zerolog.Logger
}

var (
	_ interfaces.IOrderRequester        = (*RedisStreamPublisher)(nil)
	_ interfaces.IConsultationRequester = (*RedisStreamPublisher)(nil)
)

func NewRedisStreamPublisher(rdb *redis.Client, log zerolog.Logger) *RedisStreamPublisher {
	return &RedisStreamPublisher{rdb: rdb, log: log.With().Str("component", "redis_stream_publisher").Logger()}
}

func (p *RedisStreamPublisher) RequestOrder(ctx context.Context, req entities.OrderRequest) (string, error) {
	return p.publish(ctx, StreamOrderRequested, req.IdempotencyKey, req.FlowID, req)
}

func (p *RedisStreamPublisher) RequestConsultation(ctx context.Context, req entities.ConsultationRequest) (string, error) {
	return p.publish(ctx, StreamConsultationRequested, req.IdempotencyKey, req.FlowID, req)
}

func (p *RedisStreamPublisher) publish(ctx context.Context, stream, key, flowID string, payload any) (string, error) {
	marker := sentKeyPrefix + stream + ":" + key

	existing, err := p.rdb.Get(ctx, marker).Result()
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, redis.Nil):
		return "", fmt.Errorf("read marker: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	id := DownstreamID(stream, key)

	err = p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]any{
			"id":              id,
			"idempotency_key": key,
			"flow_id":         flowID,
			"payload":         string(body),
		},
	}).Err()
	if err != nil {
		return "", fmt.Errorf("xadd %s: %w", stream, err)
	}

	if err := p.rdb.Set(ctx, marker, id, sentKeyTTL).Err(); err != nil {
		p.log.Warn().Err(err).Str("flow_id", flowID).Str("stream", stream).Msg("marker write failed")
	}
	p.log.Info().Str("flow_id", flowID).Str("stream", stream).Str("id", id).Msg("request published")
	return id, nil
}
