package lock

import (
	"context"
	"sync"
	"time"

	"telehealth_flow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const lockKeyPrefix = "telehealth:flow-lock:"

// releaseScript deletes the key only while it still holds our token, so an expired lock taken
// over by another node is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serializes flow operations across nodes with SET NX PX.
// The TTL bounds how long a crashed holder can block a flow.
type RedisLocker struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

var _ interfaces.IFlowLocker = (*RedisLocker)(nil)

func NewRedisLocker(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisLocker {
	return &RedisLocker{rdb: rdb, ttl: ttl, log: log.With().Str("component", "redis_locker").Logger()}
}

func LockKey(flowID string) string {
	return lockKeyPrefix + flowID
}

func (l *RedisLocker) TryLock(ctx context.Context, flowID string) (func(), error) {
	key := LockKey(flowID)
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, interfaces.ErrLockHeld
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil {
				l.log.Warn().Err(err).Str("flow_id", flowID).Msg("lock release failed, waiting for ttl")
			}
		})
	}, nil
}
