package metrics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/zeu5/rollout-sampler/core"
	"github.com/zeu5/rollout-sampler/util"
)

// Store is the part of redis used by the emitter
type Store interface {
	HSet(ctx context.Context, key string, values map[string]interface{}) error
	RPush(ctx context.Context, key string, value string) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a redis client
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (r *redisStore) HSet(ctx context.Context, key string, values map[string]interface{}) error {
	return r.client.HSet(ctx, key, values).Err()
}

func (r *redisStore) RPush(ctx context.Context, key string, value string) error {
	return r.client.RPush(ctx, key, value).Err()
}

// Redis stores the latest record set in the hash <prefix>:latest and
// appends every record set as JSON to the list <prefix>:history.
// Failures are logged and otherwise ignored.
type Redis struct {
	store   Store
	prefix  string
	timeout time.Duration
	logger  zerolog.Logger
}

var _ core.MetricsEmitter = &Redis{}

func NewRedis(store Store, prefix string, logger zerolog.Logger) *Redis {
	return &Redis{
		store:   store,
		prefix:  prefix,
		timeout: 2 * time.Second,
		logger:  logger.With().Str("component", "redis_metrics").Str("prefix", prefix).Logger(),
	}
}

func (r *Redis) LatestKey() string {
	return r.prefix + ":latest"
}

func (r *Redis) HistoryKey() string {
	return r.prefix + ":history"
}

func (r *Redis) Emit(records core.Records) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	values := make(map[string]interface{}, len(records))
	for k, v := range records {
		values[k] = v
	}
	if err := r.store.HSet(ctx, r.LatestKey(), values); err != nil {
		r.logger.Warn().Err(err).Msg("failed to store latest records")
		return
	}

	bs, err := json.Marshal(util.FiniteMap(records))
	if err != nil {
		r.logger.Warn().Err(err).Msg("failed to encode records")
		return
	}
	if err := r.store.RPush(ctx, r.HistoryKey(), string(bs)); err != nil {
		r.logger.Warn().Err(err).Msg("failed to append records")
	}
}
