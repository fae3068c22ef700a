package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("persist")

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// TTL expires idle records; zero keeps them forever.
	TTL time.Duration
}

// redisCmds is the subset of the go-redis API the backend needs.
type redisCmds interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Redis stores records as plain string values.
type Redis struct {
	rdb    redisCmds
	closer func() error
	ttl    time.Duration
}

// NewRedis dials Redis and verifies the connection with a PING.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("persist: ping redis: %w", err)
	}
	return &Redis{rdb: rdb, closer: rdb.Close, ttl: opts.TTL}, nil
}

func newRedisWith(rdb redisCmds, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "redis.Get",
		trace.WithAttributes(attribute.String("redis.key", key)))
	defer span.End()

	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return data, nil
}

func (r *Redis) Save(ctx context.Context, key string, data []byte) error {
	ctx, span := tracer.Start(ctx, "redis.Set",
		trace.WithAttributes(
			attribute.String("redis.key", key),
			attribute.Int64("redis.ttl_ms", r.ttl.Milliseconds()),
		))
	defer span.End()

	if err := r.rdb.Set(ctx, key, data, r.ttl).Err(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (r *Redis) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}
