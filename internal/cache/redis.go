package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"imageapi/internal/config"
	"imageapi/internal/model"
)

// RecordCache stores file records by id. Records are immutable, so entries
// only ever expire; there is no invalidation.
type RecordCache interface {
	Get(ctx context.Context, id string) (model.FileRecord, bool, error)
	Set(ctx context.Context, rec model.FileRecord) error
}

// RedisCache implements RecordCache using Redis
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

var _ RecordCache = (*RedisCache)(nil)

// NewRedisClient dials Redis, instruments it for tracing and checks connectivity.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 2 * time.Second,
		ReadTimeout: 2 * time.Second,
	})

	if err := redisotel.InstrumentTracing(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("instrument redis: %w", err)
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisCache creates a cache on an existing client. A non-positive ttl means no expiry.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisCache{client: client, ttl: ttl}
}

func recordKey(id string) string {
	return "file:" + id
}

// Get returns a cached record. A cache miss is found == false with a nil error.
func (c *RedisCache) Get(ctx context.Context, id string) (model.FileRecord, bool, error) {
	data, err := c.client.Get(ctx, recordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.FileRecord{}, false, nil
		}
		return model.FileRecord{}, false, err
	}

	var rec model.FileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.FileRecord{}, false, fmt.Errorf("decode cached record: %w", err)
	}
	return rec, true, nil
}

// Set stores a record under its id.
func (c *RedisCache) Set(ctx context.Context, rec model.FileRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, recordKey(rec.ID), data, c.ttl).Err()
}
