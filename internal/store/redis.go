package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/quanda-ai/quanda/config"
	"github.com/quanda-ai/quanda/internal/knowledge"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each tenant's QA records as a list of JSON documents under
// qa:<tenant>, preserving insertion order.
type RedisStore struct {
	rdb    *redis.Client
	logger *log.Logger
}

// NewRedis connects and pings a redis client for the given configuration.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *log.Logger) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed (%s): %w", cfg.Addr(), err)
	}
	return &RedisStore{rdb: rdb, logger: logger}, nil
}

func tenantKey(tenant string) string { return "qa:" + tenant }

func (s *RedisStore) Fetch(ctx context.Context, tenant string, limit int) ([]knowledge.Record, error) {
	raw, err := s.rdb.LRange(ctx, tenantKey(tenant), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch qa records: %w", err)
	}
	var records []knowledge.Record
	for _, item := range raw {
		var rec knowledge.Record
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			s.logger.Printf("skipping malformed record in %s: %v", tenantKey(tenant), err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *RedisStore) Seed(ctx context.Context, tenant string, records []knowledge.Record) error {
	for _, rec := range records {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal qa record: %w", err)
		}
		if err := s.rdb.RPush(ctx, tenantKey(tenant), payload).Err(); err != nil {
			return fmt.Errorf("push qa record: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) Truncate(ctx context.Context, tenant string) error {
	return s.rdb.Del(ctx, tenantKey(tenant)).Err()
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
