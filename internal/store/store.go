package store

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/quanda-ai/quanda/config"
	"github.com/quanda-ai/quanda/internal/knowledge"
)

// Store is a QA record store backend. Fetch satisfies knowledge.Fetcher;
// Seed and Truncate exist for the operational seeding commands only and are
// never called on the query path.
type Store interface {
	Fetch(ctx context.Context, tenant string, limit int) ([]knowledge.Record, error)
	Seed(ctx context.Context, tenant string, records []knowledge.Record) error
	Truncate(ctx context.Context, tenant string) error
	Close() error
}

// New creates a store instance for the configured backend. Postgres is
// preferred; redis is the lightweight alternative for deployments without a
// database.
func New(ctx context.Context, cfg config.StorageConfig, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.New(log.Writer(), "[STORE] ", log.LstdFlags)
	}
	switch strings.ToLower(cfg.Backend) {
	case "", "postgres":
		dsn, err := cfg.Postgres.DSN()
		if err != nil {
			return nil, err
		}
		return NewPostgres(ctx, dsn)
	case "redis":
		return NewRedis(ctx, cfg.Redis, logger)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}
