// Package storage provides the server-side implementations of vault.Store:
// MongoDB, Redis, PostgreSQL and a single-file local blob.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mitrajit-55/password-manager/internal/config"
	"github.com/mitrajit-55/password-manager/internal/vault"
)

const defaultStoreTimeout = 5 * time.Second

// withTimeout bounds a storage operation when the caller did not already
// set a deadline.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultStoreTimeout)
}

// Open constructs the backend named by the configuration. It does not
// connect; call Initialize on the returned store.
func Open(cfg *config.Config) (vault.Store, error) {
	switch strings.ToLower(cfg.StorageBackend) {
	case "mongodb", "mongo":
		return NewMongoStore(cfg.MongoURI, cfg.MongoDatabase), nil
	case "redis":
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix), nil
	case "postgres", "postgresql":
		return NewPostgresStore(cfg.PostgresDSN), nil
	case "file", "":
		return NewFileStore(cfg.StorageBaseDir), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}
