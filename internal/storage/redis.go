package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mitrajit-55/password-manager/internal/vault"
)

// RedisStore implements vault.Store using Redis. Each record lives under its
// own key; an index list preserves insertion order for List.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis store.
func NewRedisStore(addr, password string, db int, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "passwords:"
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) recordKey(id string) string { return r.prefix + "pw:" + id }
func (r *RedisStore) indexKey() string           { return r.prefix + "pw:index" }

// Initialize tests the Redis connection.
func (r *RedisStore) Initialize(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func (r *RedisStore) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) List(ctx context.Context) ([]vault.Record, error) {
	ids, err := r.client.LRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read password index: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.recordKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read passwords: %w", err)
	}

	records := make([]vault.Record, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// index entry without a record key; skip the orphan
			continue
		}
		var rec vault.Record
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode password: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *RedisStore) Create(ctx context.Context, fields vault.Fields) (vault.Record, error) {
	rec := vault.Record{ID: uuid.NewString(), Fields: fields}
	payload, err := json.Marshal(rec)
	if err != nil {
		return vault.Record{}, fmt.Errorf("failed to encode password: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.recordKey(rec.ID), payload, 0)
	pipe.RPush(ctx, r.indexKey(), rec.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return vault.Record{}, fmt.Errorf("failed to store password: %w", err)
	}
	return rec, nil
}

func (r *RedisStore) Update(ctx context.Context, id string, fields vault.Fields) (bool, error) {
	current, err := r.client.Get(ctx, r.recordKey(id)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read password: %w", err)
	}

	var existing vault.Record
	if err := json.Unmarshal(current, &existing); err != nil {
		return false, fmt.Errorf("failed to decode password: %w", err)
	}
	if existing.Fields == fields {
		return false, nil
	}

	existing.Fields = fields
	payload, err := json.Marshal(existing)
	if err != nil {
		return false, fmt.Errorf("failed to encode password: %w", err)
	}
	if err := r.client.Set(ctx, r.recordKey(id), payload, 0).Err(); err != nil {
		return false, fmt.Errorf("failed to update password: %w", err)
	}
	return true, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) (bool, error) {
	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, r.recordKey(id))
	pipe.LRem(ctx, r.indexKey(), 0, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to delete password: %w", err)
	}
	return del.Val() > 0, nil
}
