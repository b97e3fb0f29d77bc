package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"telecom-kpi/backend/internal/config"
	"telecom-kpi/backend/internal/domain"
)

// RedisStore keeps the fixture document as a single JSON string value.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(ctx context.Context, cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, cfg.RedisFixtureKey), nil
}

func NewRedisStoreWithClient(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Source() string { return "redis" }

func (r *RedisStore) Key() string { return r.key }

func (r *RedisStore) Load(ctx context.Context) (domain.Snapshot, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Snapshot{}, domain.BadFixture("redis "+r.key, errors.New("key not found"))
	}
	if err != nil {
		return domain.Snapshot{}, domain.BadFixture("redis "+r.key, err)
	}

	snap, err := DecodeSnapshot(raw)
	if err != nil {
		return domain.Snapshot{}, domain.BadFixture("redis "+r.key, err)
	}
	return snap, nil
}

// SaveSnapshot stores snap under the fixture key with no expiry.
func (r *RedisStore) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal fixture: %w", err)
	}
	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s failed: %w", r.key, err)
	}
	return nil
}
