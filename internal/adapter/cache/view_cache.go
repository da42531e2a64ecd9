package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/logger"
	goredis "github.com/redis/go-redis/v9"
)

// ViewCache is a JSON-backed Redis cache for small read views. Bind it to a
// view type T. A nil *ViewCache is valid and behaves as an always-miss cache,
// so callers never need to branch on whether Redis is configured.
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewViewCache[T any](client *goredis.Client, ttl time.Duration) *ViewCache[T] {
	if client == nil {
		return nil
	}
	return &ViewCache[T]{client: client, ttl: ttl}
}

// Get retrieves and unmarshals a value. Any miss or decode failure reads as a
// plain miss; the cache never surfaces errors to callers.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var value T
	if err := json.Unmarshal([]byte(data), &value); err != nil {
		return nil, false
	}

	return &value, true
}

func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	if c == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		logger.Error("view cache marshal failed", err, logger.Fields{"key": key})
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Error("view cache write failed", err, logger.Fields{"key": key})
	}
}

func (c *ViewCache[T]) Delete(ctx context.Context, key string) {
	if c == nil {
		return
	}

	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Error("view cache delete failed", err, logger.Fields{"key": key})
	}
}
