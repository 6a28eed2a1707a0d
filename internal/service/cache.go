package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Read-through cache TTL for user and task views.
const cacheTTL = time.Hour

// Cache access is best-effort: a nil client or a Redis failure silently falls
// back to the database.

func cacheGetJSON(ctx context.Context, client *redis.Client, key string, v interface{}) bool {
	if client == nil {
		return false
	}
	cached, err := client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), v) == nil
}

func cacheSetJSON(ctx context.Context, client *redis.Client, key string, v interface{}) {
	if client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	client.SetEX(ctx, key, data, cacheTTL)
}

func cacheDel(ctx context.Context, client *redis.Client, key string) {
	if client == nil {
		return
	}
	client.Del(ctx, key)
}
