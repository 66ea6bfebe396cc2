package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the cache with a networked Redis instance. Every backend
// failure is logged and degraded: Get reports a miss, Set and Delete become
// no-ops. The pipeline never sees a cache error.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis at addr. Connection failure is returned
// to the caller so startup can fall back to the in-process store.
func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Get(key string) (string, bool) {
	val, err := r.client.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		slog.Warn("Cache read failed, treating as miss", "key", key, "error", err)
		return "", false
	}
	return val, true
}

func (r *RedisStore) Set(key string, value string, ttl time.Duration) {
	if err := r.client.Set(context.Background(), key, value, ttl).Err(); err != nil {
		slog.Warn("Cache write failed, skipping", "key", key, "error", err)
	}
}

func (r *RedisStore) Delete(key string) {
	if err := r.client.Del(context.Background(), key).Err(); err != nil {
		slog.Warn("Cache delete failed, skipping", "key", key, "error", err)
	}
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
