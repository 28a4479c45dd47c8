package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dariadocs/namescreen/internal/nametrace"
)

// RedisCache is the optional alternate C9 backend, adapted from the
// teacher's redis_cache_service.go: same prefix/TTL/hit-miss-counter
// shape, rewired to store nametrace.NormalizationResult instead of
// models.AddressResult and dropping the gazetteer-version invalidation
// path this domain has no use for.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   int64
	misses int64
}

// NewRedisCache dials redisURL and verifies connectivity before
// returning, same as the teacher's NewRedisCacheService.
func NewRedisCache(redisURL string, logger *zap.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RedisCache{
		client: client,
		logger: logger,
		prefix: "namescreen:",
		ttl:    DefaultTTL,
	}, nil
}

func (r *RedisCache) key(k string) string { return r.prefix + k }

func (r *RedisCache) Get(ctx context.Context, key string) (*nametrace.NormalizationResult, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		atomic.AddInt64(&r.misses, 1)
		return nil, false, nil
	}
	if err != nil {
		r.logger.Error("redis get failed", zap.Error(err), zap.String("key", key))
		return nil, false, err
	}

	var result nametrace.NormalizationResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		r.logger.Error("redis cache value unmarshal failed", zap.Error(err))
		return nil, false, err
	}

	atomic.AddInt64(&r.hits, 1)
	return &result, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, result *nametrace.NormalizationResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling cache value: %w", err)
	}

	if err := r.client.Set(ctx, r.key(key), data, r.ttl).Err(); err != nil {
		r.logger.Error("redis set failed", zap.Error(err), zap.String("key", key))
		return err
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *RedisCache) Clear(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, r.prefix+"*").Result()
	if err != nil {
		return fmt.Errorf("listing keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisCache) GetStats(ctx context.Context) (*Stats, error) {
	keys, err := r.client.Keys(ctx, r.prefix+"*").Result()
	totalItems := int64(0)
	if err == nil {
		totalItems = int64(len(keys))
	}

	hits := atomic.LoadInt64(&r.hits)
	misses := atomic.LoadInt64(&r.misses)
	total := hits + misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return &Stats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: totalItems,
	}, nil
}

func (r *RedisCache) Close() error { return r.client.Close() }

// SetTTL overrides the default TTL, mirroring the teacher's
// RedisCacheService.SetTTL.
func (r *RedisCache) SetTTL(ttl time.Duration) { r.ttl = ttl }
