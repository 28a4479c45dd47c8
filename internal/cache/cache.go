// Package cache implements the Cache (C9): an optional
// request-result memoization layer keyed on a fingerprint of
// (text, language, flag-subset). Grounded on the teacher's
// cache_interface.go contract shape, narrowed to the fields this
// pipeline actually needs (no gazetteer-version invalidation, no
// address-specific stats), and reimplemented over
// hashicorp/golang-lru/v2 for the default in-memory backend instead of
// the teacher's hand-rolled map+mutex+ticker.
package cache

import (
	"context"
	"time"

	"github.com/dariadocs/namescreen/internal/nametrace"
)

// Stats mirrors the teacher's CacheStats shape, narrowed to fields
// that make sense without an address gazetteer version.
type Stats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// Cache is C9's contract: thread-safe bounded memoization of
// NormalizationResult by fingerprint key.
type Cache interface {
	Get(ctx context.Context, key string) (*nametrace.NormalizationResult, bool, error)
	Set(ctx context.Context, key string, result *nametrace.NormalizationResult) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Exists(ctx context.Context, key string) (bool, error)
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// DefaultTTL matches the teacher's redis_cache_service.go default.
const DefaultTTL = 24 * time.Hour
