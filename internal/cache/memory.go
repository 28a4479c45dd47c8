package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dariadocs/namescreen/internal/nametrace"
)

type entry struct {
	result    *nametrace.NormalizationResult
	expiresAt time.Time
}

// MemoryCache is the default C9 backend: a bounded LRU with TTL,
// replacing the teacher's hand-rolled map+mutex+ticker
// (cache_service.go) with hashicorp/golang-lru/v2's eviction, which
// satisfies spec §4.9's "bounded map... LRU-ish eviction" directly
// instead of reimplementing it.
type MemoryCache struct {
	lru *lru.Cache[string, entry]
	ttl time.Duration
	mu  sync.Mutex

	hits   int64
	misses int64
}

// NewMemoryCache creates a bounded LRU cache holding at most size
// entries, each valid for ttl.
func NewMemoryCache(size int, ttl time.Duration) (*MemoryCache, error) {
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{lru: c, ttl: ttl}, nil
}

func (m *MemoryCache) Get(ctx context.Context, key string) (*nametrace.NormalizationResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lru.Get(key)
	if !ok {
		atomic.AddInt64(&m.misses, 1)
		return nil, false, nil
	}
	if time.Now().After(e.expiresAt) {
		m.lru.Remove(key)
		atomic.AddInt64(&m.misses, 1)
		return nil, false, nil
	}
	atomic.AddInt64(&m.hits, 1)
	return e.result, true, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, result *nametrace.NormalizationResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lru.Add(key, entry{result: result, expiresAt: time.Now().Add(m.ttl)})
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lru.Remove(key)
	return nil
}

func (m *MemoryCache) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lru.Purge()
	return nil
}

func (m *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.lru.Peek(key)
	return ok, nil
}

func (m *MemoryCache) GetStats(ctx context.Context) (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hits := atomic.LoadInt64(&m.hits)
	misses := atomic.LoadInt64(&m.misses)
	total := hits + misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return &Stats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(m.lru.Len()),
	}, nil
}

func (m *MemoryCache) Close() error { return nil }
