package store

import (
	"context"

	"github.com/croissant676/shopizer/pkg/cache"
)

// CachedProvider wraps a Provider with an in-process LRU so the per-request
// session-affinity lookup does not hit the backing service every time.
// Entries carry no TTL, consistent with the pipeline's store-scoped caches;
// staleness is bounded by eviction only. Misses are not cached.
type CachedProvider struct {
	inner Provider
	lru   *cache.LRUCache[string, *Store]
}

// NewCachedProvider wraps the provider with a lookup cache of the given
// capacity.
func NewCachedProvider(inner Provider, capacity int) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		lru:   cache.NewLRUCache[string, *Store](capacity),
	}
}

// GetByCode serves from cache when possible, falling back to the inner
// provider and caching successful lookups. The returned store is always a
// copy; the cached entry is never handed out, so callers cannot mutate it.
func (p *CachedProvider) GetByCode(ctx context.Context, code string) (*Store, error) {
	if st, ok := p.lru.Get(code); ok {
		copied := *st
		return &copied, nil
	}

	st, err := p.inner.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	p.lru.Put(code, st)
	copied := *st
	return &copied, nil
}

// Invalidate drops a cached store, for callers that mutate store records.
func (p *CachedProvider) Invalidate(code string) {
	p.lru.Remove(code)
}
