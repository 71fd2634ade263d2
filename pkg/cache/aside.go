package cache

import "context"

// Loader fetches a content-class value from its backing collaborator.
type Loader[T any] func(ctx context.Context) (T, error)

// Aside runs the cache-aside read pattern for one composite key.
//
// When caching is enabled for the tenant, a hit returns the cached value and
// a miss invokes the loader exactly once; non-empty results are written back,
// empty results are not, so a transient empty dataset is never mistaken for
// an authoritative one. When caching is disabled the loader is always
// invoked and the cache is never consulted.
//
// Concurrent requests missing on the same key may each invoke the loader;
// the write back is last-write-wins, which is safe because loaders are
// idempotent reads.
func Aside[T any](ctx context.Context, store *Store, enabled bool, key string, isEmpty func(T) bool, load Loader[T]) (T, error) {
	if !enabled {
		return load(ctx)
	}

	if cached, ok := store.Get(key); ok {
		if value, ok := cached.(T); ok {
			return value, nil
		}
		// Wrong type under this key means a key-scheme bug elsewhere;
		// fall through and recompute rather than fail the request.
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if !isEmpty(value) {
		store.Put(key, value)
	}
	return value, nil
}
