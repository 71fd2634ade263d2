// Package cache provides the store-scoped caches used by the storefront
// assembly pipeline.
//
// Two layers live here: a generic thread-safe LRUCache, and a Store front
// that keys opaque values by a composite (store id, content class, language)
// key. The Aside helper implements the cache-aside read pattern with the
// pipeline's semantics: at most one load per miss, empty results never
// cached, per-tenant bypass when caching is disabled, last-write-wins on
// concurrent population.
//
// Entries carry no TTL; staleness is bounded only by LRU eviction. That is a
// deliberate property of the assembly pipeline, not an omission.
package cache
