package cache

import "fmt"

// Class tags one of the cacheable content classes. The tag is part of the
// composite cache key, so two classes never collide even for the same store
// and language.
type Class string

const (
	// ClassConfig caches the merged merchant configuration map. It is the
	// only class keyed without a language dimension.
	ClassConfig Class = "CONFIG"
	// ClassContent caches CMS box and section content.
	ClassContent Class = "CONTENT"
	// ClassContentPage caches the CMS page index.
	ClassContentPage Class = "CONTENT_PAGE"
	// ClassCategories caches the category navigation tree.
	ClassCategories Class = "CATALOG_CATEGORIES"
)

// Key builds the composite cache key for a store-scoped content class.
// The language code is appended when non-empty: "12_CONTENT-en".
// Classes without a language dimension use the short form: "12_CONFIG".
func Key(storeID int64, class Class, langCode string) string {
	if langCode == "" {
		return fmt.Sprintf("%d_%s", storeID, class)
	}
	return fmt.Sprintf("%d_%s-%s", storeID, class, langCode)
}

// Store is a store-scoped key-value cache front. Values are opaque; each
// content class decides its own cached shape. Two Store instances with
// different sizing profiles back the assembly pipeline: a general-purpose
// one and a dedicated navigation-tree one.
type Store struct {
	name string
	lru  *LRUCache[string, any]
}

// NewStore creates a named cache with the given entry capacity.
func NewStore(name string, capacity int) *Store {
	return &Store{
		name: name,
		lru:  NewLRUCache[string, any](capacity),
	}
}

// Name returns the cache instance name, used in log attributes.
func (s *Store) Name() string { return s.name }

// Get retrieves a cached value.
func (s *Store) Get(key string) (any, bool) { return s.lru.Get(key) }

// Put stores a value under the key, last-write-wins.
func (s *Store) Put(key string, value any) { s.lru.Put(key, value) }

// Remove evicts a single key.
func (s *Store) Remove(key string) bool { return s.lru.Remove(key) }

// Len returns the number of cached entries.
func (s *Store) Len() int { return s.lru.Len() }
