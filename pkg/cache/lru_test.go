package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/croissant676/shopizer/pkg/cache"
)

func TestLRUCache_Basic(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		c.Put("b", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)

		val, ok = c.Get("b")
		assert.True(t, ok)
		assert.Equal(t, 2, val)

		assert.Equal(t, 2, c.Len())
	})

	t.Run("get missing key", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		val, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Zero(t, val)
	})

	t.Run("put replaces existing value", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		c.Put("a", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, val)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("remove", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		assert.True(t, c.Remove("a"))
		assert.False(t, c.Remove("a"))

		_, ok := c.Get("a")
		assert.False(t, ok)
	})

	t.Run("clear", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		c.Put("b", 2)
		c.Clear()

		assert.Equal(t, 0, c.Len())
		_, ok := c.Get("a")
		assert.False(t, ok)
	})

	t.Run("panics on non-positive capacity", func(t *testing.T) {
		assert.Panics(t, func() { cache.NewLRUCache[string, int](0) })
	})
}

func TestLRUCache_Eviction(t *testing.T) {
	t.Run("evicts least recently used", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3)
		c.Put("d", 4)

		_, ok := c.Get("a")
		assert.False(t, ok, "a should have been evicted")

		for _, key := range []string{"b", "c", "d"} {
			_, ok := c.Get(key)
			assert.True(t, ok, "%s should still be cached", key)
		}
	})

	t.Run("get refreshes recency", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](2)

		c.Put("a", 1)
		c.Put("b", 2)

		// Touch "a" so "b" becomes the eviction candidate.
		_, _ = c.Get("a")
		c.Put("c", 3)

		_, ok := c.Get("a")
		assert.True(t, ok)
		_, ok = c.Get("b")
		assert.False(t, ok)
	})
}

func TestLRUCache_Concurrent(t *testing.T) {
	c := cache.NewLRUCache[int, int](100)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 100 {
				c.Put(j, n)
				c.Get(j)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, c.Len())
}
