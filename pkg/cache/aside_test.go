package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croissant676/shopizer/pkg/cache"
)

func mapIsEmpty(m map[string]string) bool { return len(m) == 0 }

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "12_CONFIG", cache.Key(12, cache.ClassConfig, ""))
	assert.Equal(t, "12_CONTENT-en", cache.Key(12, cache.ClassContent, "en"))
	assert.Equal(t, "7_CATALOG_CATEGORIES-fr", cache.Key(7, cache.ClassCategories, "fr"))

	// Same store and language, different classes, must never collide.
	assert.NotEqual(t,
		cache.Key(1, cache.ClassContent, "en"),
		cache.Key(1, cache.ClassContentPage, "en"))
}

func TestAside_CachingDisabled(t *testing.T) {
	t.Parallel()

	store := cache.NewStore("general", 10)
	key := cache.Key(1, cache.ClassContent, "en")

	calls := 0
	load := func(ctx context.Context) (map[string]string, error) {
		calls++
		return map[string]string{"code": "value"}, nil
	}

	for range 2 {
		value, err := cache.Aside(context.Background(), store, false, key, mapIsEmpty, load)
		require.NoError(t, err)
		assert.Equal(t, "value", value["code"])
	}

	assert.Equal(t, 2, calls, "disabled caching must invoke the loader every time")
	_, ok := store.Get(key)
	assert.False(t, ok, "disabled caching must never populate the cache")
}

func TestAside_CachingEnabled(t *testing.T) {
	t.Parallel()

	t.Run("non-empty result is cached and reused", func(t *testing.T) {
		t.Parallel()

		store := cache.NewStore("general", 10)
		key := cache.Key(1, cache.ClassContent, "en")

		calls := 0
		load := func(ctx context.Context) (map[string]string, error) {
			calls++
			return map[string]string{"code": "value"}, nil
		}

		first, err := cache.Aside(context.Background(), store, true, key, mapIsEmpty, load)
		require.NoError(t, err)
		second, err := cache.Aside(context.Background(), store, true, key, mapIsEmpty, load)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls, "second call must be served from cache")
	})

	t.Run("empty result is never cached", func(t *testing.T) {
		t.Parallel()

		store := cache.NewStore("general", 10)
		key := cache.Key(1, cache.ClassContentPage, "en")

		calls := 0
		load := func(ctx context.Context) (map[string]string, error) {
			calls++
			return map[string]string{}, nil
		}

		_, err := cache.Aside(context.Background(), store, true, key, mapIsEmpty, load)
		require.NoError(t, err)

		_, ok := store.Get(key)
		assert.False(t, ok, "empty load result must not be cached")

		_, err = cache.Aside(context.Background(), store, true, key, mapIsEmpty, load)
		require.NoError(t, err)
		assert.Equal(t, 2, calls, "empty dataset is recomputed until non-empty")
	})

	t.Run("loader error is returned and nothing cached", func(t *testing.T) {
		t.Parallel()

		store := cache.NewStore("general", 10)
		key := cache.Key(1, cache.ClassConfig, "")
		loadErr := errors.New("backend down")

		_, err := cache.Aside(context.Background(), store, true, key, mapIsEmpty,
			func(ctx context.Context) (map[string]string, error) {
				return nil, loadErr
			})
		assert.ErrorIs(t, err, loadErr)

		_, ok := store.Get(key)
		assert.False(t, ok)
	})

	t.Run("keys are store and language scoped", func(t *testing.T) {
		t.Parallel()

		store := cache.NewStore("general", 10)
		load := func(v string) cache.Loader[map[string]string] {
			return func(ctx context.Context) (map[string]string, error) {
				return map[string]string{"v": v}, nil
			}
		}

		en, err := cache.Aside(context.Background(), store, true,
			cache.Key(1, cache.ClassContent, "en"), mapIsEmpty, load("english"))
		require.NoError(t, err)
		fr, err := cache.Aside(context.Background(), store, true,
			cache.Key(1, cache.ClassContent, "fr"), mapIsEmpty, load("french"))
		require.NoError(t, err)

		assert.Equal(t, "english", en["v"])
		assert.Equal(t, "french", fr["v"])
	})
}
