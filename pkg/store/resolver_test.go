package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croissant676/shopizer/pkg/store"
)

type fakeSession struct {
	data map[string]any
}

func newFakeSession() *fakeSession { return &fakeSession{data: make(map[string]any)} }

func (s *fakeSession) GetString(key string) (string, bool) {
	v, ok := s.data[key].(string)
	return v, ok
}

func (s *fakeSession) Set(key string, value any) { s.data[key] = value }

type countingProvider struct {
	stores map[string]*store.Store
	calls  int
}

func (p *countingProvider) GetByCode(ctx context.Context, code string) (*store.Store, error) {
	p.calls++
	if st, ok := p.stores[code]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, store.ErrStoreNotFound
}

func testProvider() *countingProvider {
	return &countingProvider{stores: map[string]*store.Store{
		"DEFAULT": {ID: 1, Code: "DEFAULT", Name: "Default store", DefaultLanguage: "en", Country: "CA", UseCache: true},
		"A":       {ID: 2, Code: "A", Name: "Store A", DefaultLanguage: "en", Country: "US", StoreTemplate: "modern"},
		"B":       {ID: 3, Code: "B", Name: "Store B", DefaultLanguage: "fr", Country: "FR"},
	}}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("request parameter switches the session store", func(t *testing.T) {
		t.Parallel()

		r := store.NewResolver(testProvider())
		sess := newFakeSession()
		sess.Set(store.SessionKeyCode, "A")

		st, err := r.Resolve(ctx, sess, "B")
		require.NoError(t, err)
		assert.Equal(t, "B", st.Code)

		code, ok := sess.GetString(store.SessionKeyCode)
		assert.True(t, ok)
		assert.Equal(t, "B", code, "session affinity must follow the switch")
	})

	t.Run("session store is kept without a request parameter", func(t *testing.T) {
		t.Parallel()

		r := store.NewResolver(testProvider())
		sess := newFakeSession()
		sess.Set(store.SessionKeyCode, "A")

		st, err := r.Resolve(ctx, sess, "")
		require.NoError(t, err)
		assert.Equal(t, "A", st.Code)
	})

	t.Run("falls back to the default store", func(t *testing.T) {
		t.Parallel()

		r := store.NewResolver(testProvider())
		sess := newFakeSession()

		st, err := r.Resolve(ctx, sess, "")
		require.NoError(t, err)
		assert.Equal(t, store.DefaultStoreCode, st.Code)

		code, _ := sess.GetString(store.SessionKeyCode)
		assert.Equal(t, store.DefaultStoreCode, code)
	})

	t.Run("unknown request code falls through to default", func(t *testing.T) {
		t.Parallel()

		r := store.NewResolver(testProvider())
		sess := newFakeSession()

		st, err := r.Resolve(ctx, sess, "NOPE")
		require.NoError(t, err)
		assert.Equal(t, store.DefaultStoreCode, st.Code)
	})

	t.Run("missing default store is the hard failure", func(t *testing.T) {
		t.Parallel()

		r := store.NewResolver(&countingProvider{stores: map[string]*store.Store{}})
		sess := newFakeSession()

		_, err := r.Resolve(ctx, sess, "")
		assert.ErrorIs(t, err, store.ErrNoStoreResolved)
	})

	t.Run("blank template is backfilled", func(t *testing.T) {
		t.Parallel()

		r := store.NewResolver(testProvider())
		sess := newFakeSession()

		st, err := r.Resolve(ctx, sess, "B")
		require.NoError(t, err)
		assert.Equal(t, store.DefaultTemplate, st.StoreTemplate)

		st, err = r.Resolve(ctx, sess, "A")
		require.NoError(t, err)
		assert.Equal(t, "modern", st.StoreTemplate, "configured template must be preserved")
	})

	t.Run("template backfill does not leak into the cache", func(t *testing.T) {
		t.Parallel()

		p := store.NewCachedProvider(testProvider(), 10)
		r := store.NewResolver(p)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				st, err := r.Resolve(ctx, newFakeSession(), "B")
				assert.NoError(t, err)
				assert.Equal(t, store.DefaultTemplate, st.StoreTemplate)
			}()
		}
		wg.Wait()

		cached, err := p.GetByCode(ctx, "B")
		require.NoError(t, err)
		assert.Empty(t, cached.StoreTemplate, "cached store must keep its blank template")
	})

	t.Run("custom default code option", func(t *testing.T) {
		t.Parallel()

		r := store.NewResolver(testProvider(), store.WithDefaultCode("A"))
		sess := newFakeSession()

		st, err := r.Resolve(ctx, sess, "")
		require.NoError(t, err)
		assert.Equal(t, "A", st.Code)
	})
}

func TestCachedProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("second lookup is served from cache", func(t *testing.T) {
		t.Parallel()

		inner := testProvider()
		p := store.NewCachedProvider(inner, 10)

		_, err := p.GetByCode(ctx, "A")
		require.NoError(t, err)
		_, err = p.GetByCode(ctx, "A")
		require.NoError(t, err)

		assert.Equal(t, 1, inner.calls)
	})

	t.Run("misses are not cached", func(t *testing.T) {
		t.Parallel()

		inner := testProvider()
		p := store.NewCachedProvider(inner, 10)

		_, err := p.GetByCode(ctx, "NOPE")
		assert.ErrorIs(t, err, store.ErrStoreNotFound)
		_, err = p.GetByCode(ctx, "NOPE")
		assert.True(t, errors.Is(err, store.ErrStoreNotFound))
		assert.Equal(t, 2, inner.calls)
	})

	t.Run("returned store is a copy, not the cached entry", func(t *testing.T) {
		t.Parallel()

		p := store.NewCachedProvider(testProvider(), 10)

		st, err := p.GetByCode(ctx, "B")
		require.NoError(t, err)
		st.StoreTemplate = "mutated"

		again, err := p.GetByCode(ctx, "B")
		require.NoError(t, err)
		assert.Empty(t, again.StoreTemplate, "caller mutation must not reach the cache")
	})

	t.Run("invalidate forces a reload", func(t *testing.T) {
		t.Parallel()

		inner := testProvider()
		p := store.NewCachedProvider(inner, 10)

		_, err := p.GetByCode(ctx, "A")
		require.NoError(t, err)
		p.Invalidate("A")
		_, err = p.GetByCode(ctx, "A")
		require.NoError(t, err)

		assert.Equal(t, 2, inner.calls)
	})
}
