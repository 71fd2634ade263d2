package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croissant676/shopizer/pkg/session"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		s := session.NewSession("tok", nil, time.Minute)
		s.Set("k", "v")

		require.NoError(t, store.Create(ctx, s))

		got, err := store.Get(ctx, "tok")
		require.NoError(t, err)
		v, _ := got.GetString("k")
		assert.Equal(t, "v", v)
	})

	t.Run("returns copies, not aliases", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		s := session.NewSession("tok", nil, time.Minute)
		require.NoError(t, store.Create(ctx, s))

		got, err := store.Get(ctx, "tok")
		require.NoError(t, err)
		got.Set("k", "mutated")

		again, err := store.Get(ctx, "tok")
		require.NoError(t, err)
		_, ok := again.Get("k")
		assert.False(t, ok, "mutation of a returned session must not leak into the store")
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("expired session is evicted on read", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		s := session.NewSession("tok", nil, -time.Minute)
		require.NoError(t, store.Create(ctx, s))

		_, err := store.Get(ctx, "tok")
		assert.ErrorIs(t, err, session.ErrSessionExpired)

		_, err = store.Get(ctx, "tok")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("update", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		s := session.NewSession("tok", nil, time.Minute)
		require.NoError(t, store.Create(ctx, s))

		s.Set("k", "v2")
		require.NoError(t, store.Update(ctx, s))

		got, err := store.Get(ctx, "tok")
		require.NoError(t, err)
		v, _ := got.GetString("k")
		assert.Equal(t, "v2", v)
	})

	t.Run("update missing", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		s := session.NewSession("tok", nil, time.Minute)
		assert.ErrorIs(t, store.Update(ctx, s), session.ErrSessionNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		s := session.NewSession("tok", nil, time.Minute)
		require.NoError(t, store.Create(ctx, s))
		require.NoError(t, store.Delete(ctx, "tok"))

		_, err := store.Get(ctx, "tok")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("delete expired sweep", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		require.NoError(t, store.Create(ctx, session.NewSession("dead", nil, -time.Minute)))
		require.NoError(t, store.Create(ctx, session.NewSession("live", nil, time.Minute)))

		require.NoError(t, store.DeleteExpired(ctx))

		_, err := store.Get(ctx, "dead")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
		_, err = store.Get(ctx, "live")
		assert.NoError(t, err)
	})
}
