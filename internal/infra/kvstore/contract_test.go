//go:build unit || integration

package kvstore_test

import (
	"context"
	"sync"
	"testing"

	"table-concierge/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behaviour every Store backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) shared.Store) {
	ctx := context.Background()

	t.Run("get missing path", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "locations/nowhere")
		assert.ErrorIs(t, err, shared.ErrDocumentNotFound)
	})

	t.Run("put bumps version", func(t *testing.T) {
		s := newStore(t)
		v1, err := s.Put(ctx, "locations/a", []byte(`{"name":"A"}`))
		require.NoError(t, err)
		v2, err := s.Put(ctx, "locations/a", []byte(`{"name":"A2"}`))
		require.NoError(t, err)
		assert.Equal(t, int64(1), v1)
		assert.Equal(t, int64(2), v2)

		doc, err := s.Get(ctx, "locations/a")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"A2"}`, string(doc.Data))
		assert.Equal(t, int64(2), doc.Version)
	})

	t.Run("create only when absent", func(t *testing.T) {
		s := newStore(t)
		v, err := s.CompareAndSwap(ctx, "flows/+27820000001", []byte(`{"step":1}`), 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), v)

		_, err = s.CompareAndSwap(ctx, "flows/+27820000001", []byte(`{"step":2}`), 0)
		assert.ErrorIs(t, err, shared.ErrVersionConflict)
	})

	t.Run("swap on stale version", func(t *testing.T) {
		s := newStore(t)
		v, err := s.Put(ctx, "queues/x", []byte(`{"n":1}`))
		require.NoError(t, err)

		_, err = s.CompareAndSwap(ctx, "queues/x", []byte(`{"n":2}`), v+1)
		assert.ErrorIs(t, err, shared.ErrVersionConflict)

		next, err := s.CompareAndSwap(ctx, "queues/x", []byte(`{"n":2}`), v)
		require.NoError(t, err)
		assert.Equal(t, v+1, next)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Put(ctx, "bookings/b1", []byte(`{}`))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, "bookings/b1"))
		require.NoError(t, s.Delete(ctx, "bookings/b1"))
		_, err = s.Get(ctx, "bookings/b1")
		assert.ErrorIs(t, err, shared.ErrDocumentNotFound)
	})

	t.Run("list returns children ordered by path", func(t *testing.T) {
		s := newStore(t)
		for _, p := range []string{
			"queues/loc/2026-10-17/entries/b",
			"queues/loc/2026-10-17/entries/a",
			"queues/loc/2026-10-17/meta",
			"queues/loc-other/2026-10-17/entries/c",
		} {
			_, err := s.Put(ctx, p, []byte(`{}`))
			require.NoError(t, err)
		}

		docs, err := s.List(ctx, "queues/loc/2026-10-17/entries")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "queues/loc/2026-10-17/entries/a", docs[0].Path)
		assert.Equal(t, "queues/loc/2026-10-17/entries/b", docs[1].Path)

		docs, err = s.List(ctx, "queues/loc/")
		require.NoError(t, err)
		assert.Len(t, docs, 3)
	})

	t.Run("concurrent swaps admit one winner per version", func(t *testing.T) {
		s := newStore(t)
		v, err := s.Put(ctx, "queues/race", []byte(`{"n":0}`))
		require.NoError(t, err)

		const writers = 8
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			winners  int
			conflict int
		)
		for range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.CompareAndSwap(ctx, "queues/race", []byte(`{"n":1}`), v)
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					winners++
				} else if assert.ErrorIs(t, err, shared.ErrVersionConflict) {
					conflict++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, winners)
		assert.Equal(t, writers-1, conflict)
	})
}
