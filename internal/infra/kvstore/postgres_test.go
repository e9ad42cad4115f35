//go:build integration

package kvstore_test

import (
	"context"
	"testing"

	"table-concierge/internal/infra/kvstore"
	"table-concierge/internal/usecase/shared"
	"table-concierge/tests/common/dbtest"
	"table-concierge/tests/common/pgtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore(t *testing.T) {
	pool, _ := pgtest.NewDatabase(t)
	store := kvstore.NewPostgresStore(pool, nil)

	runStoreContract(t, func(t *testing.T) shared.Store {
		require.NoError(t, dbtest.ResetDB(context.Background(), pool))
		return store
	})
}

func TestPostgresStore_PersistsJSONB(t *testing.T) {
	ctx := context.Background()
	pool, _ := pgtest.NewDatabase(t)
	store := kvstore.NewPostgresStore(pool, nil)

	_, err := store.Put(ctx, "locations/sandton", []byte(`{"name": "Sandton", "maxCapacity": 40}`))
	require.NoError(t, err)

	var name string
	err = pool.QueryRow(ctx, `SELECT data->>'name' FROM kv_documents WHERE path = $1`, "locations/sandton").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "Sandton", name)

	doc, err := store.Get(ctx, "locations/sandton")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Sandton","maxCapacity":40}`, string(doc.Data))
	assert.False(t, doc.UpdatedAt.IsZero())
}
