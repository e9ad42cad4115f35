//go:build unit

package directory_test

import (
	"context"
	"testing"

	"table-concierge/internal/domain/tier"
	"table-concierge/internal/domain/user"
	"table-concierge/internal/infra/directory"
	"table-concierge/internal/infra/kvstore"
	"table-concierge/internal/usecase/shared"
	"table-concierge/tests/common/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*directory.Directory, shared.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore(nil)
	return directory.New(store), store
}

func TestDirectory_MatchLocation(t *testing.T) {
	ctx := context.Background()
	dir, store := setup(t)
	dbtest.SeedLocation(t, store, "ocean-basket-sandton", "Ocean Basket Sandton")
	dbtest.SeedLocation(t, store, "spur-rosebank", "Spur Rosebank")

	tests := []struct {
		name string
		text string
		want string
	}{
		{"exact name any case", "ocean basket SANDTON", "ocean-basket-sandton"},
		{"exact id", "spur-rosebank", "spur-rosebank"},
		{"partial name", "rosebank", "spur-rosebank"},
		{"name inside sentence", "the Spur Rosebank please", "spur-rosebank"},
		{"no match", "Nando's Braamfontein", ""},
		{"blank", "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := dir.MatchLocation(ctx, tt.text)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, loc)
				return
			}
			require.NotNil(t, loc)
			assert.Equal(t, tt.want, loc.ID)
		})
	}
}

func TestDirectory_GuestName(t *testing.T) {
	ctx := context.Background()
	dir, store := setup(t)
	dbtest.SeedGuest(t, store, "+27825550100", " Thandi ")

	name, err := dir.GuestName(ctx, "+27825550100")
	require.NoError(t, err)
	assert.Equal(t, "Thandi", name)

	name, err = dir.GuestName(ctx, "+27825550199")
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestDirectory_Accounts(t *testing.T) {
	ctx := context.Background()
	dir, store := setup(t)

	staffID := dbtest.CreateTestAccount(t, store, "Staff@Example.com", "+27825550100", user.RoleOperator)
	ownerID := dbtest.CreateTestAccount(t, store, "owner@example.com", "", user.RoleViewer)
	dbtest.GrantAdminClaim(t, store, ownerID)

	t.Run("by email ignores case", func(t *testing.T) {
		acc, rec, err := dir.FindAccountByEmail(ctx, "staff@example.com")
		require.NoError(t, err)
		assert.Equal(t, staffID, acc.ID())
		assert.Equal(t, "+27825550100", rec.Phone)
		assert.False(t, acc.IsAdmin())
	})

	t.Run("admin claim promotes", func(t *testing.T) {
		acc, _, err := dir.FindAccount(ctx, ownerID)
		require.NoError(t, err)
		assert.True(t, acc.IsAdmin())
	})

	t.Run("by phone", func(t *testing.T) {
		acc, _, err := dir.FindAccountByPhone(ctx, "+27825550100")
		require.NoError(t, err)
		assert.Equal(t, staffID, acc.ID())

		_, _, err = dir.FindAccountByPhone(ctx, "+27825550199")
		assert.ErrorIs(t, err, shared.ErrDocumentNotFound)
	})

	t.Run("list", func(t *testing.T) {
		accounts, err := dir.ListAccounts(ctx)
		require.NoError(t, err)
		assert.Len(t, accounts, 2)
	})
}

func TestDirectory_Grants(t *testing.T) {
	ctx := context.Background()
	dir, store := setup(t)
	dbtest.GrantLocations(t, store, "u1", "sandton", "rosebank")

	grants, err := dir.LocationGrants(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sandton", "rosebank"}, grants)

	ok, err := dir.HasLocationGrant(ctx, "u1", "sandton")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = dir.HasLocationGrant(ctx, "u1", "menlyn")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDirectory_FindSubscription(t *testing.T) {
	ctx := context.Background()
	dir, store := setup(t)
	dbtest.SeedSubscription(t, store, "u1", tier.Professional, tier.StatusTrial)

	sub, err := dir.FindSubscription(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, tier.Professional, sub.Tier)
	assert.Equal(t, "u1", sub.UserID)

	_, err = dir.FindSubscription(ctx, "u2")
	assert.ErrorIs(t, err, shared.ErrDocumentNotFound)
}
