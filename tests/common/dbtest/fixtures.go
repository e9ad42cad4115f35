//go:build unit || integration

package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"table-concierge/internal/domain/queue"
	"table-concierge/internal/domain/tier"
	"table-concierge/internal/domain/user"
	"table-concierge/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func SeedLocation(t *testing.T, s shared.Store, id, name string) {
	t.Helper()
	_, err := shared.PutJSON(context.Background(), s, shared.LocationPath(id), shared.LocationSnapshot{ID: id, Name: name})
	require.NoError(t, err)
}

func SeedGuest(t *testing.T, s shared.Store, guestPhone, name string) {
	t.Helper()
	_, err := shared.PutJSON(context.Background(), s, shared.GuestPath(guestPhone), shared.GuestSnapshot{Phone: guestPhone, Name: name})
	require.NoError(t, err)
}

func SeedSubscription(t *testing.T, s shared.Store, userID string, tr tier.Tier, status tier.Status) {
	t.Helper()
	sub := tier.Subscription{UserID: userID, Tier: tr, Status: status}
	_, err := shared.PutJSON(context.Background(), s, shared.SubscriptionPath(userID), sub)
	require.NoError(t, err)
}

// CreateTestAccount stores a subscriber account and returns its id.
func CreateTestAccount(t *testing.T, s shared.Store, email, guestPhone string, role user.Role) string {
	t.Helper()
	id := uuid.NewString()
	rec := shared.AccountRecord{
		UserID: id,
		Email:  email,
		Phone:  guestPhone,
		Role:   role,
		Status: user.AccountActive,
	}
	_, err := shared.PutJSON(context.Background(), s, shared.AccountPath(id), rec)
	require.NoError(t, err)
	return id
}

const TestPassword = "password123"

// CreateLoginAccount stores an account whose password is TestPassword.
func CreateLoginAccount(t *testing.T, s shared.Store, email string, role user.Role, status user.AccountStatus) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)
	id := uuid.NewString()
	rec := shared.AccountRecord{
		UserID:       id,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
	}
	_, err = shared.PutJSON(context.Background(), s, shared.AccountPath(id), rec)
	require.NoError(t, err)
	return id
}

func GrantAdminClaim(t *testing.T, s shared.Store, userID string) {
	t.Helper()
	_, err := shared.PutJSON(context.Background(), s, shared.AdminClaimPath(userID), map[string]bool{"admin": true})
	require.NoError(t, err)
}

func GrantLocations(t *testing.T, s shared.Store, userID string, locationIDs ...string) {
	t.Helper()
	for _, loc := range locationIDs {
		_, err := shared.PutJSON(context.Background(), s, shared.UserLocationPath(userID, loc),
			shared.GrantRecord{LocationID: loc, GrantedAt: time.Now()})
		require.NoError(t, err)
	}
}

// SeedAdminEntries writes n waiting entries added by adminID into today's bucket.
func SeedAdminEntries(t *testing.T, s shared.Store, locationID, date, adminID string, n int, start time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		e := &queue.Entry{
			ID:         uuid.NewString(),
			LocationID: locationID,
			Date:       date,
			Position:   i + 1,
			GuestName:  fmt.Sprintf("Guest %d", i+1),
			GuestPhone: fmt.Sprintf("+2782000%04d", i),
			PartySize:  2,
			Status:     queue.StatusWaiting,
			AddedAt:    start.Add(time.Duration(i) * time.Minute),
			UpdatedAt:  start.Add(time.Duration(i) * time.Minute),
			AddedBy:    queue.Origin{Type: queue.OriginAdmin, AdminID: adminID},
		}
		_, err := shared.PutJSON(context.Background(), s, shared.EntryPath(locationID, date, e.ID), e)
		require.NoError(t, err)
	}
}

// ResetDB empties the document table between integration tests.
func ResetDB(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := pool.Exec(ctx, "TRUNCATE kv_documents")
	return err
}
