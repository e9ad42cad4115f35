//go:build unit

package access_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"table-concierge/internal/domain/queue"
	"table-concierge/internal/domain/tier"
	"table-concierge/internal/domain/user"
	"table-concierge/internal/infra/directory"
	"table-concierge/internal/infra/kvstore"
	"table-concierge/internal/pkg/clock"
	"table-concierge/internal/usecase/access"
	"table-concierge/internal/usecase/shared"
	"table-concierge/tests/common/dbtest"
	"table-concierge/tests/common/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

type GateTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *kvstore.MemoryStore
	clock *clock.MockClock
	gate  access.Gate
}

func (s *GateTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewMockClock(fixedNow)
	s.store = kvstore.NewMemoryStore(s.clock)
	s.gate = newGate(s.store, s.clock)
}

func newGate(store shared.Store, clk clock.Clock) access.Gate {
	dir := directory.New(store)
	return access.NewGate(dir, dir, store, clk, time.UTC, testutil.DiscardLogger())
}

func TestGateSuite(t *testing.T) {
	suite.Run(t, new(GateTestSuite))
}

func (s *GateTestSuite) TestSubscription() {
	s.Run("missing record defaults to free/active", func() {
		sub := s.gate.Subscription(s.ctx, "nobody")
		s.Equal(tier.Free, sub.Tier)
		s.Equal(tier.StatusActive, sub.Status)
	})

	s.Run("stored record is returned", func() {
		dbtest.SeedSubscription(s.T(), s.store, "u1", tier.Professional, tier.StatusTrial)
		sub := s.gate.Subscription(s.ctx, "u1")
		s.Equal(tier.Professional, sub.Tier)
		s.Equal(tier.StatusTrial, sub.Status)
	})

	s.Run("read failure falls back to the default", func() {
		failing := &testutil.FailingStore{Store: s.store, FailPrefixes: []string{"subscriptions"}, Err: errors.New("connection reset")}
		g := newGate(failing, s.clock)
		sub := g.Subscription(s.ctx, "u1")
		s.Equal(tier.Free, sub.Tier)
		s.Equal(tier.StatusActive, sub.Status)
	})
}

func (s *GateTestSuite) TestHasFeature() {
	dbtest.SeedSubscription(s.T(), s.store, "starter", tier.Starter, tier.StatusActive)
	dbtest.SeedSubscription(s.T(), s.store, "trial", tier.Professional, tier.StatusTrial)
	dbtest.SeedSubscription(s.T(), s.store, "lapsed", tier.Enterprise, tier.StatusPastDue)
	_, err := shared.PutJSON(s.ctx, s.store, shared.SubscriptionPath("override"), tier.Subscription{
		Tier:             tier.Free,
		Status:           tier.StatusActive,
		FeatureOverrides: map[tier.Feature]bool{tier.FeatureAPIAccess: true, tier.FeatureQueueManagement: false},
	})
	s.Require().NoError(err)

	cases := []struct {
		name    string
		user    string
		feature tier.Feature
		want    bool
	}{
		{"free default has queue management", "nobody", tier.FeatureQueueManagement, true},
		{"free default lacks analytics", "nobody", tier.FeatureQueueAnalytics, false},
		{"starter has analytics", "starter", tier.FeatureQueueAnalytics, true},
		{"starter lacks multi location", "starter", tier.FeatureMultiLocation, false},
		{"trial counts as entitled", "trial", tier.FeatureMultiLocation, true},
		{"past due denies everything", "lapsed", tier.FeatureQueueManagement, false},
		{"override grants above tier", "override", tier.FeatureAPIAccess, true},
		{"override revokes below tier", "override", tier.FeatureQueueManagement, false},
		{"unknown feature is denied", "starter", tier.Feature("teleport"), false},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, s.gate.HasFeature(s.ctx, tc.user, tc.feature))
		})
	}
}

func TestHasFeatureFailsClosed(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(fixedNow)
	store := kvstore.NewMemoryStore(clk)
	failing := &testutil.FailingStore{Store: store, FailPrefixes: []string{"subscriptions"}, Err: errors.New("timeout")}
	gate := newGate(failing, clk)

	assert.False(t, gate.HasFeature(ctx, "u1", tier.FeatureQueueManagement))
	// the read path alone still answers with a usable default
	assert.Equal(t, tier.Free, gate.Subscription(ctx, "u1").Tier)
}

func (s *GateTestSuite) TestLimit() {
	dbtest.SeedSubscription(s.T(), s.store, "ent", tier.Enterprise, tier.StatusActive)
	_, err := shared.PutJSON(s.ctx, s.store, shared.SubscriptionPath("custom"), tier.Subscription{
		Tier:           tier.Starter,
		Status:         tier.StatusActive,
		LimitOverrides: map[tier.LimitID]int{tier.LimitQueueEntriesPerDay: 40},
	})
	s.Require().NoError(err)

	s.Equal(tier.Quota(25), s.gate.Limit(s.ctx, "nobody", tier.LimitQueueEntriesPerDay))
	s.Equal(tier.Quota(1), s.gate.Limit(s.ctx, "nobody", tier.LimitQueueLocations))
	s.True(s.gate.Limit(s.ctx, "ent", tier.LimitQueueLocations).IsUnlimited())
	s.Equal(tier.Quota(40), s.gate.Limit(s.ctx, "custom", tier.LimitQueueEntriesPerDay))
	s.Equal(tier.Quota(2), s.gate.Limit(s.ctx, "custom", tier.LimitQueueLocations))
}

func (s *GateTestSuite) TestLocationAccess() {
	s.Run("explicit grant within limit", func() {
		uid := dbtest.CreateTestAccount(s.T(), s.store, "op@example.com", "", user.RoleOperator)
		dbtest.GrantLocations(s.T(), s.store, uid, "sandton")
		s.True(s.gate.LocationAccess(s.ctx, uid, "sandton"))
		s.False(s.gate.LocationAccess(s.ctx, uid, "rosebank"))
	})

	s.Run("admin bypasses the grant check", func() {
		uid := dbtest.CreateTestAccount(s.T(), s.store, "boss@example.com", "", user.RoleAdmin)
		s.True(s.gate.LocationAccess(s.ctx, uid, "anywhere"))
	})

	s.Run("exceeding the location limit revokes every grant", func() {
		uid := dbtest.CreateTestAccount(s.T(), s.store, "multi@example.com", "", user.RoleOperator)
		dbtest.GrantLocations(s.T(), s.store, uid, "sandton")
		s.True(s.gate.LocationAccess(s.ctx, uid, "sandton"))

		dbtest.GrantLocations(s.T(), s.store, uid, "rosebank")
		s.False(s.gate.LocationAccess(s.ctx, uid, "sandton"))
		s.False(s.gate.LocationAccess(s.ctx, uid, "rosebank"))

		dbtest.SeedSubscription(s.T(), s.store, uid, tier.Starter, tier.StatusActive)
		s.True(s.gate.LocationAccess(s.ctx, uid, "sandton"))
		s.True(s.gate.LocationAccess(s.ctx, uid, "rosebank"))
	})
}

func (s *GateTestSuite) TestDailyEntryQuota() {
	today := queue.DateOf(fixedNow, time.UTC)

	s.Run("below the free limit", func() {
		dbtest.SeedAdminEntries(s.T(), s.store, "loc-a", today, "admin-1", 24, fixedNow)
		usage, err := s.gate.DailyEntryQuota(s.ctx, "admin-1", "loc-a")
		s.Require().NoError(err)
		s.True(usage.WithinLimit)
		s.Equal(24, usage.CurrentUsage)
		s.Equal(tier.Quota(25), usage.Limit)
	})

	s.Run("at the free limit the next entry is refused", func() {
		dbtest.SeedAdminEntries(s.T(), s.store, "loc-b", today, "admin-1", 25, fixedNow)
		usage, err := s.gate.DailyEntryQuota(s.ctx, "admin-1", "loc-b")
		s.Require().NoError(err)
		s.False(usage.WithinLimit)
		s.Equal(25, usage.CurrentUsage)
	})

	s.Run("only counts the caller's admin entries", func() {
		dbtest.SeedAdminEntries(s.T(), s.store, "loc-c", today, "admin-2", 30, fixedNow)
		usage, err := s.gate.DailyEntryQuota(s.ctx, "admin-1", "loc-c")
		s.Require().NoError(err)
		s.True(usage.WithinLimit)
		s.Equal(0, usage.CurrentUsage)
	})

	s.Run("unlimited tier short-circuits", func() {
		dbtest.SeedSubscription(s.T(), s.store, "admin-3", tier.Enterprise, tier.StatusActive)
		dbtest.SeedAdminEntries(s.T(), s.store, "loc-d", today, "admin-3", 600, fixedNow)
		usage, err := s.gate.DailyEntryQuota(s.ctx, "admin-3", "loc-d")
		s.Require().NoError(err)
		s.True(usage.WithinLimit)
		s.True(usage.Limit.IsUnlimited())
	})
}

func (s *GateTestSuite) TestIsAdmin() {
	dbtest.CreateTestAccount(s.T(), s.store, "admin@example.com", "+27820000001", user.RoleAdmin)
	dbtest.CreateTestAccount(s.T(), s.store, "viewer@example.com", "+27820000002", user.RoleViewer)
	claimed := dbtest.CreateTestAccount(s.T(), s.store, "claimed@example.com", "+27820000003", user.RoleViewer)
	dbtest.GrantAdminClaim(s.T(), s.store, claimed)

	s.True(s.gate.IsAdmin(s.ctx, "whatsapp:+27 82 000 0001"))
	s.False(s.gate.IsAdmin(s.ctx, "+27820000002"))
	s.True(s.gate.IsAdmin(s.ctx, "+27820000003"))
	s.False(s.gate.IsAdmin(s.ctx, "+27829999999"))
}

func TestAuthorizeQueueJoin(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(fixedNow)
	store := kvstore.NewMemoryStore(clk)
	gate := newGate(store, clk)
	today := queue.DateOf(fixedNow, time.UTC)

	uid := dbtest.CreateTestAccount(t, store, "op@example.com", "", user.RoleOperator)
	dbtest.GrantLocations(t, store, uid, "sandton")

	denial, err := gate.AuthorizeQueueJoin(ctx, uid, "sandton")
	require.NoError(t, err)
	assert.Nil(t, denial)

	denial, err = gate.AuthorizeQueueJoin(ctx, uid, "rosebank")
	require.NoError(t, err)
	require.NotNil(t, denial)
	assert.Equal(t, access.ReasonLocation, denial.Reason)

	dbtest.SeedAdminEntries(t, store, "sandton", today, uid, 25, fixedNow)
	denial, err = gate.AuthorizeQueueJoin(ctx, uid, "sandton")
	require.NoError(t, err)
	require.NotNil(t, denial)
	assert.Equal(t, access.ReasonQuota, denial.Reason)
	require.NotNil(t, denial.Usage)
	assert.False(t, denial.Usage.WithinLimit)
	assert.Equal(t, 25, denial.Usage.CurrentUsage)

	dbtest.SeedSubscription(t, store, uid, tier.Free, tier.StatusCancelled)
	denial, err = gate.AuthorizeQueueJoin(ctx, uid, "sandton")
	require.NoError(t, err)
	require.NotNil(t, denial)
	assert.Equal(t, access.ReasonFeature, denial.Reason)
	assert.Equal(t, tier.FeatureQueueManagement, denial.RequiredFeature)
}
