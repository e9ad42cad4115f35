//go:build unit

package queue_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domqueue "table-concierge/internal/domain/queue"
	"table-concierge/internal/domain/tier"
	"table-concierge/internal/domain/user"
	"table-concierge/internal/infra/cache"
	"table-concierge/internal/infra/directory"
	"table-concierge/internal/infra/kvstore"
	"table-concierge/internal/pkg/clock"
	"table-concierge/internal/pkg/errs"
	"table-concierge/internal/usecase/access"
	"table-concierge/internal/usecase/queue"
	"table-concierge/internal/usecase/shared"
	"table-concierge/tests/common/dbtest"
	"table-concierge/tests/common/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
)

var morning = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

const (
	sandton = "ocean-basket-sandton"
	guest1  = "+27821110001"
	guest2  = "+27821110002"
	guest3  = "+27821110003"
)

type EngineTestSuite struct {
	suite.Suite
	ctx    context.Context
	clock  *clock.MockClock
	store  *kvstore.MemoryStore
	sender *testutil.RecordingSender
	engine queue.Engine
	today  string
}

func (s *EngineTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewMockClock(morning)
	s.store = kvstore.NewMemoryStore(s.clock)
	s.sender = &testutil.RecordingSender{}
	s.engine = s.newEngine(s.store)
	s.today = domqueue.DateOf(morning, time.UTC)
	dbtest.SeedLocation(s.T(), s.store, sandton, "Ocean Basket Sandton")
}

func (s *EngineTestSuite) newEngine(store shared.Store) queue.Engine {
	logger := testutil.DiscardLogger()
	dir := directory.New(store)
	gate := access.NewGate(dir, dir, store, s.clock, time.UTC, logger)
	return queue.NewEngine(store, cache.NewMemoryBucketCache(s.clock), gate, dir, s.sender, s.clock, time.UTC, 30*time.Second, logger)
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) join(locationID, guestPhone string, partySize int) *queue.JoinResult {
	s.T().Helper()
	res, err := s.engine.Join(s.ctx, queue.JoinRequest{
		LocationID: locationID,
		GuestName:  "Thandi",
		GuestPhone: guestPhone,
		PartySize:  partySize,
		Origin:     domqueue.OriginGuest,
	})
	s.Require().NoError(err)
	s.clock.Add(time.Minute)
	return res
}

func (s *EngineTestSuite) entries(locationID string) []*domqueue.Entry {
	s.T().Helper()
	out, err := shared.ListJSON[domqueue.Entry](s.ctx, s.store, shared.EntriesPrefix(locationID, s.today))
	s.Require().NoError(err)
	return out
}

func (s *EngineTestSuite) waitingPositions(locationID string) map[string]int {
	out := map[string]int{}
	for _, e := range s.entries(locationID) {
		if e.IsWaiting() {
			out[e.GuestPhone] = e.Position
		}
	}
	return out
}

func (s *EngineTestSuite) TestJoin() {
	s.Run("sequential joins get dense positions and wait estimates", func() {
		for i, g := range []string{guest1, guest2, guest3} {
			res := s.join(sandton, g, 4)
			s.Require().True(res.Success, res.Message)
			s.Equal(i+1, res.Entry.Position)
			s.Equal((i+1)*15, res.Entry.EstimatedWaitTime)
			s.Equal("Ocean Basket Sandton", res.LocationName)
		}

		meta, _, err := shared.GetJSON[domqueue.Metadata](s.ctx, s.store, shared.MetadataPath(sandton, s.today))
		s.Require().NoError(err)
		s.Equal(3, meta.CurrentCount)
		s.Equal(domqueue.BucketOpen, meta.Status)

		_, err = s.store.Get(s.ctx, shared.QueueIndexPath(s.today, sandton))
		s.NoError(err)
	})

	s.Run("unknown location name falls back to the identifier", func() {
		res := s.join("sea-point_grill", guest1, 2)
		s.Require().True(res.Success, res.Message)
		s.Equal("Sea Point Grill", res.LocationName)
	})
}

func (s *EngineTestSuite) TestJoinPeakHours() {
	s.clock.Set(time.Date(2025, 3, 14, 13, 0, 0, 0, time.UTC))

	first := s.join(sandton, guest1, 2)
	second := s.join(sandton, guest2, 2)

	s.Equal(25, first.Entry.EstimatedWaitTime)
	s.Equal(45, second.Entry.EstimatedWaitTime)
}

func (s *EngineTestSuite) TestJoinValidation() {
	for _, size := range []int{0, 21, -3} {
		res := s.join(sandton, guest1, size)
		s.False(res.Success)
		s.Equal(queue.RejectValidation, res.Reason)
	}
	res, err := s.engine.Join(s.ctx, queue.JoinRequest{LocationID: sandton, GuestPhone: guest1, PartySize: 2})
	s.Require().NoError(err)
	s.False(res.Success)
	s.Equal(queue.RejectValidation, res.Reason)

	s.Empty(s.entries(sandton))
}

func (s *EngineTestSuite) TestDuplicatePolicies() {
	s.Require().True(s.join(sandton, guest1, 2).Success)

	s.Run("same bucket is always rejected", func() {
		res := s.join(sandton, guest1, 3)
		s.False(res.Success)
		s.Equal(queue.RejectDuplicate, res.Reason)
		s.Require().NotNil(res.Existing)
		s.Equal(1, res.Existing.Position)
		s.Len(s.entries(sandton), 1)
	})

	s.Run("location scope allows another bucket", func() {
		res, err := s.engine.Join(s.ctx, queue.JoinRequest{
			LocationID: "rosebank", GuestName: "Thandi", GuestPhone: guest1, PartySize: 2,
			DuplicateScope: queue.DuplicateScopeLocation,
		})
		s.Require().NoError(err)
		s.True(res.Success)
	})

	s.Run("all-locations scope rejects a second bucket without writing", func() {
		res, err := s.engine.Join(s.ctx, queue.JoinRequest{
			LocationID: "camps-bay", GuestName: "Thandi", GuestPhone: guest1, PartySize: 2,
			DuplicateScope: queue.DuplicateScopeAllLocations,
		})
		s.Require().NoError(err)
		s.False(res.Success)
		s.Equal(queue.RejectDuplicate, res.Reason)
		s.Empty(s.entries("camps-bay"))
	})

	s.Run("a removed entry no longer counts", func() {
		active, err := s.engine.Leave(s.ctx, guest1)
		s.Require().NoError(err)
		s.Require().NotNil(active)
		active, err = s.engine.Leave(s.ctx, guest1)
		s.Require().NoError(err)
		s.Require().NotNil(active)

		res, err := s.engine.Join(s.ctx, queue.JoinRequest{
			LocationID: "camps-bay", GuestName: "Thandi", GuestPhone: guest1, PartySize: 2,
			DuplicateScope: queue.DuplicateScopeAllLocations,
		})
		s.Require().NoError(err)
		s.True(res.Success, res.Message)
	})
}

func (s *EngineTestSuite) TestJoinCapacity() {
	_, err := shared.PutJSON(s.ctx, s.store, shared.LocationPath("tiny"), shared.LocationSnapshot{ID: "tiny", Name: "Tiny", MaxCapacity: 1})
	s.Require().NoError(err)

	s.True(s.join("tiny", guest1, 2).Success)
	res := s.join("tiny", guest2, 2)
	s.False(res.Success)
	s.Equal(queue.RejectFull, res.Reason)
}

func (s *EngineTestSuite) TestAdminJoin() {
	admin := dbtest.CreateTestAccount(s.T(), s.store, "host@example.com", "", user.RoleOperator)
	dbtest.GrantLocations(s.T(), s.store, admin, sandton)

	adminJoin := func(guestPhone string) *queue.JoinResult {
		res, err := s.engine.Join(s.ctx, queue.JoinRequest{
			LocationID: sandton, GuestName: "Walk-in", GuestPhone: guestPhone, PartySize: 2,
			Origin: domqueue.OriginAdmin, AdminID: admin,
		})
		s.Require().NoError(err)
		return res
	}

	s.Run("admin join notifies the guest", func() {
		res := adminJoin(guest3)
		s.Require().True(res.Success, res.Message)
		s.Equal(domqueue.OriginAdmin, res.Entry.AddedBy.Type)
		s.Equal(admin, res.Entry.AddedBy.AdminID)

		sent := s.sender.Sent()
		s.Require().Len(sent, 1)
		s.Equal(guest3, sent[0].To)
		s.Equal(string(domqueue.NotifyJoined), sent[0].Kind)
	})

	s.Run("26th entry on the free tier requires an upgrade", func() {
		dbtest.SeedAdminEntries(s.T(), s.store, sandton, s.today, admin, 24, morning)
		before := len(s.entries(sandton))

		res := adminJoin("+27829990000")
		s.False(res.Success)
		s.True(res.RequiresUpgrade)
		s.Equal(queue.RejectAccessDenied, res.Reason)
		s.Equal(tier.FeatureQueueManagement, res.RequiredFeature)
		s.Require().NotNil(res.Usage)
		s.False(res.Usage.WithinLimit)
		s.Equal(25, res.Usage.CurrentUsage)
		s.Len(s.entries(sandton), before)
	})

	s.Run("location without a grant is denied", func() {
		res, err := s.engine.Join(s.ctx, queue.JoinRequest{
			LocationID: "rosebank", GuestName: "Walk-in", GuestPhone: guest2, PartySize: 2,
			Origin: domqueue.OriginAdmin, AdminID: admin,
		})
		s.Require().NoError(err)
		s.False(res.Success)
		s.True(res.RequiresUpgrade)
		s.Empty(s.entries("rosebank"))
	})
}

func (s *EngineTestSuite) TestChangeStatusRepairsPositions() {
	first := s.join(sandton, guest1, 2)
	s.join(sandton, guest2, 2)
	s.join(sandton, guest3, 2)

	res, err := s.engine.ChangeStatus(s.ctx, queue.StatusChange{
		LocationID: sandton,
		EntryID:    first.Entry.ID,
		Status:     domqueue.StatusRemoved,
		Reason:     "no show",
	})
	s.Require().NoError(err)
	s.Equal(domqueue.StatusRemoved, res.Entry.Status)
	s.Equal("no show", res.Entry.RemovalReason)
	s.NotNil(res.Entry.RemovedAt)
	s.Equal(2, res.Repositioned)

	s.Equal(map[string]int{guest2: 1, guest3: 2}, s.waitingPositions(sandton))
	for _, e := range s.entries(sandton) {
		if e.GuestPhone == guest2 {
			s.Equal(15, e.EstimatedWaitTime)
		}
	}

	meta, _, err := shared.GetJSON[domqueue.Metadata](s.ctx, s.store, shared.MetadataPath(sandton, s.today))
	s.Require().NoError(err)
	s.Equal(2, meta.CurrentCount)
}

func (s *EngineTestSuite) TestChangeStatusErrors() {
	entry := s.join(sandton, guest1, 2).Entry

	_, err := s.engine.ChangeStatus(s.ctx, queue.StatusChange{LocationID: sandton, EntryID: "missing", Status: domqueue.StatusSeated})
	s.ErrorIs(err, queue.ErrEntryNotFound)

	_, err = s.engine.ChangeStatus(s.ctx, queue.StatusChange{LocationID: sandton, EntryID: entry.ID, Status: domqueue.StatusWaiting})
	s.ErrorIs(err, queue.ErrInvalidStatus)
}

func (s *EngineTestSuite) TestCallNotifiesOnce() {
	entry := s.join(sandton, guest1, 2).Entry

	res, err := s.engine.CallNext(s.ctx, sandton, "admin-1")
	s.Require().NoError(err)
	s.Equal(entry.ID, res.Entry.ID)
	s.Equal(domqueue.StatusCalled, res.Entry.Status)
	s.True(res.Notified)

	stored, _, err := shared.GetJSON[domqueue.Entry](s.ctx, s.store, shared.EntryPath(sandton, s.today, entry.ID))
	s.Require().NoError(err)
	s.True(stored.Notified(domqueue.NotifyCalled))
	s.NotNil(stored.CalledAt)

	res, err = s.engine.ChangeStatus(s.ctx, queue.StatusChange{LocationID: sandton, EntryID: entry.ID, Status: domqueue.StatusCalled})
	s.Require().NoError(err)
	s.False(res.Notified)
	s.Len(s.sender.Sent(), 1)

	_, err = s.engine.CallNext(s.ctx, sandton, "admin-1")
	s.ErrorIs(err, queue.ErrQueueEmpty)
}

func (s *EngineTestSuite) TestCallSurvivesDeliveryFailure() {
	entry := s.join(sandton, guest1, 2).Entry
	s.sender.Err = errors.New("gateway down")

	res, err := s.engine.ChangeStatus(s.ctx, queue.StatusChange{LocationID: sandton, EntryID: entry.ID, Status: domqueue.StatusCalled})
	s.Require().NoError(err)
	s.False(res.Notified)
	s.Equal(domqueue.StatusCalled, res.Entry.Status)
}

func (s *EngineTestSuite) TestRecalculateIsIdempotent() {
	for i, pos := range []int{3, 7, 7} {
		e := &domqueue.Entry{
			ID:         []string{"a", "b", "c"}[i],
			LocationID: sandton,
			Date:       s.today,
			Position:   pos,
			GuestName:  "Guest",
			GuestPhone: []string{guest1, guest2, guest3}[i],
			PartySize:  2,
			Status:     domqueue.StatusWaiting,
			AddedAt:    morning.Add(time.Duration(i) * time.Minute),
			AddedBy:    domqueue.Origin{Type: domqueue.OriginGuest},
		}
		_, err := shared.PutJSON(s.ctx, s.store, shared.EntryPath(sandton, s.today, e.ID), e)
		s.Require().NoError(err)
	}

	s.Require().NoError(s.engine.Recalculate(s.ctx, sandton, s.today))
	first := s.entries(sandton)
	s.Equal(map[string]int{guest1: 1, guest2: 2, guest3: 3}, s.waitingPositions(sandton))

	s.Require().NoError(s.engine.Recalculate(s.ctx, sandton, s.today))
	second := s.entries(sandton)

	if diff := cmp.Diff(first, second); diff != "" {
		s.Failf("recalculate changed assignments", "diff (-first +second):\n%s", diff)
	}
}

func (s *EngineTestSuite) TestFindActive() {
	s.Require().True(s.join("rosebank", guest2, 2).Success)

	found, err := s.engine.FindActive(s.ctx, guest2)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal("rosebank", found.LocationID)

	found, err = s.engine.FindActive(s.ctx, guest1)
	s.Require().NoError(err)
	s.Nil(found)

	// yesterday's buckets are not scanned
	s.clock.Add(24 * time.Hour)
	found, err = s.engine.FindActive(s.ctx, guest2)
	s.Require().NoError(err)
	s.Nil(found)
}

func (s *EngineTestSuite) TestJoinRetryAfterIndexFailure() {
	failing := &testutil.FailingStore{Store: s.store, FailPrefixes: []string{"queue-index"}, Err: errors.New("blip")}
	engine := s.newEngine(failing)

	req := queue.JoinRequest{
		LocationID: "rosebank", GuestName: "Thandi", GuestPhone: guest1, PartySize: 2,
		DuplicateScope: queue.DuplicateScopeAllLocations,
	}
	_, err := engine.Join(s.ctx, req)
	s.Require().Error(err)
	s.True(errs.Is(err, errs.ErrTransientStore))

	failing.FailPrefixes = nil
	res, err := engine.Join(s.ctx, req)
	s.Require().NoError(err)
	s.Require().True(res.Success, res.Message)

	found, err := s.engine.FindActive(s.ctx, guest1)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal("rosebank", found.LocationID)

	req.LocationID = sandton
	res, err = s.engine.Join(s.ctx, req)
	s.Require().NoError(err)
	s.False(res.Success)
	s.Equal(queue.RejectDuplicate, res.Reason)
	s.Empty(s.entries(sandton))
}

func (s *EngineTestSuite) TestJoinRestoresMissingIndex() {
	s.Require().True(s.join("rosebank", guest1, 2).Success)
	s.Require().NoError(s.store.Delete(s.ctx, shared.QueueIndexPath(s.today, "rosebank")))

	s.Require().True(s.join("rosebank", guest2, 2).Success)

	found, err := s.engine.FindActive(s.ctx, guest1)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal("rosebank", found.LocationID)
}

func (s *EngineTestSuite) TestStatus() {
	s.join(sandton, guest1, 2)

	res, err := s.engine.Status(s.ctx, queue.StatusQuery{LocationID: sandton})
	s.Require().NoError(err)
	s.False(res.FromCache)
	s.Equal(1, res.Summary.Waiting)
	s.Require().NotNil(res.Metadata)
	s.Equal("Ocean Basket Sandton", res.Metadata.LocationName)

	res, err = s.engine.Status(s.ctx, queue.StatusQuery{LocationID: sandton})
	s.Require().NoError(err)
	s.True(res.FromCache)

	s.join(sandton, guest2, 2)
	res, err = s.engine.Status(s.ctx, queue.StatusQuery{LocationID: sandton})
	s.Require().NoError(err)
	s.False(res.FromCache)
	s.Equal(2, res.Summary.Waiting)

	s.Run("empty bucket", func() {
		res, err := s.engine.Status(s.ctx, queue.StatusQuery{LocationID: "nowhere"})
		s.Require().NoError(err)
		s.Nil(res.Metadata)
		s.Empty(res.Entries)
	})

	s.Run("caller without location access is denied", func() {
		uid := dbtest.CreateTestAccount(s.T(), s.store, "viewer@example.com", "", user.RoleViewer)
		res, err := s.engine.Status(s.ctx, queue.StatusQuery{LocationID: sandton, CallerID: uid})
		s.Require().NoError(err)
		s.Require().NotNil(res.Denial)
		s.Equal(access.ReasonLocation, res.Denial.Reason)
		s.Empty(res.Entries)
	})

	s.Run("malformed date", func() {
		_, err := s.engine.Status(s.ctx, queue.StatusQuery{LocationID: sandton, Date: "14/03/2025"})
		s.Error(err)
	})
}

func (s *EngineTestSuite) TestStatusHistoryWindow() {
	uid := dbtest.CreateTestAccount(s.T(), s.store, "host@example.com", "", user.RoleOperator)
	dbtest.GrantLocations(s.T(), s.store, uid, sandton)

	s.Run("free plan reads the last seven days", func() {
		res, err := s.engine.Status(s.ctx, queue.StatusQuery{LocationID: sandton, Date: "2025-03-07", CallerID: uid})
		s.Require().NoError(err)
		s.Nil(res.Denial)
	})

	s.Run("older buckets require an upgrade", func() {
		res, err := s.engine.Status(s.ctx, queue.StatusQuery{LocationID: sandton, Date: "2025-03-06", CallerID: uid})
		s.Require().NoError(err)
		s.Require().NotNil(res.Denial)
		s.Equal(access.ReasonHistory, res.Denial.Reason)
		s.Equal(tier.Starter, res.Denial.RequiredTier)
		s.Require().NotNil(res.Denial.Usage)
		s.Equal(8, res.Denial.Usage.CurrentUsage)
		s.Equal(tier.Quota(7), res.Denial.Usage.Limit)
	})

	s.Run("ungated reads are not limited", func() {
		res, err := s.engine.Status(s.ctx, queue.StatusQuery{LocationID: sandton, Date: "2024-01-01"})
		s.Require().NoError(err)
		s.Nil(res.Denial)
	})

	s.Run("starter plan extends the window", func() {
		dbtest.SeedSubscription(s.T(), s.store, uid, tier.Starter, tier.StatusActive)
		res, err := s.engine.Status(s.ctx, queue.StatusQuery{LocationID: sandton, Date: "2025-03-06", CallerID: uid})
		s.Require().NoError(err)
		s.Nil(res.Denial)
	})
}
