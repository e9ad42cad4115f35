// Package queue runs the per-location, per-day FIFO waiting lists.
//
// The backing store has no cross-record transactions. Joins read the bucket
// and then write a new entry, so two joins racing on one bucket can briefly
// share a position. Every non-waiting status change runs Recalculate, which
// restores dense positions; until then the race window stays open.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domqueue "table-concierge/internal/domain/queue"
	"table-concierge/internal/domain/tier"
	"table-concierge/internal/pkg/clock"
	"table-concierge/internal/pkg/errs"
	"table-concierge/internal/pkg/phone"
	"table-concierge/internal/pkg/textnorm"
	"table-concierge/internal/usecase/access"
	"table-concierge/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=engine.go -destination=../../../tests/mock/queue/engine.go -package=queuemock
type Engine interface {
	Join(ctx context.Context, req JoinRequest) (*JoinResult, error)
	ChangeStatus(ctx context.Context, req StatusChange) (*StatusChangeResult, error)
	Recalculate(ctx context.Context, locationID, date string) error
	// FindActive returns nil when the guest has no waiting entry today.
	FindActive(ctx context.Context, guestPhone string) (*domqueue.Entry, error)
	Status(ctx context.Context, q StatusQuery) (*StatusResult, error)
	// CallNext calls the first waiting entry of today's bucket.
	CallNext(ctx context.Context, locationID, adminID string) (*StatusChangeResult, error)
	// Leave removes the guest's active entry; nil result when there is none.
	Leave(ctx context.Context, guestPhone string) (*StatusChangeResult, error)
	Today() string
}

type engineImpl struct {
	store     shared.Store
	cache     shared.BucketCache
	gate      access.Gate
	locations shared.LocationDirectory
	sender    shared.MessageSender
	clock     clock.Clock
	loc       *time.Location
	cacheTTL  time.Duration
	logger    *slog.Logger
}

func NewEngine(
	store shared.Store,
	cache shared.BucketCache,
	gate access.Gate,
	locations shared.LocationDirectory,
	sender shared.MessageSender,
	clk clock.Clock,
	loc *time.Location,
	cacheTTL time.Duration,
	logger *slog.Logger,
) Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &engineImpl{
		store:     store,
		cache:     cache,
		gate:      gate,
		locations: locations,
		sender:    sender,
		clock:     clk,
		loc:       loc,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func (e *engineImpl) now() time.Time {
	return e.clock.Now().In(e.loc)
}

func (e *engineImpl) Today() string {
	return domqueue.DateOf(e.clock.Now(), e.loc)
}

func cacheKey(locationID, date string) string {
	return locationID + ":" + date
}

func storeErr(err error, msg string) error {
	if errs.Is(err, errs.ErrTransientStore) {
		return errs.Wrap(err, msg)
	}
	return errs.Mark(errs.Wrap(err, msg), errs.ErrTransientStore)
}

func (e *engineImpl) Join(ctx context.Context, req JoinRequest) (*JoinResult, error) {
	req.LocationID = strings.TrimSpace(req.LocationID)
	if req.Origin == "" {
		req.Origin = domqueue.OriginGuest
	}
	origin := domqueue.Origin{Type: req.Origin, AdminID: req.AdminID}
	if err := domqueue.ValidateJoin(req.LocationID, req.GuestName, req.GuestPhone, req.PartySize, origin); err != nil {
		return &JoinResult{Reason: RejectValidation, Message: err.Error()}, nil
	}

	if req.Origin == domqueue.OriginAdmin {
		denial, err := e.gate.AuthorizeQueueJoin(ctx, req.AdminID, req.LocationID)
		if err != nil {
			return nil, err
		}
		if denial != nil {
			return &JoinResult{
				Reason:          RejectAccessDenied,
				Message:         denial.Reason,
				RequiresUpgrade: true,
				RequiredFeature: denial.RequiredFeature,
				Usage:           denial.Usage,
			}, nil
		}
	}

	now := e.now()
	key := domqueue.BucketKey{LocationID: req.LocationID, Date: domqueue.DateOf(now, e.loc)}

	meta, err := e.ensureMetadata(ctx, key, now)
	if err != nil {
		return nil, err
	}
	if meta.Status == domqueue.BucketClosed {
		return &JoinResult{Reason: RejectClosed, LocationName: meta.LocationName,
			Message: fmt.Sprintf("The queue at %s is closed today.", meta.LocationName)}, nil
	}

	entries, err := shared.ListJSON[domqueue.Entry](ctx, e.store, shared.EntriesPrefix(key.LocationID, key.Date))
	if err != nil {
		return nil, storeErr(err, "failed to read queue entries")
	}

	existing, err := e.findDuplicate(ctx, req, entries)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &JoinResult{
			Reason:       RejectDuplicate,
			Existing:     existing,
			LocationName: meta.LocationName,
			Message: fmt.Sprintf("You're already in the queue at position %d (about %d minutes). Reply \"leave queue\" to give up your spot.",
				existing.Position, existing.EstimatedWaitTime),
		}, nil
	}

	waiting := domqueue.CountWaiting(entries)
	if waiting >= meta.MaxCapacity {
		return &JoinResult{Reason: RejectFull, LocationName: meta.LocationName,
			Message: fmt.Sprintf("Sorry, the queue at %s is full right now.", meta.LocationName)}, nil
	}

	entry, err := domqueue.NewEntry(domqueue.NewEntryParams{
		ID:              uuid.NewString(),
		LocationID:      key.LocationID,
		Date:            key.Date,
		GuestName:       req.GuestName,
		GuestPhone:      req.GuestPhone,
		PartySize:       req.PartySize,
		SpecialRequests: req.SpecialRequests,
		Origin:          origin,
		Position:        waiting + 1,
		Now:             now,
	})
	if err != nil {
		return &JoinResult{Reason: RejectValidation, Message: err.Error()}, nil
	}

	if _, err := shared.CreateJSON(ctx, e.store, shared.EntryPath(key.LocationID, key.Date, entry.ID), entry); err != nil {
		return nil, storeErr(err, "failed to write queue entry")
	}
	if err := e.setWaitingCount(ctx, key, waiting+1, now); err != nil {
		// the entry exists; the count is repaired by the next recalculation
		e.logger.Warn("failed to update bucket count", "location_id", key.LocationID, "date", key.Date, "error", err.Error())
	}
	e.invalidate(ctx, key)

	e.logger.Info("queue entry added",
		"location_id", key.LocationID,
		"entry_id", entry.ID,
		"position", entry.Position,
		"origin", entry.AddedBy.Type,
		"guest", phone.Mask(entry.GuestPhone))

	if req.Origin == domqueue.OriginAdmin {
		e.notifyJoined(ctx, entry, meta.LocationName)
	}

	return &JoinResult{
		Success:      true,
		Entry:        entry,
		LocationName: meta.LocationName,
		Message: fmt.Sprintf("You're #%d in the queue at %s. Estimated wait: %d minutes.",
			entry.Position, meta.LocationName, entry.EstimatedWaitTime),
	}, nil
}

func (e *engineImpl) findDuplicate(ctx context.Context, req JoinRequest, bucket []*domqueue.Entry) (*domqueue.Entry, error) {
	if req.DuplicateScope == DuplicateScopeAllLocations {
		return e.FindActive(ctx, req.GuestPhone)
	}
	for _, en := range bucket {
		if en.IsWaiting() && en.GuestPhone == req.GuestPhone {
			return en, nil
		}
	}
	return nil, nil
}

// ensureMetadata indexes the bucket for the day and creates its metadata on
// the first join. The index write is repeated on every join so a failure after
// the metadata exists cannot leave the bucket invisible to FindActive. A
// concurrent creator wins the create-only write; we then read theirs.
func (e *engineImpl) ensureMetadata(ctx context.Context, key domqueue.BucketKey, now time.Time) (*domqueue.Metadata, error) {
	idx := indexRecord{LocationID: key.LocationID, Date: key.Date}
	if _, err := shared.PutJSON(ctx, e.store, shared.QueueIndexPath(key.Date, key.LocationID), idx); err != nil {
		return nil, storeErr(err, "failed to index bucket")
	}

	path := shared.MetadataPath(key.LocationID, key.Date)
	meta, _, err := shared.GetJSON[domqueue.Metadata](ctx, e.store, path)
	if err == nil {
		return meta, nil
	}
	if !errors.Is(err, shared.ErrDocumentNotFound) {
		return nil, storeErr(err, "failed to read bucket metadata")
	}

	name, capacity := e.resolveLocation(ctx, key.LocationID)
	meta = domqueue.NewMetadata(key, name, capacity, now)
	if _, err := shared.CreateJSON(ctx, e.store, path, meta); err != nil {
		if !errors.Is(err, shared.ErrVersionConflict) {
			return nil, storeErr(err, "failed to create bucket metadata")
		}
		meta, _, err = shared.GetJSON[domqueue.Metadata](ctx, e.store, path)
		if err != nil {
			return nil, storeErr(err, "failed to read bucket metadata")
		}
	}
	return meta, nil
}

func (e *engineImpl) resolveLocation(ctx context.Context, locationID string) (string, int) {
	loc, err := e.locations.FindLocation(ctx, locationID)
	if err != nil {
		if !errors.Is(err, shared.ErrDocumentNotFound) {
			e.logger.Warn("location lookup failed", "location_id", locationID, "error", err.Error())
		}
		return textnorm.DisplayName(locationID), 0
	}
	name := strings.TrimSpace(loc.Name)
	if name == "" {
		name = textnorm.DisplayName(locationID)
	}
	return name, loc.MaxCapacity
}

var errNoMetadata = errors.New("bucket metadata missing")

func (e *engineImpl) setWaitingCount(ctx context.Context, key domqueue.BucketKey, count int, now time.Time) error {
	_, err := shared.UpdateJSON(ctx, e.store, shared.MetadataPath(key.LocationID, key.Date),
		func(cur *domqueue.Metadata) (*domqueue.Metadata, error) {
			if cur == nil {
				return nil, errNoMetadata
			}
			cur.CurrentCount = count
			cur.LastUpdatedAt = now
			return cur, nil
		})
	if errors.Is(err, errNoMetadata) {
		return nil
	}
	return err
}

func (e *engineImpl) invalidate(ctx context.Context, key domqueue.BucketKey) {
	if err := e.cache.Delete(ctx, cacheKey(key.LocationID, key.Date)); err != nil {
		e.logger.Warn("failed to invalidate bucket cache", "location_id", key.LocationID, "date", key.Date, "error", err.Error())
	}
}

func (e *engineImpl) ChangeStatus(ctx context.Context, req StatusChange) (*StatusChangeResult, error) {
	if !req.Status.IsTransitionTarget() {
		return nil, ErrInvalidStatus
	}
	if req.LocationID == "" || req.EntryID == "" {
		return nil, ErrInvalidRequest
	}
	if req.Date == "" {
		req.Date = e.Today()
	}
	key := domqueue.BucketKey{LocationID: req.LocationID, Date: req.Date}
	now := e.now()

	path := shared.EntryPath(key.LocationID, key.Date, req.EntryID)
	entry, err := shared.UpdateJSON(ctx, e.store, path, func(cur *domqueue.Entry) (*domqueue.Entry, error) {
		if cur == nil {
			return nil, ErrEntryNotFound
		}
		reason := req.Reason
		if req.Status == domqueue.StatusRemoved && reason == "" && req.AdminID != "" {
			reason = RemovalByAdmin
		}
		if err := cur.ApplyStatus(req.Status, reason, now); err != nil {
			return nil, ErrInvalidStatus
		}
		return cur, nil
	})
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) || errors.Is(err, ErrInvalidStatus) {
			return nil, err
		}
		return nil, storeErr(err, "failed to update queue entry")
	}

	e.logger.Info("queue entry status changed",
		"location_id", key.LocationID,
		"entry_id", entry.ID,
		"status", entry.Status,
		"admin_id", req.AdminID)

	result := &StatusChangeResult{Entry: entry}
	if req.Status == domqueue.StatusCalled {
		result.Notified = e.notifyCalled(ctx, entry)
	}

	changed, err := e.recalculate(ctx, key)
	if err != nil {
		return nil, err
	}
	result.Repositioned = changed
	return result, nil
}

func (e *engineImpl) Recalculate(ctx context.Context, locationID, date string) error {
	if date == "" {
		date = e.Today()
	}
	_, err := e.recalculate(ctx, domqueue.BucketKey{LocationID: locationID, Date: date})
	return err
}

// recalculate reassigns dense positions to waiting entries. Each entry is
// rewritten with its own version check; an entry that left the waiting state
// in the meantime keeps its new status.
func (e *engineImpl) recalculate(ctx context.Context, key domqueue.BucketKey) (int, error) {
	now := e.now()
	entries, err := shared.ListJSON[domqueue.Entry](ctx, e.store, shared.EntriesPrefix(key.LocationID, key.Date))
	if err != nil {
		return 0, storeErr(err, "failed to read queue entries")
	}

	changed := domqueue.Reorder(entries, now.Hour())
	for _, en := range changed {
		target := *en
		_, err := shared.UpdateJSON(ctx, e.store, shared.EntryPath(key.LocationID, key.Date, en.ID),
			func(cur *domqueue.Entry) (*domqueue.Entry, error) {
				if cur == nil {
					return nil, ErrEntryNotFound
				}
				if cur.IsWaiting() {
					cur.Position = target.Position
					cur.EstimatedWaitTime = target.EstimatedWaitTime
					cur.UpdatedAt = now
				}
				return cur, nil
			})
		if err != nil {
			return 0, storeErr(err, "failed to reposition queue entry")
		}
	}

	if err := e.setWaitingCount(ctx, key, domqueue.CountWaiting(entries), now); err != nil {
		return 0, storeErr(err, "failed to update bucket count")
	}
	e.invalidate(ctx, key)

	if len(changed) > 0 {
		e.logger.Debug("queue positions repaired",
			"location_id", key.LocationID,
			"date", key.Date,
			"changed", len(changed))
	}
	return len(changed), nil
}

func (e *engineImpl) FindActive(ctx context.Context, guestPhone string) (*domqueue.Entry, error) {
	today := e.Today()
	idx, err := shared.ListJSON[indexRecord](ctx, e.store, shared.QueueIndexPrefix(today))
	if err != nil {
		return nil, storeErr(err, "failed to list today's queues")
	}
	for _, rec := range idx {
		entries, err := shared.ListJSON[domqueue.Entry](ctx, e.store, shared.EntriesPrefix(rec.LocationID, today))
		if err != nil {
			return nil, storeErr(err, "failed to read queue entries")
		}
		for _, en := range entries {
			if en.IsWaiting() && en.GuestPhone == guestPhone {
				return en, nil
			}
		}
	}
	return nil, nil
}

func (e *engineImpl) Status(ctx context.Context, q StatusQuery) (*StatusResult, error) {
	if q.LocationID == "" {
		return nil, ErrInvalidRequest
	}
	today := e.Today()
	if q.Date == "" {
		q.Date = today
	}
	day, err := domqueue.ParseDate(q.Date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	if q.CallerID != "" {
		denial, err := e.gate.AuthorizeQueueRead(ctx, q.CallerID, q.LocationID)
		if err != nil {
			return nil, err
		}
		if denial == nil {
			denial = e.historyDenial(ctx, q.CallerID, day, today)
		}
		if denial != nil {
			return &StatusResult{Denial: denial}, nil
		}
	}

	key := cacheKey(q.LocationID, q.Date)
	if raw, ok, err := e.cache.Get(ctx, key); err != nil {
		e.logger.Warn("bucket cache read failed", "key", key, "error", err.Error())
	} else if ok {
		var cb cachedBucket
		if err := json.Unmarshal(raw, &cb); err == nil {
			return &StatusResult{Metadata: cb.Metadata, Entries: cb.Entries, Summary: domqueue.Summarize(cb.Entries), FromCache: true}, nil
		}
	}

	meta, _, err := shared.GetJSON[domqueue.Metadata](ctx, e.store, shared.MetadataPath(q.LocationID, q.Date))
	if err != nil && !errors.Is(err, shared.ErrDocumentNotFound) {
		return nil, storeErr(err, "failed to read bucket metadata")
	}
	entries, err := shared.ListJSON[domqueue.Entry](ctx, e.store, shared.EntriesPrefix(q.LocationID, q.Date))
	if err != nil {
		return nil, storeErr(err, "failed to read queue entries")
	}
	domqueue.SortForDisplay(entries)

	if raw, err := json.Marshal(cachedBucket{Metadata: meta, Entries: entries}); err == nil {
		if err := e.cache.Set(ctx, key, raw, e.cacheTTL); err != nil {
			e.logger.Warn("bucket cache write failed", "key", key, "error", err.Error())
		}
	}

	return &StatusResult{Metadata: meta, Entries: entries, Summary: domqueue.Summarize(entries)}, nil
}

// historyDenial applies queue_history_days to past buckets. Today and future
// dates are always readable.
func (e *engineImpl) historyDenial(ctx context.Context, userID string, day time.Time, today string) *access.Denial {
	now, err := domqueue.ParseDate(today)
	if err != nil {
		return nil
	}
	age := int(now.Sub(day).Hours() / 24)
	if age <= 0 {
		return nil
	}
	limit := e.gate.Limit(ctx, userID, tier.LimitQueueHistoryDays)
	if limit.Allows(age) {
		return nil
	}
	need, _ := tier.MinimumTierFor(tier.LimitQueueHistoryDays, age)
	return &access.Denial{
		Reason:       access.ReasonHistory,
		RequiredTier: need,
		Usage:        &access.UsageInfo{WithinLimit: false, CurrentUsage: age, Limit: limit},
	}
}

func (e *engineImpl) CallNext(ctx context.Context, locationID, adminID string) (*StatusChangeResult, error) {
	today := e.Today()
	entries, err := shared.ListJSON[domqueue.Entry](ctx, e.store, shared.EntriesPrefix(locationID, today))
	if err != nil {
		return nil, storeErr(err, "failed to read queue entries")
	}
	domqueue.SortForDisplay(entries)
	if len(entries) == 0 || !entries[0].IsWaiting() {
		return nil, ErrQueueEmpty
	}
	return e.ChangeStatus(ctx, StatusChange{
		LocationID: locationID,
		Date:       today,
		EntryID:    entries[0].ID,
		Status:     domqueue.StatusCalled,
		AdminID:    adminID,
	})
}

func (e *engineImpl) Leave(ctx context.Context, guestPhone string) (*StatusChangeResult, error) {
	active, err := e.FindActive(ctx, guestPhone)
	if err != nil || active == nil {
		return nil, err
	}
	return e.ChangeStatus(ctx, StatusChange{
		LocationID: active.LocationID,
		Date:       active.Date,
		EntryID:    active.ID,
		Status:     domqueue.StatusRemoved,
		Reason:     RemovalGuestLeft,
	})
}
