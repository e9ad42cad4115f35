// Package access answers subscription-tier and location ACL questions for
// subscribers (restaurant staff acting through the admin surfaces).
package access

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"table-concierge/internal/domain/queue"
	"table-concierge/internal/domain/tier"
	"table-concierge/internal/pkg/clock"
	"table-concierge/internal/pkg/errs"
	"table-concierge/internal/pkg/phone"
	"table-concierge/internal/usecase/shared"
)

// UsageInfo reports consumption against a numeric limit. Limit is -1 when unlimited.
type UsageInfo struct {
	WithinLimit  bool       `json:"withinLimit"`
	CurrentUsage int        `json:"currentUsage"`
	Limit        tier.Quota `json:"limit"`
}

// Denial is the structured upgrade-required outcome of a failed gate check.
type Denial struct {
	Reason          string       `json:"reason"`
	RequiredFeature tier.Feature `json:"requiredFeature,omitempty"`
	RequiredTier    tier.Tier    `json:"requiredTier,omitempty"`
	Usage           *UsageInfo   `json:"usageInfo,omitempty"`
}

func (d *Denial) Error() string {
	return d.Reason
}

const (
	ReasonFeature  = "feature not available on current plan"
	ReasonLocation = "no access to this location on current plan"
	ReasonQuota    = "daily queue entry limit reached"
	ReasonHistory  = "queue history beyond current plan"
)

//go:generate mockgen -source=gate.go -destination=../../../tests/mock/access/gate.go -package=accessmock
type Gate interface {
	// Subscription never fails: read errors resolve to the free/active default.
	Subscription(ctx context.Context, userID string) tier.Subscription
	// HasFeature is fail-secure: any lookup error denies.
	HasFeature(ctx context.Context, userID string, feature tier.Feature) bool
	Limit(ctx context.Context, userID string, limit tier.LimitID) tier.Quota
	LocationAccess(ctx context.Context, userID, locationID string) bool
	DailyEntryQuota(ctx context.Context, userID, locationID string) (UsageInfo, error)
	// IsAdmin checks the admin claim for a chat identity; tiers play no part.
	IsAdmin(ctx context.Context, guestPhone string) bool

	// AuthorizeQueueRead runs the feature and location checks.
	AuthorizeQueueRead(ctx context.Context, userID, locationID string) (*Denial, error)
	// AuthorizeQueueJoin adds the daily entry quota on top of AuthorizeQueueRead.
	AuthorizeQueueJoin(ctx context.Context, userID, locationID string) (*Denial, error)
}

type gateImpl struct {
	subscriptions shared.SubscriptionDirectory
	accounts      shared.AccountDirectory
	store         shared.Store
	clock         clock.Clock
	loc           *time.Location
	logger        *slog.Logger
}

func NewGate(
	subscriptions shared.SubscriptionDirectory,
	accounts shared.AccountDirectory,
	store shared.Store,
	clk clock.Clock,
	loc *time.Location,
	logger *slog.Logger,
) Gate {
	if loc == nil {
		loc = time.UTC
	}
	return &gateImpl{
		subscriptions: subscriptions,
		accounts:      accounts,
		store:         store,
		clock:         clk,
		loc:           loc,
		logger:        logger,
	}
}

func (g *gateImpl) loadSubscription(ctx context.Context, userID string) (tier.Subscription, error) {
	sub, err := g.subscriptions.FindSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrDocumentNotFound) {
			return tier.Default(userID), nil
		}
		return tier.Subscription{}, errs.Mark(errs.Wrap(err, "failed to load subscription"), errs.ErrTransientStore)
	}
	if !sub.Tier.IsValid() {
		sub.Tier = tier.Free
	}
	if sub.Status == "" {
		sub.Status = tier.StatusActive
	}
	return *sub, nil
}

func (g *gateImpl) Subscription(ctx context.Context, userID string) tier.Subscription {
	sub, err := g.loadSubscription(ctx, userID)
	if err != nil {
		g.logger.Warn("subscription lookup failed, using default",
			"user_id", userID,
			"error", err.Error())
		return tier.Default(userID)
	}
	return sub
}

func (g *gateImpl) HasFeature(ctx context.Context, userID string, feature tier.Feature) bool {
	sub, err := g.loadSubscription(ctx, userID)
	if err != nil {
		g.logger.Warn("feature check failed closed",
			"user_id", userID,
			"feature", feature,
			"error", err.Error())
		return false
	}
	return sub.Grants(feature)
}

func (g *gateImpl) Limit(ctx context.Context, userID string, limit tier.LimitID) tier.Quota {
	return g.Subscription(ctx, userID).Limit(limit)
}

// LocationAccess needs a base ACL (admin or explicit grant) and the total
// number of granted locations within the tier limit. The count is aggregate,
// so going over the limit revokes every grant at once.
func (g *gateImpl) LocationAccess(ctx context.Context, userID, locationID string) bool {
	allowed, err := g.baseLocationACL(ctx, userID, locationID)
	if err != nil {
		g.logger.Warn("location acl check failed", "user_id", userID, "location_id", locationID, "error", err.Error())
		return false
	}
	if !allowed {
		return false
	}

	grants, err := g.accounts.LocationGrants(ctx, userID)
	if err != nil {
		g.logger.Warn("location grant count failed", "user_id", userID, "error", err.Error())
		return false
	}
	return g.Limit(ctx, userID, tier.LimitQueueLocations).Allows(len(grants))
}

func (g *gateImpl) baseLocationACL(ctx context.Context, userID, locationID string) (bool, error) {
	acc, _, err := g.accounts.FindAccount(ctx, userID)
	if err != nil && !errors.Is(err, shared.ErrDocumentNotFound) {
		return false, err
	}
	if acc != nil && acc.IsAdmin() {
		return true, nil
	}
	return g.accounts.HasLocationGrant(ctx, userID, locationID)
}

// DailyEntryQuota counts today's admin-originated entries by userID at the
// location. The entry being added is not yet counted, so the check is
// usage < limit.
func (g *gateImpl) DailyEntryQuota(ctx context.Context, userID, locationID string) (UsageInfo, error) {
	limit := g.Limit(ctx, userID, tier.LimitQueueEntriesPerDay)
	if limit.IsUnlimited() {
		return UsageInfo{WithinLimit: true, Limit: tier.Unlimited}, nil
	}

	today := queue.DateOf(g.clock.Now(), g.loc)
	entries, err := shared.ListJSON[queue.Entry](ctx, g.store, shared.EntriesPrefix(locationID, today))
	if err != nil {
		return UsageInfo{}, errs.Mark(errs.Wrap(err, "failed to count daily entries"), errs.ErrTransientStore)
	}

	usage := 0
	for _, e := range entries {
		if e.AddedBy.Type == queue.OriginAdmin && e.AddedBy.AdminID == userID {
			usage++
		}
	}
	return UsageInfo{
		WithinLimit:  usage < int(limit),
		CurrentUsage: usage,
		Limit:        limit,
	}, nil
}

func (g *gateImpl) IsAdmin(ctx context.Context, guestPhone string) bool {
	acc, _, err := g.accounts.FindAccountByPhone(ctx, phone.Normalize(guestPhone))
	if err != nil {
		if !errors.Is(err, shared.ErrDocumentNotFound) {
			g.logger.Warn("admin lookup failed", "guest", phone.Mask(guestPhone), "error", err.Error())
		}
		return false
	}
	return acc.IsAdmin() && acc.IsActive()
}

func (g *gateImpl) AuthorizeQueueRead(ctx context.Context, userID, locationID string) (*Denial, error) {
	if !g.HasFeature(ctx, userID, tier.FeatureQueueManagement) {
		min, _ := tier.MinimumTier(tier.FeatureQueueManagement)
		return &Denial{Reason: ReasonFeature, RequiredFeature: tier.FeatureQueueManagement, RequiredTier: min}, nil
	}
	if !g.LocationAccess(ctx, userID, locationID) {
		min, _ := tier.MinimumTier(tier.FeatureMultiLocation)
		return &Denial{Reason: ReasonLocation, RequiredFeature: tier.FeatureMultiLocation, RequiredTier: min}, nil
	}
	return nil, nil
}

func (g *gateImpl) AuthorizeQueueJoin(ctx context.Context, userID, locationID string) (*Denial, error) {
	denial, err := g.AuthorizeQueueRead(ctx, userID, locationID)
	if err != nil || denial != nil {
		return denial, err
	}
	usage, err := g.DailyEntryQuota(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}
	if !usage.WithinLimit {
		return &Denial{Reason: ReasonQuota, RequiredFeature: tier.FeatureQueueManagement, Usage: &usage}, nil
	}
	return nil, nil
}
