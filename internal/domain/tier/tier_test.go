//go:build unit

package tier_test

import (
	"testing"

	"table-concierge/internal/domain/tier"

	"github.com/stretchr/testify/assert"
)

func TestTier_AtLeast(t *testing.T) {
	assert.True(t, tier.Professional.AtLeast(tier.Starter))
	assert.True(t, tier.Free.AtLeast(tier.Free))
	assert.False(t, tier.Starter.AtLeast(tier.Professional))
	assert.False(t, tier.Tier("gold").AtLeast(tier.Free))
}

func TestSubscription_Grants(t *testing.T) {
	tests := []struct {
		name    string
		sub     tier.Subscription
		feature tier.Feature
		want    bool
	}{
		{"free has queue management", tier.Default("u1"), tier.FeatureQueueManagement, true},
		{"free lacks analytics", tier.Default("u1"), tier.FeatureQueueAnalytics, false},
		{"starter has analytics", tier.Subscription{Tier: tier.Starter, Status: tier.StatusActive}, tier.FeatureQueueAnalytics, true},
		{"trial is entitled", tier.Subscription{Tier: tier.Enterprise, Status: tier.StatusTrial}, tier.FeatureAPIAccess, true},
		{"past due denies everything", tier.Subscription{Tier: tier.Enterprise, Status: tier.StatusPastDue}, tier.FeatureQueueManagement, false},
		{
			"override grants above tier",
			tier.Subscription{Tier: tier.Free, Status: tier.StatusActive, FeatureOverrides: map[tier.Feature]bool{tier.FeatureMultiLocation: true}},
			tier.FeatureMultiLocation, true,
		},
		{
			"override revokes within tier",
			tier.Subscription{Tier: tier.Enterprise, Status: tier.StatusActive, FeatureOverrides: map[tier.Feature]bool{tier.FeatureQueueManagement: false}},
			tier.FeatureQueueManagement, false,
		},
		{"unknown feature", tier.Subscription{Tier: tier.Enterprise, Status: tier.StatusActive}, tier.Feature("teleport"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.Grants(tt.feature))
		})
	}
}

func TestSubscription_Limit(t *testing.T) {
	free := tier.Default("u1")
	assert.Equal(t, tier.Quota(25), free.Limit(tier.LimitQueueEntriesPerDay))
	assert.Equal(t, tier.Quota(1), free.Limit(tier.LimitQueueLocations))

	ent := tier.Subscription{Tier: tier.Enterprise, Status: tier.StatusActive}
	assert.True(t, ent.Limit(tier.LimitQueueEntriesPerDay).IsUnlimited())

	overridden := tier.Subscription{Tier: tier.Free, LimitOverrides: map[tier.LimitID]int{tier.LimitQueueLocations: 3}}
	assert.Equal(t, tier.Quota(3), overridden.Limit(tier.LimitQueueLocations))

	assert.Equal(t, tier.Quota(7), tier.TableLimit(tier.Tier("gold"), tier.LimitQueueHistoryDays))
	assert.Equal(t, tier.Quota(0), tier.TableLimit(tier.Free, tier.LimitID("nope")))
}

func TestQuota_Allows(t *testing.T) {
	assert.True(t, tier.Quota(1).Allows(1))
	assert.False(t, tier.Quota(1).Allows(2))
	assert.True(t, tier.Unlimited.Allows(1000))
}

func TestMinimumTierFor(t *testing.T) {
	tests := []struct {
		days int
		want tier.Tier
	}{
		{7, tier.Free},
		{8, tier.Starter},
		{90, tier.Professional},
		{365, tier.Enterprise},
	}
	for _, tt := range tests {
		got, ok := tier.MinimumTierFor(tier.LimitQueueHistoryDays, tt.days)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "days=%d", tt.days)
	}
}
