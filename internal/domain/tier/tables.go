package tier

var featureMinTier = map[Feature]Tier{
	FeatureQueueManagement:   Free,
	FeatureBookingManagement: Free,
	FeatureQueueAnalytics:    Starter,
	FeatureMultiLocation:     Professional,
	FeatureAPIAccess:         Enterprise,
}

var limitTable = map[Tier]map[LimitID]Quota{
	Free: {
		LimitQueueEntriesPerDay: 25,
		LimitQueueLocations:     1,
		LimitQueueHistoryDays:   7,
	},
	Starter: {
		LimitQueueEntriesPerDay: 100,
		LimitQueueLocations:     2,
		LimitQueueHistoryDays:   30,
	},
	Professional: {
		LimitQueueEntriesPerDay: 500,
		LimitQueueLocations:     5,
		LimitQueueHistoryDays:   90,
	},
	Enterprise: {
		LimitQueueEntriesPerDay: Unlimited,
		LimitQueueLocations:     Unlimited,
		LimitQueueHistoryDays:   Unlimited,
	},
}

// MinimumTier returns the lowest tier granting f. Unknown features require
// a tier nobody has.
func MinimumTier(f Feature) (Tier, bool) {
	t, ok := featureMinTier[f]
	return t, ok
}

// MinimumTierFor returns the lowest tier whose table limit allows n.
func MinimumTierFor(id LimitID, n int) (Tier, bool) {
	for _, t := range []Tier{Free, Starter, Professional, Enterprise} {
		if TableLimit(t, id).Allows(n) {
			return t, true
		}
	}
	return "", false
}

// TableLimit returns the tier's table value; unknown tiers get free limits and
// unknown limits are zero.
func TableLimit(t Tier, id LimitID) Quota {
	limits, ok := limitTable[t]
	if !ok {
		limits = limitTable[Free]
	}
	return limits[id]
}

// Grants resolves a feature decision without I/O: status gate, then
// override, then tier comparison.
func (s Subscription) Grants(f Feature) bool {
	if !s.Status.Entitled() {
		return false
	}
	if v, ok := s.FeatureOverrides[f]; ok {
		return v
	}
	min, ok := MinimumTier(f)
	if !ok {
		return false
	}
	return s.Tier.AtLeast(min)
}

// Limit resolves a limit: explicit override wins, else the tier table.
func (s Subscription) Limit(id LimitID) Quota {
	if v, ok := s.LimitOverrides[id]; ok {
		return Quota(v)
	}
	return TableLimit(s.Tier, id)
}

func AllFeatures() []Feature {
	return []Feature{
		FeatureQueueManagement,
		FeatureBookingManagement,
		FeatureQueueAnalytics,
		FeatureMultiLocation,
		FeatureAPIAccess,
	}
}

func AllLimits() []LimitID {
	return []LimitID{LimitQueueEntriesPerDay, LimitQueueLocations, LimitQueueHistoryDays}
}
