package tier

type Tier string

const (
	Free         Tier = "free"
	Starter      Tier = "starter"
	Professional Tier = "professional"
	Enterprise   Tier = "enterprise"
)

var order = map[Tier]int{
	Free:         0,
	Starter:      1,
	Professional: 2,
	Enterprise:   3,
}

func (t Tier) String() string {
	return string(t)
}

func (t Tier) IsValid() bool {
	_, ok := order[t]
	return ok
}

// AtLeast compares against the fixed order free < starter < professional < enterprise.
// Unknown tiers rank below free.
func (t Tier) AtLeast(min Tier) bool {
	have, ok := order[t]
	if !ok {
		return false
	}
	need, ok := order[min]
	if !ok {
		return false
	}
	return have >= need
}

type Status string

const (
	StatusActive    Status = "active"
	StatusTrial     Status = "trial"
	StatusPastDue   Status = "past_due"
	StatusCancelled Status = "cancelled"
)

// Entitled reports whether features may be granted at all.
func (s Status) Entitled() bool {
	return s == StatusActive || s == StatusTrial
}

type Feature string

const (
	FeatureQueueManagement   Feature = "queue_management"
	FeatureBookingManagement Feature = "booking_management"
	FeatureQueueAnalytics    Feature = "queue_analytics"
	FeatureMultiLocation     Feature = "multi_location"
	FeatureAPIAccess         Feature = "api_access"
)

type LimitID string

const (
	LimitQueueEntriesPerDay LimitID = "queue_entries_per_day"
	LimitQueueLocations     LimitID = "queue_locations"
	LimitQueueHistoryDays   LimitID = "queue_history_days"
)

// Quota is a numeric limit; Unlimited stands in for infinity.
type Quota int

const Unlimited Quota = -1

func (q Quota) IsUnlimited() bool {
	return q < 0
}

// Allows reports whether n units fit under the quota (n <= q).
func (q Quota) Allows(n int) bool {
	return q.IsUnlimited() || n <= int(q)
}

// Subscription is the read-only context resolved for a subscriber.
type Subscription struct {
	UserID           string           `json:"userId"`
	Tier             Tier             `json:"tierId"`
	Status           Status           `json:"status"`
	FeatureOverrides map[Feature]bool `json:"featureOverrides,omitempty"`
	LimitOverrides   map[LimitID]int  `json:"limitOverrides,omitempty"`
}

func Default(userID string) Subscription {
	return Subscription{
		UserID: userID,
		Tier:   Free,
		Status: StatusActive,
	}
}
