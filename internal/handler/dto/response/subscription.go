package response

import "table-concierge/internal/domain/tier"

type SubscriptionResponse struct {
	Tier     string                `json:"tier"`
	Status   string                `json:"status"`
	Features map[tier.Feature]bool `json:"features"`
	Limits   map[tier.LimitID]int  `json:"limits"`
}

// FromSubscription lists every feature decision and resolved limit (-1 for
// unlimited).
func FromSubscription(sub tier.Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		Tier:     sub.Tier.String(),
		Status:   string(sub.Status),
		Features: make(map[tier.Feature]bool),
		Limits:   make(map[tier.LimitID]int),
	}
	for _, f := range tier.AllFeatures() {
		resp.Features[f] = sub.Grants(f)
	}
	for _, id := range tier.AllLimits() {
		resp.Limits[id] = int(sub.Limit(id))
	}
	return resp
}
