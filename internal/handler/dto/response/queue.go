package response

import (
	"time"

	domqueue "table-concierge/internal/domain/queue"
	"table-concierge/internal/usecase/access"
	"table-concierge/internal/usecase/queue"

	"github.com/jinzhu/copier"
)

type QueueEntryResponse struct {
	ID                string     `json:"id"`
	Position          int        `json:"position"`
	GuestName         string     `json:"guestName"`
	GuestPhone        string     `json:"guestPhone"`
	PartySize         int        `json:"partySize"`
	SpecialRequests   string     `json:"specialRequests,omitempty"`
	Status            string     `json:"status"`
	EstimatedWaitTime int        `json:"estimatedWaitTime"`
	AddedAt           time.Time  `json:"addedAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	CalledAt          *time.Time `json:"calledAt,omitempty"`
	SeatedAt          *time.Time `json:"seatedAt,omitempty"`
	RemovedAt         *time.Time `json:"removedAt,omitempty"`
	RemovalReason     string     `json:"removalReason,omitempty"`
	AddedBy           string     `json:"addedBy"`
}

type QueueMetadataResponse struct {
	LocationID    string    `json:"locationId"`
	LocationName  string    `json:"locationName"`
	Date          string    `json:"date"`
	Status        string    `json:"status"`
	MaxCapacity   int       `json:"maxCapacity"`
	CurrentCount  int       `json:"currentCount"`
	LastUpdatedAt time.Time `json:"lastUpdated"`
}

type QueueStatusResponse struct {
	Metadata *QueueMetadataResponse `json:"metadata,omitempty"`
	Entries  []QueueEntryResponse   `json:"entries"`
	Summary  domqueue.Summary       `json:"summary"`
}

type JoinResponse struct {
	Success         bool                `json:"success"`
	Message         string              `json:"message"`
	Reason          string              `json:"reason,omitempty"`
	Entry           *QueueEntryResponse `json:"entry,omitempty"`
	RequiresUpgrade bool                `json:"requiresUpgrade,omitempty"`
	RequiredFeature string              `json:"requiredFeature,omitempty"`
	UsageInfo       *access.UsageInfo   `json:"usageInfo,omitempty"`
}

type StatusChangeResponse struct {
	Entry        QueueEntryResponse `json:"entry"`
	Repositioned int                `json:"repositioned"`
	Notified     bool               `json:"notified"`
}

type RecalculateResponse struct {
	LocationID string `json:"locationId"`
	Date       string `json:"date"`
}

type UpgradeRequiredResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	RequiresUpgrade bool           `json:"requiresUpgrade"`
	Denial          *access.Denial `json:"detail"`
}

func FromEntry(e *domqueue.Entry) QueueEntryResponse {
	var out QueueEntryResponse
	// copier matches the identically named fields; the typed ones follow.
	_ = copier.Copy(&out, e)
	out.Status = string(e.Status)
	out.AddedBy = string(e.AddedBy.Type)
	return out
}

func FromEntries(entries []*domqueue.Entry) []QueueEntryResponse {
	out := make([]QueueEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromEntry(e))
	}
	return out
}

func FromStatusResult(r *queue.StatusResult) QueueStatusResponse {
	resp := QueueStatusResponse{
		Entries: FromEntries(r.Entries),
		Summary: r.Summary,
	}
	if r.Metadata != nil {
		resp.Metadata = &QueueMetadataResponse{}
		_ = copier.Copy(resp.Metadata, r.Metadata)
		resp.Metadata.Status = string(r.Metadata.Status)
	}
	return resp
}

func FromJoinResult(r *queue.JoinResult) JoinResponse {
	resp := JoinResponse{
		Success:         r.Success,
		Message:         r.Message,
		Reason:          string(r.Reason),
		RequiresUpgrade: r.RequiresUpgrade,
		RequiredFeature: string(r.RequiredFeature),
		UsageInfo:       r.Usage,
	}
	if r.Entry != nil {
		e := FromEntry(r.Entry)
		resp.Entry = &e
	}
	return resp
}

func FromStatusChange(r *queue.StatusChangeResult) StatusChangeResponse {
	return StatusChangeResponse{
		Entry:        FromEntry(r.Entry),
		Repositioned: r.Repositioned,
		Notified:     r.Notified,
	}
}

func UpgradeRequired(d *access.Denial) UpgradeRequiredResponse {
	var resp UpgradeRequiredResponse
	resp.Error.Message = d.Reason
	resp.RequiresUpgrade = true
	resp.Denial = d
	return resp
}
