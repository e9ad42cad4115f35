package request

import (
	domqueue "table-concierge/internal/domain/queue"
	"table-concierge/internal/pkg/phone"
	"table-concierge/internal/usecase/queue"
)

type AdminJoinRequest struct {
	GuestName       string `json:"guestName" binding:"required"`
	GuestPhone      string `json:"guestPhone" binding:"required"`
	PartySize       int    `json:"partySize" binding:"required,min=1,max=20"`
	SpecialRequests string `json:"specialRequests"`
	// AllLocations widens the duplicate check to every queue of the day.
	AllLocations bool `json:"allLocations"`
}

func (r AdminJoinRequest) ToJoin(locationID, adminID string) queue.JoinRequest {
	guest := phone.Normalize(r.GuestPhone)
	if guest == "" {
		guest = r.GuestPhone
	}
	scope := queue.DuplicateScopeLocation
	if r.AllLocations {
		scope = queue.DuplicateScopeAllLocations
	}
	return queue.JoinRequest{
		LocationID:      locationID,
		GuestName:       r.GuestName,
		GuestPhone:      guest,
		PartySize:       r.PartySize,
		SpecialRequests: r.SpecialRequests,
		Origin:          domqueue.OriginAdmin,
		AdminID:         adminID,
		DuplicateScope:  scope,
	}
}

type UpdateEntryStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=called seated removed"`
	Reason string `json:"reason"`
	Date   string `json:"date"`
}

func (r UpdateEntryStatusRequest) ToStatusChange(locationID, entryID, adminID string) queue.StatusChange {
	return queue.StatusChange{
		LocationID: locationID,
		Date:       r.Date,
		EntryID:    entryID,
		Status:     domqueue.Status(r.Status),
		Reason:     r.Reason,
		AdminID:    adminID,
	}
}
