package queue

import (
	"strings"
	"time"
)

// Entry is one party on a bucket's waiting list. Entries are never deleted;
// leaving the queue moves them to StatusRemoved.
type Entry struct {
	ID                string                    `json:"id"`
	LocationID        string                    `json:"locationId"`
	Date              string                    `json:"date"`
	Position          int                       `json:"position"`
	GuestName         string                    `json:"guestName"`
	GuestPhone        string                    `json:"guestPhone"`
	PartySize         int                       `json:"partySize"`
	SpecialRequests   string                    `json:"specialRequests"`
	Status            Status                    `json:"status"`
	EstimatedWaitTime int                       `json:"estimatedWaitTime"`
	AddedAt           time.Time                 `json:"addedAt"`
	UpdatedAt         time.Time                 `json:"updatedAt"`
	CalledAt          *time.Time                `json:"calledAt,omitempty"`
	SeatedAt          *time.Time                `json:"seatedAt,omitempty"`
	RemovedAt         *time.Time                `json:"removedAt,omitempty"`
	RemovalReason     string                    `json:"removalReason,omitempty"`
	AddedBy           Origin                    `json:"addedBy"`
	NotificationsSent map[NotificationType]bool `json:"notificationsSent,omitempty"`
}

type Origin struct {
	Type    Originator `json:"type"`
	AdminID string     `json:"adminId,omitempty"`
}

type NewEntryParams struct {
	ID              string
	LocationID      string
	Date            string
	GuestName       string
	GuestPhone      string
	PartySize       int
	SpecialRequests string
	Origin          Origin
	Position        int
	Now             time.Time
}

// ValidateJoin checks the caller-supplied join fields; it performs no I/O.
func ValidateJoin(locationID, guestName, guestPhone string, partySize int, origin Origin) error {
	if strings.TrimSpace(locationID) == "" {
		return ErrMissingLocation
	}
	if strings.TrimSpace(guestName) == "" {
		return ErrMissingGuestName
	}
	if strings.TrimSpace(guestPhone) == "" {
		return ErrMissingGuestPhone
	}
	if partySize < MinPartySize || partySize > MaxPartySize {
		return ErrInvalidPartySize
	}
	if !origin.Type.IsValid() {
		return ErrInvalidOriginator
	}
	if origin.Type == OriginAdmin && origin.AdminID == "" {
		return ErrMissingAdminID
	}
	return nil
}

func NewEntry(p NewEntryParams) (*Entry, error) {
	if err := ValidateJoin(p.LocationID, p.GuestName, p.GuestPhone, p.PartySize, p.Origin); err != nil {
		return nil, err
	}
	return &Entry{
		ID:                p.ID,
		LocationID:        p.LocationID,
		Date:              p.Date,
		Position:          p.Position,
		GuestName:         strings.TrimSpace(p.GuestName),
		GuestPhone:        p.GuestPhone,
		PartySize:         p.PartySize,
		SpecialRequests:   strings.TrimSpace(p.SpecialRequests),
		Status:            StatusWaiting,
		EstimatedWaitTime: EstimateWait(p.Position, p.Now),
		AddedAt:           p.Now,
		UpdatedAt:         p.Now,
		AddedBy:           p.Origin,
		NotificationsSent: map[NotificationType]bool{},
	}, nil
}

func (e *Entry) IsWaiting() bool {
	return e.Status == StatusWaiting
}

// ApplyStatus moves the entry to target and stamps the lifecycle timestamp.
func (e *Entry) ApplyStatus(target Status, reason string, now time.Time) error {
	if !target.IsTransitionTarget() {
		return ErrInvalidStatus
	}
	e.Status = target
	e.UpdatedAt = now
	switch target {
	case StatusCalled:
		e.CalledAt = &now
	case StatusSeated:
		e.SeatedAt = &now
	case StatusRemoved:
		e.RemovedAt = &now
		e.RemovalReason = reason
	}
	return nil
}

func (e *Entry) MarkNotified(t NotificationType) {
	if e.NotificationsSent == nil {
		e.NotificationsSent = map[NotificationType]bool{}
	}
	e.NotificationsSent[t] = true
}

func (e *Entry) Notified(t NotificationType) bool {
	return e.NotificationsSent[t]
}
