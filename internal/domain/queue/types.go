package queue

import "errors"

var (
	ErrInvalidPartySize  = errors.New("party size must be between 1 and 20")
	ErrMissingGuestName  = errors.New("guest name is required")
	ErrMissingGuestPhone = errors.New("guest phone number is required")
	ErrMissingLocation   = errors.New("location is required")
	ErrInvalidStatus     = errors.New("invalid queue status")
	ErrInvalidOriginator = errors.New("invalid originator")
	ErrMissingAdminID    = errors.New("admin originated entries require an admin id")
	ErrInvalidDate       = errors.New("date must be YYYY-MM-DD")
)

const (
	MinPartySize = 1
	MaxPartySize = 20
)

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusCalled  Status = "called"
	StatusSeated  Status = "seated"
	StatusRemoved Status = "removed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusCalled, StatusSeated, StatusRemoved:
		return true
	default:
		return false
	}
}

// IsTransitionTarget reports statuses reachable through a status change.
// Entries only enter "waiting" by joining.
func (s Status) IsTransitionTarget() bool {
	switch s {
	case StatusCalled, StatusSeated, StatusRemoved:
		return true
	default:
		return false
	}
}

type Originator string

const (
	OriginGuest Originator = "guest"
	OriginAdmin Originator = "admin"
)

func (o Originator) IsValid() bool {
	return o == OriginGuest || o == OriginAdmin
}

type NotificationType string

const (
	NotifyJoined   NotificationType = "joined"
	NotifyCalled   NotificationType = "called"
	NotifyReminder NotificationType = "reminder"
)

type BucketStatus string

const (
	BucketOpen   BucketStatus = "open"
	BucketPaused BucketStatus = "paused"
	BucketClosed BucketStatus = "closed"
)
