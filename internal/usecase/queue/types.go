package queue

import (
	domqueue "table-concierge/internal/domain/queue"
	"table-concierge/internal/domain/tier"
	"table-concierge/internal/pkg/errs"
	"table-concierge/internal/usecase/access"
)

var (
	ErrEntryNotFound  = errs.Mark(errs.New("queue entry not found"), errs.ErrNotFound)
	ErrInvalidStatus  = errs.Mark(errs.New("status must be called, seated or removed"), errs.ErrValidation)
	ErrQueueEmpty     = errs.Mark(errs.New("no waiting entries"), errs.ErrNotFound)
	ErrInvalidRequest = errs.Mark(errs.New("invalid queue request"), errs.ErrValidation)
)

// DuplicateScope selects how widely Join looks for an existing waiting entry
// of the same guest.
type DuplicateScope int

const (
	// DuplicateScopeLocation only checks the target bucket.
	DuplicateScopeLocation DuplicateScope = iota
	// DuplicateScopeAllLocations checks every bucket of today, like FindActive.
	DuplicateScopeAllLocations
)

func (s DuplicateScope) String() string {
	if s == DuplicateScopeAllLocations {
		return "all_locations"
	}
	return "location"
}

type RejectReason string

const (
	RejectValidation   RejectReason = "validation"
	RejectAccessDenied RejectReason = "access_denied"
	RejectDuplicate    RejectReason = "duplicate"
	RejectClosed       RejectReason = "closed"
	RejectFull         RejectReason = "full"
)

const (
	RemovalGuestLeft = "guest_left"
	RemovalByAdmin   = "removed_by_admin"
)

type JoinRequest struct {
	LocationID      string
	GuestName       string
	GuestPhone      string
	PartySize       int
	SpecialRequests string
	Origin          domqueue.Originator
	AdminID         string
	DuplicateScope  DuplicateScope
}

// JoinResult carries business rejections; Join returns an error only for
// store failures.
type JoinResult struct {
	Success         bool
	Message         string
	Reason          RejectReason
	Entry           *domqueue.Entry
	LocationName    string
	RequiresUpgrade bool
	RequiredFeature tier.Feature
	Usage           *access.UsageInfo
	Existing        *domqueue.Entry
}

type StatusChange struct {
	LocationID string
	// Date defaults to today.
	Date    string
	EntryID string
	Status  domqueue.Status
	Reason  string
	AdminID string
}

type StatusChangeResult struct {
	Entry        *domqueue.Entry
	Repositioned int
	Notified     bool
}

type StatusQuery struct {
	LocationID string
	Date       string
	// CallerID, when set, is gated through feature and location checks.
	CallerID string
}

type StatusResult struct {
	Metadata  *domqueue.Metadata
	Entries   []*domqueue.Entry
	Summary   domqueue.Summary
	Denial    *access.Denial
	FromCache bool
}

type cachedBucket struct {
	Metadata *domqueue.Metadata `json:"metadata,omitempty"`
	Entries  []*domqueue.Entry  `json:"entries"`
}

type indexRecord struct {
	LocationID string `json:"locationId"`
	Date       string `json:"date"`
}
