package booking

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingGuest     = errors.New("guest phone number is required")
	ErrInvalidGuests    = errors.New("number of guests must be between 1 and 20")
	ErrMissingSchedule  = errors.New("date and time are required")
	ErrMissingLocation  = errors.New("location is required")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// Upcoming statuses are the ones a guest can still view or cancel.
func (s Status) Upcoming() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking is a guest's table reservation request created by the booking flow.
type Booking struct {
	ID              string     `json:"id"`
	GuestPhone      string     `json:"phoneNumber"`
	GuestName       string     `json:"guestName,omitempty"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	LocationID      string     `json:"locationId,omitempty"`
	Location        string     `json:"location"`
	Section         string     `json:"section"`
	NumberOfGuests  int        `json:"numberOfGuests"`
	SpecialRequests string     `json:"specialRequests"`
	Status          Status     `json:"status"`
	CreatedBy       string     `json:"createdBy"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
}

type NewParams struct {
	ID              string
	GuestPhone      string
	GuestName       string
	Date            string
	Time            string
	LocationID      string
	Location        string
	Section         string
	NumberOfGuests  int
	SpecialRequests string
	Now             time.Time
}

const createdByGuest = "guest"

func New(p NewParams) (*Booking, error) {
	if p.GuestPhone == "" {
		return nil, ErrMissingGuest
	}
	if p.Date == "" || p.Time == "" {
		return nil, ErrMissingSchedule
	}
	if strings.TrimSpace(p.Location) == "" {
		return nil, ErrMissingLocation
	}
	if p.NumberOfGuests < 1 || p.NumberOfGuests > 20 {
		return nil, ErrInvalidGuests
	}
	return &Booking{
		ID:              p.ID,
		GuestPhone:      p.GuestPhone,
		GuestName:       p.GuestName,
		Date:            p.Date,
		Time:            p.Time,
		LocationID:      p.LocationID,
		Location:        strings.TrimSpace(p.Location),
		Section:         strings.TrimSpace(p.Section),
		NumberOfGuests:  p.NumberOfGuests,
		SpecialRequests: strings.TrimSpace(p.SpecialRequests),
		Status:          StatusPending,
		CreatedBy:       createdByGuest,
		CreatedAt:       p.Now,
		UpdatedAt:       p.Now,
	}, nil
}

func (b *Booking) Cancel(now time.Time) error {
	if b.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now
	b.CancelledAt = &now
	return nil
}

// IsUpcoming: not cancelled and dated today or later (dates compare as strings).
func (b *Booking) IsUpcoming(today string) bool {
	return b.Status.Upcoming() && b.Date >= today
}
