package flow

type Kind string

const (
	KindQueue   Kind = "queue"
	KindBooking Kind = "booking"
)

func (k Kind) IsValid() bool {
	return k == KindQueue || k == KindBooking
}

type Step string

// Queue flow steps, in order.
const (
	StepQueueLocation        Step = "location"
	StepQueuePartySize       Step = "party_size"
	StepQueueSpecialRequests Step = "special_requests"
)

// Booking flow steps, in order.
const (
	StepBookingDate            Step = "date"
	StepBookingTime            Step = "time"
	StepBookingLocation        Step = "location"
	StepBookingSection         Step = "section"
	StepBookingGuests          Step = "guests"
	StepBookingSpecialRequests Step = "special-requests"
)

func (s Step) String() string {
	return string(s)
}

// Known reports whether s is a step of kind k. Loaded states carrying an
// unknown step are reset by the dispatcher.
func (k Kind) Known(s Step) bool {
	switch k {
	case KindQueue:
		switch s {
		case StepQueueLocation, StepQueuePartySize, StepQueueSpecialRequests:
			return true
		}
	case KindBooking:
		switch s {
		case StepBookingDate, StepBookingTime, StepBookingLocation,
			StepBookingSection, StepBookingGuests, StepBookingSpecialRequests:
			return true
		}
	}
	return false
}
