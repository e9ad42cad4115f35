package flow

import "time"

// Answers holds everything collected so far in a flow.
type Answers struct {
	GuestName       string `json:"guestName,omitempty"`
	LocationID      string `json:"locationId,omitempty"`
	Location        string `json:"location,omitempty"`
	PartySize       int    `json:"partySize,omitempty"`
	Date            string `json:"date,omitempty"`
	Time            string `json:"time,omitempty"`
	Section         string `json:"section,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// State is one guest's in-progress conversation of a given kind.
type State struct {
	Kind           Kind      `json:"kind"`
	GuestPhone     string    `json:"guestPhone"`
	Step           Step      `json:"step"`
	Answers        Answers   `json:"answers"`
	LocationPreset bool      `json:"locationPreset,omitempty"`
	StartedAt      time.Time `json:"startedAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

func New(kind Kind, guestPhone string, first Step, now time.Time, ttl time.Duration) *State {
	return &State{
		Kind:       kind,
		GuestPhone: guestPhone,
		Step:       first,
		StartedAt:  now,
		UpdatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
}

// Advance moves to next and refreshes the expiry window.
func (s *State) Advance(next Step, now time.Time, ttl time.Duration) {
	s.Step = next
	s.Touch(now, ttl)
}

func (s *State) Touch(now time.Time, ttl time.Duration) {
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// Expired is false for states written before expiry existed (zero ExpiresAt).
func (s *State) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
