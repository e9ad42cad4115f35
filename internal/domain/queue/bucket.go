package queue

import "time"

const DateLayout = "2006-01-02"

// BucketKey addresses one FIFO list: a location on a calendar day.
type BucketKey struct {
	LocationID string
	Date       string
}

// DateOf formats t as a bucket date in loc.
func DateOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

type Metadata struct {
	LocationID    string       `json:"locationId"`
	LocationName  string       `json:"locationName"`
	Date          string       `json:"date"`
	Status        BucketStatus `json:"status"`
	MaxCapacity   int          `json:"maxCapacity"`
	CurrentCount  int          `json:"currentCount"`
	CreatedAt     time.Time    `json:"createdAt"`
	LastUpdatedAt time.Time    `json:"lastUpdated"`
}

const DefaultMaxCapacity = 100

func NewMetadata(key BucketKey, locationName string, maxCapacity int, now time.Time) *Metadata {
	if maxCapacity <= 0 {
		maxCapacity = DefaultMaxCapacity
	}
	return &Metadata{
		LocationID:    key.LocationID,
		LocationName:  locationName,
		Date:          key.Date,
		Status:        BucketOpen,
		MaxCapacity:   maxCapacity,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
}

type Summary struct {
	Total   int `json:"total"`
	Waiting int `json:"waiting"`
	Called  int `json:"called"`
	Seated  int `json:"seated"`
	Removed int `json:"removed"`
}

func Summarize(entries []*Entry) Summary {
	s := Summary{Total: len(entries)}
	for _, e := range entries {
		switch e.Status {
		case StatusWaiting:
			s.Waiting++
		case StatusCalled:
			s.Called++
		case StatusSeated:
			s.Seated++
		case StatusRemoved:
			s.Removed++
		}
	}
	return s
}

// CountWaiting returns the number of entries with status waiting.
func CountWaiting(entries []*Entry) int {
	n := 0
	for _, e := range entries {
		if e.IsWaiting() {
			n++
		}
	}
	return n
}
