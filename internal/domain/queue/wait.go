package queue

import (
	"math"
	"time"
)

const (
	MinutesPerPosition = 15
	PeakMultiplier     = 1.5
)

// IsPeakHour covers lunch (12:00-14:59) and dinner (18:00-21:59).
func IsPeakHour(hour int) bool {
	return (hour >= 12 && hour <= 14) || (hour >= 18 && hour <= 21)
}

func multiplier(hour int) float64 {
	if IsPeakHour(hour) {
		return PeakMultiplier
	}
	return 1
}

// RoundToNearest5 rounds half away from zero, so 22.5 becomes 25.
func RoundToNearest5(v float64) int {
	return int(math.Round(v/5)) * 5
}

// EstimateWaitAtHour is the minutes estimate for a position at an hour of day.
func EstimateWaitAtHour(position, hour int) int {
	return RoundToNearest5(float64(position*MinutesPerPosition) * multiplier(hour))
}

// EstimateWait uses the hour of now; now must already be in restaurant-local time.
func EstimateWait(position int, now time.Time) int {
	return EstimateWaitAtHour(position, now.Hour())
}
