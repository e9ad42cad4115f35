package queue

import "sort"

// Reorder assigns dense 1..N positions to waiting entries ordered by AddedAt
// (ties broken by ID) and recomputes their wait estimates for hour. It returns
// the entries whose position or wait time changed; running it twice in a row
// returns nothing the second time.
func Reorder(entries []*Entry, hour int) []*Entry {
	waiting := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsWaiting() {
			waiting = append(waiting, e)
		}
	}

	sort.SliceStable(waiting, func(i, j int) bool {
		a, b := waiting[i], waiting[j]
		if a.AddedAt.Equal(b.AddedAt) {
			return a.ID < b.ID
		}
		return a.AddedAt.Before(b.AddedAt)
	})

	var changed []*Entry
	for i, e := range waiting {
		pos := i + 1
		wait := EstimateWaitAtHour(pos, hour)
		if e.Position != pos || e.EstimatedWaitTime != wait {
			e.Position = pos
			e.EstimatedWaitTime = wait
			changed = append(changed, e)
		}
	}
	return changed
}

// SortForDisplay orders waiting entries by position first, then everyone else
// by the time they joined.
func SortForDisplay(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsWaiting() != b.IsWaiting() {
			return a.IsWaiting()
		}
		if a.IsWaiting() {
			return a.Position < b.Position
		}
		return a.AddedAt.Before(b.AddedAt)
	})
}
