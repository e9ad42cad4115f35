package shared

import "strings"

func join(parts ...string) string {
	return strings.Join(parts, "/")
}

func FlowPath(kind, guestPhone string) string { return join("flows", kind, guestPhone) }
func FlowKindPrefix(kind string) string        { return join("flows", kind) }

func BucketPrefix(locationID, date string) string { return join("queues", locationID, date) }
func MetadataPath(locationID, date string) string {
	return join(BucketPrefix(locationID, date), "metadata")
}
func EntriesPrefix(locationID, date string) string {
	return join(BucketPrefix(locationID, date), "entries")
}
func EntryPath(locationID, date, entryID string) string {
	return join(EntriesPrefix(locationID, date), entryID)
}

// QueueIndexPrefix lists the locations that have a bucket on date.
func QueueIndexPrefix(date string) string           { return join("queue-index", date) }
func QueueIndexPath(date, locationID string) string { return join(QueueIndexPrefix(date), locationID) }

func LocationsPrefix() string               { return "locations" }
func LocationPath(locationID string) string { return join("locations", locationID) }

func GuestPath(guestPhone string) string { return join("guests", guestPhone) }

func BookingsPrefix() string              { return "bookings" }
func BookingPath(bookingID string) string { return join("bookings", bookingID) }

func SubscriptionPath(userID string) string { return join("subscriptions", userID) }

func AccountsPrefix() string            { return "subscriber-auth" }
func AccountPath(userID string) string  { return join("subscriber-auth", userID) }
func AdminClaimPath(userID string) string { return join("admin-claims", userID) }

func UserLocationsPrefix(userID string) string { return join("user-locations", userID) }
func UserLocationPath(userID, locationID string) string {
	return join(UserLocationsPrefix(userID), locationID)
}

// LastSegment returns the final path component, e.g. the entry id.
func LastSegment(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
