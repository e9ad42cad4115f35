package queue

import (
	"context"
	"fmt"

	domqueue "table-concierge/internal/domain/queue"
	"table-concierge/internal/pkg/phone"
	"table-concierge/internal/usecase/shared"
)

// notifyCalled tells the guest their table is ready and records the flag.
// Delivery failures are logged only.
func (e *engineImpl) notifyCalled(ctx context.Context, entry *domqueue.Entry) bool {
	if entry.Notified(domqueue.NotifyCalled) {
		return false
	}
	body := fmt.Sprintf("Hi %s, your table is ready! Please come to the host stand.", entry.GuestName)
	return e.sendAndMark(ctx, entry, domqueue.NotifyCalled, body)
}

func (e *engineImpl) notifyJoined(ctx context.Context, entry *domqueue.Entry, locationName string) {
	body := fmt.Sprintf("Hi %s, you've been added to the queue at %s. You're #%d, estimated wait %d minutes.",
		entry.GuestName, locationName, entry.Position, entry.EstimatedWaitTime)
	e.sendAndMark(ctx, entry, domqueue.NotifyJoined, body)
}

func (e *engineImpl) sendAndMark(ctx context.Context, entry *domqueue.Entry, kind domqueue.NotificationType, body string) bool {
	err := e.sender.Send(ctx, shared.OutboundMessage{To: entry.GuestPhone, Body: body, Kind: string(kind)})
	if err != nil {
		e.logger.Warn("guest notification failed",
			"kind", kind,
			"entry_id", entry.ID,
			"guest", phone.Mask(entry.GuestPhone),
			"error", err.Error())
		return false
	}

	path := shared.EntryPath(entry.LocationID, entry.Date, entry.ID)
	_, err = shared.UpdateJSON(ctx, e.store, path, func(cur *domqueue.Entry) (*domqueue.Entry, error) {
		if cur == nil {
			return nil, ErrEntryNotFound
		}
		cur.MarkNotified(kind)
		return cur, nil
	})
	if err != nil {
		e.logger.Warn("failed to record notification", "kind", kind, "entry_id", entry.ID, "error", err.Error())
	}
	entry.MarkNotified(kind)
	return true
}
