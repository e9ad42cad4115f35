package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"table-concierge/internal/domain/flow"
	"table-concierge/internal/pkg/textnorm"
	"table-concierge/internal/usecase/booking"
	"table-concierge/internal/usecase/queue"
)

// command is one row of the top-level table: a predicate and the handler it
// guards. Rows are tried in order and the first match wins.
type command struct {
	name    string
	matches func(ctx context.Context, req *request) bool
	handle  func(ctx context.Context, req *request) (Reply, error)
}

func containsAny(phrases ...string) func(context.Context, *request) bool {
	return func(_ context.Context, req *request) bool {
		for _, p := range phrases {
			if strings.Contains(req.command, p) {
				return true
			}
		}
		return false
	}
}

var (
	leaveQueuePhrases   = []string{"leave queue", "leave the queue", "exit queue", "remove me"}
	queueStatusPhrases  = []string{"queue status", "my position", "where am i", "how long"}
	joinQueuePhrases    = []string{"join queue", "join the queue", "add me to queue", "add me to the queue", "waitlist", "wait list"}
	viewBookingPhrases  = []string{"my booking", "view booking", "show booking", "booking status"}
	cancelBookingPhrase = []string{"cancel booking", "cancel my booking", "cancel reservation"}
	makeBookingPhrases  = []string{"make booking", "make a booking", "book a table", "book", "reserve", "reservation"}
	callNextPhrases     = []string{"call next", "next guest"}
	adminQueuePhrases   = []string{"admin queue", "queue overview"}
	helpPhrases         = []string{"help", "menu", "hello", "start"}
)

// commandTable fixes the matching order. Some phrases overlap ("my booking" is
// part of "cancel my booking", "book" of both); earlier rows shadow later ones.
func (d *dispatcherImpl) commandTable() []command {
	return []command{
		{name: "leave_queue", matches: containsAny(leaveQueuePhrases...), handle: d.leaveQueue},
		{name: "queue_status", matches: containsAny(queueStatusPhrases...), handle: d.queueStatus},
		{name: "join_queue", matches: containsAny(joinQueuePhrases...), handle: d.startQueueFlow},
		{name: "cancel_booking", matches: containsAny(cancelBookingPhrase...), handle: d.cancelBooking},
		{name: "view_booking", matches: containsAny(viewBookingPhrases...), handle: d.viewBookings},
		{name: "make_booking", matches: containsAny(makeBookingPhrases...), handle: d.startBookingFlow},
		{name: "call_next", matches: d.adminOnly(callNextPhrases...), handle: d.adminCallNext},
		{name: "admin_queue", matches: d.adminOnly(adminQueuePhrases...), handle: d.adminQueueOverview},
		{name: "help", matches: containsAny(helpPhrases...), handle: d.help},
	}
}

// adminOnly matches the phrases only for guests holding an admin account.
func (d *dispatcherImpl) adminOnly(phrases ...string) func(context.Context, *request) bool {
	match := containsAny(phrases...)
	return func(ctx context.Context, req *request) bool {
		return match(ctx, req) && d.gate.IsAdmin(ctx, req.guest)
	}
}

func (d *dispatcherImpl) help(_ context.Context, _ *request) (Reply, error) {
	return ok(msgHelp), nil
}

func (d *dispatcherImpl) queueStatus(ctx context.Context, req *request) (Reply, error) {
	entry, err := d.engine.FindActive(ctx, req.guest)
	if err != nil {
		return Reply{}, err
	}
	if entry == nil {
		return fail(msgNotInQueue), nil
	}

	name := entry.LocationID
	if st, err := d.engine.Status(ctx, queue.StatusQuery{LocationID: entry.LocationID, Date: entry.Date}); err == nil && st.Metadata != nil {
		name = st.Metadata.LocationName
	}
	return ok(fmt.Sprintf("You're #%d in the queue at %s. Estimated wait: %d minutes.",
		entry.Position, name, entry.EstimatedWaitTime)), nil
}

func (d *dispatcherImpl) leaveQueue(ctx context.Context, req *request) (Reply, error) {
	res, err := d.engine.Leave(ctx, req.guest)
	if err != nil {
		return Reply{}, err
	}
	if res == nil {
		return fail(msgNotInQueue), nil
	}
	return ok(msgLeftQueue), nil
}

func (d *dispatcherImpl) viewBookings(ctx context.Context, req *request) (Reply, error) {
	upcoming, err := d.bookings.Upcoming(ctx, req.guest)
	if err != nil {
		return Reply{}, err
	}
	if len(upcoming) == 0 {
		return fail(msgNoBookings), nil
	}

	var sb strings.Builder
	sb.WriteString("Your upcoming bookings:")
	for _, b := range upcoming {
		fmt.Fprintf(&sb, "\n- %s at %s, %s (%s), %d guests [%s]",
			b.Date, b.Time, b.Location, b.Section, b.NumberOfGuests, b.Status)
	}
	return ok(sb.String()), nil
}

func (d *dispatcherImpl) cancelBooking(ctx context.Context, req *request) (Reply, error) {
	b, err := d.bookings.CancelLatest(ctx, req.guest)
	if err != nil {
		if errors.Is(err, booking.ErrNoUpcomingBooking) {
			return fail(msgNoBookingsCancel), nil
		}
		return Reply{}, err
	}
	return ok(fmt.Sprintf("Your booking for %s at %s (%s) has been cancelled.", b.Date, b.Time, b.Location)), nil
}

func (d *dispatcherImpl) startQueueFlow(ctx context.Context, req *request) (Reply, error) {
	ttl := d.flows.TTL()
	if req.location != nil {
		st := flow.New(flow.KindQueue, req.guest, flow.StepQueuePartySize, req.now, ttl)
		st.LocationPreset = true
		st.Answers.LocationID = req.location.LocationID
		st.Answers.Location = presetName(req.location)
		if err := d.flows.Put(ctx, st); err != nil {
			return Reply{}, err
		}
		return prompt(st.Step.String(), msgAskPartySize), nil
	}

	st := flow.New(flow.KindQueue, req.guest, flow.StepQueueLocation, req.now, ttl)
	if err := d.flows.Put(ctx, st); err != nil {
		return Reply{}, err
	}
	return prompt(st.Step.String(), msgAskLocation), nil
}

func (d *dispatcherImpl) startBookingFlow(ctx context.Context, req *request) (Reply, error) {
	st := flow.New(flow.KindBooking, req.guest, flow.StepBookingDate, req.now, d.flows.TTL())
	if req.location != nil {
		st.LocationPreset = true
		st.Answers.LocationID = req.location.LocationID
		st.Answers.Location = presetName(req.location)
	}
	if err := d.flows.Put(ctx, st); err != nil {
		return Reply{}, err
	}
	return prompt(st.Step.String(), msgAskDate), nil
}

func presetName(lc *LocationContext) string {
	if name := strings.TrimSpace(lc.LocationName); name != "" {
		return name
	}
	return textnorm.DisplayName(lc.LocationID)
}
