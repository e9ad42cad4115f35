// Package conversation routes inbound guest messages either to an active
// flow (queue first, then booking) or to an ordered table of commands.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"table-concierge/internal/domain/flow"
	"table-concierge/internal/pkg/clock"
	"table-concierge/internal/pkg/errs"
	"table-concierge/internal/pkg/phone"
	"table-concierge/internal/pkg/textnorm"
	"table-concierge/internal/usecase/access"
	"table-concierge/internal/usecase/booking"
	"table-concierge/internal/usecase/flowstate"
	"table-concierge/internal/usecase/queue"
	"table-concierge/internal/usecase/shared"
)

//go:generate mockgen -source=dispatcher.go -destination=../../../tests/mock/conversation/dispatcher.go -package=conversationmock
type Dispatcher interface {
	// Handle never returns an error; failures become apologetic replies.
	Handle(ctx context.Context, in Inbound) Reply
}

type dispatcherImpl struct {
	flows     flowstate.Repository
	engine    queue.Engine
	bookings  booking.Service
	gate      access.Gate
	guests    shared.GuestDirectory
	locations shared.LocationDirectory
	accounts  shared.AccountDirectory
	clock     clock.Clock
	loc       *time.Location
	logger    *slog.Logger
	commands  []command
}

func NewDispatcher(
	flows flowstate.Repository,
	engine queue.Engine,
	bookings booking.Service,
	gate access.Gate,
	guests shared.GuestDirectory,
	locations shared.LocationDirectory,
	accounts shared.AccountDirectory,
	clk clock.Clock,
	loc *time.Location,
	logger *slog.Logger,
) Dispatcher {
	if loc == nil {
		loc = time.UTC
	}
	d := &dispatcherImpl{
		flows:     flows,
		engine:    engine,
		bookings:  bookings,
		gate:      gate,
		guests:    guests,
		locations: locations,
		accounts:  accounts,
		clock:     clk,
		loc:       loc,
		logger:    logger,
	}
	d.commands = d.commandTable()
	return d
}

func (d *dispatcherImpl) Handle(ctx context.Context, in Inbound) (reply Reply) {
	text := strings.TrimSpace(in.Message)
	if text == "" || !phone.Valid(in.GuestIdentity) {
		return fail(msgInvalidInput)
	}

	req := &request{
		guest:    phone.Normalize(in.GuestIdentity),
		text:     text,
		command:  textnorm.Command(text),
		location: in.LocationContext,
		now:      d.clock.Now().In(d.loc),
	}
	if req.location != nil && strings.TrimSpace(req.location.LocationID) == "" {
		req.location = nil
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic while handling message",
				"guest", phone.Mask(req.guest),
				"panic", fmt.Sprint(r))
			reply = fail(msgApology)
		}
	}()

	reply, err := d.dispatch(ctx, req)
	if err != nil {
		d.logger.Error("failed to handle message",
			"guest", phone.Mask(req.guest),
			"transient", errs.Is(err, errs.ErrTransientStore),
			"error", err.Error())
		return fail(msgApology)
	}
	return reply
}

func (d *dispatcherImpl) dispatch(ctx context.Context, req *request) (Reply, error) {
	if st, err := d.activeFlow(ctx, flow.KindQueue, req.guest); err != nil || st != nil {
		if err != nil {
			return Reply{}, err
		}
		return d.continueQueueFlow(ctx, req, st)
	}
	if st, err := d.activeFlow(ctx, flow.KindBooking, req.guest); err != nil || st != nil {
		if err != nil {
			return Reply{}, err
		}
		return d.continueBookingFlow(ctx, req, st)
	}

	for _, c := range d.commands {
		if c.matches(ctx, req) {
			d.logger.Debug("command matched", "command", c.name, "guest", phone.Mask(req.guest))
			return c.handle(ctx, req)
		}
	}
	return fail(msgHelp), nil
}

// activeFlow returns nil without error when the guest has no flow of kind.
func (d *dispatcherImpl) activeFlow(ctx context.Context, kind flow.Kind, guest string) (*flow.State, error) {
	st, err := d.flows.Get(ctx, kind, guest)
	if err != nil {
		if errors.Is(err, flowstate.ErrFlowNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return st, nil
}

// endFlow deletes the flow state; a failed delete is logged, the reply stands.
func (d *dispatcherImpl) endFlow(ctx context.Context, st *flow.State) {
	if err := d.flows.Delete(ctx, st.Kind, st.GuestPhone); err != nil {
		d.logger.Warn("failed to delete flow state",
			"kind", st.Kind,
			"guest", phone.Mask(st.GuestPhone),
			"error", err.Error())
	}
}

func (d *dispatcherImpl) guestName(ctx context.Context, guest string) string {
	name, err := d.guests.GuestName(ctx, guest)
	if err != nil {
		d.logger.Warn("guest profile lookup failed", "guest", phone.Mask(guest), "error", err.Error())
	}
	if name == "" {
		return "Guest"
	}
	return name
}

// resolveLocation maps free text to a configured location by name; unknown
// names become a slug id and keep the guest's wording as display name. An
// empty id means the text holds no letters or digits.
func (d *dispatcherImpl) resolveLocation(ctx context.Context, text string) (string, string, error) {
	loc, err := d.locations.MatchLocation(ctx, text)
	if err != nil {
		return "", "", errs.Mark(errs.Wrap(err, "failed to resolve location"), errs.ErrTransientStore)
	}
	if loc != nil {
		name := loc.Name
		if name == "" {
			name = textnorm.DisplayName(loc.ID)
		}
		return loc.ID, name, nil
	}
	return textnorm.Slug(text), strings.TrimSpace(text), nil
}
