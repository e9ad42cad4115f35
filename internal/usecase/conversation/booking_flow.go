package conversation

import (
	"context"
	"fmt"
	"strings"

	"table-concierge/internal/domain/flow"
	"table-concierge/internal/pkg/errs"
	"table-concierge/internal/pkg/phone"
	"table-concierge/internal/usecase/booking"
)

func (d *dispatcherImpl) continueBookingFlow(ctx context.Context, req *request, st *flow.State) (Reply, error) {
	if flow.IsCancel(req.text) {
		if err := d.flows.Delete(ctx, flow.KindBooking, req.guest); err != nil {
			return Reply{}, err
		}
		return ok(msgBookingCancelled), nil
	}

	ttl := d.flows.TTL()
	advance := func(next flow.Step, msg string) (Reply, error) {
		st.Advance(next, req.now, ttl)
		if err := d.flows.Put(ctx, st); err != nil {
			return Reply{}, err
		}
		return prompt(next.String(), msg), nil
	}

	switch st.Step {
	case flow.StepBookingDate:
		date, err := flow.ParseDate(req.text, req.now)
		if err != nil {
			return reprompt(st.Step.String(), msgAskDateAgain), nil
		}
		st.Answers.Date = date
		return advance(flow.StepBookingTime, msgAskTime)

	case flow.StepBookingTime:
		at, err := flow.ParseTime(req.text)
		if err != nil {
			return reprompt(st.Step.String(), msgAskTimeAgain), nil
		}
		st.Answers.Time = at
		if st.Answers.Location != "" {
			return advance(flow.StepBookingSection, msgAskSection)
		}
		return advance(flow.StepBookingLocation, msgAskBookLocation)

	case flow.StepBookingLocation:
		text, err := flow.ParseText(req.text, flow.MinLocationLength)
		if err != nil {
			return reprompt(st.Step.String(), msgAskLocationAgain), nil
		}
		id, name, err := d.resolveLocation(ctx, text)
		if err != nil {
			return Reply{}, err
		}
		if id == "" {
			return reprompt(st.Step.String(), msgLocationUnreadable), nil
		}
		st.Answers.LocationID = id
		st.Answers.Location = name
		return advance(flow.StepBookingSection, msgAskSection)

	case flow.StepBookingSection:
		section, err := flow.ParseText(req.text, flow.MinSectionLength)
		if err != nil {
			return reprompt(st.Step.String(), msgAskSectionAgain), nil
		}
		st.Answers.Section = section
		return advance(flow.StepBookingGuests, msgAskGuests)

	case flow.StepBookingGuests:
		n, err := flow.ParseCount(req.text)
		if err != nil {
			return reprompt(st.Step.String(), msgAskPartySizeAgain), nil
		}
		st.Answers.PartySize = n
		return advance(flow.StepBookingSpecialRequests, msgAskSpecialRequests)

	case flow.StepBookingSpecialRequests:
		return d.commitBookingFlow(ctx, req, st)

	default:
		d.logger.Warn("resetting booking flow with unknown step", "step", st.Step, "guest", phone.Mask(req.guest))
		if err := d.flows.Delete(ctx, flow.KindBooking, req.guest); err != nil {
			return Reply{}, err
		}
		return fail(msgBookingReset), nil
	}
}

func (d *dispatcherImpl) commitBookingFlow(ctx context.Context, req *request, st *flow.State) (Reply, error) {
	st.Answers.SpecialRequests = flow.SpecialRequests(req.text)
	if st.Answers.GuestName == "" {
		st.Answers.GuestName = d.guestName(ctx, req.guest)
	}

	b, err := d.bookings.Create(ctx, booking.CreateRequest{
		GuestPhone:      req.guest,
		GuestName:       st.Answers.GuestName,
		Date:            st.Answers.Date,
		Time:            st.Answers.Time,
		LocationID:      st.Answers.LocationID,
		Location:        st.Answers.Location,
		Section:         st.Answers.Section,
		NumberOfGuests:  st.Answers.PartySize,
		SpecialRequests: st.Answers.SpecialRequests,
	})
	if err != nil {
		if errs.Is(err, booking.ErrInvalidBooking) {
			d.endFlow(ctx, st)
			return fail("Sorry, that booking is incomplete. Type \"make booking\" to start again."), nil
		}
		return Reply{}, err
	}

	d.endFlow(ctx, st)

	var sb strings.Builder
	sb.WriteString("Your booking request is in!\n")
	fmt.Fprintf(&sb, "Date: %s\nTime: %s\nLocation: %s\nSection: %s\nGuests: %d",
		b.Date, b.Time, b.Location, b.Section, b.NumberOfGuests)
	if b.SpecialRequests != "" {
		fmt.Fprintf(&sb, "\nRequests: %s", b.SpecialRequests)
	}
	sb.WriteString("\nWe'll confirm it shortly.")
	return ok(sb.String()), nil
}
