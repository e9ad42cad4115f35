package conversation

import (
	"context"

	"table-concierge/internal/domain/flow"
	domqueue "table-concierge/internal/domain/queue"
	"table-concierge/internal/pkg/phone"
	"table-concierge/internal/usecase/queue"
)

func (d *dispatcherImpl) continueQueueFlow(ctx context.Context, req *request, st *flow.State) (Reply, error) {
	if flow.IsCancel(req.text) {
		if err := d.flows.Delete(ctx, flow.KindQueue, req.guest); err != nil {
			return Reply{}, err
		}
		return ok(msgQueueCancelled), nil
	}

	switch st.Step {
	case flow.StepQueueLocation:
		return d.queueLocationStep(ctx, req, st)
	case flow.StepQueuePartySize:
		return d.queuePartySizeStep(ctx, req, st)
	case flow.StepQueueSpecialRequests:
		return d.commitQueueFlow(ctx, req, st)
	default:
		d.logger.Warn("resetting queue flow with unknown step", "step", st.Step, "guest", phone.Mask(req.guest))
		if err := d.flows.Delete(ctx, flow.KindQueue, req.guest); err != nil {
			return Reply{}, err
		}
		return fail(msgQueueReset), nil
	}
}

func (d *dispatcherImpl) queueLocationStep(ctx context.Context, req *request, st *flow.State) (Reply, error) {
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
	st.Advance(flow.StepQueuePartySize, req.now, d.flows.TTL())
	if err := d.flows.Put(ctx, st); err != nil {
		return Reply{}, err
	}
	return prompt(st.Step.String(), msgAskPartySize), nil
}

func (d *dispatcherImpl) queuePartySizeStep(ctx context.Context, req *request, st *flow.State) (Reply, error) {
	n, err := flow.ParseCount(req.text)
	if err != nil {
		return reprompt(st.Step.String(), msgAskPartySizeAgain), nil
	}
	st.Answers.PartySize = n
	st.Advance(flow.StepQueueSpecialRequests, req.now, d.flows.TTL())
	if err := d.flows.Put(ctx, st); err != nil {
		return Reply{}, err
	}
	return prompt(st.Step.String(), msgAskSpecialRequests), nil
}

// commitQueueFlow joins the queue. The flow ends whatever the engine decides;
// only a store failure keeps it so the guest can resend the last answer.
func (d *dispatcherImpl) commitQueueFlow(ctx context.Context, req *request, st *flow.State) (Reply, error) {
	st.Answers.SpecialRequests = flow.SpecialRequests(req.text)
	if st.Answers.GuestName == "" {
		st.Answers.GuestName = d.guestName(ctx, req.guest)
	}

	res, err := d.engine.Join(ctx, queue.JoinRequest{
		LocationID:      st.Answers.LocationID,
		GuestName:       st.Answers.GuestName,
		GuestPhone:      req.guest,
		PartySize:       st.Answers.PartySize,
		SpecialRequests: st.Answers.SpecialRequests,
		Origin:          domqueue.OriginGuest,
		DuplicateScope:  queue.DuplicateScopeAllLocations,
	})
	if err != nil {
		return Reply{}, err
	}

	d.endFlow(ctx, st)
	if !res.Success {
		return Reply{
			Success:         false,
			Message:         res.Message,
			RequiresUpgrade: res.RequiresUpgrade,
			RequiredFeature: res.RequiredFeature,
			Usage:           res.Usage,
		}, nil
	}
	return ok(res.Message), nil
}
