package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domqueue "table-concierge/internal/domain/queue"
	"table-concierge/internal/usecase/queue"
)

// adminLocations lists the primary location first, then the granted ones.
func (d *dispatcherImpl) adminLocations(ctx context.Context, guest string) (string, []string, error) {
	acc, rec, err := d.accounts.FindAccountByPhone(ctx, guest)
	if err != nil {
		return "", nil, err
	}
	grants, err := d.accounts.LocationGrants(ctx, acc.ID())
	if err != nil {
		return "", nil, err
	}

	seen := map[string]bool{}
	var out []string
	for _, loc := range append([]string{rec.PrimaryLocationID}, grants...) {
		if loc == "" || seen[loc] {
			continue
		}
		seen[loc] = true
		out = append(out, loc)
	}
	return acc.ID(), out, nil
}

func (d *dispatcherImpl) adminCallNext(ctx context.Context, req *request) (Reply, error) {
	adminID, locations, err := d.adminLocations(ctx, req.guest)
	if err != nil {
		return Reply{}, err
	}
	if len(locations) == 0 {
		return fail(msgAdminNoLocation), nil
	}

	denial, err := d.gate.AuthorizeQueueRead(ctx, adminID, locations[0])
	if err != nil {
		return Reply{}, err
	}
	if denial != nil {
		return fail(fmt.Sprintf(msgAdminDenied, locations[0], denial.Reason)), nil
	}

	res, err := d.engine.CallNext(ctx, locations[0], adminID)
	if err != nil {
		if errors.Is(err, queue.ErrQueueEmpty) {
			return ok(msgAdminQueueEmpty), nil
		}
		return Reply{}, err
	}

	e := res.Entry
	msg := fmt.Sprintf("Called %s (party of %d).", e.GuestName, e.PartySize)
	if !res.Notified {
		msg += " The guest could not be notified; please call them on " + e.GuestPhone + "."
	}
	return ok(msg), nil
}

func (d *dispatcherImpl) adminQueueOverview(ctx context.Context, req *request) (Reply, error) {
	adminID, locations, err := d.adminLocations(ctx, req.guest)
	if err != nil {
		return Reply{}, err
	}
	if len(locations) == 0 {
		return fail(msgAdminNoLocation), nil
	}

	var sb strings.Builder
	sb.WriteString("Today's queues:")
	for _, loc := range locations {
		st, err := d.engine.Status(ctx, queue.StatusQuery{LocationID: loc, CallerID: adminID})
		if err != nil {
			return Reply{}, err
		}
		if st.Denial != nil {
			fmt.Fprintf(&sb, "\n%s: %s", loc, st.Denial.Reason)
			continue
		}
		name := loc
		if st.Metadata != nil {
			name = st.Metadata.LocationName
		}
		fmt.Fprintf(&sb, "\n%s: %d waiting, %d called, %d seated", name, st.Summary.Waiting, st.Summary.Called, st.Summary.Seated)
		for _, e := range st.Entries {
			if e.Status != domqueue.StatusWaiting {
				continue
			}
			fmt.Fprintf(&sb, "\n  #%d %s (%d)", e.Position, e.GuestName, e.PartySize)
		}
	}
	return ok(sb.String()), nil
}
