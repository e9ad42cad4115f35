// Package flowstate persists in-progress guest conversations, one record per
// flow kind per guest.
package flowstate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"table-concierge/internal/domain/flow"
	"table-concierge/internal/pkg/clock"
	"table-concierge/internal/pkg/errs"
	"table-concierge/internal/pkg/phone"
	"table-concierge/internal/usecase/shared"
)

var ErrFlowNotFound = errs.Mark(errs.New("no active flow"), errs.ErrNotFound)

type Repository interface {
	// Get returns ErrFlowNotFound when no state exists or the stored one has
	// expired; expired states are deleted on the way out.
	Get(ctx context.Context, kind flow.Kind, guestPhone string) (*flow.State, error)
	Put(ctx context.Context, state *flow.State) error
	Delete(ctx context.Context, kind flow.Kind, guestPhone string) error
	// SweepExpired deletes every expired state and reports how many went.
	SweepExpired(ctx context.Context) (int, error)
	TTL() time.Duration
}

type repositoryImpl struct {
	store  shared.Store
	clock  clock.Clock
	ttl    time.Duration
	logger *slog.Logger
}

func NewRepository(store shared.Store, clk clock.Clock, ttl time.Duration, logger *slog.Logger) Repository {
	return &repositoryImpl{store: store, clock: clk, ttl: ttl, logger: logger}
}

func (r *repositoryImpl) TTL() time.Duration {
	return r.ttl
}

func (r *repositoryImpl) Get(ctx context.Context, kind flow.Kind, guestPhone string) (*flow.State, error) {
	state, _, err := shared.GetJSON[flow.State](ctx, r.store, shared.FlowPath(string(kind), guestPhone))
	if err != nil {
		if errors.Is(err, shared.ErrDocumentNotFound) {
			return nil, ErrFlowNotFound
		}
		return nil, errs.Mark(errs.Wrap(err, "failed to load flow state"), errs.ErrTransientStore)
	}

	if state.Expired(r.clock.Now()) {
		if err := r.Delete(ctx, kind, guestPhone); err != nil {
			r.logger.Warn("failed to delete expired flow", "kind", kind, "guest", phone.Mask(guestPhone), "error", err.Error())
		}
		r.logger.Info("flow expired", "kind", kind, "guest", phone.Mask(guestPhone), "step", state.Step)
		return nil, ErrFlowNotFound
	}
	return state, nil
}

func (r *repositoryImpl) Put(ctx context.Context, state *flow.State) error {
	if _, err := shared.PutJSON(ctx, r.store, shared.FlowPath(string(state.Kind), state.GuestPhone), state); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to save flow state"), errs.ErrTransientStore)
	}
	return nil
}

func (r *repositoryImpl) Delete(ctx context.Context, kind flow.Kind, guestPhone string) error {
	if err := r.store.Delete(ctx, shared.FlowPath(string(kind), guestPhone)); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to delete flow state"), errs.ErrTransientStore)
	}
	return nil
}

func (r *repositoryImpl) SweepExpired(ctx context.Context) (int, error) {
	now := r.clock.Now()
	removed := 0
	for _, kind := range []flow.Kind{flow.KindQueue, flow.KindBooking} {
		states, err := shared.ListJSON[flow.State](ctx, r.store, shared.FlowKindPrefix(string(kind)))
		if err != nil {
			return removed, errs.Mark(errs.Wrap(err, "failed to list flow states"), errs.ErrTransientStore)
		}
		for _, st := range states {
			if !st.Expired(now) {
				continue
			}
			if err := r.store.Delete(ctx, shared.FlowPath(string(kind), st.GuestPhone)); err != nil {
				return removed, errs.Mark(errs.Wrap(err, "failed to delete flow state"), errs.ErrTransientStore)
			}
			removed++
		}
	}
	return removed, nil
}
