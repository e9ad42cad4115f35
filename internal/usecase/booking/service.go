// Package booking stores guest table bookings and alerts restaurant admins.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	dombooking "table-concierge/internal/domain/booking"
	"table-concierge/internal/pkg/clock"
	"table-concierge/internal/pkg/errs"
	"table-concierge/internal/pkg/phone"
	"table-concierge/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNoUpcomingBooking = errs.Mark(errs.New("no upcoming booking"), errs.ErrNotFound)
	ErrInvalidBooking    = errs.Mark(errs.New("invalid booking"), errs.ErrValidation)
)

const notificationKind = "booking_created"

type CreateRequest struct {
	GuestPhone      string
	GuestName       string
	Date            string
	Time            string
	LocationID      string
	Location        string
	Section         string
	NumberOfGuests  int
	SpecialRequests string
}

type Service interface {
	// Create stores a pending booking and notifies admins in the background.
	Create(ctx context.Context, req CreateRequest) (*dombooking.Booking, error)
	// Upcoming lists the guest's bookings from today on, soonest first.
	Upcoming(ctx context.Context, guestPhone string) ([]*dombooking.Booking, error)
	// CancelLatest cancels the most recently created upcoming booking.
	CancelLatest(ctx context.Context, guestPhone string) (*dombooking.Booking, error)
	// Wait blocks until background notifications have finished.
	Wait()
}

type serviceImpl struct {
	store    shared.Store
	accounts shared.AccountDirectory
	sender   shared.MessageSender
	clock    clock.Clock
	loc      *time.Location
	logger   *slog.Logger
	inflight sync.WaitGroup
}

func NewService(
	store shared.Store,
	accounts shared.AccountDirectory,
	sender shared.MessageSender,
	clk clock.Clock,
	loc *time.Location,
	logger *slog.Logger,
) Service {
	if loc == nil {
		loc = time.UTC
	}
	return &serviceImpl{
		store:    store,
		accounts: accounts,
		sender:   sender,
		clock:    clk,
		loc:      loc,
		logger:   logger,
	}
}

func (s *serviceImpl) today() string {
	return s.clock.Now().In(s.loc).Format("2006-01-02")
}

func (s *serviceImpl) Create(ctx context.Context, req CreateRequest) (*dombooking.Booking, error) {
	b, err := dombooking.New(dombooking.NewParams{
		ID:              uuid.NewString(),
		GuestPhone:      req.GuestPhone,
		GuestName:       req.GuestName,
		Date:            req.Date,
		Time:            req.Time,
		LocationID:      req.LocationID,
		Location:        req.Location,
		Section:         req.Section,
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
		Now:             s.clock.Now(),
	})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, ErrInvalidBooking.Error()), ErrInvalidBooking)
	}

	if _, err := shared.CreateJSON(ctx, s.store, shared.BookingPath(b.ID), b); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to save booking"), errs.ErrTransientStore)
	}

	s.logger.Info("booking created",
		"booking_id", b.ID,
		"date", b.Date,
		"location", b.Location,
		"guest", phone.Mask(b.GuestPhone))

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.notifyAdmins(context.WithoutCancel(ctx), b)
	}()
	return b, nil
}

func (s *serviceImpl) Wait() {
	s.inflight.Wait()
}

// notifyAdmins alerts every active admin account with a phone number.
// Failures are logged and never reach the guest.
func (s *serviceImpl) notifyAdmins(ctx context.Context, b *dombooking.Booking) {
	accounts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		s.logger.Error("failed to resolve admin recipients", "booking_id", b.ID, "error", err.Error())
		return
	}

	body := adminAlert(b)
	sent := 0
	for _, acc := range accounts {
		if !acc.Notifiable() {
			continue
		}
		msg := shared.OutboundMessage{To: acc.Phone(), Body: body, Kind: notificationKind}
		if err := s.sender.Send(ctx, msg); err != nil {
			s.logger.Warn("admin booking alert failed",
				"booking_id", b.ID,
				"admin_id", acc.ID(),
				"error", err.Error())
			continue
		}
		sent++
	}
	s.logger.Debug("admin booking alerts sent", "booking_id", b.ID, "count", sent)
}

func adminAlert(b *dombooking.Booking) string {
	var sb strings.Builder
	sb.WriteString("New booking request\n")
	name := b.GuestName
	if name == "" {
		name = "Guest"
	}
	fmt.Fprintf(&sb, "%s (%s)\n", name, b.GuestPhone)
	fmt.Fprintf(&sb, "%s at %s, %d guests\n", b.Date, b.Time, b.NumberOfGuests)
	fmt.Fprintf(&sb, "%s, %s", b.Location, b.Section)
	if b.SpecialRequests != "" {
		fmt.Fprintf(&sb, "\nRequests: %s", b.SpecialRequests)
	}
	return sb.String()
}

func (s *serviceImpl) guestBookings(ctx context.Context, guestPhone string) ([]*dombooking.Booking, error) {
	all, err := shared.ListJSON[dombooking.Booking](ctx, s.store, shared.BookingsPrefix())
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to list bookings"), errs.ErrTransientStore)
	}
	today := s.today()
	out := make([]*dombooking.Booking, 0)
	for _, b := range all {
		if b.GuestPhone == guestPhone && b.IsUpcoming(today) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *serviceImpl) Upcoming(ctx context.Context, guestPhone string) ([]*dombooking.Booking, error) {
	out, err := s.guestBookings(ctx, guestPhone)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (s *serviceImpl) CancelLatest(ctx context.Context, guestPhone string) (*dombooking.Booking, error) {
	bookings, err := s.guestBookings(ctx, guestPhone)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrNoUpcomingBooking
	}
	latest := bookings[0]
	for _, b := range bookings[1:] {
		if b.CreatedAt.After(latest.CreatedAt) {
			latest = b
		}
	}

	now := s.clock.Now()
	updated, err := shared.UpdateJSON(ctx, s.store, shared.BookingPath(latest.ID), func(cur *dombooking.Booking) (*dombooking.Booking, error) {
		if cur == nil {
			return nil, ErrNoUpcomingBooking
		}
		if err := cur.Cancel(now); err != nil {
			return nil, ErrNoUpcomingBooking
		}
		return cur, nil
	})
	if err != nil {
		if errs.Is(err, ErrNoUpcomingBooking) {
			return nil, ErrNoUpcomingBooking
		}
		return nil, errs.Mark(errs.Wrap(err, "failed to cancel booking"), errs.ErrTransientStore)
	}

	s.logger.Info("booking cancelled", "booking_id", updated.ID, "guest", phone.Mask(guestPhone))
	return updated, nil
}
