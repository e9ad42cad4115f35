// Package directory reads reference records (locations, guests, subscriber
// accounts, subscriptions) from the keyed store.
package directory

import (
	"context"
	"errors"
	"strings"

	"table-concierge/internal/domain/tier"
	"table-concierge/internal/domain/user"
	"table-concierge/internal/pkg/errs"
	"table-concierge/internal/usecase/shared"
)

type Directory struct {
	store shared.Store
}

func New(store shared.Store) *Directory {
	return &Directory{store: store}
}

func (d *Directory) FindLocation(ctx context.Context, id string) (*shared.LocationSnapshot, error) {
	loc, _, err := shared.GetJSON[shared.LocationSnapshot](ctx, d.store, shared.LocationPath(id))
	if err != nil {
		return nil, err
	}
	if loc.ID == "" {
		loc.ID = id
	}
	return loc, nil
}

func (d *Directory) MatchLocation(ctx context.Context, text string) (*shared.LocationSnapshot, error) {
	want := strings.ToLower(strings.TrimSpace(text))
	if want == "" {
		return nil, nil
	}
	docs, err := d.store.List(ctx, shared.LocationsPrefix())
	if err != nil {
		return nil, err
	}
	locations := make([]*shared.LocationSnapshot, 0, len(docs))
	for _, doc := range docs {
		loc, _, err := shared.GetJSON[shared.LocationSnapshot](ctx, d.store, doc.Path)
		if err != nil {
			continue
		}
		if loc.ID == "" {
			loc.ID = shared.LastSegment(doc.Path)
		}
		locations = append(locations, loc)
	}

	// exact name or id first, then containment either way
	for _, loc := range locations {
		if strings.ToLower(loc.Name) == want || strings.ToLower(loc.ID) == want {
			return loc, nil
		}
	}
	for _, loc := range locations {
		name := strings.ToLower(loc.Name)
		if name != "" && (strings.Contains(name, want) || strings.Contains(want, name)) {
			return loc, nil
		}
	}
	return nil, nil
}

func (d *Directory) GuestName(ctx context.Context, guestPhone string) (string, error) {
	g, _, err := shared.GetJSON[shared.GuestSnapshot](ctx, d.store, shared.GuestPath(guestPhone))
	if err != nil {
		if errors.Is(err, shared.ErrDocumentNotFound) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(g.Name), nil
}

func (d *Directory) FindSubscription(ctx context.Context, userID string) (*tier.Subscription, error) {
	sub, _, err := shared.GetJSON[tier.Subscription](ctx, d.store, shared.SubscriptionPath(userID))
	if err != nil {
		return nil, err
	}
	sub.UserID = userID
	return sub, nil
}

func (d *Directory) FindAccount(ctx context.Context, userID string) (*user.Account, *shared.AccountRecord, error) {
	rec, _, err := shared.GetJSON[shared.AccountRecord](ctx, d.store, shared.AccountPath(userID))
	if err != nil {
		return nil, nil, err
	}
	if rec.UserID == "" {
		rec.UserID = userID
	}
	acc, err := d.toAccount(ctx, rec)
	if err != nil {
		return nil, nil, err
	}
	return acc, rec, nil
}

func (d *Directory) FindAccountByEmail(ctx context.Context, email string) (*user.Account, *shared.AccountRecord, error) {
	return d.findAccountBy(ctx, func(r *shared.AccountRecord) bool {
		return strings.EqualFold(strings.TrimSpace(r.Email), strings.TrimSpace(email))
	})
}

func (d *Directory) FindAccountByPhone(ctx context.Context, guestPhone string) (*user.Account, *shared.AccountRecord, error) {
	return d.findAccountBy(ctx, func(r *shared.AccountRecord) bool {
		return r.Phone != "" && r.Phone == guestPhone
	})
}

func (d *Directory) findAccountBy(ctx context.Context, match func(*shared.AccountRecord) bool) (*user.Account, *shared.AccountRecord, error) {
	records, err := d.accountRecords(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, rec := range records {
		if !match(rec) {
			continue
		}
		acc, err := d.toAccount(ctx, rec)
		if err != nil {
			return nil, nil, err
		}
		return acc, rec, nil
	}
	return nil, nil, shared.ErrDocumentNotFound
}

func (d *Directory) ListAccounts(ctx context.Context) ([]*user.Account, error) {
	records, err := d.accountRecords(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*user.Account, 0, len(records))
	for _, rec := range records {
		acc, err := d.toAccount(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, nil
}

func (d *Directory) accountRecords(ctx context.Context) ([]*shared.AccountRecord, error) {
	docs, err := d.store.List(ctx, shared.AccountsPrefix())
	if err != nil {
		return nil, err
	}
	out := make([]*shared.AccountRecord, 0, len(docs))
	for _, doc := range docs {
		rec, _, err := shared.GetJSON[shared.AccountRecord](ctx, d.store, doc.Path)
		if err != nil {
			continue
		}
		if rec.UserID == "" {
			rec.UserID = shared.LastSegment(doc.Path)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (d *Directory) toAccount(ctx context.Context, rec *shared.AccountRecord) (*user.Account, error) {
	claim, err := d.hasAdminClaim(ctx, rec.UserID)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(rec.Email)
	if err != nil {
		// accounts created by other tools may lack an email; keep them usable
		email = user.Email{}
	}
	status := rec.Status
	if status == "" {
		status = user.AccountActive
	}
	role := rec.Role
	if !role.IsValid() {
		role = user.RoleViewer
	}
	return user.ReconstructAccount(rec.UserID, email, rec.Phone, rec.PasswordHash, role, rec.CustomAdmin, claim, status), nil
}

func (d *Directory) hasAdminClaim(ctx context.Context, userID string) (bool, error) {
	_, err := d.store.Get(ctx, shared.AdminClaimPath(userID))
	if err != nil {
		if errors.Is(err, shared.ErrDocumentNotFound) {
			return false, nil
		}
		return false, errs.Wrap(err, "failed to read admin claim")
	}
	return true, nil
}

func (d *Directory) LocationGrants(ctx context.Context, userID string) ([]string, error) {
	docs, err := d.store.List(ctx, shared.UserLocationsPrefix(userID))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		out = append(out, shared.LastSegment(doc.Path))
	}
	return out, nil
}

func (d *Directory) HasLocationGrant(ctx context.Context, userID, locationID string) (bool, error) {
	_, err := d.store.Get(ctx, shared.UserLocationPath(userID, locationID))
	if err != nil {
		if errors.Is(err, shared.ErrDocumentNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
