package shared

import (
	"context"
	"time"

	"table-concierge/internal/domain/tier"
	"table-concierge/internal/domain/user"
)

// Write-side snapshots of reference data owned by other collaborators
// (location setup, guest profiles, subscriber accounts).

type LocationSnapshot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MaxCapacity int    `json:"maxCapacity,omitempty"`
}

type GuestSnapshot struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

type AccountRecord struct {
	UserID            string             `json:"userId"`
	Email             string             `json:"email"`
	Phone             string             `json:"phoneNumber,omitempty"`
	PasswordHash      string             `json:"passwordHash,omitempty"`
	Role              user.Role          `json:"role"`
	CustomAdmin       bool               `json:"isAdmin,omitempty"`
	Status            user.AccountStatus `json:"status"`
	PrimaryLocationID string             `json:"primaryLocationId,omitempty"`
}

type GrantRecord struct {
	LocationID string    `json:"locationId"`
	GrantedAt  time.Time `json:"grantedAt"`
}

type LocationDirectory interface {
	// FindLocation returns ErrDocumentNotFound when the location is not configured.
	FindLocation(ctx context.Context, id string) (*LocationSnapshot, error)
	// MatchLocation finds a configured location by case-insensitive name; nil when none matches.
	MatchLocation(ctx context.Context, text string) (*LocationSnapshot, error)
}

type GuestDirectory interface {
	// GuestName returns "" when no profile exists.
	GuestName(ctx context.Context, guestPhone string) (string, error)
}

type AccountDirectory interface {
	FindAccount(ctx context.Context, userID string) (*user.Account, *AccountRecord, error)
	FindAccountByEmail(ctx context.Context, email string) (*user.Account, *AccountRecord, error)
	FindAccountByPhone(ctx context.Context, guestPhone string) (*user.Account, *AccountRecord, error)
	ListAccounts(ctx context.Context) ([]*user.Account, error)
	LocationGrants(ctx context.Context, userID string) ([]string, error)
	HasLocationGrant(ctx context.Context, userID, locationID string) (bool, error)
}

type SubscriptionDirectory interface {
	// FindSubscription returns ErrDocumentNotFound when no subscription record exists.
	FindSubscription(ctx context.Context, userID string) (*tier.Subscription, error)
}
