package response

import (
	"time"

	"table-concierge/internal/usecase/commands"
)

type LoginResponse struct {
	AccessToken string         `json:"accessToken"`
	ExpiresAt   time.Time      `json:"expiresAt"`
	User        AccountSummary `json:"user"`
}

type AccountSummary struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

func FromLoginResult(r *commands.LoginResult) LoginResponse {
	return LoginResponse{
		AccessToken: r.AccessToken,
		ExpiresAt:   r.ExpiresAt,
		User: AccountSummary{
			ID:      r.UserID,
			Role:    r.Role.String(),
			IsAdmin: r.IsAdmin,
		},
	}
}
