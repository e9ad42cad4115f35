//go:build unit || integration

package builder

import (
	reqdto "table-concierge/internal/handler/dto/request"
	"table-concierge/internal/usecase/commands"
)

type AuthBuilder struct {
	Email    string
	Password string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Email:    "owner@example.com",
		Password: "password123",
	}
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

func (a *AuthBuilder) BuildCommand() commands.LoginCommand {
	return a.BuildDTO().ToCommand()
}
