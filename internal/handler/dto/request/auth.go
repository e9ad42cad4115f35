package request

import "table-concierge/internal/usecase/commands"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r LoginRequest) ToCommand() commands.LoginCommand {
	return commands.LoginCommand{
		Email:    r.Email,
		Password: r.Password,
	}
}
