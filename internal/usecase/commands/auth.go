package commands

import (
	"context"
	"log/slog"
	"time"

	"table-concierge/internal/domain/user"
	"table-concierge/internal/pkg/errs"
	"table-concierge/internal/pkg/jwt"
	"table-concierge/internal/pkg/password"
	"table-concierge/internal/usecase/shared"
)

var (
	ErrInvalidCredentials   = errs.Mark(errs.New("invalid credentials"), errs.ErrAccessDenied)
	ErrUserInactive         = errs.Mark(errs.New("user inactive"), errs.ErrAccessDenied)
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID      string
	Role        user.Role
	IsAdmin     bool
	AccessToken string
	ExpiresAt   time.Time
}

//go:generate mockgen -source=auth.go -destination=../../../tests/mock/commands/auth.go -package=commandsmock

// AuthCommands authenticates subscriber accounts for the admin API.
type AuthCommands interface {
	Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type authCommandsImpl struct {
	accounts   shared.AccountDirectory
	jwtService *jwt.Service
	logger     *slog.Logger
}

func NewAuthCommands(accounts shared.AccountDirectory, jwtService *jwt.Service, logger *slog.Logger) AuthCommands {
	return &authCommandsImpl{
		accounts:   accounts,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email, err := user.NewEmail(cmd.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	account, err := a.validateAccount(ctx, email, cmd.Password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := a.jwtService.GenerateToken(account.ID(), account.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	if password.NeedsRehash(account.PasswordHash()) {
		a.logger.Warn("account password hash uses an outdated cost", "user_id", account.ID())
	}

	return &LoginResult{
		UserID:      account.ID(),
		Role:        account.Role(),
		IsAdmin:     account.IsAdmin(),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (a *authCommandsImpl) validateAccount(ctx context.Context, email user.Email, plain string) (*user.Account, error) {
	account, _, err := a.accounts.FindAccountByEmail(ctx, email.Value())
	if err != nil {
		if errs.Is(err, shared.ErrDocumentNotFound) {
			// Same error as a password mismatch to prevent user enumeration
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if err := password.Compare(account.PasswordHash(), plain); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !account.IsActive() {
		return nil, ErrUserInactive
	}

	return account, nil
}
