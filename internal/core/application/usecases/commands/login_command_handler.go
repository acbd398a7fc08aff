package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// ErrInvalidCredentials does not reveal whether the email or the password was wrong.
var ErrInvalidCredentials = errs.NewPermissionDeniedError("log in with these credentials", "anonymous")

type LoginResult struct {
	User      *user.User
	Token     string
	ExpiresAt time.Time
}

type LoginCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	tokens     ports.TokenIssuer
}

func NewLoginCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		tokens:     tokens,
	}
}

func (h LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return LoginResult{}, err
	}

	u, err := h.uowFactory.Create().UserRepository().GetByEmail(ctx, cmd.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if !u.IsActive() {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err = h.hasher.Compare(u.PasswordHash(), cmd.Password()); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, expiresAt, err := h.tokens.Issue(u.Actor())
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: u, Token: token, ExpiresAt: expiresAt}, nil
}
