package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

var ErrEmailIsTaken = errs.NewValueIsInvalidErrorWithCause("email", errors.New("a user with this email already exists"))

type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	clock      kernel.Clock
}

func NewRegisterUserCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	clock kernel.Clock,
) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		clock:      clock,
	}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()

	_, err = userRepo.GetByEmail(ctx, cmd.Email())
	switch {
	case err == nil:
		return nil, ErrEmailIsTaken
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	u, err := h.newUser(cmd, hash)
	if err != nil {
		return nil, err
	}

	if err = userRepo.Add(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}

func (h RegisterUserCommandHandler) newUser(cmd RegisterUserCommand, hash []byte) (*user.User, error) {
	now := h.clock.Now()
	switch cmd.Role() {
	case kernel.RoleDeliveryPartner:
		return user.NewPartner(kernel.NewUUID(), cmd.Name(), cmd.Email(), cmd.Phone(), hash, cmd.VehicleType(), now)
	case kernel.RoleRestaurantManager:
		return user.NewManager(kernel.NewUUID(), cmd.Name(), cmd.Email(), cmd.Phone(), hash, now)
	case kernel.RoleUnknown:
	}
	return nil, cmd.Role().Validate()
}
