package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"
)

type SetPartnerAvailabilityCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewSetPartnerAvailabilityCommandHandler(uowFactory UoWFactory, clock kernel.Clock) SetPartnerAvailabilityCommandHandler {
	return SetPartnerAvailabilityCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h SetPartnerAvailabilityCommandHandler) Handle(
	ctx context.Context,
	cmd SetPartnerAvailabilityCommand,
) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := services.RequirePartner(cmd.Actor(), "change availability"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()

	partner, err := userRepo.GetForUpdate(ctx, cmd.Actor().ID)
	if err != nil {
		return nil, err
	}

	active, err := activeDeliveryOf(ctx, uow.OrderRepository(), partner.ID(), nil)
	if err != nil {
		return nil, err
	}

	if err = partner.SetAvailability(cmd.IsAvailable(), active != nil, h.clock.Now()); err != nil {
		return nil, err
	}

	if err = userRepo.Update(ctx, partner); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return partner, nil
}
