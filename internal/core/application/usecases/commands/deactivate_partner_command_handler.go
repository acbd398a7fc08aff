package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
)

type DeactivatePartnerCommandHandler struct {
	uowFactory UserUoWFactory
	clock      kernel.Clock
}

func NewDeactivatePartnerCommandHandler(uowFactory UserUoWFactory, clock kernel.Clock) DeactivatePartnerCommandHandler {
	return DeactivatePartnerCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h DeactivatePartnerCommandHandler) Handle(ctx context.Context, cmd DeactivatePartnerCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := services.RequireManager(cmd.Actor(), "deactivate partner"); err != nil {
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

	partner, err := userRepo.GetForUpdate(ctx, cmd.PartnerID())
	if err != nil {
		return nil, err
	}
	if !partner.IsPartner() {
		return nil, errs.NewObjectNotFoundError("partnerId", cmd.PartnerID())
	}

	partner.Deactivate(h.clock.Now())

	if err = userRepo.Update(ctx, partner); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return partner, nil
}
