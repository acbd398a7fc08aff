package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

type ReconcilePartnerAvailabilityCommandHandler struct {
	uowFactory UserUoWFactory
	clock      kernel.Clock
}

func NewReconcilePartnerAvailabilityCommandHandler(
	uowFactory UserUoWFactory,
	clock kernel.Clock,
) ReconcilePartnerAvailabilityCommandHandler {
	return ReconcilePartnerAvailabilityCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the number of partners that were marked busy.
func (h ReconcilePartnerAvailabilityCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcilePartnerAvailabilityCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()

	partners, err := userRepo.FindAvailablePartnersHoldingActiveDelivery(ctx)
	if err != nil {
		return 0, err
	}
	if len(partners) == 0 {
		return 0, nil
	}

	now := h.clock.Now()
	for _, partner := range partners {
		partner.MarkBusy(now)
		if err = userRepo.Update(ctx, partner); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(partners), nil
}
