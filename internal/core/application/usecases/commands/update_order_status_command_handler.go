package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"
)

type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.Lifecycle
	clock      kernel.Clock
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	lifecycle services.Lifecycle,
	clock kernel.Clock,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		clock:      clock,
	}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	now := h.clock.Now()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	// A pickup makes the partner busy: lock the partner first so a concurrent assignment
	// cannot slip in between the busy check and the write.
	var partner *user.User
	var active *kernel.UUID
	if cmd.Status() == order.Picked && o.IsAssignedTo(cmd.Actor().ID) {
		if partner, err = uow.UserRepository().GetForUpdate(ctx, cmd.Actor().ID); err != nil {
			return nil, err
		}
		orderID := o.ID()
		if active, err = activeDeliveryOf(ctx, orderRepo, cmd.Actor().ID, &orderID); err != nil {
			return nil, err
		}
	}

	tr, err := h.lifecycle.AdvanceByPartner(o, cmd.Actor(), cmd.Status(), active, now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = settlePartner(ctx, uow, h.lifecycle, o, tr, partner, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
