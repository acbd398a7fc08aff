package commands

import (
	"context"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
)

type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.Lifecycle
	clock      kernel.Clock
}

func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	lifecycle services.Lifecycle,
	clock kernel.Clock,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		clock:      clock,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	tr, err := h.lifecycle.Cancel(o, cmd.Actor(), now)
	if err != nil {
		return nil, err
	}

	if reason := strings.TrimSpace(cmd.Reason()); reason != "" {
		note, noteErr := order.NewTrackingNote(kernel.NewUUID(), "Cancelled: "+reason, cmd.Actor().ID, now)
		if noteErr != nil {
			return nil, noteErr
		}
		if err = o.AddNote(note, now); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = settlePartner(ctx, uow, h.lifecycle, o, tr, nil, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
