package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// maxNumberAttempts bounds the search for an unused order number. The last candidate is
// used when every attempt collides.
const maxNumberAttempts = 5

type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := services.RequireManager(cmd.Actor(), "create order"); err != nil {
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

	number, err := h.nextNumber(ctx, orderRepo, now)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), number, cmd.Actor().ID, cmd.Draft(), now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h CreateOrderCommandHandler) nextNumber(
	ctx context.Context,
	repo ports.OrderRepository,
	now time.Time,
) (order.Number, error) {
	var candidate order.Number
	for range maxNumberAttempts {
		candidate = order.GenerateNumber(now)
		exists, err := repo.NumberExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return candidate, nil
}
