package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
)

type AddTrackingNoteCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func NewAddTrackingNoteCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) AddTrackingNoteCommandHandler {
	return AddTrackingNoteCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h AddTrackingNoteCommandHandler) Handle(ctx context.Context, cmd AddTrackingNoteCommand) (*order.Order, error) {
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
	if err = services.CanAnnotate(o, cmd.Actor()); err != nil {
		return nil, err
	}

	note, err := order.NewTrackingNote(kernel.NewUUID(), cmd.Text(), cmd.Actor().ID, now)
	if err != nil {
		return nil, err
	}
	if err = o.AddNote(note, now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
