package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
)

// AssignPartnerCommandHandler binds a partner to an order in one transaction.
//
// The partner row is locked before the busy check, so two assignments of the same partner
// are serialized. Both aggregates are written with an optimistic version check, order first.
// A stale version surfaces as errs.VersionIsInvalidError.
type AssignPartnerCommandHandler struct {
	uowFactory UoWFactory
	assigner   services.PartnerAssigner
	clock      kernel.Clock
}

func NewAssignPartnerCommandHandler(uowFactory UoWFactory, clock kernel.Clock) AssignPartnerCommandHandler {
	return AssignPartnerCommandHandler{
		uowFactory: uowFactory,
		assigner:   services.NewPartnerAssigner(),
		clock:      clock,
	}
}

func (h AssignPartnerCommandHandler) Handle(ctx context.Context, cmd AssignPartnerCommand) (*order.Order, error) {
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
	userRepo := uow.UserRepository()
	now := h.clock.Now()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = services.RequireOwner(o, cmd.Actor(), "assign a partner to order"); err != nil {
		return nil, err
	}
	if err = h.assigner.CheckOrder(o); err != nil {
		return nil, err
	}

	partner, err := userRepo.GetForUpdate(ctx, cmd.PartnerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewObjectNotFoundErrorWithCause("partnerId", cmd.PartnerID(), err)
	}
	if err != nil {
		return nil, err
	}

	orderID := o.ID()
	active, err := activeDeliveryOf(ctx, orderRepo, cmd.PartnerID(), &orderID)
	if err != nil {
		return nil, err
	}

	previousID, err := h.assigner.Assign(o, cmd.Actor(), partner, active, now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = userRepo.Update(ctx, partner); err != nil {
		return nil, err
	}

	if previousID != nil {
		if err = h.releasePrevious(ctx, uow, *previousID, o.ID(), now); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h AssignPartnerCommandHandler) releasePrevious(
	ctx context.Context,
	uow UoW,
	previousID kernel.UUID,
	orderID kernel.UUID,
	now time.Time,
) error {
	userRepo := uow.UserRepository()
	previous, err := userRepo.GetForUpdate(ctx, previousID)
	if err != nil {
		return err
	}
	others, err := otherOpenOrders(ctx, uow.OrderRepository(), previousID, orderID)
	if err != nil {
		return err
	}
	if !h.assigner.ReleaseReplaced(previous, others, now) {
		return nil
	}
	return userRepo.Update(ctx, previous)
}
