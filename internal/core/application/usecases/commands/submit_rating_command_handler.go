package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
)

// SubmitRatingCommandHandler stores the rating and recomputes the partner rating from every
// rated delivered order of that partner, inside the same transaction.
type SubmitRatingCommandHandler struct {
	uowFactory UoWFactory
	aggregator services.RatingAggregator
	clock      kernel.Clock
}

func NewSubmitRatingCommandHandler(uowFactory UoWFactory, clock kernel.Clock) SubmitRatingCommandHandler {
	return SubmitRatingCommandHandler{
		uowFactory: uowFactory,
		aggregator: services.NewRatingAggregator(),
		clock:      clock,
	}
}

func (h SubmitRatingCommandHandler) Handle(ctx context.Context, cmd SubmitRatingCommand) (*order.Order, error) {
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

	rating, err := order.NewRating(cmd.FoodQuality(), cmd.DeliveryService(), cmd.OverallExperience(), cmd.Feedback(), now)
	if err != nil {
		return nil, err
	}

	if err = h.aggregator.Rate(o, cmd.Actor(), rating, now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if partnerID := o.DeliveryPartnerID(); partnerID != nil {
		userRepo := uow.UserRepository()
		partner, getErr := userRepo.GetForUpdate(ctx, *partnerID)
		if getErr != nil {
			return nil, getErr
		}
		ratings, findErr := orderRepo.FindRatedDeliveredForPartner(ctx, *partnerID)
		if findErr != nil {
			return nil, findErr
		}
		if err = h.aggregator.Recompute(partner, ratings, now); err != nil {
			return nil, err
		}
		if err = userRepo.Update(ctx, partner); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
