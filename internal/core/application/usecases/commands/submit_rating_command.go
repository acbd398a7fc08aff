package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrSubmitRatingCommandIsNotConstructed = errors.New(
	"SubmitRatingCommand must be created via NewSubmitRatingCommand constructor",
)

type SubmitRatingCommand struct {
	actor             kernel.Actor
	orderID           kernel.UUID
	foodQuality       int
	deliveryService   int
	overallExperience int
	feedback          string

	guard guard.ConstructorGuard
}

func NewSubmitRatingCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	foodQuality, deliveryService, overallExperience int,
	feedback string,
) (SubmitRatingCommand, error) {
	if err := errors.Join(
		actor.ID.Validate(),
		orderID.Validate(),
		checkScore("foodQuality", foodQuality),
		checkScore("deliveryService", deliveryService),
		checkScore("overallExperience", overallExperience),
	); err != nil {
		return SubmitRatingCommand{}, err
	}
	return SubmitRatingCommand{
		actor:             actor,
		orderID:           orderID,
		foodQuality:       foodQuality,
		deliveryService:   deliveryService,
		overallExperience: overallExperience,
		feedback:          feedback,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func checkScore(name string, score int) error {
	if score < order.MinRatingScore || score > order.MaxRatingScore {
		return errs.NewValueIsOutOfRangeError(name, score, order.MinRatingScore, order.MaxRatingScore)
	}
	return nil
}

func (c SubmitRatingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitRatingCommandIsNotConstructed)
}

func (c SubmitRatingCommand) Actor() kernel.Actor {
	return c.actor
}

func (c SubmitRatingCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SubmitRatingCommand) FoodQuality() int {
	return c.foodQuality
}

func (c SubmitRatingCommand) DeliveryService() int {
	return c.deliveryService
}

func (c SubmitRatingCommand) OverallExperience() int {
	return c.overallExperience
}

func (c SubmitRatingCommand) Feedback() string {
	return c.feedback
}
