package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderParams holds the optional manager edits in wire form.
type UpdateOrderParams struct {
	PrepTime              *int
	EstimatedDeliveryTime *int
	Priority              *string
	Status                *string
}

type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	changes order.Changes

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(actor kernel.Actor, orderID kernel.UUID, params UpdateOrderParams) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		actor:   actor,
		orderID: orderID,
		changes: order.Changes{
			PrepTime:              params.PrepTime,
			EstimatedDeliveryTime: params.EstimatedDeliveryTime,
		},
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.ID.Validate(),
		orderID.Validate(),
		cmd.setPriority(params.Priority),
		cmd.setStatus(params.Status),
	); err != nil {
		return UpdateOrderCommand{}, err
	}
	if cmd.changes.IsEmpty() {
		return UpdateOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("changes",
			errors.New("at least one of prepTime, estimatedDeliveryTime, priority or status is required"))
	}

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderCommand) Changes() order.Changes {
	return c.changes
}

func (c *UpdateOrderCommand) setPriority(priority *string) error {
	if priority == nil {
		return nil
	}
	p, err := order.ParsePriority(*priority)
	if err != nil {
		return err
	}
	c.changes.Priority = &p
	return nil
}

func (c *UpdateOrderCommand) setStatus(status *string) error {
	if status == nil {
		return nil
	}
	s, err := order.ParseStatus(*status)
	if err != nil {
		return err
	}
	c.changes.Status = &s
	return nil
}
