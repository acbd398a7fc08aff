package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrAssignPartnerCommandIsNotConstructed = errors.New(
	"AssignPartnerCommand must be created via NewAssignPartnerCommand constructor",
)

type AssignPartnerCommand struct {
	actor     kernel.Actor
	orderID   kernel.UUID
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignPartnerCommand(actor kernel.Actor, orderID, partnerID kernel.UUID) (AssignPartnerCommand, error) {
	if err := errors.Join(actor.ID.Validate(), orderID.Validate(), partnerID.Validate()); err != nil {
		return AssignPartnerCommand{}, err
	}
	return AssignPartnerCommand{
		actor:     actor,
		orderID:   orderID,
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPartnerCommandIsNotConstructed)
}

func (c AssignPartnerCommand) Actor() kernel.Actor {
	return c.actor
}

func (c AssignPartnerCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignPartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}
