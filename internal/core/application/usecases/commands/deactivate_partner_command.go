package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrDeactivatePartnerCommandIsNotConstructed = errors.New(
	"DeactivatePartnerCommand must be created via NewDeactivatePartnerCommand constructor",
)

type DeactivatePartnerCommand struct {
	actor     kernel.Actor
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeactivatePartnerCommand(actor kernel.Actor, partnerID kernel.UUID) (DeactivatePartnerCommand, error) {
	if err := errors.Join(actor.ID.Validate(), partnerID.Validate()); err != nil {
		return DeactivatePartnerCommand{}, err
	}
	return DeactivatePartnerCommand{
		actor:     actor,
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DeactivatePartnerCommand) Validate() error {
	return c.guard.Validate(ErrDeactivatePartnerCommandIsNotConstructed)
}

func (c DeactivatePartnerCommand) Actor() kernel.Actor {
	return c.actor
}

func (c DeactivatePartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}
