package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrSetPartnerAvailabilityCommandIsNotConstructed = errors.New(
	"SetPartnerAvailabilityCommand must be created via NewSetPartnerAvailabilityCommand constructor",
)

// SetPartnerAvailabilityCommand is a partner toggling its own availability.
type SetPartnerAvailabilityCommand struct {
	actor       kernel.Actor
	isAvailable bool

	guard guard.ConstructorGuard
}

func NewSetPartnerAvailabilityCommand(actor kernel.Actor, isAvailable bool) (SetPartnerAvailabilityCommand, error) {
	if err := actor.ID.Validate(); err != nil {
		return SetPartnerAvailabilityCommand{}, err
	}
	return SetPartnerAvailabilityCommand{
		actor:       actor,
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SetPartnerAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetPartnerAvailabilityCommandIsNotConstructed)
}

func (c SetPartnerAvailabilityCommand) Actor() kernel.Actor {
	return c.actor
}

func (c SetPartnerAvailabilityCommand) IsAvailable() bool {
	return c.isAvailable
}
