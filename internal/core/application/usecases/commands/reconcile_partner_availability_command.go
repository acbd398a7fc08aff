package commands

import (
	"errors"

	"fooddelivery/internal/pkg/guard"
)

var ErrReconcilePartnerAvailabilityCommandIsNotConstructed = errors.New(
	"ReconcilePartnerAvailabilityCommand must be created via NewReconcilePartnerAvailabilityCommand constructor",
)

// ReconcilePartnerAvailabilityCommand takes partners that are flagged available while
// holding an active delivery off the available list.
type ReconcilePartnerAvailabilityCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcilePartnerAvailabilityCommand() ReconcilePartnerAvailabilityCommand {
	return ReconcilePartnerAvailabilityCommand{guard: guard.NewConstructorGuard()}
}

func (c ReconcilePartnerAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePartnerAvailabilityCommandIsNotConstructed)
}
