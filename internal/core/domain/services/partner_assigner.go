package services

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

// PartnerAssigner binds a delivery partner to an order.
//
// Checks, in order:
//   - the caller owns the order (PermissionDenied)
//   - the order is PENDING, PREP or READY (TerminalState / InvalidState)
//   - the partner exists, is active and available (NotFound / PartnerUnavailable)
//   - the partner holds no PICKED or ON_ROUTE order (PartnerBusy)
//
// On success a PENDING order moves to PREP and the partner becomes unavailable.
//
// Example usage:
//
//	assigner := services.NewPartnerAssigner()
//	previous, err := assigner.Assign(o, caller, partner, activeDeliveryID, clock.Now())
//	if err != nil {
//	    return err
//	}
//	// persist o, then partner, then release previous if it is not nil
type PartnerAssigner struct{}

func NewPartnerAssigner() PartnerAssigner {
	return PartnerAssigner{}
}

// Assign returns the ID of a different partner that was replaced by this assignment.
func (a PartnerAssigner) Assign(
	o *order.Order,
	caller kernel.Actor,
	partner *user.User,
	activeDeliveryID *kernel.UUID,
	now time.Time,
) (*kernel.UUID, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := RequireOwner(o, caller, "assign a partner to order"); err != nil {
		return nil, err
	}
	if err := a.CheckOrder(o); err != nil {
		return nil, err
	}
	if err := partner.Validate(); err != nil {
		return nil, err
	}
	if err := partner.CheckAssignable(); err != nil {
		return nil, err
	}
	if activeDeliveryID != nil {
		return nil, errs.NewPartnerBusyError(partner.ID().String(), activeDeliveryID.String())
	}

	previous, err := o.Assign(partner.ID(), now)
	if err != nil {
		return nil, err
	}
	partner.MarkBusy(now)
	return previous, nil
}

// CheckOrder verifies the order stage allows (re)assignment.
func (a PartnerAssigner) CheckOrder(o *order.Order) error {
	status := o.Status()
	if status.IsTerminal() {
		return errs.NewTerminalStateError(status.String(), "assign")
	}
	if !status.IsAssignable() {
		return errs.NewInvalidStateError(status.String(), "reassign")
	}
	return nil
}

// ReleaseReplaced makes a partner that lost an order available again unless it still holds
// other open orders. It reports whether the availability flag changed.
func (a PartnerAssigner) ReleaseReplaced(previous *user.User, otherOpenOrders int, now time.Time) bool {
	if previous == nil || otherOpenOrders > 0 {
		return false
	}
	return previous.Release(now)
}
