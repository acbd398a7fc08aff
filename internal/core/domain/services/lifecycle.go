package services

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

// Lifecycle applies status changes to an order on behalf of a caller and derives the
// effects those changes have on the assigned partner.
//
// Partner effects:
//   - PICKED: the partner becomes unavailable
//   - DELIVERED: the delivery is counted and the partner is released
//   - CANCELLED: the partner is released
//
// A partner is released only when it holds no other open order.
type Lifecycle struct {
	policy order.DispatchPolicy
}

func NewLifecycle(policy order.DispatchPolicy) Lifecycle {
	return Lifecycle{policy: policy}
}

// Transition describes a status change that happened, From == To when the status did not move.
type Transition struct {
	From order.Status
	To   order.Status
}

func (t Transition) Changed() bool {
	return t.From != t.To
}

// UpdateByManager applies a manager edit of timing, priority or status.
func (l Lifecycle) UpdateByManager(
	o *order.Order,
	caller kernel.Actor,
	changes order.Changes,
	now time.Time,
) (Transition, error) {
	if err := o.Validate(); err != nil {
		return Transition{}, err
	}
	if err := RequireOwner(o, caller, "update order"); err != nil {
		return Transition{}, err
	}
	from := o.Status()
	if err := o.UpdateDetails(changes, l.policy, now); err != nil {
		return Transition{}, err
	}
	return Transition{From: from, To: o.Status()}, nil
}

// Cancel cancels a PENDING or PREP order.
func (l Lifecycle) Cancel(o *order.Order, caller kernel.Actor, now time.Time) (Transition, error) {
	if err := o.Validate(); err != nil {
		return Transition{}, err
	}
	if err := RequireOwner(o, caller, "cancel order"); err != nil {
		return Transition{}, err
	}
	from := o.Status()
	if err := o.Cancel(now); err != nil {
		return Transition{}, err
	}
	return Transition{From: from, To: o.Status()}, nil
}

// AdvanceByPartner moves an order along the delivery stages. activeDeliveryID is another
// order the partner currently holds in PICKED or ON_ROUTE, if any.
func (l Lifecycle) AdvanceByPartner(
	o *order.Order,
	caller kernel.Actor,
	to order.Status,
	activeDeliveryID *kernel.UUID,
	now time.Time,
) (Transition, error) {
	if err := o.Validate(); err != nil {
		return Transition{}, err
	}
	if err := RequirePartner(caller, "update order status"); err != nil {
		return Transition{}, err
	}
	if to == order.Picked && activeDeliveryID != nil && !activeDeliveryID.IsEqual(o.ID()) {
		return Transition{}, errs.NewPartnerBusyError(caller.ID.String(), activeDeliveryID.String())
	}
	from := o.Status()
	if err := o.AdvanceByPartner(caller.ID, to, now); err != nil {
		return Transition{}, err
	}
	return Transition{From: from, To: o.Status()}, nil
}

// ApplyPartnerEffects updates partner after the order moved through t. otherOpenOrders is
// the number of non-terminal orders, other than this one, assigned to the partner.
// It reports whether the partner's availability flag changed.
func (l Lifecycle) ApplyPartnerEffects(t Transition, partner *user.User, otherOpenOrders int, now time.Time) bool {
	if !t.Changed() || partner == nil || !partner.IsPartner() {
		return false
	}
	wasAvailable := partner.IsAvailable()

	switch t.To {
	case order.Picked:
		partner.MarkBusy(now)
	case order.Delivered:
		partner.RecordDelivery(now)
		if otherOpenOrders == 0 {
			partner.Release(now)
		}
	case order.Cancelled:
		if otherOpenOrders == 0 {
			partner.Release(now)
		}
	case order.Unknown, order.Pending, order.Prep, order.Ready, order.OnRoute:
	}

	return wasAvailable != partner.IsAvailable()
}
