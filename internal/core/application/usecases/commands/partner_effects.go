package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// activeDeliveryOf returns the ID of an order other than exclude that partnerID holds in
// PICKED or ON_ROUTE, or nil.
func activeDeliveryOf(
	ctx context.Context,
	orders ports.OrderRepository,
	partnerID kernel.UUID,
	exclude *kernel.UUID,
) (*kernel.UUID, error) {
	active, err := orders.Find(ctx, ports.OrderFilter{
		DeliveryPartnerID: &partnerID,
		Statuses:          order.ActiveDeliveryStatuses(),
		ExcludeOrderID:    exclude,
		Limit:             1,
	})
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, nil
	}
	id := active[0].ID()
	return &id, nil
}

// otherOpenOrders counts the non-terminal orders of partnerID except exclude.
func otherOpenOrders(
	ctx context.Context,
	orders ports.OrderRepository,
	partnerID kernel.UUID,
	exclude kernel.UUID,
) (int, error) {
	n, err := orders.Count(ctx, ports.OrderFilter{
		DeliveryPartnerID: &partnerID,
		Statuses:          order.OpenStatuses(),
		ExcludeOrderID:    &exclude,
	})
	return int(n), err
}

// settlePartner applies the effects of transition tr of o to its assigned partner and
// stores the partner. partner may be nil, in which case it is loaded and locked.
// It must run after the order itself was written.
func settlePartner(
	ctx context.Context,
	uow UoW,
	lifecycle services.Lifecycle,
	o *order.Order,
	tr services.Transition,
	partner *user.User,
	now time.Time,
) error {
	partnerID := o.DeliveryPartnerID()
	if partnerID == nil || !tr.Changed() {
		return nil
	}
	switch tr.To {
	case order.Picked, order.Delivered, order.Cancelled:
	case order.Unknown, order.Pending, order.Prep, order.Ready, order.OnRoute:
		return nil
	}

	users := uow.UserRepository()
	if partner == nil {
		var err error
		if partner, err = users.GetForUpdate(ctx, *partnerID); err != nil {
			return err
		}
	}

	others, err := otherOpenOrders(ctx, uow.OrderRepository(), *partnerID, o.ID())
	if err != nil {
		return err
	}

	if lifecycle.ApplyPartnerEffects(tr, partner, others, now) || tr.To == order.Delivered {
		return users.Update(ctx, partner)
	}
	return nil
}
