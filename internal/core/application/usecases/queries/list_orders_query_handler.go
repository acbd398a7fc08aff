package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// ListOrdersQueryHandler scopes the listing by role: managers see every order,
// partners only the orders assigned to them.
type ListOrdersQueryHandler struct {
	orders ports.OrderRepository
}

func NewListOrdersQueryHandler(orders ports.OrderRepository) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersResult, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersResult{}, err
	}

	filter := ports.OrderFilter{
		Statuses: query.params.Statuses,
		Priority: query.params.Priority,
		Limit:    query.params.Limit,
		Offset:   query.params.Offset,
	}
	switch query.actor.Role {
	case kernel.RoleRestaurantManager:
	case kernel.RoleDeliveryPartner:
		partnerID := query.actor.ID
		filter.DeliveryPartnerID = &partnerID
	case kernel.RoleUnknown:
		return ListOrdersResult{}, errs.NewPermissionDeniedError("list orders", query.actor.ID.String())
	}

	total, err := h.orders.Count(ctx, filter)
	if err != nil {
		return ListOrdersResult{}, err
	}
	orders, err := h.orders.Find(ctx, filter)
	if err != nil {
		return ListOrdersResult{}, err
	}

	result := ListOrdersResult{
		Orders: make([]OrderView, 0, len(orders)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for _, o := range orders {
		result.Orders = append(result.Orders, NewOrderView(o.Snapshot()))
	}
	return result, nil
}
