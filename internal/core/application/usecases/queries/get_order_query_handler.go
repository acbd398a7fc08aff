package queries

import (
	"context"

	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// GetOrderQueryHandler loads the order and checks that the caller may see it.
// Managers read every order, partners only the ones assigned to them.
type GetOrderQueryHandler struct {
	orders ports.OrderRepository
}

func NewGetOrderQueryHandler(orders ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.orders.Get(ctx, query.orderID)
	if err != nil {
		return OrderView{}, err
	}
	if err := services.CanView(o, query.actor); err != nil {
		return OrderView{}, err
	}

	return NewOrderView(o.Snapshot()), nil
}
