package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderFilter narrows order lookups. Zero fields do not filter.
type OrderFilter struct {
	RestaurantManagerID *kernel.UUID
	DeliveryPartnerID   *kernel.UUID
	Statuses            []order.Status
	Priority            *order.Priority
	CreatedFrom         *time.Time
	CreatedTo           *time.Time
	ExcludeOrderID      *kernel.UUID
	Limit               int
	Offset              int
}

// OrderRepository stores Order aggregates.
//
// Update is an optimistic write: it fails with errs.VersionIsInvalidError when the stored
// version differs from the aggregate's version, and advances the aggregate's version otherwise.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	NumberExists(ctx context.Context, number order.Number) (bool, error)

	Find(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	Count(ctx context.Context, filter OrderFilter) (int64, error)

	// FindRatedDeliveredForPartner returns the ratings of every delivered order of the partner.
	FindRatedDeliveredForPartner(ctx context.Context, partnerID kernel.UUID) ([]order.Rating, error)
}
