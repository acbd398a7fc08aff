package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

// EventPublisher delivers domain events to subscribers. Delivery is at most once.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
