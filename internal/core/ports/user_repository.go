package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
)

// UserRepository stores User aggregates. Update is an optimistic write, like OrderRepository.Update.
type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error

	Update(ctx context.Context, aggregate *user.User) error

	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetForUpdate reads the user and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error)

	GetByEmail(ctx context.Context, email string) (*user.User, error)

	FindAvailablePartners(ctx context.Context) ([]*user.User, error)

	// FindAvailablePartnersHoldingActiveDelivery returns partners flagged available that hold a PICKED or ON_ROUTE order.
	FindAvailablePartnersHoldingActiveDelivery(ctx context.Context) ([]*user.User, error)
}
