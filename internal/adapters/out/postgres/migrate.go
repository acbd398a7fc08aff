package postgres

import (
	"context"
	"fmt"

	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/userrepo"
	"fooddelivery/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. It is idempotent.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	err := db.AutoMigrate(
		&userrepo.UserDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.TrackingNoteDTO{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	statuses := order.ActiveDeliveryStatuses()
	stmt := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON orders (delivery_partner_id) WHERE status IN (%d, %d)",
		orderrepo.ActivePartnerIndex, int(statuses[0]), int(statuses[1]),
	)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("create %s: %w", orderrepo.ActivePartnerIndex, err)
	}

	return nil
}
