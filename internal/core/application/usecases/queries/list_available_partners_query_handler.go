package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListAvailablePartnersQueryHandler struct {
	db *gorm.DB
}

func NewListAvailablePartnersQueryHandler(db *gorm.DB) ListAvailablePartnersQueryHandler {
	return ListAvailablePartnersQueryHandler{db: db}
}

func (h ListAvailablePartnersQueryHandler) Handle(
	ctx context.Context,
	query ListAvailablePartnersQuery,
) ([]AvailablePartner, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := services.RequireManager(query.actor, "list available partners"); err != nil {
		return nil, err
	}

	partners := make([]AvailablePartner, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			vehicle_type,
			rating,
			completed_deliveries
		FROM users
		WHERE role = ? AND is_active AND is_available
		ORDER BY rating DESC, name
	`, int(kernel.RoleDeliveryPartner)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p AvailablePartner
		var id uuid.UUID
		var vehicle int

		if err = rows.Scan(&id, &p.Name, &p.Phone, &vehicle, &p.Rating, &p.CompletedDeliveries); err != nil {
			return nil, err
		}
		p.ID = kernel.UUIDFromGoogle(id)
		p.VehicleType = user.VehicleType(vehicle).String()
		partners = append(partners, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return partners, nil
}
