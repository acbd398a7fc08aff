package order

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Snapshot is the complete state of an Order. Repositories build one to restore
// an aggregate, and read models use one to render it.
type Snapshot struct {
	ID                    kernel.UUID
	Number                Number
	RestaurantManagerID   kernel.UUID
	DeliveryPartnerID     *kernel.UUID
	Customer              Customer
	Items                 []Item
	SpecialInstructions   string
	TotalAmount           decimal.Decimal
	Status                Status
	Priority              Priority
	PrepTime              int
	EstimatedDeliveryTime int
	DispatchTime          time.Time
	Stages                StageTimes
	TrackingNotes         []TrackingNote
	Rating                *Rating
	CreatedAt             time.Time
	UpdatedAt             time.Time
	Version               int
}

// RestoreOrder rebuilds a persisted order without re-running creation rules.
func RestoreOrder(s Snapshot) *Order {
	return &Order{
		id:                    s.ID,
		number:                s.Number,
		restaurantManagerID:   s.RestaurantManagerID,
		deliveryPartnerID:     s.DeliveryPartnerID,
		customer:              s.Customer,
		items:                 append([]Item(nil), s.Items...),
		specialInstructions:   s.SpecialInstructions,
		totalAmount:           s.TotalAmount,
		status:                s.Status,
		priority:              s.Priority,
		prepTime:              s.PrepTime,
		estimatedDeliveryTime: s.EstimatedDeliveryTime,
		dispatchTime:          s.DispatchTime,
		stages:                s.Stages,
		notes:                 append([]TrackingNote(nil), s.TrackingNotes...),
		rating:                s.Rating,
		createdAt:             s.CreatedAt,
		updatedAt:             s.UpdatedAt,
		version:               s.Version,
		isConstructed:         true,
	}
}

// Snapshot returns a copy of the order state.
func (o *Order) Snapshot() Snapshot {
	var partner *kernel.UUID
	if o.deliveryPartnerID != nil {
		p := *o.deliveryPartnerID
		partner = &p
	}
	var rating *Rating
	if o.rating != nil {
		r := *o.rating
		rating = &r
	}
	return Snapshot{
		ID:                    o.id,
		Number:                o.number,
		RestaurantManagerID:   o.restaurantManagerID,
		DeliveryPartnerID:     partner,
		Customer:              o.customer,
		Items:                 o.Items(),
		SpecialInstructions:   o.specialInstructions,
		TotalAmount:           o.totalAmount,
		Status:                o.status,
		Priority:              o.priority,
		PrepTime:              o.prepTime,
		EstimatedDeliveryTime: o.estimatedDeliveryTime,
		DispatchTime:          o.dispatchTime,
		Stages:                o.stages,
		TrackingNotes:         o.TrackingNotes(),
		Rating:                rating,
		CreatedAt:             o.createdAt,
		UpdatedAt:             o.updatedAt,
		Version:               o.version,
	}
}
