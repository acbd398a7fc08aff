// Package orderrepo persists the order aggregate: one row in orders plus child rows in
// order_items and order_tracking_notes. The rating is stored in nullable rating_* columns.
package orderrepo

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActivePartnerIndex is the partial unique index that allows at most one PICKED or
// ON_ROUTE order per delivery partner.
const ActivePartnerIndex = "ux_orders_partner_active"

type OrderDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number                string          `gorm:"size:16;not null;uniqueIndex"`
	RestaurantManagerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	DeliveryPartnerID     *uuid.UUID      `gorm:"type:uuid;index"`
	Customer              CustomerDTO     `gorm:"embedded;embeddedPrefix:customer_"`
	SpecialInstructions   string          `gorm:"type:text"`
	TotalAmount           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status                int             `gorm:"type:smallint;not null;index"`
	Priority              int             `gorm:"type:smallint;not null"`
	PrepTime              int             `gorm:"not null"`
	EstimatedDeliveryTime int             `gorm:"not null"`
	DispatchTime          time.Time       `gorm:"not null"`
	Stages                StagesDTO       `gorm:"embedded"`
	Rating                RatingDTO       `gorm:"embedded;embeddedPrefix:rating_"`
	CreatedAt             time.Time       `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt             time.Time       `gorm:"not null;autoUpdateTime:false"`
	Version               int             `gorm:"not null;default:0"`

	Items []ItemDTO         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Notes []TrackingNoteDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type CustomerDTO struct {
	Name    string `gorm:"not null"`
	Phone   string
	Address string `gorm:"type:text;not null"`
}

type StagesDTO struct {
	PrepStartedAt *time.Time
	ReadyAt       *time.Time
	PickedAt      *time.Time
	OnRouteAt     *time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
}

// RatingDTO columns are all NULL until the order is rated.
type RatingDTO struct {
	FoodQuality       *int `gorm:"type:smallint"`
	DeliveryService   *int `gorm:"type:smallint"`
	OverallExperience *int `gorm:"type:smallint"`
	Feedback          *string
	RatedAt           *time.Time
}

type ItemDTO struct {
	OrderID  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position int             `gorm:"primaryKey;autoIncrement:false"`
	Name     string          `gorm:"not null"`
	Quantity int             `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

type TrackingNoteDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Text      string    `gorm:"type:text;not null"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (TrackingNoteDTO) TableName() string {
	return "order_tracking_notes"
}

// fromDomain maps the aggregate including its child rows.
func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()
	id := s.ID.Google()

	var partnerID *uuid.UUID
	if s.DeliveryPartnerID != nil {
		raw := s.DeliveryPartnerID.Google()
		partnerID = &raw
	}

	items := make([]ItemDTO, 0, len(s.Items))
	for i, item := range s.Items {
		items = append(items, ItemDTO{
			OrderID:  id,
			Position: i,
			Name:     item.Name(),
			Quantity: item.Quantity(),
			Price:    item.Price(),
		})
	}

	return OrderDTO{
		ID:                  id,
		Number:              s.Number.String(),
		RestaurantManagerID: s.RestaurantManagerID.Google(),
		DeliveryPartnerID:   partnerID,
		Customer: CustomerDTO{
			Name:    s.Customer.Name(),
			Phone:   s.Customer.Phone(),
			Address: s.Customer.Address(),
		},
		SpecialInstructions:   s.SpecialInstructions,
		TotalAmount:           s.TotalAmount,
		Status:                int(s.Status),
		Priority:              int(s.Priority),
		PrepTime:              s.PrepTime,
		EstimatedDeliveryTime: s.EstimatedDeliveryTime,
		DispatchTime:          s.DispatchTime,
		Stages: StagesDTO{
			PrepStartedAt: s.Stages.PrepStartedAt,
			ReadyAt:       s.Stages.ReadyAt,
			PickedAt:      s.Stages.PickedAt,
			OnRouteAt:     s.Stages.OnRouteAt,
			DeliveredAt:   s.Stages.DeliveredAt,
			CancelledAt:   s.Stages.CancelledAt,
		},
		Rating:    ratingFromDomain(s.Rating),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
		Items:     items,
		Notes:     notesFromDomain(id, s.TrackingNotes),
	}
}

func ratingFromDomain(r *order.Rating) RatingDTO {
	if r == nil {
		return RatingDTO{}
	}
	food, delivery, overall := r.FoodQuality(), r.DeliveryService(), r.OverallExperience()
	feedback, ratedAt := r.Feedback(), r.RatedAt()
	return RatingDTO{
		FoodQuality:       &food,
		DeliveryService:   &delivery,
		OverallExperience: &overall,
		Feedback:          &feedback,
		RatedAt:           &ratedAt,
	}
}

func notesFromDomain(orderID uuid.UUID, notes []order.TrackingNote) []TrackingNoteDTO {
	result := make([]TrackingNoteDTO, 0, len(notes))
	for _, n := range notes {
		result = append(result, TrackingNoteDTO{
			ID:        n.ID().Google(),
			OrderID:   orderID,
			Text:      n.Text(),
			AuthorID:  n.AuthorID().Google(),
			CreatedAt: n.CreatedAt(),
		})
	}
	return result
}

// toDomain restores the aggregate. Items and Notes must be loaded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	number, err := order.ParseNumber(dto.Number)
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.Customer.Name, dto.Customer.Phone, dto.Customer.Address)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.Name, itemDTO.Quantity, itemDTO.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	notes := make([]order.TrackingNote, 0, len(dto.Notes))
	for _, noteDTO := range dto.Notes {
		note, noteErr := order.NewTrackingNote(
			kernel.UUIDFromGoogle(noteDTO.ID),
			noteDTO.Text,
			kernel.UUIDFromGoogle(noteDTO.AuthorID),
			noteDTO.CreatedAt,
		)
		if noteErr != nil {
			return nil, noteErr
		}
		notes = append(notes, note)
	}

	rating, err := ratingToDomain(dto.Rating)
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.DeliveryPartnerID != nil {
		id := kernel.UUIDFromGoogle(*dto.DeliveryPartnerID)
		partnerID = &id
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                    kernel.UUIDFromGoogle(dto.ID),
		Number:                number,
		RestaurantManagerID:   kernel.UUIDFromGoogle(dto.RestaurantManagerID),
		DeliveryPartnerID:     partnerID,
		Customer:              customer,
		Items:                 items,
		SpecialInstructions:   dto.SpecialInstructions,
		TotalAmount:           dto.TotalAmount,
		Status:                order.Status(dto.Status),
		Priority:              order.Priority(dto.Priority),
		PrepTime:              dto.PrepTime,
		EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		DispatchTime:          dto.DispatchTime.UTC(),
		Stages: order.StageTimes{
			PrepStartedAt: utc(dto.Stages.PrepStartedAt),
			ReadyAt:       utc(dto.Stages.ReadyAt),
			PickedAt:      utc(dto.Stages.PickedAt),
			OnRouteAt:     utc(dto.Stages.OnRouteAt),
			DeliveredAt:   utc(dto.Stages.DeliveredAt),
			CancelledAt:   utc(dto.Stages.CancelledAt),
		},
		TrackingNotes: notes,
		Rating:        rating,
		CreatedAt:     dto.CreatedAt.UTC(),
		UpdatedAt:     dto.UpdatedAt.UTC(),
		Version:       dto.Version,
	}), nil
}

var errIncompleteRating = errors.New("rating columns are partially set")

func ratingToDomain(dto RatingDTO) (*order.Rating, error) {
	if dto.OverallExperience == nil {
		return nil, nil
	}
	if dto.FoodQuality == nil || dto.DeliveryService == nil || dto.RatedAt == nil {
		return nil, errIncompleteRating
	}
	var feedback string
	if dto.Feedback != nil {
		feedback = *dto.Feedback
	}
	r, err := order.NewRating(*dto.FoodQuality, *dto.DeliveryService, *dto.OverallExperience, feedback, dto.RatedAt.UTC())
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
