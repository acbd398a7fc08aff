package queries

import (
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
)

// OrderView is the read model of an order shared by the HTTP API and realtime events.
type OrderView struct {
	ID                    string          `json:"id"`
	OrderNumber           string          `json:"orderNumber"`
	RestaurantManagerID   string          `json:"restaurantManagerId"`
	DeliveryPartnerID     *string         `json:"deliveryPartnerId,omitempty"`
	Customer              CustomerView    `json:"customer"`
	Items                 []ItemView      `json:"items"`
	SpecialInstructions   string          `json:"specialInstructions,omitempty"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	Status                string          `json:"status"`
	Priority              string          `json:"priority"`
	PrepTime              int             `json:"prepTime"`
	EstimatedDeliveryTime int             `json:"estimatedDeliveryTime"`
	DispatchTime          time.Time       `json:"dispatchTime"`
	Stages                StagesView      `json:"stages"`
	TrackingNotes         []NoteView      `json:"trackingNotes"`
	Rating                *RatingView     `json:"rating,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

type CustomerView struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address"`
}

type ItemView struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type StagesView struct {
	PrepStartedAt *time.Time `json:"prepStartedAt,omitempty"`
	ReadyAt       *time.Time `json:"readyAt,omitempty"`
	PickedAt      *time.Time `json:"pickedAt,omitempty"`
	OnRouteAt     *time.Time `json:"onRouteAt,omitempty"`
	DeliveredAt   *time.Time `json:"deliveredAt,omitempty"`
	CancelledAt   *time.Time `json:"cancelledAt,omitempty"`
}

type NoteView struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type RatingView struct {
	FoodQuality       int       `json:"foodQuality"`
	DeliveryService   int       `json:"deliveryService"`
	OverallExperience int       `json:"overallExperience"`
	Feedback          string    `json:"feedback,omitempty"`
	RatedAt           time.Time `json:"ratedAt"`
}

// NewOrderView renders an order snapshot.
func NewOrderView(s order.Snapshot) OrderView {
	view := OrderView{
		ID:                  s.ID.String(),
		OrderNumber:         s.Number.String(),
		RestaurantManagerID: s.RestaurantManagerID.String(),
		Customer: CustomerView{
			Name:    s.Customer.Name(),
			Phone:   s.Customer.Phone(),
			Address: s.Customer.Address(),
		},
		Items:                 make([]ItemView, 0, len(s.Items)),
		SpecialInstructions:   s.SpecialInstructions,
		TotalAmount:           s.TotalAmount,
		Status:                s.Status.String(),
		Priority:              s.Priority.String(),
		PrepTime:              s.PrepTime,
		EstimatedDeliveryTime: s.EstimatedDeliveryTime,
		DispatchTime:          s.DispatchTime,
		Stages:                StagesView(s.Stages),
		TrackingNotes:         make([]NoteView, 0, len(s.TrackingNotes)),
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
	if s.DeliveryPartnerID != nil {
		id := s.DeliveryPartnerID.String()
		view.DeliveryPartnerID = &id
	}
	for _, item := range s.Items {
		view.Items = append(view.Items, ItemView{Name: item.Name(), Quantity: item.Quantity(), Price: item.Price()})
	}
	for _, note := range s.TrackingNotes {
		view.TrackingNotes = append(view.TrackingNotes, NoteView{
			ID:        note.ID().String(),
			Text:      note.Text(),
			AuthorID:  note.AuthorID().String(),
			CreatedAt: note.CreatedAt(),
		})
	}
	if s.Rating != nil {
		view.Rating = &RatingView{
			FoodQuality:       s.Rating.FoodQuality(),
			DeliveryService:   s.Rating.DeliveryService(),
			OverallExperience: s.Rating.OverallExperience(),
			Feedback:          s.Rating.Feedback(),
			RatedAt:           s.Rating.RatedAt(),
		}
	}
	return view
}

// UserView is the public profile of an account. Partner fields are empty for managers.
type UserView struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Phone               string   `json:"phone,omitempty"`
	Role                string   `json:"role"`
	IsActive            bool     `json:"isActive"`
	VehicleType         string   `json:"vehicleType,omitempty"`
	IsAvailable         *bool    `json:"isAvailable,omitempty"`
	Rating              *float64 `json:"rating,omitempty"`
	CompletedDeliveries *int     `json:"totalDeliveries,omitempty"`
}

func NewUserView(u *user.User) UserView {
	view := UserView{
		ID:       u.ID().String(),
		Name:     u.Name(),
		Email:    u.Email(),
		Phone:    u.Phone(),
		Role:     u.Role().String(),
		IsActive: u.IsActive(),
	}
	if p := u.Partner(); p != nil {
		view.VehicleType = p.VehicleType.String()
		view.IsAvailable = &p.IsAvailable
		view.Rating = &p.Rating
		view.CompletedDeliveries = &p.CompletedDeliveries
	}
	return view
}
