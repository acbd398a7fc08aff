package http

import (
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	VehicleType string `json:"vehicleType"`
}

func (r registerRequest) params() commands.RegisterUserParams {
	return commands.RegisterUserParams{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Password:    r.Password,
		Role:        r.Role,
		VehicleType: r.VehicleType,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      queries.UserView `json:"user"`
}

type itemRequest struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type createOrderRequest struct {
	CustomerName          string           `json:"customerName"`
	CustomerPhone         string           `json:"customerPhone"`
	CustomerAddress       string           `json:"customerAddress"`
	Items                 []itemRequest    `json:"items"`
	SpecialInstructions   string           `json:"specialInstructions"`
	TotalAmount           *decimal.Decimal `json:"totalAmount"`
	Priority              string           `json:"priority"`
	PrepTime              int              `json:"prepTime"`
	EstimatedDeliveryTime int              `json:"estimatedDeliveryTime"`
}

func (r createOrderRequest) params() commands.CreateOrderParams {
	items := make([]commands.OrderItemInput, len(r.Items))
	for i, item := range r.Items {
		items[i] = commands.OrderItemInput{Name: item.Name, Quantity: item.Quantity, Price: item.Price}
	}
	return commands.CreateOrderParams{
		CustomerName:          r.CustomerName,
		CustomerPhone:         r.CustomerPhone,
		CustomerAddress:       r.CustomerAddress,
		Items:                 items,
		SpecialInstructions:   r.SpecialInstructions,
		TotalAmount:           r.TotalAmount,
		Priority:              r.Priority,
		PrepTime:              r.PrepTime,
		EstimatedDeliveryTime: r.EstimatedDeliveryTime,
	}
}

type updateOrderRequest struct {
	PrepTime              *int    `json:"prepTime"`
	EstimatedDeliveryTime *int    `json:"estimatedDeliveryTime"`
	Priority              *string `json:"priority"`
	Status                *string `json:"status"`
}

type assignPartnerRequest struct {
	PartnerID string `json:"partnerId"`
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type ratingRequest struct {
	FoodQuality       int    `json:"foodQuality"`
	DeliveryService   int    `json:"deliveryService"`
	OverallExperience int    `json:"overallExperience"`
	Feedback          string `json:"feedback"`
}

type noteRequest struct {
	Text string `json:"text"`
}

type availabilityRequest struct {
	IsAvailable *bool `json:"isAvailable"`
}
