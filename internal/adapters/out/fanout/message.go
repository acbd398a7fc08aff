// Package fanout turns committed domain events into realtime messages.
package fanout

import (
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
)

// Message is the envelope written to websocket clients and Kafka.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type OrderUpdated struct {
	OrderID           string            `json:"orderId"`
	OrderNumber       string            `json:"orderNumber"`
	Status            string            `json:"status"`
	DeliveryPartnerID *string           `json:"deliveryPartnerId,omitempty"`
	Type              order.UpdateType  `json:"type"`
	Order             queries.OrderView `json:"order"`
	Timestamp         time.Time         `json:"timestamp"`
}

type PartnerAvailabilityUpdated struct {
	PartnerID   string    `json:"partnerId"`
	IsAvailable bool      `json:"isAvailable"`
	Timestamp   time.Time `json:"timestamp"`
}

// Route names the audience of an encoded event.
type Route struct {
	// Key identifies the entity, used as the Kafka partition key.
	Key string
	// Roles receive the message on their role channel.
	Roles []kernel.Role
	// Users receive the message on their own channel.
	Users []kernel.UUID
}

// UnsupportedEventError is returned by Encode for events that have no wire form.
type UnsupportedEventError struct {
	Name string
}

func (e UnsupportedEventError) Error() string {
	return fmt.Sprintf("unsupported event %q", e.Name)
}

// Encode renders event and decides who receives it. Order updates go to every manager and
// to the assigned partner; availability changes go to managers only.
func Encode(event kernel.DomainEvent) ([]byte, Route, error) {
	var msg Message
	var route Route

	switch e := event.(type) {
	case order.UpdatedEvent:
		view := queries.NewOrderView(e.Order)
		msg = Message{Type: order.UpdatedEventName, Data: OrderUpdated{
			OrderID:           view.ID,
			OrderNumber:       view.OrderNumber,
			Status:            view.Status,
			DeliveryPartnerID: view.DeliveryPartnerID,
			Type:              e.Type,
			Order:             view,
			Timestamp:         e.At,
		}}
		route = Route{Key: view.ID, Roles: []kernel.Role{kernel.RoleRestaurantManager}}
		if e.Order.DeliveryPartnerID != nil {
			route.Users = []kernel.UUID{*e.Order.DeliveryPartnerID}
		}
	case user.AvailabilityChangedEvent:
		msg = Message{Type: user.AvailabilityChangedEventName, Data: PartnerAvailabilityUpdated{
			PartnerID:   e.PartnerID.String(),
			IsAvailable: e.IsAvailable,
			Timestamp:   e.At,
		}}
		route = Route{Key: e.PartnerID.String(), Roles: []kernel.Role{kernel.RoleRestaurantManager}}
	default:
		return nil, Route{}, UnsupportedEventError{Name: event.EventName()}
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, Route{}, fmt.Errorf("encode %s: %w", event.EventName(), err)
	}
	return body, route, nil
}
