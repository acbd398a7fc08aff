package services_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 10, 18, 0, 0, 0, time.UTC)

type fixture struct {
	manager kernel.Actor
	partner *user.User
	order   *order.Order
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	managerID := kernel.NewUUID()

	customer, err := order.NewCustomer("Grace", "+1555", "42 Harbour Rd")
	require.NoError(t, err)
	item, err := order.NewItem("Ramen", 1, decimal.RequireFromString("15.00"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD100001", managerID, order.Draft{
		Customer: customer,
		Items:    []order.Item{item},
		PrepTime: 25,
	}, now)
	require.NoError(t, err)

	return fixture{
		manager: kernel.Actor{ID: managerID, Role: kernel.RoleRestaurantManager},
		partner: newPartner(t),
		order:   o,
	}
}

func newPartner(t *testing.T) *user.User {
	t.Helper()
	p, err := user.NewPartner(kernel.NewUUID(), "Pat", "pat@example.com", "", []byte("hash"), user.VehicleBicycle, now)
	require.NoError(t, err)
	return p
}

func partnerActor(p *user.User) kernel.Actor {
	return kernel.Actor{ID: p.ID(), Role: kernel.RoleDeliveryPartner}
}

func rating(t *testing.T, deliveryService int) order.Rating {
	t.Helper()
	r, err := order.NewRating(5, deliveryService, 5, "", now)
	require.NoError(t, err)
	return r
}

func ptr[T any](v T) *T {
	return &v
}
