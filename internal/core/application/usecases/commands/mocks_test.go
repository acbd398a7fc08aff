package commands_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 10, 18, 0, 0, 0, time.UTC)

var clock = kernel.FixedClock{At: now}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) NumberExists(ctx context.Context, number order.Number) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter ports.OrderFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindRatedDeliveredForPartner(
	ctx context.Context,
	partnerID kernel.UUID,
) ([]order.Rating, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Rating), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindAvailablePartners(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserRepository) FindAvailablePartnersHoldingActiveDelivery(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(password string) ([]byte, error) {
	args := m.Called(password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash []byte, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) Issue(actor kernel.Actor) (string, time.Time, error) {
	args := m.Called(actor)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenIssuer) Verify(token string) (kernel.Actor, error) {
	args := m.Called(token)
	return args.Get(0).(kernel.Actor), args.Error(1)
}

// env wires one transactional unit of work with both repositories. Repository accessors
// may be called any number of times, so they stay outside of mock.InOrder.
type env struct {
	orders  *MockOrderRepository
	users   *MockUserRepository
	uow     *MockUoW
	factory *MockUoWFactory
}

func newEnv() env {
	e := env{
		orders:  new(MockOrderRepository),
		users:   new(MockUserRepository),
		uow:     new(MockUoW),
		factory: new(MockUoWFactory),
	}
	e.uow.On("OrderRepository").Return(e.orders).Maybe()
	e.uow.On("UserRepository").Return(e.users).Maybe()
	e.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	e.factory.On("Create").Return(e.uow).Once()
	return e
}

func (e env) assert(t *testing.T) {
	t.Helper()
	e.orders.AssertExpectations(t)
	e.users.AssertExpectations(t)
	e.uow.AssertExpectations(t)
	e.factory.AssertExpectations(t)
}

func managerActor() kernel.Actor {
	return kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleRestaurantManager}
}

func partnerActor(p *user.User) kernel.Actor {
	return kernel.Actor{ID: p.ID(), Role: kernel.RoleDeliveryPartner}
}

func newPendingOrder(t *testing.T, managerID kernel.UUID) *order.Order {
	t.Helper()
	customer, err := order.NewCustomer("Grace", "+1555", "42 Harbour Rd")
	require.NoError(t, err)
	item, err := order.NewItem("Ramen", 2, decimal.RequireFromString("12.50"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD100001", managerID, order.Draft{
		Customer: customer,
		Items:    []order.Item{item},
		PrepTime: 20,
	}, now)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func newPartner(t *testing.T) *user.User {
	t.Helper()
	p, err := user.NewPartner(kernel.NewUUID(), "Pat", "pat@example.com", "", []byte("hash"), user.VehicleScooter, now)
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

// orderAt builds an order owned by managerID, assigned to partner and moved to status.
// The partner is left as it was.
func orderAt(t *testing.T, managerID kernel.UUID, partner *user.User, status order.Status) *order.Order {
	t.Helper()
	o := newPendingOrder(t, managerID)
	_, err := o.Assign(partner.ID(), now)
	require.NoError(t, err)

	path := []order.Status{order.Ready, order.Picked, order.OnRoute, order.Delivered}
	for _, next := range path {
		if o.Status() == status {
			break
		}
		switch next {
		case order.Ready:
			require.NoError(t, o.UpdateDetails(order.Changes{Status: &next}, order.DispatchFreeze, now))
		default:
			require.NoError(t, o.AdvanceByPartner(partner.ID(), next, now))
		}
	}
	require.Equal(t, status, o.Status())
	o.ClearDomainEvents()
	return o
}

func busyPartner(t *testing.T) *user.User {
	t.Helper()
	p := newPartner(t)
	p.MarkBusy(now)
	p.ClearDomainEvents()
	return p
}
