package commands_test

import (
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateEnv() (*MockOrderRepository, *MockUoW, *MockOrderUoWFactory) {
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return orderRepo, uow, factory
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actor := managerActor()
	cmd, err := commands.NewCreateOrderCommand(actor, validCreateParams())
	require.NoError(t, err)

	orderRepo, uow, factory := newCreateEnv()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("NumberExists", ctx, mock.AnythingOfType("order.Number")).Return(false, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, clock)
	o, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, o.Status())
	assert.True(t, o.IsOwnedBy(actor.ID))
	assert.True(t, decimal.NewFromInt(19).Equal(o.TotalAmount()))
	assert.Equal(t, now.Add(15*time.Minute), o.DispatchTime())
	assert.Len(t, o.DomainEvents(), 1)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_RetriesTakenNumbers(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(managerActor(), validCreateParams())
	require.NoError(t, err)

	orderRepo, uow, factory := newCreateEnv()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("NumberExists", ctx, mock.AnythingOfType("order.Number")).Return(true, nil).Twice(),
		orderRepo.On("NumberExists", ctx, mock.AnythingOfType("order.Number")).Return(false, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, clock)
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertNumberOfCalls(t, "NumberExists", 3)
}

func TestCreateOrderCommandHandler_Handle_UsesLastCandidateAfterAllCollide(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(managerActor(), validCreateParams())
	require.NoError(t, err)

	orderRepo, uow, factory := newCreateEnv()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("NumberExists", ctx, mock.AnythingOfType("order.Number")).Return(true, nil).Times(5),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, clock)
	o, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, o.Number().Validate())
	orderRepo.AssertNumberOfCalls(t, "NumberExists", 5)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory, clock)

	_, err := handler.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_PartnerIsDenied(t *testing.T) {
	partner := kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleDeliveryPartner}
	cmd, err := commands.NewCreateOrderCommand(partner, validCreateParams())
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory, clock)
	_, err = handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(managerActor(), validCreateParams())
	require.NoError(t, err)

	_, uow, factory := newCreateEnv()
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, clock)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(managerActor(), validCreateParams())
	require.NoError(t, err)

	orderRepo, uow, factory := newCreateEnv()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("NumberExists", ctx, mock.AnythingOfType("order.Number")).Return(false, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("insert error")).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, clock)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "insert error")
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertCalled(t, "Rollback", ctx)
}
