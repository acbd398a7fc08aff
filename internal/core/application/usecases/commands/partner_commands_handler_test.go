package commands_test

import (
	"errors"
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserEnv() (*MockUserRepository, *MockUoW, *MockUserUoWFactory) {
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	uow.On("UserRepository").Return(userRepo).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()
	return userRepo, uow, factory
}

func TestSetPartnerAvailabilityCommandHandler_Handle_GoOffline(t *testing.T) {
	ctx := t.Context()
	partner := newPartner(t)

	cmd, err := commands.NewSetPartnerAvailabilityCommand(partnerActor(partner), false)
	require.NoError(t, err)

	e := newEnv()
	mock.InOrder(
		e.uow.On("Begin", ctx).Return(nil).Once(),
		e.users.On("GetForUpdate", ctx, partner.ID()).Return(partner, nil).Once(),
		e.orders.On("Find", ctx, activeLookup()).Return([]*order.Order{}, nil).Once(),
		e.users.On("Update", ctx, partner).Return(nil).Once(),
		e.uow.On("Commit", ctx).Return(nil).Once(),
	)

	handler := commands.NewSetPartnerAvailabilityCommandHandler(e.factory, clock)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.IsAvailable())
	require.Len(t, result.DomainEvents(), 1)
	e.assert(t)
}

func TestSetPartnerAvailabilityCommandHandler_Handle_CannotGoOnlineWhileDelivering(t *testing.T) {
	ctx := t.Context()
	partner := busyPartner(t)
	held := orderAt(t, kernel.NewUUID(), partner, order.OnRoute)

	cmd, err := commands.NewSetPartnerAvailabilityCommand(partnerActor(partner), true)
	require.NoError(t, err)

	e := newEnv()
	mock.InOrder(
		e.uow.On("Begin", ctx).Return(nil).Once(),
		e.users.On("GetForUpdate", ctx, partner.ID()).Return(partner, nil).Once(),
		e.orders.On("Find", ctx, activeLookup()).Return([]*order.Order{held}, nil).Once(),
	)

	handler := commands.NewSetPartnerAvailabilityCommandHandler(e.factory, clock)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPartnerBusy)
	assert.False(t, partner.IsAvailable())
}

func TestSetPartnerAvailabilityCommandHandler_Handle_ManagerIsDenied(t *testing.T) {
	cmd, err := commands.NewSetPartnerAvailabilityCommand(managerActor(), true)
	require.NoError(t, err)

	factory := new(MockUoWFactory)
	handler := commands.NewSetPartnerAvailabilityCommandHandler(factory, clock)
	_, err = handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	factory.AssertNotCalled(t, "Create")
}

func TestDeactivatePartnerCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	partner := newPartner(t)

	cmd, err := commands.NewDeactivatePartnerCommand(managerActor(), partner.ID())
	require.NoError(t, err)

	userRepo, uow, factory := newUserEnv()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		userRepo.On("GetForUpdate", ctx, partner.ID()).Return(partner, nil).Once(),
		userRepo.On("Update", ctx, partner).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	handler := commands.NewDeactivatePartnerCommandHandler(factory, clock)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.IsActive())
	assert.False(t, result.IsAvailable())
	require.ErrorIs(t, result.CheckAssignable(), errs.ErrPartnerUnavailable)
}

func TestDeactivatePartnerCommandHandler_Handle_ManagerAccountIsNotAPartner(t *testing.T) {
	ctx := t.Context()
	other, err := user.NewManager(kernel.NewUUID(), "Morgan", "morgan@example.com", "", []byte("hash"), now)
	require.NoError(t, err)

	cmd, err := commands.NewDeactivatePartnerCommand(managerActor(), other.ID())
	require.NoError(t, err)

	userRepo, uow, factory := newUserEnv()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		userRepo.On("GetForUpdate", ctx, other.ID()).Return(other, nil).Once(),
	)

	handler := commands.NewDeactivatePartnerCommandHandler(factory, clock)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.True(t, other.IsActive())
}

func TestReconcilePartnerAvailabilityCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	stale := []*user.User{newPartner(t), newPartner(t)}

	userRepo, uow, factory := newUserEnv()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		userRepo.On("FindAvailablePartnersHoldingActiveDelivery", ctx).Return(stale, nil).Once(),
		userRepo.On("Update", ctx, stale[0]).Return(nil).Once(),
		userRepo.On("Update", ctx, stale[1]).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	handler := commands.NewReconcilePartnerAvailabilityCommandHandler(factory, clock)
	n, err := handler.Handle(ctx, commands.NewReconcilePartnerAvailabilityCommand())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	for _, p := range stale {
		assert.False(t, p.IsAvailable())
	}
}

func TestReconcilePartnerAvailabilityCommandHandler_Handle_NothingToFix(t *testing.T) {
	ctx := t.Context()

	userRepo, uow, factory := newUserEnv()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		userRepo.On("FindAvailablePartnersHoldingActiveDelivery", ctx).Return([]*user.User{}, nil).Once(),
	)

	handler := commands.NewReconcilePartnerAvailabilityCommandHandler(factory, clock)
	n, err := handler.Handle(ctx, commands.NewReconcilePartnerAvailabilityCommand())

	require.NoError(t, err)
	assert.Zero(t, n)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestReconcilePartnerAvailabilityCommandHandler_Handle_QueryError(t *testing.T) {
	ctx := t.Context()

	userRepo, uow, factory := newUserEnv()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		userRepo.On("FindAvailablePartnersHoldingActiveDelivery", ctx).Return(nil, errors.New("db down")).Once(),
	)

	handler := commands.NewReconcilePartnerAvailabilityCommandHandler(factory, clock)
	_, err := handler.Handle(ctx, commands.NewReconcilePartnerAvailabilityCommand())

	require.EqualError(t, err, "db down")
}
