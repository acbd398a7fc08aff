package commands_test

import (
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterUserCommand(t *testing.T) {
	t.Run("partner needs a vehicle", func(t *testing.T) {
		_, err := commands.NewRegisterUserCommand(commands.RegisterUserParams{
			Name: "Pat", Email: "pat@example.com", Password: "secret1", Role: "delivery_partner",
		})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := commands.NewRegisterUserCommand(commands.RegisterUserParams{
			Name: "Pat", Email: "pat@example.com", Password: "abc", Role: "restaurant_manager",
		})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := commands.NewRegisterUserCommand(commands.RegisterUserParams{
			Name: "Pat", Email: "pat@example.com", Password: "secret1", Role: "admin",
		})
		require.Error(t, err)
	})

	t.Run("normalizes email", func(t *testing.T) {
		cmd, err := commands.NewRegisterUserCommand(commands.RegisterUserParams{
			Name: "Pat", Email: "  Pat@Example.COM ", Password: "secret1", Role: "delivery_partner", VehicleType: "bicycle",
		})
		require.NoError(t, err)
		assert.Equal(t, "pat@example.com", cmd.Email())
		assert.Equal(t, user.VehicleBicycle, cmd.VehicleType())
	})
}

func TestRegisterUserCommandHandler_Handle_Partner(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterUserCommand(commands.RegisterUserParams{
		Name: "Pat", Email: "pat@example.com", Password: "secret1", Role: "delivery_partner", VehicleType: "car",
	})
	require.NoError(t, err)

	hasher := new(MockPasswordHasher)
	hasher.On("Hash", "secret1").Return([]byte("hashed"), nil).Once()

	userRepo, uow, factory := newUserEnv()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		userRepo.On("GetByEmail", ctx, "pat@example.com").
			Return(nil, errs.NewObjectNotFoundError("email", "pat@example.com")).Once(),
		userRepo.On("Add", ctx, mock.AnythingOfType("*user.User")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	handler := commands.NewRegisterUserCommandHandler(factory, hasher, clock)
	u, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, kernel.RoleDeliveryPartner, u.Role())
	assert.True(t, u.IsAvailable())
	assert.InDelta(t, user.DefaultPartnerRating, u.Partner().Rating, 0)
	assert.Equal(t, []byte("hashed"), u.PasswordHash())
	hasher.AssertExpectations(t)
}

func TestRegisterUserCommandHandler_Handle_EmailTaken(t *testing.T) {
	ctx := t.Context()
	existing, err := user.NewManager(kernel.NewUUID(), "Morgan", "morgan@example.com", "", []byte("h"), now)
	require.NoError(t, err)

	cmd, err := commands.NewRegisterUserCommand(commands.RegisterUserParams{
		Name: "Morgan", Email: "morgan@example.com", Password: "secret1", Role: "restaurant_manager",
	})
	require.NoError(t, err)

	hasher := new(MockPasswordHasher)
	hasher.On("Hash", "secret1").Return([]byte("hashed"), nil).Once()

	userRepo, uow, factory := newUserEnv()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		userRepo.On("GetByEmail", ctx, "morgan@example.com").Return(existing, nil).Once(),
	)

	handler := commands.NewRegisterUserCommandHandler(factory, hasher, clock)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrEmailIsTaken)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	userRepo.AssertNotCalled(t, "Add", ctx, mock.Anything)
}

func TestLoginCommandHandler_Handle(t *testing.T) {
	partner := newPartner(t)
	expires := now.Add(24 * time.Hour)

	testCases := []struct {
		name      string
		lookupErr error
		compare   error
		wantErr   error
	}{
		{name: "success"},
		{name: "unknown email", lookupErr: errs.NewObjectNotFoundError("email", "pat@example.com"), wantErr: commands.ErrInvalidCredentials},
		{name: "wrong password", compare: errors.New("mismatch"), wantErr: commands.ErrInvalidCredentials},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, err := commands.NewLoginCommand("PAT@example.com", "secret1")
			require.NoError(t, err)

			userRepo, _, factory := newUserEnv()
			hasher := new(MockPasswordHasher)
			tokens := new(MockTokenIssuer)

			if tc.lookupErr != nil {
				userRepo.On("GetByEmail", ctx, "pat@example.com").Return(nil, tc.lookupErr).Once()
			} else {
				userRepo.On("GetByEmail", ctx, "pat@example.com").Return(partner, nil).Once()
				hasher.On("Compare", partner.PasswordHash(), "secret1").Return(tc.compare).Once()
			}
			if tc.wantErr == nil {
				tokens.On("Issue", partner.Actor()).Return("signed", expires, nil).Once()
			}

			handler := commands.NewLoginCommandHandler(factory, hasher, tokens)
			result, err := handler.Handle(ctx, cmd)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				tokens.AssertNotCalled(t, "Issue", mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "signed", result.Token)
			assert.Equal(t, expires, result.ExpiresAt)
			assert.Equal(t, partner.ID(), result.User.ID())
		})
	}
}
