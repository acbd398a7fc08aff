package commands

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const minPasswordLength = 6

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

type RegisterUserParams struct {
	Name        string
	Email       string
	Phone       string
	Password    string
	Role        string
	VehicleType string
}

type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	name        string
	email       string
	phone       string
	password    string
	role        kernel.Role
	vehicleType user.VehicleType

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(params RegisterUserParams) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		name:  params.Name,
		email: strings.ToLower(strings.TrimSpace(params.Email)),
		phone: params.Phone,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPassword(params.Password),
		cmd.setRole(params.Role, params.VehicleType),
	); err != nil {
		return RegisterUserCommand{}, err
	}
	return cmd, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Name() string { return c.name }
func (c RegisterUserCommand) Email() string { return c.email }
func (c RegisterUserCommand) Phone() string { return c.phone }
func (c RegisterUserCommand) Password() string { return c.password }
func (c RegisterUserCommand) Role() kernel.Role { return c.role }
func (c RegisterUserCommand) VehicleType() user.VehicleType { return c.vehicleType }

func (c *RegisterUserCommand) setPassword(password string) error {
	if len(password) < minPasswordLength {
		return errs.NewValueIsInvalidErrorWithCause("password",
			fmt.Errorf("must be at least %d characters", minPasswordLength))
	}
	c.password = password
	return nil
}

func (c *RegisterUserCommand) setRole(role, vehicle string) error {
	r, err := kernel.ParseRole(role)
	if err != nil {
		return err
	}
	c.role = r

	switch r {
	case kernel.RoleDeliveryPartner:
		if vehicle == "" {
			return errs.NewValueIsRequiredError("vehicleType")
		}
		v, vErr := user.ParseVehicleType(vehicle)
		if vErr != nil {
			return vErr
		}
		c.vehicleType = v
	case kernel.RoleRestaurantManager, kernel.RoleUnknown:
	}
	return nil
}
