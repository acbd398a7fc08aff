package kernel

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Role is the closed set of actors in the system. Code that branches on a role
// switches over every value so a new role cannot be added silently.
type Role int

const (
	RoleUnknown Role = iota
	RoleRestaurantManager
	RoleDeliveryPartner
)

func (r Role) String() string {
	switch r {
	case RoleRestaurantManager:
		return "restaurant_manager"
	case RoleDeliveryPartner:
		return "delivery_partner"
	case RoleUnknown:
		return "unknown"
	}
	return "unknown"
}

func (r Role) Validate() error {
	switch r {
	case RoleRestaurantManager, RoleDeliveryPartner:
		return nil
	case RoleUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
}

// ParseRole accepts the wire names "restaurant_manager" and "delivery_partner".
func ParseRole(s string) (Role, error) {
	switch s {
	case "restaurant_manager":
		return RoleRestaurantManager, nil
	case "delivery_partner":
		return RoleDeliveryPartner, nil
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Actor is the authenticated caller of a domain operation.
type Actor struct {
	ID   UUID
	Role Role
}

func NewActor(id UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

func (a Actor) IsManager() bool {
	return a.Role == RoleRestaurantManager
}

func (a Actor) IsPartner() bool {
	return a.Role == RoleDeliveryPartner
}
