package services

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// RequireOwner allows only the restaurant manager who created the order.
func RequireOwner(o *order.Order, caller kernel.Actor, action string) error {
	switch caller.Role {
	case kernel.RoleRestaurantManager:
		if o.IsOwnedBy(caller.ID) {
			return nil
		}
	case kernel.RoleDeliveryPartner, kernel.RoleUnknown:
	}
	return errs.NewPermissionDeniedError(action, caller.ID.String())
}

// RequireManager allows any restaurant manager.
func RequireManager(caller kernel.Actor, action string) error {
	switch caller.Role {
	case kernel.RoleRestaurantManager:
		return nil
	case kernel.RoleDeliveryPartner, kernel.RoleUnknown:
	}
	return errs.NewPermissionDeniedError(action, caller.ID.String())
}

// RequirePartner allows any delivery partner.
func RequirePartner(caller kernel.Actor, action string) error {
	switch caller.Role {
	case kernel.RoleDeliveryPartner:
		return nil
	case kernel.RoleRestaurantManager, kernel.RoleUnknown:
	}
	return errs.NewPermissionDeniedError(action, caller.ID.String())
}

// CanView lets every manager read every order. Partners only read orders assigned to them.
func CanView(o *order.Order, caller kernel.Actor) error {
	switch caller.Role {
	case kernel.RoleRestaurantManager:
		return nil
	case kernel.RoleDeliveryPartner:
		if o.IsAssignedTo(caller.ID) {
			return nil
		}
		return errs.NewNotAssignedError(o.ID().String(), caller.ID.String())
	case kernel.RoleUnknown:
	}
	return errs.NewPermissionDeniedError("view order", caller.ID.String())
}

// CanAnnotate lets the owning manager and the assigned partner add tracking notes.
func CanAnnotate(o *order.Order, caller kernel.Actor) error {
	switch caller.Role {
	case kernel.RoleRestaurantManager:
		return RequireOwner(o, caller, "add a note to order")
	case kernel.RoleDeliveryPartner:
		if o.IsAssignedTo(caller.ID) {
			return nil
		}
		return errs.NewNotAssignedError(o.ID().String(), caller.ID.String())
	case kernel.RoleUnknown:
	}
	return errs.NewPermissionDeniedError("add a note to order", caller.ID.String())
}
