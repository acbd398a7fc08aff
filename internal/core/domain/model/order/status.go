package order

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Status is the stage of an order in its lifecycle.
//
// State transitions (actor in parentheses):
//
//	PENDING ──> PREP ──> READY ──> PICKED ──> ON_ROUTE ──> DELIVERED
//	   │  (manager)  │ (manager) (partner)  (partner)    (partner)
//	   └──────┬──────┘
//	          └──> CANCELLED (manager)
//
// DELIVERED and CANCELLED are terminal.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Prep
	Ready
	Picked
	OnRoute
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Pending:   "PENDING",
	Prep:      "PREP",
	Ready:     "READY",
	Picked:    "PICKED",
	OnRoute:   "ON_ROUTE",
	Delivered: "DELIVERED",
	Cancelled: "CANCELLED",
}

// transitions maps every legal (from, to) pair to the only role allowed to perform it.
var transitions = map[Status]map[Status]kernel.Role{
	Pending: {Prep: kernel.RoleRestaurantManager, Cancelled: kernel.RoleRestaurantManager},
	Prep:    {Ready: kernel.RoleRestaurantManager, Cancelled: kernel.RoleRestaurantManager},
	Ready:   {Picked: kernel.RoleDeliveryPartner},
	Picked:  {OnRoute: kernel.RoleDeliveryPartner},
	OnRoute: {Delivered: kernel.RoleDeliveryPartner},
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Prep, Ready, Picked, OnRoute, Delivered, Cancelled}
}

// ActiveDeliveryStatuses are the statuses in which the partner physically holds the order.
func ActiveDeliveryStatuses() []Status {
	return []Status{Picked, OnRoute}
}

// OpenStatuses are all non-terminal statuses.
func OpenStatuses() []Status {
	return []Status{Pending, Prep, Ready, Picked, OnRoute}
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ParseStatus converts the wire name (e.g. "ON_ROUTE") into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActiveDelivery reports whether the order is PICKED or ON_ROUTE.
func (s Status) IsActiveDelivery() bool {
	return s == Picked || s == OnRoute
}

// IsEditableByManager reports whether a manager may still change order details.
func (s Status) IsEditableByManager() bool {
	return s == Pending || s == Prep
}

// IsAssignable reports whether a partner may be (re)assigned at this stage.
func (s Status) IsAssignable() bool {
	return s == Pending || s == Prep || s == Ready
}

// CanTransitionTo reports whether the pair is part of the lifecycle graph, regardless of actor.
func (s Status) CanTransitionTo(to Status) bool {
	_, ok := transitions[s][to]
	return ok
}

// TransitionTo validates moving from s to the requested status on behalf of role.
//
// Returns:
//   - TerminalStateError if s is DELIVERED or CANCELLED
//   - InvalidTransitionError if the pair is not in the graph
//   - PermissionDeniedError if the pair is legal but belongs to the other role
func (s Status) TransitionTo(to Status, role kernel.Role) (Status, error) {
	if err := to.Validate(); err != nil {
		return s, err
	}
	if s.IsTerminal() {
		return s, errs.NewTerminalStateError(s.String(), "change the status of")
	}
	actor, ok := transitions[s][to]
	if !ok {
		return s, errs.NewInvalidTransitionError(s.String(), to.String())
	}
	if actor != role {
		return s, errs.NewPermissionDeniedError(
			fmt.Sprintf("move an order from %s to %s", s, to), role.String())
	}
	return to, nil
}
