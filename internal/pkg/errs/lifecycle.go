package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrPermissionDenied is the sentinel for callers that neither own nor are assigned to an entity.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidTransition is the sentinel for order status graph violations.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrTerminalState is the sentinel for mutations of delivered or cancelled orders.
	ErrTerminalState = errors.New("order is in a terminal state")
	// ErrInvalidState is the sentinel for operations not allowed at the order's current stage.
	ErrInvalidState = errors.New("operation not allowed at current stage")
	// ErrNotAssigned is the sentinel for partners acting on orders that are not theirs.
	ErrNotAssigned = errors.New("order is not assigned to partner")
	// ErrPartnerUnavailable is the sentinel for assignment to an unavailable partner.
	ErrPartnerUnavailable = errors.New("partner is unavailable")
	// ErrPartnerBusy is the sentinel for partners already holding an active delivery.
	ErrPartnerBusy = errors.New("partner already has an active delivery")
	// ErrAlreadyRated is the sentinel for duplicate ratings.
	ErrAlreadyRated = errors.New("order is already rated")
)

// PermissionDeniedError reports that ActorID may not perform Action.
type PermissionDeniedError struct {
	Action  string
	ActorID string
	Cause   error
}

func NewPermissionDeniedError(action, actorID string) *PermissionDeniedError {
	return &PermissionDeniedError{Action: action, ActorID: actorID}
}

func NewPermissionDeniedErrorWithCause(action, actorID string, cause error) *PermissionDeniedError {
	return &PermissionDeniedError{Action: action, ActorID: actorID, Cause: cause}
}

func (e *PermissionDeniedError) Error() string {
	msg := fmt.Sprintf("%s: %s cannot %s", ErrPermissionDenied, e.ActorID, e.Action)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// InvalidTransitionError reports a status change that is not part of the order lifecycle graph.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move order from %s to %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// CurrentStatus returns the status the order was in when the transition was rejected.
func (e *InvalidTransitionError) CurrentStatus() string {
	return e.From
}

// TerminalStateError reports an attempt to mutate an order that is DELIVERED or CANCELLED.
// A terminal order rejects every transition, so the error also matches ErrInvalidTransition.
type TerminalStateError struct {
	Status string
	Action string
}

func NewTerminalStateError(status, action string) *TerminalStateError {
	return &TerminalStateError{Status: status, Action: action}
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s an order in %s status", ErrTerminalState, e.Action, e.Status)
}

func (e *TerminalStateError) Unwrap() error {
	return ErrTerminalState
}

func (e *TerminalStateError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func (e *TerminalStateError) CurrentStatus() string {
	return e.Status
}

// InvalidStateError reports an operation that the order's current, non-terminal stage forbids,
// e.g. reassigning an order that was already picked up.
type InvalidStateError struct {
	Status string
	Action string
}

func NewInvalidStateError(status, action string) *InvalidStateError {
	return &InvalidStateError{Status: status, Action: action}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s an order at stage %s", ErrInvalidState, e.Action, e.Status)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

func (e *InvalidStateError) CurrentStatus() string {
	return e.Status
}

// NotAssignedError reports a partner acting on an order assigned to somebody else (or nobody).
type NotAssignedError struct {
	OrderID   string
	PartnerID string
}

func NewNotAssignedError(orderID, partnerID string) *NotAssignedError {
	return &NotAssignedError{OrderID: orderID, PartnerID: partnerID}
}

func (e *NotAssignedError) Error() string {
	return fmt.Sprintf("%s: order %s, partner %s", ErrNotAssigned, e.OrderID, e.PartnerID)
}

func (e *NotAssignedError) Unwrap() error {
	return ErrNotAssigned
}

// PartnerUnavailableError reports that a partner cannot take new work.
type PartnerUnavailableError struct {
	PartnerID string
	Reason    string
}

func NewPartnerUnavailableError(partnerID, reason string) *PartnerUnavailableError {
	return &PartnerUnavailableError{PartnerID: partnerID, Reason: reason}
}

func (e *PartnerUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrPartnerUnavailable, e.PartnerID, e.Reason)
}

func (e *PartnerUnavailableError) Unwrap() error {
	return ErrPartnerUnavailable
}

// PartnerBusyError reports that a partner already holds an order in PICKED or ON_ROUTE.
// ActiveOrderID is empty when the conflict was detected by the database constraint.
type PartnerBusyError struct {
	PartnerID     string
	ActiveOrderID string
	Cause         error
}

func NewPartnerBusyError(partnerID, activeOrderID string) *PartnerBusyError {
	return &PartnerBusyError{PartnerID: partnerID, ActiveOrderID: activeOrderID}
}

func NewPartnerBusyErrorWithCause(partnerID string, cause error) *PartnerBusyError {
	return &PartnerBusyError{PartnerID: partnerID, Cause: cause}
}

func (e *PartnerBusyError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrPartnerBusy, e.PartnerID)
	if e.ActiveOrderID != "" {
		msg = fmt.Sprintf("%s is delivering order %s", msg, e.ActiveOrderID)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *PartnerBusyError) Unwrap() error {
	return ErrPartnerBusy
}

// AlreadyRatedError reports a second rating submission for the same order.
type AlreadyRatedError struct {
	OrderID string
}

func NewAlreadyRatedError(orderID string) *AlreadyRatedError {
	return &AlreadyRatedError{OrderID: orderID}
}

func (e *AlreadyRatedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAlreadyRated, e.OrderID)
}

func (e *AlreadyRatedError) Unwrap() error {
	return ErrAlreadyRated
}
