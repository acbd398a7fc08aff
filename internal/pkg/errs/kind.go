package errs

import "errors"

// Kind is the transport-independent classification of an error.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindPermissionDenied
	KindInvalidTransition
	KindTerminalState
	KindInvalidState
	KindNotAssigned
	KindPartnerUnavailable
	KindPartnerBusy
	KindAlreadyRated
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindInvalidTransition:
		return "InvalidTransition"
	case KindTerminalState:
		return "TerminalState"
	case KindInvalidState:
		return "InvalidState"
	case KindNotAssigned:
		return "NotAssigned"
	case KindPartnerUnavailable:
		return "PartnerUnavailable"
	case KindPartnerBusy:
		return "PartnerBusy"
	case KindAlreadyRated:
		return "AlreadyRated"
	case KindValidation:
		return "ValidationError"
	case KindConflict:
		return "Conflict"
	case KindInternal:
		return "Internal"
	}
	return "Internal"
}

// KindOf classifies err. Unknown errors are KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	// TerminalStateError also matches ErrInvalidTransition, so it goes first.
	case errors.Is(err, ErrTerminalState):
		return KindTerminalState
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrNotAssigned):
		return KindNotAssigned
	case errors.Is(err, ErrPartnerUnavailable):
		return KindPartnerUnavailable
	case errors.Is(err, ErrPartnerBusy):
		return KindPartnerBusy
	case errors.Is(err, ErrAlreadyRated):
		return KindAlreadyRated
	case errors.Is(err, ErrVersionIsInvalid):
		return KindConflict
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	}
	return KindInternal
}

// CurrentStatus returns the order status attached to err, if any.
func CurrentStatus(err error) (string, bool) {
	var carrier interface{ CurrentStatus() string }
	if errors.As(err, &carrier) {
		return carrier.CurrentStatus(), true
	}
	return "", false
}
